// Package session serves the engine over websockets. Every connection gets
// its own engine; the hub only keeps track of live sessions.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// closeWait bounds the close handshake with a peer that stopped reading.
const closeWait = time.Second

type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // sessionID -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Register reports false when the hub is stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stop ends Run and closes every live connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.RLock()
		clients := make([]*Client, 0, len(h.clients))
		for _, c := range h.clients {
			clients = append(clients, c)
		}
		h.mu.RUnlock()

		var wg sync.WaitGroup
		for _, c := range clients {
			wg.Add(1)
			go func() {
				defer wg.Done()
				closeConn(c.conn, websocket.StatusGoingAway, "server shutting down")
			}()
		}
		wg.Wait()
		slog.Info("session hub stopped", "sessions", len(clients))
	})
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.SessionID]; ok {
		// a reconnect under the same id takes over
		go closeConn(old.conn, websocket.StatusPolicyViolation, "session taken over")
	}
	h.clients[client.SessionID] = client
	n := len(h.clients)
	h.mu.Unlock()

	slog.Info("session opened", "session", client.SessionID, "client", client.ClientID, "sessions", n)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[client.SessionID]; !ok || cur != client {
		h.mu.Unlock()
		close(client.send)
		return
	}
	delete(h.clients, client.SessionID)
	close(client.send)
	n := len(h.clients)
	h.mu.Unlock()

	slog.Info("session closed", "session", client.SessionID, "client", client.ClientID, "sessions", n)
}

// closeConn starts the close handshake and drops the connection if the peer
// has not answered within closeWait.
func closeConn(conn *websocket.Conn, code websocket.StatusCode, reason string) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.Close(code, reason)
	}()
	select {
	case <-done:
	case <-time.After(closeWait):
		conn.CloseNow()
		<-done
	}
}
