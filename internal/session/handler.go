package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/typeid"
)

// Options configures the websocket handler.
type Options struct {
	// OriginPatterns are the allowed browser origins, host patterns as
	// accepted by websocket.AcceptOptions.
	OriginPatterns []string
	// Seed fills every new scene once its surface is ready.
	Seed func(*engine.Body)
	// Engine returns the options for each new engine.
	Engine func() []engine.Option
}

type Handler struct {
	hub  *Hub
	opts Options
}

func NewHandler(hub *Hub, opts Options) *Handler {
	return &Handler{hub: hub, opts: opts}
}

// Routes mounts the handler on /ws and /ws/{sessionId}.
func (h *Handler) Routes(r *mux.Router) {
	r.Handle("/ws", h)
	r.Handle("/ws/{sessionId}", h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		sessionID = typeid.NewSessionID()
	} else if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	var opts []engine.Option
	if h.opts.Engine != nil {
		opts = h.opts.Engine()
	}
	clientID := uuid.New().String()
	client := NewClient(h.hub, conn, sessionID, clientID, h.opts.Seed, opts...)
	client.emit(TypeWelcome, WelcomePayload{SessionID: sessionID, ClientID: clientID})

	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
