package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/paint"
	"github.com/wlmath-dwl/neuron/internal/view"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

var ErrUnknownType = errors.New("unknown message type")

// Client is one websocket connection and the engine it drives. The engine
// is only touched from the read pump.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	SessionID string
	ClientID  string

	engine   *engine.Engine
	recorder *paint.Recorder
	passes   int
	seq      int64
	logger   *slog.Logger
}

// NewClient builds the client and its engine. opts are applied after the
// session's own transform, painter and logger.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID, clientID string, seed func(*engine.Body), opts ...engine.Option) *Client {
	c := &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		SessionID: sessionID,
		ClientID:  clientID,
		logger:    slog.Default().With("session", sessionID),
	}

	tr := view.NewTransform()
	c.recorder = paint.NewRecorder(tr)
	base := []engine.Option{
		engine.WithTransform(tr),
		engine.WithPainter(paint.NewPainter(tr, c.recorder)),
		engine.WithLogger(c.logger),
	}
	c.engine = engine.New(append(base, opts...)...)

	c.engine.On(engine.EventCmd, func(args ...any) {
		c.emit(TypeCmd, args[0])
	})
	c.engine.On(engine.EventSelect, func(args ...any) {
		var p SelectPayload
		if cell, _ := args[0].(*model.Cell); cell != nil {
			p.ID = cell.ID
		}
		c.emit(TypeSelect, p)
	})
	if seed != nil {
		c.engine.On(engine.EventReady, func(...any) { seed(c.engine.Body()) })
	}
	return c
}

// Engine returns the engine of this connection.
func (c *Client) Engine() *engine.Engine { return c.engine }

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.logger.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("invalid message", "error", err)
			c.emit(TypeError, ErrorPayload{Message: "invalid message"})
			continue
		}

		if err := c.handle(&msg); err != nil {
			c.logger.Warn("message rejected", "type", msg.Type, "error", err)
			c.emit(TypeError, ErrorPayload{Message: err.Error()})
		}
		c.flush()
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) handle(msg *Message) error {
	e := c.engine
	switch msg.Type {
	case TypePointerStart, TypePointerMove, TypePointerEnd:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		switch msg.Type {
		case TypePointerStart:
			e.DragStart(p.vecs())
		case TypePointerMove:
			e.Drag(p.vecs())
		default:
			e.DragEnd(p.vecs())
		}
	case TypeWheel:
		p, err := decode[WheelPayload](msg.Payload)
		if err != nil {
			return err
		}
		e.Zoom([]geom.Vec{geom.V(p.Point[0], p.Point[1])}, p.Out)
	case TypeResize:
		p, err := decode[ResizePayload](msg.Payload)
		if err != nil {
			return err
		}
		e.Resize(p.Width, p.Height)
	case TypeUndo:
		e.Undo()
	case TypeRedo:
		e.Redo()
	case TypeFsmChange:
		p, err := decode[FsmChangePayload](msg.Payload)
		if err != nil {
			return err
		}
		var param any
		if p.Cell != "" {
			param = engine.PlaceParam{CellName: p.Cell}
		}
		return e.ChangeFsm(p.Name, param)
	default:
		return fmt.Errorf("%w %q", ErrUnknownType, msg.Type)
	}
	return nil
}

// flush sends the latest frame if the engine rendered since the last one.
func (c *Client) flush() {
	if n := c.recorder.Passes(); n != c.passes {
		c.passes = n
		c.emit(TypeFrame, c.recorder.Frame())
	}
}

func (c *Client) emit(typ string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("marshal payload", "type", typ, "error", err)
		return
	}
	c.seq++
	c.Send(&Message{Type: typ, SessionID: c.SessionID, Seq: c.seq, Payload: raw})
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("client send buffer full, dropping message", "type", msg.Type)
	}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("invalid payload: %w", err)
	}
	return v, nil
}
