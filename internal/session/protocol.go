package session

import (
	"encoding/json"

	"github.com/wlmath-dwl/neuron/internal/geom"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypePointerStart = "pointer.start"
	TypePointerMove  = "pointer.move"
	TypePointerEnd   = "pointer.end"
	TypeWheel        = "wheel"
	TypeResize       = "resize"
	TypeUndo         = "undo"
	TypeRedo         = "redo"
	TypeFsmChange    = "fsm.change"

	// Server → client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeCmd     = "cmd"
	TypeSelect  = "select"
	TypeError   = "error"
)

// PointerPayload carries the physical samples of one pointer or touch
// event, primary pointer first.
type PointerPayload struct {
	Points [][2]float64 `json:"points"`
}

func (p PointerPayload) vecs() []geom.Vec {
	out := make([]geom.Vec, len(p.Points))
	for i, pt := range p.Points {
		out[i] = geom.V(pt[0], pt[1])
	}
	return out
}

type WheelPayload struct {
	Point [2]float64 `json:"point"`
	Out   bool       `json:"out"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FsmChangePayload selects a gesture state machine. Cell names the variant
// for the placing machine.
type FsmChangePayload struct {
	Name string `json:"name"`
	Cell string `json:"cell,omitempty"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
}

// SelectPayload names the picked cell; ID is empty when nothing was hit.
type SelectPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
