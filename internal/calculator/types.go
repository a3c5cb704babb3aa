package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/session"
)

var (
	ErrUnknownEvent     = errors.New("unknown event type")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidOperand   = errors.New("invalid operand")
)

// EventRequest is the JSON body for POST /calculator/sessions/{id}/events.
type EventRequest struct {
	Type      string `json:"type"`                // "digit", "decimal", "operation", "result", "clean"
	Digit     string `json:"digit,omitempty"`     // for "digit"
	Operation string `json:"operation,omitempty"` // for "operation": name or symbol
}

// Event converts the request into an engine event.
func (r EventRequest) Event() (engine.Event, error) {
	switch r.Type {
	case "digit":
		return engine.DigitEntered{Digit: r.Digit}, nil
	case "decimal":
		return engine.DecimalSeparatorEntered{}, nil
	case "operation":
		op, ok := engine.ParseOperation(r.Operation)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, r.Operation)
		}
		return engine.OperationEntered{Operation: op}, nil
	case "result":
		return engine.ResultEntered{}, nil
	case "clean":
		return engine.CleanEntered{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, r.Type)
}

// SessionResponse is the JSON view of a calculator session.
type SessionResponse struct {
	ID        string       `json:"id"`
	Display   string       `json:"display"`
	Phase     engine.Phase `json:"phase"`
	State     engine.State `json:"state"`
	Events    int          `json:"events"`
	UpdatedAt time.Time    `json:"updated_at"`
	Ignored   bool         `json:"ignored,omitempty"` // key press had no binding
}

func newSessionResponse(snap session.Snapshot) SessionResponse {
	return SessionResponse{
		ID:        snap.ID,
		Display:   snap.State.Display(),
		Phase:     snap.State.Phase(),
		State:     snap.State,
		Events:    snap.Events,
		UpdatedAt: snap.UpdatedAt,
	}
}

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
// Operands may be JSON numbers or decimal strings.
type CalcRequest struct {
	A json.Number `json:"a"`
	B json.Number `json:"b"`
}

// CalcResponse is the JSON response for binary operations.
type CalcResponse struct {
	Operation string `json:"operation"`
	A         string `json:"a"`
	B         string `json:"b"`
	Result    string `json:"result"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Keys string `json:"keys"` // e.g. "2*3=="
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Keys    string         `json:"keys"` // canonical form of the accepted keys
	Steps   []EvaluateStep `json:"steps"`
	Display string         `json:"display"`
	State   engine.State   `json:"state"`
}

// EvaluateStep records the display after one key.
type EvaluateStep struct {
	Key     string `json:"key"`
	Event   string `json:"event"`
	Display string `json:"display"`
}
