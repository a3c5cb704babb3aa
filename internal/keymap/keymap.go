package keymap

import (
	"strings"
	"unicode"

	"go-chi-calculator/internal/engine"
)

// Key is a single key press as reported by an input device.
type Key struct {
	Value string `json:"key"`
	Alt   bool   `json:"alt"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
}

var signs = map[string]engine.Operation{
	"+": engine.OperationPlus,
	"-": engine.OperationMinus,
	"*": engine.OperationMultiply,
	"/": engine.OperationDivide,
}

// Translate maps a key press to a calculator event. Keys held with a
// modifier and keys without a binding report false.
func Translate(k Key) (engine.Event, bool) {
	if k.Alt || k.Ctrl || k.Meta {
		return nil, false
	}

	if op, ok := signs[k.Value]; ok {
		return engine.OperationEntered{Operation: op}, true
	}

	if len(k.Value) == 1 && k.Value[0] >= '0' && k.Value[0] <= '9' {
		return engine.DigitEntered{Digit: k.Value}, true
	}

	switch k.Value {
	case "=":
		return engine.ResultEntered{}, true
	case ".", ",":
		return engine.DecimalSeparatorEntered{}, true
	case "c", "C":
		return engine.CleanEntered{}, true
	}

	return nil, false
}

// ParseSequence translates every rune of seq as an unmodified key press.
// Whitespace and unbound runes are skipped.
func ParseSequence(seq string) []engine.Event {
	events := make([]engine.Event, 0, len(seq))
	for _, r := range seq {
		if unicode.IsSpace(r) {
			continue
		}
		if ev, ok := Translate(Key{Value: string(r)}); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Replay folds seq over the initial state.
func Replay(seq string) engine.State {
	return engine.Apply(engine.Initial(), ParseSequence(seq)...)
}

// Format renders events back into their canonical key sequence.
func Format(events []engine.Event) string {
	var b strings.Builder
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.DigitEntered:
			b.WriteString(e.Digit)
		case engine.DecimalSeparatorEntered:
			b.WriteByte('.')
		case engine.OperationEntered:
			b.WriteString(e.Operation.Symbol())
		case engine.ResultEntered:
			b.WriteByte('=')
		case engine.CleanEntered:
			b.WriteByte('c')
		}
	}
	return b.String()
}
