// Package engine implements the calculator state machine: a pure transition
// function over State and the display projection derived from it.
package engine

// Operation is an arithmetic operator queued against the next operand.
type Operation string

const (
	OperationNone     Operation = ""
	OperationPlus     Operation = "plus"
	OperationMinus    Operation = "minus"
	OperationMultiply Operation = "multiply"
	OperationDivide   Operation = "divide"
)

// Valid reports whether op is one of the four arithmetic operations.
func (op Operation) Valid() bool {
	switch op {
	case OperationPlus, OperationMinus, OperationMultiply, OperationDivide:
		return true
	}
	return false
}

// Symbol returns the operator as typed on a keyboard.
func (op Operation) Symbol() string {
	switch op {
	case OperationPlus:
		return "+"
	case OperationMinus:
		return "-"
	case OperationMultiply:
		return "*"
	case OperationDivide:
		return "/"
	}
	return ""
}

// ParseOperation accepts an operation name ("plus") or its symbol ("+").
func ParseOperation(s string) (Operation, bool) {
	for _, op := range []Operation{OperationPlus, OperationMinus, OperationMultiply, OperationDivide} {
		if s == string(op) || s == op.Symbol() {
			return op, true
		}
	}
	return OperationNone, false
}

// Phase is the logical state of the calculator.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
)

// State is the complete calculator state. An empty string field is absent.
//
// State holds only strings, so copies never alias; Transition always returns
// a fresh value.
type State struct {
	// Entry is the number being typed, in its exact textual form.
	Entry string `json:"current_entry,omitempty"`
	// Accumulated is the carried left operand or last result.
	Accumulated string `json:"accumulated_value,omitempty"`
	// Pending is the operation applied once the next operand is final.
	Pending Operation `json:"pending_operation,omitempty"`
	// RepeatOperand is the right operand of the last result, reused when
	// the result is requested again without a new entry.
	RepeatOperand string `json:"repeat_operand,omitempty"`
}

// Initial returns the state with every field absent.
func Initial() State {
	return State{}
}

// Phase reports whether an operation is queued.
func (s State) Phase() Phase {
	if s.Pending == OperationNone {
		return PhaseIdle
	}
	return PhasePending
}

// Display is shorthand for DisplayValue(s).
func (s State) Display() string {
	return DisplayValue(s)
}

// DisplayValue derives the user-visible value: the entry, else the
// accumulated value, else "0".
func DisplayValue(s State) string {
	if s.Entry != "" {
		return s.Entry
	}
	if s.Accumulated != "" {
		return s.Accumulated
	}
	return "0"
}
