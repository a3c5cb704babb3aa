package engine

import "strings"

// Transition returns the state that follows s after ev. It never mutates s
// and never fails: invalid payloads leave the state unchanged.
func Transition(s State, ev Event) State {
	switch e := ev.(type) {
	case DigitEntered:
		return enterDigit(s, e.Digit)
	case DecimalSeparatorEntered:
		return enterDecimalSeparator(s)
	case OperationEntered:
		return enterOperation(s, e.Operation)
	case ResultEntered:
		return enterResult(s)
	case CleanEntered:
		return Initial()
	}
	return s
}

// Apply folds events over s in order.
func Apply(s State, events ...Event) State {
	for _, ev := range events {
		s = Transition(s, ev)
	}
	return s
}

func enterDigit(s State, digit string) State {
	if len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
		return s
	}

	next := s
	if s.Entry == "" || s.Entry == "0" {
		next.Entry = digit
	} else {
		next.Entry = s.Entry + digit
	}
	return next
}

func enterDecimalSeparator(s State) State {
	if strings.Contains(s.Entry, ".") {
		return s
	}

	next := s
	next.Entry = s.Entry + "."
	return next
}

func enterOperation(s State, op Operation) State {
	if !op.Valid() {
		return s
	}

	next := s
	if s.Entry != "" {
		if s.Pending != OperationNone {
			next.Accumulated = Calculate(s.Pending, s.Accumulated, s.Entry)
		} else {
			next.Accumulated = s.Entry
		}
		next.Entry = ""
	}
	next.Pending = op
	next.RepeatOperand = ""
	return next
}

func enterResult(s State) State {
	if s.Pending == OperationNone {
		return s
	}

	right := s.Entry
	if right == "" {
		right = s.RepeatOperand
	}
	if right == "" {
		right = s.Accumulated
	}

	return State{
		Accumulated:   Calculate(s.Pending, s.Accumulated, right),
		Pending:       s.Pending,
		RepeatOperand: right,
	}
}
