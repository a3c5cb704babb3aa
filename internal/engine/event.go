package engine

// Event is one discrete user input. The set of implementations is closed:
// DigitEntered, DecimalSeparatorEntered, OperationEntered, ResultEntered and
// CleanEntered.
type Event interface {
	// Name is a stable identifier used in logs and metric attributes.
	Name() string

	event()
}

// DigitEntered appends a single ASCII digit to the entry.
type DigitEntered struct {
	Digit string
}

// DecimalSeparatorEntered appends "." to the entry once.
type DecimalSeparatorEntered struct{}

// OperationEntered resolves any pending computation and queues Operation.
type OperationEntered struct {
	Operation Operation
}

// ResultEntered applies the pending operation ("equals").
type ResultEntered struct{}

// CleanEntered resets the calculator.
type CleanEntered struct{}

func (DigitEntered) Name() string            { return "digit" }
func (DecimalSeparatorEntered) Name() string { return "decimal" }
func (OperationEntered) Name() string        { return "operation" }
func (ResultEntered) Name() string           { return "result" }
func (CleanEntered) Name() string            { return "clean" }

func (DigitEntered) event()            {}
func (DecimalSeparatorEntered) event() {}
func (OperationEntered) event()        {}
func (ResultEntered) event()           {}
func (CleanEntered) event()            {}
