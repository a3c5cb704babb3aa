package engine

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tokens displayed for non-finite results.
const (
	Infinity         = "Infinity"
	NegativeInfinity = "-Infinity"
	NaN              = "NaN"
)

// Calculate applies op to the decimal texts left and right and formats the
// result as text. An empty left operand is zero. Division by zero yields
// Infinity, -Infinity or NaN depending on the dividend. Operand text that
// is not a number yields NaN.
func Calculate(op Operation, left, right string) string {
	l, lok := parseOperand(left)
	r, rok := parseOperand(right)
	if !lok || !rok || !op.Valid() {
		return NaN
	}

	if l.special != "" || r.special != "" {
		return formatFloat(applyFloat(op, l.float(), r.float()))
	}

	switch op {
	case OperationPlus:
		return l.d.Add(r.d).String()
	case OperationMinus:
		return l.d.Sub(r.d).String()
	case OperationMultiply:
		return l.d.Mul(r.d).String()
	}

	if r.d.IsZero() {
		switch l.d.Sign() {
		case 1:
			return Infinity
		case -1:
			return NegativeInfinity
		}
		return NaN
	}
	return l.d.Div(r.d).String()
}

// ValidOperand reports whether text is accepted as a Calculate operand.
func ValidOperand(text string) bool {
	_, ok := parseOperand(text)
	return ok
}

// operand is a parsed number: either a finite decimal or one of the
// non-finite display tokens.
type operand struct {
	d       decimal.Decimal
	special string
}

func (o operand) float() float64 {
	switch o.special {
	case Infinity:
		return math.Inf(1)
	case NegativeInfinity:
		return math.Inf(-1)
	case NaN:
		return math.NaN()
	}
	return o.d.InexactFloat64()
}

func parseOperand(text string) (operand, bool) {
	switch text {
	case Infinity, NegativeInfinity, NaN:
		return operand{special: text}, true
	}

	sign, digits := "", text
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	digits = strings.TrimSuffix(digits, ".")
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}
	if digits == "" {
		digits = "0"
	}

	d, err := decimal.NewFromString(sign + digits)
	if err != nil || strings.ContainsAny(digits, "eE") {
		return operand{}, false
	}
	return operand{d: d}, true
}

func applyFloat(op Operation, l, r float64) float64 {
	switch op {
	case OperationPlus:
		return l + r
	case OperationMinus:
		return l - r
	case OperationMultiply:
		return l * r
	}
	return l / r
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return NaN
	case math.IsInf(f, 1):
		return Infinity
	case math.IsInf(f, -1):
		return NegativeInfinity
	}
	return decimal.NewFromFloat(f).String()
}
