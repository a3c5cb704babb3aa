package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		op          Operation
		left, right string
		want        string
	}{
		{OperationPlus, "0.1", "0.2", "0.3"},
		{OperationPlus, "", "7", "7"},
		{OperationMinus, "", "2", "-2"},
		{OperationMinus, "1.5", "1.5", "0"},
		{OperationMultiply, "", "2", "0"},
		{OperationMultiply, "1.1", "1.1", "1.21"},
		{OperationMultiply, "123456789012345678901234567890", "10", "1234567890123456789012345678900"},
		{OperationDivide, "3", "2", "1.5"},
		{OperationDivide, "1", "0", Infinity},
		{OperationDivide, "-1", "0", NegativeInfinity},
		{OperationDivide, "0", "0", NaN},
		{OperationDivide, "", "0.", NaN},
		{OperationDivide, "2", "3", "0.6666666666666667"},
		{OperationPlus, ".", "1.", "1"},
		{OperationPlus, Infinity, "1", Infinity},
		{OperationMultiply, Infinity, "-1", NegativeInfinity},
		{OperationMultiply, Infinity, "0", NaN},
		{OperationDivide, "1", Infinity, "0"},
		{OperationPlus, NaN, "1", NaN},
	}

	for _, tc := range tests {
		name := tc.left + " " + tc.op.Symbol() + " " + tc.right
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Calculate(tc.op, tc.left, tc.right))
		})
	}
}

func TestCalculateRejectsMalformedOperands(t *testing.T) {
	assert.Equal(t, NaN, Calculate(OperationPlus, "abc", "1"))
	assert.Equal(t, NaN, Calculate(OperationPlus, "1", "1e3"))
	assert.Equal(t, NaN, Calculate(OperationNone, "1", "1"))
}

func TestValidOperand(t *testing.T) {
	for _, text := range []string{"", "0", "-3", "1.", ".5", "12.75", Infinity, NegativeInfinity, NaN} {
		assert.True(t, ValidOperand(text), text)
	}
	for _, text := range []string{"x", "1.2.3", "1e5", "--1", " 1"} {
		assert.False(t, ValidOperand(text), text)
	}
}

func TestDisplayValuePrecedence(t *testing.T) {
	assert.Equal(t, "0", DisplayValue(State{}))
	assert.Equal(t, "4", DisplayValue(State{Accumulated: "4"}))
	assert.Equal(t, "9", DisplayValue(State{Entry: "9", Accumulated: "4"}))
	assert.Equal(t, "9", State{Entry: "9"}.Display())
}
