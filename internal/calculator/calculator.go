// Package calculator implements the four binary arithmetic operations served
// by calcd.
package calculator

import "errors"

// Operation selects one of the arithmetic operations
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

var (
	// ErrDivisionByZero is returned by Divide when the divisor is zero
	ErrDivisionByZero = errors.New("Cannot divide by zero")

	// ErrUnknownOperation is returned by Apply for operations outside the enumeration
	ErrUnknownOperation = errors.New("Invalid operation")
)

// Operations returns the supported operations in declaration order
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// ParseOperation maps a selector to its Operation. Matching is exact.
func ParseOperation(name string) (Operation, bool) {
	switch op := Operation(name); op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer
func (o Operation) String() string {
	return string(o)
}

// Add returns a + b
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a * b
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a / b, or ErrDivisionByZero when b is zero
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Apply evaluates op over a and b
func Apply(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return Add(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	case OpMultiply:
		return Multiply(a, b), nil
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, ErrUnknownOperation
	}
}
