package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	assert.Equal(t, 5.0, Add(2, 3))
	assert.Equal(t, 0.0, Add(-1, 1))
	assert.Equal(t, 0.0, Add(0, 0))
}

func TestSubtract(t *testing.T) {
	assert.Equal(t, 2.0, Subtract(5, 3))
	assert.Equal(t, 0.0, Subtract(1, 1))
	assert.Equal(t, -5.0, Subtract(0, 5))
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, 6.0, Multiply(2, 3))
	assert.Equal(t, -6.0, Multiply(-2, 3))
	assert.Equal(t, 0.0, Multiply(0, 5))
}

func TestDivide(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{6, 2, 3},
		{5, 2, 2.5},
		{-6, 2, -3},
		{1, 3, 1.0 / 3.0},
	}

	for _, tt := range tests {
		got, err := Divide(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestDivide_ByZero(t *testing.T) {
	for _, a := range []float64{5, 0, -3.5, math.Inf(1)} {
		_, err := Divide(a, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		assert.EqualError(t, err, "Cannot divide by zero")
	}

	// negative zero compares equal to zero
	_, err := Divide(1, math.Copysign(0, -1))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestFloatingPointPropagation(t *testing.T) {
	assert.True(t, math.IsInf(Add(math.Inf(1), 1), 1))
	assert.True(t, math.IsNaN(Subtract(math.Inf(1), math.Inf(1))))
	assert.True(t, math.IsInf(Multiply(math.MaxFloat64, 2), 1))
	assert.True(t, math.IsNaN(Add(math.NaN(), 1)))
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		parsed, ok := ParseOperation(op.String())
		assert.True(t, ok)
		assert.Equal(t, op, parsed)
	}

	for _, name := range []string{"", "bogus", "Add", "ADD", " add", "div"} {
		_, ok := ParseOperation(name)
		assert.False(t, ok, "expected %q to be rejected", name)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		a, b    float64
		want    float64
		wantErr error
	}{
		{name: "add", op: OpAdd, a: 10, b: 5, want: 15},
		{name: "subtract", op: OpSubtract, a: 10, b: 5, want: 5},
		{name: "multiply", op: OpMultiply, a: 10, b: 5, want: 50},
		{name: "divide", op: OpDivide, a: 10, b: 2, want: 5},
		{name: "divide by zero", op: OpDivide, a: 10, b: 0, wantErr: ErrDivisionByZero},
		{name: "unknown", op: Operation("modulo"), a: 10, b: 3, wantErr: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.op, tt.a, tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_MatchesNativeArithmetic(t *testing.T) {
	values := []float64{-1e308, -7.25, -1, 0, 0.1, 1, 3, 42.5, 1e-300, 1e308}

	for _, a := range values {
		for _, b := range values {
			sum, err := Apply(OpAdd, a, b)
			require.NoError(t, err)
			assert.Equal(t, a+b, sum)

			diff, err := Apply(OpSubtract, a, b)
			require.NoError(t, err)
			assert.Equal(t, a-b, diff)

			prod, err := Apply(OpMultiply, a, b)
			require.NoError(t, err)
			assert.Equal(t, a*b, prod)

			quot, err := Apply(OpDivide, a, b)
			if b == 0 {
				assert.ErrorIs(t, err, ErrDivisionByZero)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, a/b, quot)
		}
	}
}
