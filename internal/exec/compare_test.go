package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/value"
)

func TestApplyUnary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, value.Bool(true), applyUnary(ast.UnaryNot, value.Bool(false)))
	assert.Equal(t, value.Bool(false), applyUnary(ast.UnaryNot, value.Float(1)))

	neg := applyUnary(ast.UnaryNeg, value.Float(5))
	f, _ := neg.Double()
	assert.Equal(t, float64(-5), f)

	assert.Equal(t, value.KindNull, applyUnary(ast.UnaryNeg, value.Str("x")).Kind())
}

func TestApplyBinaryLogicalShortCircuitReturnsOperandVerbatim(t *testing.T) {
	t.Parallel()
	// || returns the truthy left operand unchanged, not coerced to bool.
	got := applyBinary(ast.Or, value.Float(7), value.Bool(true))
	f, ok := got.Double()
	assert.True(t, ok)
	assert.Equal(t, float64(7), f)

	// && returns the falsy left operand unchanged.
	got = applyBinary(ast.And, value.Null(), value.Bool(true))
	assert.Equal(t, value.KindNull, got.Kind())
}

func TestApplyBinaryEquality(t *testing.T) {
	t.Parallel()
	assert.True(t, applyBinary(ast.Eq, value.Float(1), value.Float(1)).Truthy())
	assert.False(t, applyBinary(ast.Eq, value.Float(1), value.Float(2)).Truthy())
	assert.True(t, applyBinary(ast.Ne, value.Float(1), value.Float(2)).Truthy())
}

func TestApplyBinaryComparisonNumbers(t *testing.T) {
	t.Parallel()
	assert.True(t, applyBinary(ast.Lt, value.Float(1), value.Float(2)).Truthy())
	assert.True(t, applyBinary(ast.Ge, value.Float(2), value.Float(2)).Truthy())
	assert.False(t, applyBinary(ast.Gt, value.Float(2), value.Float(2)).Truthy())
}

func TestApplyBinaryComparisonStrings(t *testing.T) {
	t.Parallel()
	assert.True(t, applyBinary(ast.Lt, value.Str("a"), value.Str("b")).Truthy())
	assert.True(t, applyBinary(ast.Gt, value.Str("b"), value.Str("a")).Truthy())
}

func TestApplyBinaryComparisonKindMismatchIsNull(t *testing.T) {
	t.Parallel()
	got := applyBinary(ast.Lt, value.Float(1), value.Str("a"))
	assert.Equal(t, value.KindNull, got.Kind())
}

func TestApplyBinaryArithmetic(t *testing.T) {
	t.Parallel()
	sum := applyBinary(ast.Add, value.Float(2), value.Float(3))
	f, _ := sum.Double()
	assert.Equal(t, float64(5), f)

	diff := applyBinary(ast.Sub, value.Float(5), value.Float(3))
	f, _ = diff.Double()
	assert.Equal(t, float64(2), f)

	prod := applyBinary(ast.Mul, value.Float(4), value.Float(3))
	f, _ = prod.Double()
	assert.Equal(t, float64(12), f)

	quot := applyBinary(ast.Div, value.Float(10), value.Float(4))
	f, _ = quot.Double()
	assert.Equal(t, 2.5, f)
}

func TestApplyBinaryDivisionByZeroIsNull(t *testing.T) {
	t.Parallel()
	assert.Equal(t, value.KindNull, applyBinary(ast.Div, value.Float(1), value.Float(0)).Kind())
	assert.Equal(t, value.KindNull, applyBinary(ast.Mod, value.Float(1), value.Float(0)).Kind())
}

func TestApplyBinaryModInteger(t *testing.T) {
	t.Parallel()
	got := applyBinary(ast.Mod, value.Float(7), value.Float(3))
	f, _ := got.Double()
	assert.Equal(t, float64(1), f)
}

func TestApplyBinaryArithmeticNonNumberIsNull(t *testing.T) {
	t.Parallel()
	assert.Equal(t, value.KindNull, applyBinary(ast.Add, value.Str("a"), value.Float(1)).Kind())
}
