package exec

import (
	"math/big"
	"strings"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/value"
)

// applyUnary implements spec.md §4.C's unary operators. Negation on a
// non-number, per the "operators fail softly" design note, yields null
// rather than an execution error.
func applyUnary(op ast.UnaryOp, v value.V) value.V {
	switch op {
	case ast.UnaryNot:
		return value.Bool(!v.Truthy())
	case ast.UnaryNeg:
		if r, ok := v.Decimal(); ok {
			return value.FromRat(new(big.Rat).Neg(r))
		}
		return value.Null()
	default:
		return value.Null()
	}
}

// applyBinary implements spec.md §4.C's binary operators: && and || short-
// circuit and return the deciding operand verbatim (not coerced to bool);
// ==/!= use deep value equality; comparisons and arithmetic are number- or
// string-only and degrade to null on a kind mismatch or (for / and %) a
// zero divisor.
func applyBinary(op ast.BinaryOp, l, r value.V) value.V {
	switch op {
	case ast.Or:
		if l.Truthy() {
			return l
		}
		return r
	case ast.And:
		if !l.Truthy() {
			return l
		}
		return r
	case ast.Eq:
		return value.Bool(value.Equal(l, r))
	case ast.Ne:
		return value.Bool(!value.Equal(l, r))
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return compareOp(op, l, r)
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return arithOp(op, l, r)
	default:
		return value.Null()
	}
}

func compareOp(op ast.BinaryOp, l, r value.V) value.V {
	var c int
	switch {
	case l.Kind() == value.Number && r.Kind() == value.Number:
		lr, lok := l.Decimal()
		rr, rok := r.Decimal()
		if lok && rok {
			c = lr.Cmp(rr)
		} else {
			lf, _ := l.Double()
			rf, _ := r.Double()
			c = cmpFloat(lf, rf)
		}
	case l.Kind() == value.String && r.Kind() == value.String:
		ls, _ := l.StringValue()
		rs, _ := r.StringValue()
		c = strings.Compare(ls, rs)
	default:
		return value.Null()
	}
	switch op {
	case ast.Lt:
		return value.Bool(c < 0)
	case ast.Le:
		return value.Bool(c <= 0)
	case ast.Gt:
		return value.Bool(c > 0)
	case ast.Ge:
		return value.Bool(c >= 0)
	default:
		return value.Null()
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func arithOp(op ast.BinaryOp, l, r value.V) value.V {
	if l.Kind() != value.Number || r.Kind() != value.Number {
		return value.Null()
	}
	lr, lok := l.Decimal()
	rr, rok := r.Decimal()
	if !lok || !rok {
		lf, _ := l.Double()
		rf, _ := r.Double()
		return arithFloat(op, lf, rf)
	}
	switch op {
	case ast.Add:
		return value.FromRat(new(big.Rat).Add(lr, rr))
	case ast.Sub:
		return value.FromRat(new(big.Rat).Sub(lr, rr))
	case ast.Mul:
		return value.FromRat(new(big.Rat).Mul(lr, rr))
	case ast.Div:
		if rr.Sign() == 0 {
			return value.Null()
		}
		return value.FromRat(new(big.Rat).Quo(lr, rr))
	case ast.Mod:
		if rr.Sign() == 0 || !lr.IsInt() || !rr.IsInt() {
			return value.Null()
		}
		li := lr.Num()
		ri := rr.Num()
		m := new(big.Int).Mod(li, ri)
		return value.FromRat(new(big.Rat).SetInt(m))
	default:
		return value.Null()
	}
}

func arithFloat(op ast.BinaryOp, l, r float64) value.V {
	switch op {
	case ast.Add:
		return value.Float(l + r)
	case ast.Sub:
		return value.Float(l - r)
	case ast.Mul:
		return value.Float(l * r)
	case ast.Div:
		if r == 0 {
			return value.Null()
		}
		return value.Float(l / r)
	case ast.Mod:
		if r == 0 {
			return value.Null()
		}
		return value.Float(float64(int64(l) % int64(r)))
	default:
		return value.Null()
	}
}
