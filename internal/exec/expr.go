package exec

import (
	"go.uber.org/zap"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

// stackEntry pairs an expression-stack value with the path context it was
// produced from, so that a selector reached via $ or @ inside the
// expression (e.g. @.foo[^]) can resolve Parent against the right chain.
// Values produced by operators or function calls carry no path context
// (lp is nil, meaning "no ancestor available") — see DESIGN.md.
type stackEntry struct {
	val value.V
	lp  *path.Node
}

// EvalExpression walks expr's postfix Instr stream per spec.md §4.D,
// evaluating operators and functions eagerly against a value stack and a
// side argument list. Selector sub-queries are resolved through
// TryEvaluate against root and current, threading lastPath so that @ and $
// anchors inside the expression retain their Parent context.
func EvalExpression(res *Resources, expr ast.Expression, root, current value.V, lastPath *path.Node) (value.V, error) {
	var stack []stackEntry
	var args []value.V

	pop := func() (stackEntry, error) {
		if len(stack) == 0 {
			return stackEntry{}, &InternalInvariantError{Message: "expression stack underflow"}
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}
	push := func(e stackEntry) { stack = append(stack, e) }

	for _, instr := range expr.Instrs {
		switch instr.Kind {
		case ast.InstrValue:
			push(stackEntry{val: instr.Val})

		case ast.InstrRoot:
			push(stackEntry{val: root, lp: path.Root})

		case ast.InstrCurrent:
			push(stackEntry{val: current, lp: lastPath})

		case ast.InstrUnary:
			a, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			push(stackEntry{val: applyUnary(instr.UnaryOp, a.val)})

		case ast.InstrBinary:
			rhs, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			lhs, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			push(stackEntry{val: applyBinary(instr.BinaryOp, lhs.val, rhs.val)})

		case ast.InstrRegex:
			a, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			push(stackEntry{val: value.Bool(matchRegex(res, a.val, instr.Regex))})

		case ast.InstrSelector:
			a, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			v, err := TryEvaluate(res, instr.Sel, root, a.val, a.lp)
			if err != nil {
				return value.Undef(), err
			}
			push(stackEntry{val: v, lp: a.lp})

		case ast.InstrArgument:
			a, err := pop()
			if err != nil {
				return value.Undef(), err
			}
			args = append(args, a.val)

		case ast.InstrFunction:
			if instr.Fn.Arity >= 0 && len(args) != instr.Fn.Arity {
				args = nil
				push(stackEntry{val: value.Bool(false)})
				continue
			}
			result := callFunction(instr.Fn.Name, args)
			args = nil
			push(stackEntry{val: result})

		case ast.InstrExpression:
			v, err := EvalExpression(res, instr.Nested, root, current, lastPath)
			if err != nil {
				return value.Undef(), err
			}
			push(stackEntry{val: v})

		default:
			return value.Undef(), &InternalInvariantError{Message: "unrecognized instruction kind"}
		}
	}

	if len(stack) != 1 {
		return value.Undef(), &InternalInvariantError{Message: "expression left non-singleton stack"}
	}
	return stack[0].val, nil
}

func matchRegex(res *Resources, v value.V, r ast.Regex) bool {
	s, ok := v.StringValue()
	if !ok {
		return false
	}
	pattern := r.Pattern
	if r.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := res.compileRegex(r.String(), pattern)
	if err != nil {
		res.Log.Warn("invalid regex literal", zap.String("pattern", r.Pattern), zap.Error(err))
		return false
	}
	return re.MatchString(s)
}
