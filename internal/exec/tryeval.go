package exec

import (
	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

// TryEvaluate runs sel against current and wraps its matches into a single
// V per spec.md §4.E: zero matches yields Undefined, one match is returned
// unwrapped, and more than one is wrapped into a synthetic array. A Root
// selector's result is memoized by its id (see Resources.memo) since the
// same $-rooted sub-query is frequently re-evaluated once per filtered
// element while always producing the same loop-invariant answer.
func TryEvaluate(res *Resources, sel ast.Selector, root, current value.V, lastPath *path.Node) (value.V, error) {
	if r, ok := sel.(ast.Root); ok {
		if cached, ok2 := res.memoGet(r.ID); ok2 {
			return cached, nil
		}
		v, err := collectAndWrap(res, sel, root, current, lastPath)
		if err != nil {
			return value.Undef(), err
		}
		res.memoSet(r.ID, v)
		return v, nil
	}
	return collectAndWrap(res, sel, root, current, lastPath)
}

func collectAndWrap(res *Resources, sel ast.Selector, root, current value.V, lastPath *path.Node) (value.V, error) {
	var sink CollectingSink
	if err := Select(res, sel, root, current, lastPath, &sink, 0); err != nil {
		return value.Undef(), err
	}
	switch len(sink.Values) {
	case 0:
		return value.Undef(), nil
	case 1:
		return sink.Values[0], nil
	default:
		return value.Arr(sink.Values), nil
	}
}
