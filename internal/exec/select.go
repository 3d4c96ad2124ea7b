package exec

import (
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

// Select walks sel against current (with root available for $ and lastPath
// tracking the steps taken so far), forwarding every terminal match to sink.
// This implements the Select half of spec.md §4.E's selector-tree contract.
func Select(res *Resources, sel ast.Selector, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	if sel == nil {
		return sink.Emit(lastPath, current)
	}

	switch s := sel.(type) {
	case ast.Root:
		return Select(res, s.Tail, root, root, path.Root, sink, depth)

	case ast.Current:
		return Select(res, s.Tail, root, current, lastPath, sink, depth)

	case ast.Parent:
		anc := lastPath.Ancestor(s.Depth)
		if anc == nil {
			return nil
		}
		ancVal, ok := valueAt(root, anc)
		if !ok {
			return nil
		}
		return Select(res, s.Tail, root, ancVal, anc, sink, depth)

	case ast.Identifier:
		return selectIdentifier(res, s, root, current, lastPath, sink, depth)

	case ast.Index:
		return selectIndex(res, s, root, current, lastPath, sink, depth)

	case ast.Slice:
		return selectSlice(res, s, root, current, lastPath, sink, depth)

	case ast.Wildcard:
		return selectWildcard(res, s, root, current, lastPath, sink, depth)

	case ast.RecursiveDescent:
		return selectRecursiveDescent(res, s, root, current, lastPath, sink, depth)

	case ast.Filter:
		return selectFilter(res, s, root, current, lastPath, sink, depth)

	case ast.Union:
		return selectUnion(res, s, root, current, lastPath, sink, depth)

	default:
		return &InternalInvariantError{Message: "unrecognized selector variant in Select"}
	}
}

func selectIdentifier(res *Resources, s ast.Identifier, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	if v, ok := current.Property(s.Name); ok {
		np := lastPath
		if res.Flags.HasPath() {
			np = lastPath.Child(s.Name)
		}
		return Select(res, s.Tail, root, v, np, sink, depth)
	}
	if s.Name == "length" {
		switch current.Kind() {
		case value.Array:
			n, _ := current.Len()
			return Select(res, s.Tail, root, value.Float(float64(n)), lastPath, sink, depth)
		case value.String:
			str, _ := current.StringValue()
			return Select(res, s.Tail, root, value.Float(float64(utf8.RuneCountInString(str))), lastPath, sink, depth)
		}
	}
	return nil
}

func selectIndex(res *Resources, s ast.Index, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	n, ok := current.Len()
	if !ok {
		return nil
	}
	i := s.Value
	if i < 0 {
		i += n
	}
	v, ok := current.Index(i)
	if !ok {
		return nil
	}
	np := lastPath
	if res.Flags.HasPath() {
		np = lastPath.ChildIndex(i)
	}
	return Select(res, s.Tail, root, v, np, sink, depth)
}

func selectSlice(res *Resources, s ast.Slice, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	n, ok := current.Len()
	if !ok {
		return nil
	}
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return nil
	}

	start, stop := sliceBounds(n, s.Start, s.Stop, step)

	if step > 0 {
		for i := start; i < stop; i += step {
			if i < 0 || i >= n {
				continue
			}
			v, _ := current.Index(i)
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.ChildIndex(i)
			}
			if err := Select(res, s.Tail, root, v, np, sink, depth); err != nil {
				return err
			}
		}
	} else {
		for i := start; i > stop; i += step {
			if i < 0 || i >= n {
				continue
			}
			v, _ := current.Index(i)
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.ChildIndex(i)
			}
			if err := Select(res, s.Tail, root, v, np, sink, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// sliceBounds normalizes nil/negative start and stop against length n and
// direction step, following Python-style slice semantics (adapted from the
// bounds/clamp logic in the pack's tree-shaker selector, generalized to the
// forward and backward step cases spec.md §3 calls for).
func sliceBounds(n int, start, stop *int, step int) (int, int) {
	clamp := func(i, lo, hi int) int {
		if i < lo {
			return lo
		}
		if i > hi {
			return hi
		}
		return i
	}
	normalize := func(i int) int {
		if i < 0 {
			i += n
		}
		return i
	}

	if step > 0 {
		s := 0
		if start != nil {
			s = clamp(normalize(*start), 0, n)
		}
		e := n
		if stop != nil {
			e = clamp(normalize(*stop), 0, n)
		}
		return s, e
	}

	s := n - 1
	if start != nil {
		s = clamp(normalize(*start), -1, n-1)
	}
	e := -1
	if stop != nil {
		e = clamp(normalize(*stop), -1, n-1)
	}
	return s, e
}

func selectWildcard(res *Resources, s ast.Wildcard, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, e := range elems {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.ChildIndex(i)
			}
			if err := Select(res, s.Tail, root, e, np, sink, depth); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.Child(p.Name)
			}
			if err := Select(res, s.Tail, root, p.Value, np, sink, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectRecursiveDescent(res *Resources, s ast.RecursiveDescent, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	if err := Select(res, s.Tail, root, current, lastPath, sink, depth); err != nil {
		return err
	}
	if depth >= res.MaxDepth {
		if current.Kind() == value.Array || current.Kind() == value.Object {
			return &MaxDepthExceededError{Depth: depth + 1, MaxDepth: res.MaxDepth}
		}
		return nil
	}

	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, e := range elems {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.ChildIndex(i)
			}
			if err := Select(res, s, root, e, np, sink, depth+1); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.Child(p.Name)
			}
			if err := Select(res, s, root, p.Value, np, sink, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectFilter(res *Resources, s ast.Filter, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	test := func(elem value.V, elemPath *path.Node) error {
		v, err := EvalExpression(res, s.Expr, root, elem, elemPath)
		if err != nil {
			return err
		}
		if !v.Truthy() {
			return nil
		}
		return Select(res, s.Tail, root, elem, elemPath, sink, depth)
	}

	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, e := range elems {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.ChildIndex(i)
			}
			if err := test(e, np); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			np := lastPath
			if res.Flags.HasPath() {
				np = lastPath.Child(p.Name)
			}
			if err := test(p.Value, np); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectUnion(res *Resources, s ast.Union, root, current value.V, lastPath *path.Node, sink Sink, depth int) error {
	// Every member's matches continue through the union's shared Tail.
	throughTail := func(out Sink) Sink {
		return SinkFunc(func(p *path.Node, v value.V) error {
			return Select(res, s.Tail, root, v, p, out, depth)
		})
	}

	if res.Mode != Parallel {
		tail := throughTail(sink)
		for _, m := range s.Members {
			if err := Select(res, m, root, current, lastPath, tail, depth); err != nil {
				return err
			}
		}
		return nil
	}

	guarded := throughTail(res.lockSink(sink))
	var g errgroup.Group
	for _, m := range s.Members {
		m := m
		g.Go(func() error {
			return Select(res, m, root, current, lastPath, guarded, depth)
		})
	}
	return g.Wait()
}

// valueAt re-walks root along node's chain of steps, used to rebuild the
// value at an ancestor location reached via the ^ operator.
func valueAt(root value.V, node *path.Node) (value.V, bool) {
	if node.IsRoot() {
		return root, true
	}
	loc := path.Of(node)
	cur := root
	for i := 0; i < loc.Len(); i++ {
		step := loc.Step(i)
		ok := false
		if step.IsIndex() {
			cur, ok = cur.Index(step.Index())
		} else {
			cur, ok = cur.Property(step.Name())
		}
		if !ok {
			return value.Undef(), false
		}
	}
	return cur, true
}
