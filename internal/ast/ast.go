// Package ast defines the node types produced by internal/parser and
// consumed by internal/exec: the composable Selector variants (root,
// current, parent, identifier, index, slice, wildcard, filter, union,
// recursive-descent), the postfix Instr token stream used by the
// expression runtime, and the closed enumerations of unary/binary
// operators and built-in functions together with their precedence.
//
// Parsing produces concrete variants of these tagged sums; internal/exec
// switches on the tag. This mirrors the teacher package's approach
// (path/ast.Node), generalized from a single SQL/JSON-path AST into the
// separate Selector-pipeline / Instr-stream split spec.md calls for.
package ast

import "fmt"

// Selector is a composable step in a JSONPath selector pipeline. Concrete
// types are Root, Current, Parent, Identifier, Index, Slice, Wildcard,
// Filter, Union, and RecursiveDescent. internal/exec type-switches over
// these to implement Select and TryEvaluate.
type Selector interface {
	fmt.Stringer
	selectorNode()
}

// Root matches $ and forwards the query root. ID is a stable identifier
// assigned at parse time, used by internal/exec to memoize the sub-query
// rooted here across repeated evaluation (spec.md §4.E, §9).
type Root struct {
	ID   string
	Tail Selector // nil if this is the last step
}

func (Root) selectorNode() {}
func (s Root) String() string {
	return "$" + tailString(s.Tail)
}

// Current matches @, the filter-expression current node.
type Current struct {
	Tail Selector
}

func (Current) selectorNode() {}
func (s Current) String() string {
	return "@" + tailString(s.Tail)
}

// Parent walks Depth steps up the current path (the ^ operator).
type Parent struct {
	Depth int
	Tail  Selector
}

func (Parent) selectorNode() {}
func (s Parent) String() string {
	out := ""
	for i := 0; i < s.Depth; i++ {
		out += "^"
	}
	return out + tailString(s.Tail)
}

// Identifier matches a single object property by name (.name).
type Identifier struct {
	Name string
	Tail Selector
}

func (Identifier) selectorNode() {}
func (s Identifier) String() string {
	return "." + s.Name + tailString(s.Tail)
}

// Index matches a single array element, supporting negative indices
// relative to the end of the array.
type Index struct {
	Value int
	Tail  Selector
}

func (Index) selectorNode() {}
func (s Index) String() string {
	return fmt.Sprintf("[%d]%s", s.Value, tailString(s.Tail))
}

// Slice matches a contiguous (possibly strided) run of array elements.
// Nil bounds take their direction-dependent default (spec.md §3, §4.E).
type Slice struct {
	Start *int
	Stop  *int
	Step  *int // nil means 1; 0 is rejected at parse time
	Tail  Selector
}

func (Slice) selectorNode() {}
func (s Slice) String() string {
	fmtp := func(p *int) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%d", *p)
	}
	step := ""
	if s.Step != nil {
		step = ":" + fmtp(s.Step)
	}
	return fmt.Sprintf("[%s:%s%s]%s", fmtp(s.Start), fmtp(s.Stop), step, tailString(s.Tail))
}

// Wildcard matches every array element or object property (.* or [*]).
type Wildcard struct {
	Tail Selector
}

func (Wildcard) selectorNode() {}
func (s Wildcard) String() string { return "[*]" + tailString(s.Tail) }

// RecursiveDescent matches the current node and recurses into every
// descendant (..). Depth is bounded by exec.Resources.MaxDepth.
type RecursiveDescent struct {
	Tail Selector
}

func (RecursiveDescent) selectorNode() {}
func (s RecursiveDescent) String() string { return ".." + tailString(s.Tail) }

// Filter matches array elements or object properties for which Expr
// evaluates truthy (?<expr>).
type Filter struct {
	Expr Expression
	Tail Selector
}

func (Filter) selectorNode() {}
func (s Filter) String() string { return "[?" + s.Expr.String() + "]" + tailString(s.Tail) }

// Union runs each member selector and combines their results as a set. A
// shared Tail is appended after every member (spec.md §9's "no back-edges"
// design note): members own their own prefix but forward through the same
// tail once they reach it.
type Union struct {
	Members []Selector
	Tail    Selector
}

func (Union) selectorNode() {}
func (s Union) String() string {
	out := "["
	for i, m := range s.Members {
		if i > 0 {
			out += ", "
		}
		out += m.String()
	}
	return out + "]" + tailString(s.Tail)
}

func tailString(tail Selector) string {
	if tail == nil {
		return ""
	}
	return tail.String()
}

// AppendTail returns a copy of sel with tail appended to the end of its
// pipeline (spec.md §4.E "AppendSelector").
func AppendTail(sel, tail Selector) Selector {
	if sel == nil {
		return tail
	}
	switch s := sel.(type) {
	case Root:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Current:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Parent:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Identifier:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Index:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Slice:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Wildcard:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case RecursiveDescent:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Filter:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	case Union:
		s.Tail = AppendTail(s.Tail, tail)
		return s
	default:
		return sel
	}
}
