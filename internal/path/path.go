// Package path implements the normalized location model described in
// spec.md §4.B: a persistent, singly-linked parent-to-child chain of steps,
// plus a materialized Location used for ordering, hashing, and the
// normalized string form ($['key1']['key2'][3]).
package path

import (
	"strconv"
	"strings"
)

// Node is one step of a path: either a non-negative array index or an
// object property name. Nodes are immutable once constructed; a node
// references its parent, never the reverse, so the same parent can be
// safely shared by many children (e.g. a Wildcard's many emitted steps).
type Node struct {
	parent  *Node
	name    string
	index   int
	isIndex bool
	isRoot  bool
}

// Root is the sentinel node representing "$" with no parent.
var Root = &Node{isRoot: true}

// Child returns a new Node appending a named step after n.
func (n *Node) Child(name string) *Node {
	return &Node{parent: n, name: name}
}

// ChildIndex returns a new Node appending an index step after n.
func (n *Node) ChildIndex(index int) *Node {
	return &Node{parent: n, index: index, isIndex: true}
}

// Parent returns n's parent, or nil if n is the Root sentinel.
func (n *Node) Parent() *Node {
	if n == nil || n.isRoot {
		return nil
	}
	return n.parent
}

// IsRoot reports whether n is the root sentinel.
func (n *Node) IsRoot() bool { return n == nil || n.isRoot }

// IsIndexStep reports whether n's own step is an array index (false for an
// object-property step or the root sentinel).
func (n *Node) IsIndexStep() bool { return n != nil && n.isIndex }

// NameStep returns n's own step name (meaningless if IsIndexStep is true).
func (n *Node) NameStep() string { return n.name }

// IndexStep returns n's own step index (meaningless if IsIndexStep is false).
func (n *Node) IndexStep() int { return n.index }

// IsIndex reports whether a materialized step is an array index.
func (s Node) IsIndex() bool { return s.isIndex }

// Name returns a materialized step's property name.
func (s Node) Name() string { return s.name }

// Index returns a materialized step's array index.
func (s Node) Index() int { return s.index }

// Ancestor walks up n's chain by depth steps, returning nil if depth exceeds
// the chain's length.
func (n *Node) Ancestor(depth int) *Node {
	cur := n
	for i := 0; i < depth; i++ {
		if cur == nil || cur.isRoot {
			return nil
		}
		cur = cur.parent
	}
	return cur
}

// Location materializes the ordered sequence of steps from root to a node,
// the form used for sorting, hashing, equality, and normalized-path output.
type Location struct {
	steps []Node
}

// Of builds the Location for n by walking its parent chain once.
func Of(n *Node) Location {
	var steps []Node
	for cur := n; cur != nil && !cur.isRoot; cur = cur.parent {
		steps = append(steps, *cur)
	}
	// steps is leaf-to-root; reverse to root-to-leaf.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return Location{steps: steps}
}

// Len returns the number of steps in loc.
func (loc Location) Len() int { return len(loc.steps) }

// Step returns the i'th step (0 = closest to root).
func (loc Location) Step(i int) Node { return loc.steps[i] }

// String renders loc in normalized JSONPath form: $['key1']['key2'][3].
func (loc Location) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range loc.steps {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		b.WriteString("['")
		writeEscaped(&b, s.name)
		b.WriteString("']")
	}
	return b.String()
}

// writeEscaped writes name to b, ordinally escaping embedded single quotes
// and backslashes per spec.md §6.
func writeEscaped(b *strings.Builder, name string) {
	for _, r := range name {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
}

// Compare orders two Locations lexicographically by step: name nodes compare
// by ordinal string order, index nodes by numeric order, and (per the
// convention fixed in DESIGN.md) a name step sorts before an index step at
// the same position. Shorter locations that are a prefix of a longer one
// sort first.
func Compare(a, b Location) int {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		as, bs := a.steps[i], b.steps[i]
		if c := compareStep(as, bs); c != 0 {
			return c
		}
	}
	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	default:
		return 0
	}
}

func compareStep(a, b Node) int {
	if a.isIndex != b.isIndex {
		if !a.isIndex {
			return -1 // name sorts before index
		}
		return 1
	}
	if a.isIndex {
		switch {
		case a.index < b.index:
			return -1
		case a.index > b.index:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.name, b.name)
}

// Equal reports whether a and b have identical step sequences.
func Equal(a, b Location) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if compareStep(a.steps[i], b.steps[i]) != 0 {
			return false
		}
	}
	return true
}
