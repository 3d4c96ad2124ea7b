// Package set provides an insertion-ordered de-duplication set for query
// results, adapted from the pack's tree-shaker package (set.New's
// index-map-plus-items-slice shape) to track first-seen result *paths*.
// Per spec.md §4.G step 4, NoDuplicates retains the first-seen occurrence
// of each duplicate path, not each duplicate value: two different paths
// can produce structurally equal values (e.g. two books sharing a title)
// and both must survive. Candidates are keyed by a path.Location's
// normalized string form, an injective encoding of its step chain
// (path.Location.String), so two Locations are equal iff their strings are.
package set

import "github.com/lucidpath/jsonpath/internal/path"

// Paths is an insertion-ordered collection of structurally-unique
// path.Node locations, used by the driver package to implement the
// NoDuplicates option (spec.md §6).
type Paths struct {
	seen  map[string]bool
	items []*path.Node
}

// NewPaths returns an empty de-duplication set.
func NewPaths() *Paths {
	return &Paths{seen: make(map[string]bool)}
}

// Add inserts n if no path with the same normalized location has been
// added yet, reporting whether it was new.
func (s *Paths) Add(n *path.Node) bool {
	key := path.Of(n).String()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, n)
	return true
}

// Nodes returns the set's members in first-seen order.
func (s *Paths) Nodes() []*path.Node {
	out := make([]*path.Node, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of unique members added so far.
func (s *Paths) Len() int { return len(s.items) }
