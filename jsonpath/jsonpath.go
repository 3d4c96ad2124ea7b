// Package jsonpath is the public driver for this dialect: Parse compiles
// query text into a reusable Path, and SelectValues/SelectPaths/SelectNodes
// run it against a decoded document. It plays the role the teacher's
// path.Path (path/path.go) plays for SQL/JSON path — a parsed, reusable,
// (un)marshalable query object — generalized to this dialect's selector
// pipeline and three result shapes (spec.md §6).
package jsonpath

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/exec"
	"github.com/lucidpath/jsonpath/internal/parser"
	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/set"
	"github.com/lucidpath/jsonpath/internal/value"
)

// Re-exported error types so callers can type-switch without importing
// internal/exec directly.
type (
	ParseError             = exec.ParseError
	MaxDepthExceededError  = exec.MaxDepthExceededError
	InternalInvariantError = exec.InternalInvariantError
)

// Match pairs a result value with its normalized location in the document
// (spec.md §4.B's $['key'][3] form), as returned by SelectNodes.
type Match struct {
	Path  string
	Value value.V
}

// Path is a parsed, reusable JSONPath query.
type Path struct {
	raw string
	sel ast.Selector
}

// Parse compiles text into a Path. A malformed query returns a *ParseError
// positioned by line and column.
func Parse(text string) (*Path, error) {
	sel, err := parser.Parse(text)
	if err != nil {
		return nil, translateParseErr(err)
	}
	return &Path{raw: text, sel: sel}, nil
}

// MustParse is like Parse but panics on error, for tests and static
// queries known good at compile time.
func MustParse(text string) *Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

func translateParseErr(err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &exec.ParseError{Line: pe.Line, Column: pe.Column, Message: pe.Message}
	}
	var le *parser.LexError
	if errors.As(err, &le) {
		return &exec.ParseError{Line: le.Line, Column: le.Column, Message: le.Message}
	}
	return err
}

// String returns the original query text.
func (p *Path) String() string { return p.raw }

// MarshalText implements encoding.TextMarshaler.
func (p *Path) MarshalText() ([]byte, error) { return []byte(p.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

type runResult struct {
	paths  []*path.Node
	values []value.V
}

func (p *Path) run(doc any, opts []Option) (*runResult, error) {
	cfg := newConfig(opts)
	flags := exec.FlagPath
	if cfg.noDup {
		flags |= exec.FlagNoDuplicates
	}
	if cfg.sort {
		flags |= exec.FlagSort
	}

	res := exec.NewResources(cfg.maxDepth, cfg.mode, flags, cfg.logger, uuid.NewString())
	root := value.Of(doc)

	var sink exec.CollectingSink
	if err := exec.Select(res, p.sel, root, root, path.Root, &sink, 0); err != nil {
		return nil, err
	}

	paths, values := sink.Paths, sink.Values
	if cfg.sort {
		paths, values = sortPairs(paths, values)
	}
	if cfg.noDup {
		paths, values = dedupPairs(paths, values)
	}
	return &runResult{paths: paths, values: values}, nil
}

func sortPairs(paths []*path.Node, values []value.V) ([]*path.Node, []value.V) {
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	locs := make([]path.Location, len(paths))
	for i, n := range paths {
		locs[i] = path.Of(n)
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return path.Compare(locs[idx[i]], locs[idx[j]]) < 0
	})
	outP := make([]*path.Node, len(paths))
	outV := make([]value.V, len(values))
	for i, j := range idx {
		outP[i] = paths[j]
		outV[i] = values[j]
	}
	return outP, outV
}

// dedupPairs retains the first-seen occurrence of each duplicate *path*
// (spec.md §4.G step 4), not each duplicate value: a union of filters can
// reach the same path twice (one path-dup to collapse) or two different
// paths can carry structurally equal values (both must survive).
func dedupPairs(paths []*path.Node, values []value.V) ([]*path.Node, []value.V) {
	seen := set.NewPaths()
	var outP []*path.Node
	var outV []value.V
	for i, n := range paths {
		if seen.Add(n) {
			outP = append(outP, n)
			outV = append(outV, values[i])
		}
	}
	return outP, outV
}

// SelectValues runs p against doc (typically the output of json.Unmarshal
// into an any with a json.Decoder configured with UseNumber, or a
// value.V-compatible structure) and returns the matched values.
func (p *Path) SelectValues(doc any, opts ...Option) ([]value.V, error) {
	r, err := p.run(doc, opts)
	if err != nil {
		return nil, err
	}
	return r.values, nil
}

// SelectPaths is like SelectValues but returns each match's normalized
// path string instead of its value.
func (p *Path) SelectPaths(doc any, opts ...Option) ([]string, error) {
	r, err := p.run(doc, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(r.paths))
	for i, n := range r.paths {
		out[i] = path.Of(n).String()
	}
	return out, nil
}

// SelectNodes is like SelectValues but returns both the path and the value
// for each match.
func (p *Path) SelectNodes(doc any, opts ...Option) ([]Match, error) {
	r, err := p.run(doc, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Match, len(r.values))
	for i := range r.values {
		out[i] = Match{Path: path.Of(r.paths[i]).String(), Value: r.values[i]}
	}
	return out, nil
}

// Exists reports whether p matches anything in doc.
func (p *Path) Exists(doc any, opts ...Option) (bool, error) {
	r, err := p.run(doc, opts)
	if err != nil {
		return false, err
	}
	return len(r.values) > 0, nil
}

// First returns p's first match in doc, or Undefined with ok=false if
// there is none.
func (p *Path) First(doc any, opts ...Option) (value.V, bool, error) {
	r, err := p.run(doc, opts)
	if err != nil {
		return value.Undef(), false, err
	}
	if len(r.values) == 0 {
		return value.Undef(), false, nil
	}
	return r.values[0], true, nil
}

// Query is a convenience entry point: parse text and immediately run it
// against doc, returning matched values.
func Query(text string, doc any, opts ...Option) ([]value.V, error) {
	p, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return p.SelectValues(doc, opts...)
}
