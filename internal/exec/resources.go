// Package exec is the expression runtime and selector-tree interpreter:
// component D (expression runtime) and the Select/TryEvaluate half of
// component E (selector tree) from spec.md §4. It walks the ast.Selector
// pipeline and ast.Expression postfix streams produced by internal/parser
// against decoded JSON values, in the style of the teacher's Executor
// (path/exec/exec.go), generalized from a single SQL/JSON-path AST walk
// into this dialect's selector-pipeline-plus-postfix-expression split.
package exec

import (
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/lucidpath/jsonpath/internal/value"
)

// ExecutionMode selects sequential or parallel Union evaluation.
type ExecutionMode int

const (
	Sequential ExecutionMode = iota
	Parallel
)

// Flags is the processing bitfield from spec.md §3. NoDuplicates and Sort
// both imply Path.
type Flags uint8

const (
	FlagPath Flags = 1 << iota
	FlagNoDuplicates
	FlagSort
)

// Normalize returns flags with the implied bits set (NoDuplicates and Sort
// each imply Path).
func (f Flags) Normalize() Flags {
	if f&FlagNoDuplicates != 0 || f&FlagSort != 0 {
		f |= FlagPath
	}
	return f
}

func (f Flags) HasPath() bool         { return f&FlagPath != 0 }
func (f Flags) HasNoDuplicates() bool { return f&FlagNoDuplicates != 0 }
func (f Flags) HasSort() bool         { return f&FlagSort != 0 }

// Resources is the per-query dynamic context described in spec.md §3 and §5:
// processing options plus a memoization map from root-selector id to its
// evaluated result, created fresh for each top-level Select* call and
// discarded when results are collected.
type Resources struct {
	MaxDepth int
	Mode     ExecutionMode
	Flags    Flags
	Log      *zap.Logger
	RunID    string

	mu         sync.Mutex // serializes memo writes and sink access under Parallel
	memo       map[string]memoEntry
	regexCache map[string]*regexp.Regexp
}

type memoEntry struct {
	v   value.V
	has bool
}

// NewResources constructs a Resources for a single top-level query.
func NewResources(maxDepth int, mode ExecutionMode, flags Flags, log *zap.Logger, runID string) *Resources {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resources{
		MaxDepth:   maxDepth,
		Mode:       mode,
		Flags:      flags.Normalize(),
		Log:        log,
		RunID:      runID,
		memo:       make(map[string]memoEntry),
		regexCache: make(map[string]*regexp.Regexp),
	}
}

func (r *Resources) memoGet(id string) (value.V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.memo[id]
	if !ok {
		return value.V{}, false
	}
	return e.v, e.has
}

func (r *Resources) memoSet(id string, v value.V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo[id] = memoEntry{v: v, has: true}
}

// compileRegex compiles and caches pattern/flags combinations, matching
// spec.md §5's requirement that regex objects be immutable and shareable
// once constructed.
func (r *Resources) compileRegex(key, goPattern string) (*regexp.Regexp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if re, ok := r.regexCache[key]; ok {
		return re, nil
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return nil, err
	}
	r.regexCache[key] = re
	return re, nil
}

// lockSink wraps sink so that concurrent Union members (Parallel mode) can
// share it safely, per spec.md §5.
func (r *Resources) lockSink(sink Sink) Sink {
	if r.Mode != Parallel {
		return sink
	}
	return &mutexSink{mu: &r.mu, inner: sink}
}
