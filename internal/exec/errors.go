package exec

import (
	"errors"
	"fmt"
)

// Sentinel errors every concrete error type below wraps, following the
// teacher's errors.New-plus-%w idiom (path/path.go's ErrPath/ErrScan,
// path/exec/exec.go's ErrExecution/ErrInvalid): callers can errors.Is
// against the category without caring which concrete type produced it,
// or errors.As for the concrete type's fields.
var (
	// ErrParse denotes a syntax error found while parsing a query.
	ErrParse = errors.New("jsonpath: parse")
	// ErrExecution denotes a runtime failure evaluating a parsed query
	// against a document, such as exceeding the configured MaxDepth.
	ErrExecution = errors.New("jsonpath: execution")
	// ErrInvalid denotes a violated internal invariant: a defect in the
	// parser or exec packages, never a malformed document or query.
	ErrInvalid = errors.New("jsonpath: invalid")
)

// ParseError reports a syntax error discovered while parsing a JSONPath
// expression, positioned by line and column (spec.md §7). Wraps ErrParse.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Errorf("%w: at %d:%d: %s", ErrParse, e.Line, e.Column, e.Message).Error()
}

func (e *ParseError) Unwrap() error { return ErrParse }

// MaxDepthExceededError reports that a recursive descent selector exceeded
// the configured MaxDepth (spec.md §4.E, §7). Wraps ErrExecution.
type MaxDepthExceededError struct {
	Depth    int
	MaxDepth int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Errorf("%w: max depth %d exceeded at depth %d", ErrExecution, e.MaxDepth, e.Depth).Error()
}

func (e *MaxDepthExceededError) Unwrap() error { return ErrExecution }

// InternalInvariantError reports a violated runtime invariant — a stack
// underflow in the expression runtime, or a selector dispatch hitting an
// unrecognized ast.Selector variant. It signals a defect in the parser or
// exec packages, never a malformed document or query. Wraps ErrInvalid.
type InternalInvariantError struct {
	Message string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Errorf("%w: internal invariant violated: %s", ErrInvalid, e.Message).Error()
}

func (e *InternalInvariantError) Unwrap() error { return ErrInvalid }
