package exec

import (
	"sync"

	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

// Sink receives one matched (path, value) pair per Select callback. Path may
// be nil when the caller's Flags don't request path tracking.
type Sink interface {
	Emit(p *path.Node, v value.V) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(p *path.Node, v value.V) error

func (f SinkFunc) Emit(p *path.Node, v value.V) error { return f(p, v) }

// mutexSink serializes Emit calls from concurrent Union members under
// Parallel execution mode.
type mutexSink struct {
	mu    *sync.Mutex
	inner Sink
}

func (s *mutexSink) Emit(p *path.Node, v value.V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Emit(p, v)
}

// CollectingSink accumulates every emitted (path, value) pair in order,
// used by the driver package to materialize final results and by
// TryEvaluate to gather a sub-query's matches before wrapping them.
type CollectingSink struct {
	Paths  []*path.Node
	Values []value.V
}

func (s *CollectingSink) Emit(p *path.Node, v value.V) error {
	s.Paths = append(s.Paths, p)
	s.Values = append(s.Values, v)
	return nil
}
