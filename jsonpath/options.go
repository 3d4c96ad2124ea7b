package jsonpath

import (
	"go.uber.org/zap"

	"github.com/lucidpath/jsonpath/internal/exec"
)

// defaultMaxDepth bounds recursive-descent (..) traversal when no
// WithMaxDepth option is supplied.
const defaultMaxDepth = 64

type config struct {
	maxDepth int
	mode     exec.ExecutionMode
	noDup    bool
	sort     bool
	logger   *zap.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		maxDepth: defaultMaxDepth,
		mode:     exec.Sequential,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a single SelectValues/SelectPaths/SelectNodes call,
// following the functional-options pattern the pack's services use for
// their constructors.
type Option func(*config)

// WithMaxDepth overrides the recursive-descent depth bound (spec.md §4.E,
// §7). The zero value retains the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithParallelUnion evaluates Union members concurrently via
// golang.org/x/sync/errgroup instead of sequentially (spec.md §5).
func WithParallelUnion() Option {
	return func(c *config) { c.mode = exec.Parallel }
}

// WithNoDuplicates removes results whose normalized path was already seen,
// keeping the first occurrence in traversal (or post-sort) order. Equal
// values found at different paths are all kept.
func WithNoDuplicates() Option {
	return func(c *config) { c.noDup = true }
}

// WithSort orders results by their normalized path (internal/path.Compare)
// rather than traversal order.
func WithSort() Option {
	return func(c *config) { c.sort = true }
}

// WithLogger attaches a zap logger for diagnostic output (regex compile
// failures, etc.); the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
