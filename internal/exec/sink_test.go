package exec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

func TestCollectingSinkAccumulatesInOrder(t *testing.T) {
	t.Parallel()
	var sink CollectingSink
	require.NoError(t, sink.Emit(path.Root, value.Float(1)))
	require.NoError(t, sink.Emit(path.Root.ChildIndex(1), value.Float(2)))

	assert.Len(t, sink.Values, 2)
	assert.Len(t, sink.Paths, 2)
	f0, _ := sink.Values[0].Double()
	f1, _ := sink.Values[1].Double()
	assert.Equal(t, float64(1), f0)
	assert.Equal(t, float64(2), f1)
}

func TestSinkFuncAdapter(t *testing.T) {
	t.Parallel()
	var got []value.V
	fn := SinkFunc(func(p *path.Node, v value.V) error {
		got = append(got, v)
		return nil
	})
	require.NoError(t, fn.Emit(path.Root, value.Float(9)))
	require.Len(t, got, 1)
}

func TestMutexSinkSerializesConcurrentEmits(t *testing.T) {
	t.Parallel()
	var inner CollectingSink
	var mu sync.Mutex
	sink := &mutexSink{mu: &mu, inner: &inner}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Emit(path.Root.ChildIndex(i), value.Float(float64(i)))
		}()
	}
	wg.Wait()
	assert.Len(t, inner.Values, 50)
}
