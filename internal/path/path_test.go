package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationString(t *testing.T) {
	t.Parallel()
	n := Root.Child("store").Child("book").ChildIndex(3).Child("title")
	assert.Equal(t, `$['store']['book'][3]['title']`, Of(n).String())
}

func TestLocationStringEscapesQuotesAndBackslashes(t *testing.T) {
	t.Parallel()
	n := Root.Child(`o'Brien\path`)
	assert.Equal(t, `$['o\'Brien\\path']`, Of(n).String())
}

func TestRootIsRoot(t *testing.T) {
	t.Parallel()
	assert.True(t, Root.IsRoot())
	assert.True(t, (*Node)(nil).IsRoot())

	child := Root.Child("a")
	assert.False(t, child.IsRoot())
	assert.Nil(t, Root.Parent())
	assert.Equal(t, Root, child.Parent())
}

func TestAncestor(t *testing.T) {
	t.Parallel()
	leaf := Root.Child("a").ChildIndex(1).Child("b")

	a0 := leaf.Ancestor(0)
	require.NotNil(t, a0)
	assert.Equal(t, "b", a0.NameStep())

	a1 := leaf.Ancestor(1)
	require.NotNil(t, a1)
	assert.True(t, a1.IsIndexStep())
	assert.Equal(t, 1, a1.IndexStep())

	a3 := leaf.Ancestor(3)
	assert.Same(t, Root, a3)

	a4 := leaf.Ancestor(4)
	assert.Nil(t, a4)
}

func TestCompareNameBeforeIndex(t *testing.T) {
	t.Parallel()
	named := Of(Root.Child("a"))
	indexed := Of(Root.ChildIndex(0))
	assert.Negative(t, Compare(named, indexed))
	assert.Positive(t, Compare(indexed, named))
}

func TestCompareOrdersByStep(t *testing.T) {
	t.Parallel()
	a := Of(Root.Child("a").ChildIndex(1))
	b := Of(Root.Child("a").ChildIndex(2))
	assert.Negative(t, Compare(a, b))

	prefix := Of(Root.Child("a"))
	assert.Negative(t, Compare(prefix, a))
	assert.Positive(t, Compare(a, prefix))
}

func TestEqualLocations(t *testing.T) {
	t.Parallel()
	a := Of(Root.Child("x").ChildIndex(2))
	b := Of(Root.Child("x").ChildIndex(2))
	c := Of(Root.Child("x").ChildIndex(3))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}
