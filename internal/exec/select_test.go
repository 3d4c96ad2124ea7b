package exec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/path"
	"github.com/lucidpath/jsonpath/internal/value"
)

func decode(t *testing.T, src string) value.V {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var raw any
	require.NoError(t, dec.Decode(&raw))
	return value.Of(raw)
}

func newRes(maxDepth int) *Resources {
	return NewResources(maxDepth, Sequential, FlagPath, nil, "test")
}

func selectValues(t *testing.T, res *Resources, sel ast.Selector, root value.V) ([]value.V, []string) {
	t.Helper()
	var sink CollectingSink
	require.NoError(t, Select(res, sel, root, root, path.Root, &sink, 0))
	strs := make([]string, len(sink.Paths))
	for i, p := range sink.Paths {
		strs[i] = path.Of(p).String()
	}
	return sink.Values, strs
}

func TestSelectIdentifier(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"store": {"name": "acme"}}`)
	sel := ast.Root{Tail: ast.Identifier{Name: "store", Tail: ast.Identifier{Name: "name"}}}

	vals, paths := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 1)
	s, _ := vals[0].StringValue()
	assert.Equal(t, "acme", s)
	assert.Equal(t, "$['store']['name']", paths[0])
}

func TestSelectIdentifierLengthConvenience(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"tags": ["a", "b", "c"]}`)
	sel := ast.Root{Tail: ast.Identifier{Name: "tags", Tail: ast.Identifier{Name: "length"}}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 1)
	f, _ := vals[0].Double()
	assert.Equal(t, float64(3), f)
}

func TestSelectIndexNegative(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[10, 20, 30]`)
	sel := ast.Root{Tail: ast.Index{Value: -1}}

	vals, paths := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 1)
	f, _ := vals[0].Double()
	assert.Equal(t, float64(30), f)
	assert.Equal(t, "$[2]", paths[0])
}

func TestSelectIndexOutOfRangeYieldsNothing(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[1, 2]`)
	sel := ast.Root{Tail: ast.Index{Value: 5}}
	vals, _ := selectValues(t, newRes(64), sel, doc)
	assert.Empty(t, vals)
}

func TestSelectSliceForward(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[0, 1, 2, 3, 4, 5]`)
	start, stop := 1, 4
	sel := ast.Root{Tail: ast.Slice{Start: &start, Stop: &stop}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 3)
	for i, want := range []float64{1, 2, 3} {
		f, _ := vals[i].Double()
		assert.Equal(t, want, f)
	}
}

func TestSelectSliceNegativeStep(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[0, 1, 2, 3, 4]`)
	step := -1
	sel := ast.Root{Tail: ast.Slice{Step: &step}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 5)
	for i, want := range []float64{4, 3, 2, 1, 0} {
		f, _ := vals[i].Double()
		assert.Equal(t, want, f)
	}
}

func TestSelectSliceZeroStepYieldsNothing(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[0, 1, 2]`)
	step := 0
	sel := ast.Root{Tail: ast.Slice{Step: &step}}
	vals, _ := selectValues(t, newRes(64), sel, doc)
	assert.Empty(t, vals)
}

func TestSelectWildcardObjectSortsByName(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"b": 2, "a": 1, "c": 3}`)
	sel := ast.Root{Tail: ast.Wildcard{}}

	vals, paths := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 3)
	assert.Equal(t, []string{"$['a']", "$['b']", "$['c']"}, paths)
}

func TestSelectRecursiveDescentCollectsAllLevels(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"a": {"b": {"c": 1}}}`)
	sel := ast.Root{Tail: ast.RecursiveDescent{Tail: ast.Identifier{Name: "c"}}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 1)
	f, _ := vals[0].Double()
	assert.Equal(t, float64(1), f)
}

func TestSelectRecursiveDescentMaxDepthExceeded(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"a": {"b": {"c": {"d": 1}}}}`)
	sel := ast.Root{Tail: ast.RecursiveDescent{}}

	var sink CollectingSink
	err := Select(newRes(2), sel, doc, doc, path.Root, &sink, 0)
	require.Error(t, err)
	var mde *MaxDepthExceededError
	require.ErrorAs(t, err, &mde)
}

func TestSelectFilterKeepsTruthyElements(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[{"price": 5}, {"price": 15}, {"price": 25}]`)
	expr := ast.Expression{Instrs: []ast.Instr{
		ast.CurrentInstr(),
		ast.SelectorInstr(ast.Current{Tail: ast.Identifier{Name: "price"}}),
		ast.ValueInstr(value.Float(10)),
		ast.BinaryInstr(ast.Gt),
	}}
	sel := ast.Root{Tail: ast.Filter{Expr: expr}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 2)
}

func TestSelectUnionSequentialPreservesMemberOrder(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[10, 20, 30]`)
	sel := ast.Root{Tail: ast.Union{Members: []ast.Selector{
		ast.Index{Value: 2},
		ast.Index{Value: 0},
	}}}

	vals, _ := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 2)
	f0, _ := vals[0].Double()
	f1, _ := vals[1].Double()
	assert.Equal(t, float64(30), f0)
	assert.Equal(t, float64(10), f1)
}

func TestSelectUnionParallelCollectsAllMembers(t *testing.T) {
	t.Parallel()
	doc := decode(t, `[10, 20, 30]`)
	sel := ast.Root{Tail: ast.Union{Members: []ast.Selector{
		ast.Index{Value: 0},
		ast.Index{Value: 1},
		ast.Index{Value: 2},
	}}}

	res := NewResources(64, Parallel, FlagPath, nil, "test")
	vals, _ := selectValues(t, res, sel, doc)
	assert.Len(t, vals, 3)
}

func TestSelectParentWalksUpPathAndRebuildsValue(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"store": {"book": [{"title": "A"}, {"title": "B"}]}}`)
	sel := ast.Root{Tail: ast.Identifier{Name: "store", Tail: ast.Identifier{Name: "book",
		Tail: ast.Index{Value: 1, Tail: ast.Identifier{Name: "title",
			Tail: ast.Parent{Depth: 1}}}}}}

	vals, paths := selectValues(t, newRes(64), sel, doc)
	require.Len(t, vals, 1)
	title, ok := vals[0].Property("title")
	require.True(t, ok)
	s, _ := title.StringValue()
	assert.Equal(t, "B", s)
	assert.Equal(t, "$['store']['book'][1]", paths[0])
}

func TestSelectParentBeyondRootYieldsNothing(t *testing.T) {
	t.Parallel()
	doc := decode(t, `{"a": 1}`)
	sel := ast.Root{Tail: ast.Identifier{Name: "a", Tail: ast.Parent{Depth: 5}}}
	vals, _ := selectValues(t, newRes(64), sel, doc)
	assert.Empty(t, vals)
}

