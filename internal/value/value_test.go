package value

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) V {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var raw any
	require.NoError(t, dec.Decode(&raw))
	return Of(raw)
}

func TestKind(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		v    V
		want Kind
	}{
		{"undefined", Undef(), Undefined},
		{"null", Null(), KindNull},
		{"true", Bool(true), True},
		{"false", Bool(false), False},
		{"string", Str("x"), String},
		{"float", Float(1.5), Number},
		{"array", Arr(nil), Array},
		{"object", Obj(nil), Object},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.v.Kind())
		})
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		v    V
		want bool
	}{
		{"false", Bool(false), false},
		{"null", Null(), false},
		{"undefined", Undef(), false},
		{"empty_string", Str(""), false},
		{"nonempty_string", Str("a"), true},
		{"empty_array", Arr(nil), false},
		{"nonempty_array", Arr([]V{Bool(true)}), true},
		{"empty_object", Obj(nil), false},
		{"nonempty_object", Obj([]KV{{Name: "a", Value: Bool(true)}}), true},
		{"zero_number", Float(0), true},
		{"true", Bool(true), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.v.Truthy())
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		a, b V
		want bool
	}{
		{"null_null", Null(), Null(), true},
		{"null_false", Null(), Bool(false), false},
		{"numbers_exact", decode(t, "1.50"), decode(t, "1.5"), true},
		{"numbers_different", decode(t, "1"), decode(t, "2"), false},
		{"strings_equal", Str("a"), Str("a"), true},
		{"strings_different", Str("a"), Str("b"), false},
		{
			"arrays_same_order",
			Arr([]V{Float(1), Float(2)}),
			Arr([]V{Float(1), Float(2)}),
			true,
		},
		{
			"arrays_different_order_not_equal",
			Arr([]V{Float(1), Float(2)}),
			Arr([]V{Float(2), Float(1)}),
			false,
		},
		{
			"objects_different_key_order_still_equal",
			Obj([]KV{{Name: "a", Value: Float(1)}, {Name: "b", Value: Float(2)}}),
			Obj([]KV{{Name: "b", Value: Float(2)}, {Name: "a", Value: Float(1)}}),
			true,
		},
		{"kind_mismatch", Float(1), Str("1"), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}

func TestHashMatchesEqual(t *testing.T) {
	t.Parallel()
	a := Obj([]KV{{Name: "x", Value: Float(1)}, {Name: "y", Value: Arr([]V{Str("a")})}})
	b := Obj([]KV{{Name: "y", Value: Arr([]V{Str("a")})}, {Name: "x", Value: Float(1)}})
	require.True(t, Equal(a, b))
	assert.Equal(t, Hash(a), Hash(b))

	c := Obj([]KV{{Name: "x", Value: Float(2)}})
	assert.NotEqual(t, Hash(a), Hash(c))
}

func TestPropertiesSortedByName(t *testing.T) {
	t.Parallel()
	v := decode(t, `{"b": 1, "a": 2, "c": 3}`)
	props, ok := v.Properties()
	require.True(t, ok)
	require.Len(t, props, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{props[0].Name, props[1].Name, props[2].Name})
}

func TestIndexOutOfRange(t *testing.T) {
	t.Parallel()
	v := Arr([]V{Float(1), Float(2)})
	_, ok := v.Index(2)
	assert.False(t, ok)
	_, ok = v.Index(-1)
	assert.False(t, ok)
	got, ok := v.Index(1)
	require.True(t, ok)
	assert.Equal(t, Number, got.Kind())
}

func TestMarshalJSONUndefinedIsNull(t *testing.T) {
	t.Parallel()
	b, err := Undef().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
