// Package value provides a uniform view over JSON values, whether decoded by
// [encoding/json] or synthesized by an operator or built-in function.
//
// A [V] wraps the concrete shape produced by a json.Decoder configured with
// UseNumber (map[string]any, []any, json.Number, string, bool, or nil) so
// that decoded documents and values computed mid-query (e.g. the result of
// sum() or a filter's wrapped multi-match array) share exactly one set of
// accessor methods.
package value

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
)

// Kind identifies the shape of a [V].
type Kind int

// The complete set of kinds a V can report.
const (
	KindNull Kind = iota
	True
	False
	Number
	String
	Array
	Object
	Undefined
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Undefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// WrongKindError reports that an operation was attempted against a V whose
// Kind does not support it.
type WrongKindError struct {
	Op   string
	Got  Kind
	Want string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("jsonpath: %s: wrong kind %s, want %s", e.Op, e.Got, e.Want)
}

// undefinedMarker is the sentinel raw payload for Undefined values.
type undefinedMarker struct{}

// V is a uniform handle over a JSON-shaped Go value: nil, bool, json.Number,
// float64, string, []any (of V-compatible elements), or map[string]any.
type V struct {
	raw any
}

// Of wraps raw, the output of encoding/json (with UseNumber) or a previously
// unwrapped V payload, as a V.
func Of(raw any) V {
	if v, ok := raw.(V); ok {
		return v
	}
	return V{raw: raw}
}

// Undef returns the Undefined value, used when a path step has no result.
func Undef() V { return V{raw: undefinedMarker{}} }

// Null returns the JSON null value.
func Null() V { return V{raw: nil} }

// Bool returns a synthetic boolean value.
func Bool(b bool) V { return V{raw: b} }

// Str returns a synthetic string value.
func Str(s string) V { return V{raw: s} }

// Float returns a synthetic number value backed by a float64.
func Float(f float64) V { return V{raw: f} }

// FromRat returns a synthetic number value holding r as a json.Number: exact
// for integers, otherwise a decimal rounded to 20 fractional digits.
func FromRat(r *big.Rat) V {
	if r.IsInt() {
		return V{raw: json.Number(r.RatString())}
	}
	return V{raw: json.Number(r.FloatString(20))}
}

// Arr returns a synthetic array value from items.
func Arr(items []V) V {
	raw := make([]any, len(items))
	for i, it := range items {
		raw[i] = it.raw
	}
	return V{raw: raw}
}

// Obj returns a synthetic object value from an ordered set of properties.
// Later duplicate names overwrite earlier ones.
func Obj(props []KV) V {
	raw := make(map[string]any, len(props))
	for _, p := range props {
		raw[p.Name] = p.Value.raw
	}
	return V{raw: raw}
}

// KV is a name/value pair used to build and enumerate synthetic objects.
type KV struct {
	Name  string
	Value V
}

// Raw returns the underlying payload, suitable for json.Marshal or for
// passing back into Of.
func (v V) Raw() any { return v.raw }

// Kind reports v's shape.
func (v V) Kind() Kind {
	switch t := v.raw.(type) {
	case undefinedMarker:
		return Undefined
	case nil:
		return KindNull
	case bool:
		if t {
			return True
		}
		return False
	case json.Number, float64, int, int64:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Undefined
	}
}

// IsUndefined reports whether v is the Undefined sentinel.
func (v V) IsUndefined() bool { return v.Kind() == Undefined }

// StringValue returns v's string content. Ok is false if v is not a String.
func (v V) StringValue() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Decimal returns an exact rational for v's numeric content. Ok is false if v
// is not a Number or the literal cannot be parsed exactly.
func (v V) Decimal() (*big.Rat, bool) {
	switch t := v.raw.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(string(t))
		return r, ok
	case float64:
		return new(big.Rat).SetFloat64(t), true
	case int:
		return new(big.Rat).SetInt64(int64(t)), true
	case int64:
		return new(big.Rat).SetInt64(t), true
	default:
		return nil, false
	}
}

// Double returns an approximate float64 for v's numeric content. Ok is false
// if v is not a Number.
func (v V) Double() (float64, bool) {
	switch t := v.raw.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// Len returns the number of elements in an Array. Ok is false otherwise.
func (v V) Len() (int, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return 0, false
	}
	return len(arr), true
}

// Index returns the element at i of an Array. Ok is false if v is not an
// Array or i is out of range.
func (v V) Index(i int) (V, bool) {
	arr, ok := v.raw.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Undef(), false
	}
	return Of(arr[i]), true
}

// Property returns the value of name in an Object. Ok is false if v is not
// an Object or does not have that property.
func (v V) Property(name string) (V, bool) {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return Undef(), false
	}
	raw, ok := obj[name]
	if !ok {
		return Undef(), false
	}
	return Of(raw), true
}

// Elements returns an Array's elements in index order. Ok is false otherwise.
func (v V) Elements() ([]V, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]V, len(arr))
	for i, e := range arr {
		out[i] = Of(e)
	}
	return out, true
}

// Properties returns an Object's name/value pairs sorted by ordinal name, for
// deterministic iteration (the decoder backs objects with a Go map, which has
// no stable order of its own — see DESIGN.md). Ok is false if v is not an
// Object.
func (v V) Properties() ([]KV, bool) {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(obj))
	for k := range obj {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]KV, len(names))
	for i, n := range names {
		out[i] = KV{Name: n, Value: Of(obj[n])}
	}
	return out, true
}

// Truthy implements the truthiness rule: False iff v's kind is False, Null,
// or Undefined, or an empty array, empty object, or empty string; true
// otherwise (numbers, including 0 and NaN, are always true).
func (v V) Truthy() bool {
	switch v.Kind() {
	case False, KindNull, Undefined:
		return false
	case String:
		s, _ := v.StringValue()
		return s != ""
	case Array:
		n, _ := v.Len()
		return n != 0
	case Object:
		props, _ := v.Properties()
		return len(props) != 0
	default:
		return true
	}
}

// String renders v for diagnostics; it is not the JSONPath normalized-path
// format (see internal/path for that).
func (v V) String() string {
	switch v.Kind() {
	case Undefined:
		return "<undefined>"
	case KindNull:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case String:
		s, _ := v.StringValue()
		return strconv.Quote(s)
	case Number:
		if n, ok := v.raw.(json.Number); ok {
			return string(n)
		}
		f, _ := v.Double()
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		b, err := json.Marshal(v.raw)
		if err != nil {
			return fmt.Sprintf("%v", v.raw)
		}
		return string(b)
	}
}

// MarshalJSON implements json.Marshaler, rendering v as ordinary JSON (the
// Undefined sentinel marshals as null, since JSON has no "absent" literal).
func (v V) MarshalJSON() ([]byte, error) {
	if v.IsUndefined() {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// Equal reports deep, ordering-independent equality between a and b per the
// rules in spec.md §4.A.
func Equal(a, b V) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull, True, False, Undefined:
		return true
	case Number:
		if ar, aok := a.Decimal(); aok {
			if br, bok := b.Decimal(); bok {
				return ar.Cmp(br) == 0
			}
		}
		af, aok := a.Double()
		bf, bok := b.Double()
		return aok && bok && af == bf
	case String:
		as, _ := a.StringValue()
		bs, _ := b.StringValue()
		return as == bs
	case Array:
		ae, _ := a.Elements()
		be, _ := b.Elements()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case Object:
		ap, _ := a.Properties()
		bp, _ := b.Properties()
		if len(ap) != len(bp) {
			return false
		}
		for i := range ap {
			if ap[i].Name != bp[i].Name || !Equal(ap[i].Value, bp[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// maxHashDepth bounds recursion in Hash, per spec.md §4.A.
const maxHashDepth = 100

// Hash computes a structural hash of v. It mixes
// v's Kind with its content; arrays and objects are bounded to maxHashDepth
// and objects are sorted by name before hashing.
func Hash(v V) uint64 {
	return hashDepth(v, 0)
}

func hashDepth(v V, depth int) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	mix := func(x uint64) {
		h ^= x
		h *= prime
	}
	mixStr := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(uint64(s[i]))
		}
	}

	mix(uint64(v.Kind()))
	if depth > maxHashDepth {
		return h
	}

	switch v.Kind() {
	case String:
		s, _ := v.StringValue()
		mixStr(s)
	case Number:
		mixStr(v.String())
	case Array:
		elems, _ := v.Elements()
		for _, e := range elems {
			mix(hashDepth(e, depth+1))
		}
	case Object:
		props, _ := v.Properties()
		for _, p := range props {
			mixStr(p.Name)
			mix(hashDepth(p.Value, depth+1))
		}
	}
	return h
}
