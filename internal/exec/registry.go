package exec

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/lucidpath/jsonpath/internal/value"
)

// callFunction dispatches a built-in by name over already-evaluated
// arguments. Per spec.md §4.C, a function evaluates to null on a type-shape
// mismatch; the caller is responsible for the separate arity-violation rule
// (§4.D step 6), which short-circuits to false before callFunction runs.
func callFunction(name string, args []value.V) value.V {
	switch name {
	case "abs":
		return fnAbs(args[0])
	case "ceil":
		return fnRound(args[0], math.Ceil)
	case "floor":
		return fnRound(args[0], math.Floor)
	case "length":
		return fnLength(args[0])
	case "keys":
		return fnKeys(args[0])
	case "sum":
		return fnSum(args[0])
	case "avg":
		return fnAvg(args[0])
	case "prod":
		return fnProd(args[0])
	case "min":
		return fnExtreme(args[0], true)
	case "max":
		return fnExtreme(args[0], false)
	case "to_number":
		return fnToNumber(args[0])
	case "contains":
		return fnContains(args[0], args[1])
	case "starts_with":
		return fnStringPredicate(args[0], args[1], strings.HasPrefix)
	case "ends_with":
		return fnStringPredicate(args[0], args[1], strings.HasSuffix)
	case "tokenize":
		return fnTokenize(args[0], args[1])
	default:
		return value.Null()
	}
}

func fnAbs(v value.V) value.V {
	if r, ok := v.Decimal(); ok {
		return value.FromRat(new(big.Rat).Abs(r))
	}
	return value.Null()
}

func fnRound(v value.V, round func(float64) float64) value.V {
	f, ok := v.Double()
	if !ok {
		return value.Null()
	}
	return value.Float(round(f))
}

func fnLength(v value.V) value.V {
	switch v.Kind() {
	case value.Array:
		n, _ := v.Len()
		return value.Float(float64(n))
	case value.Object:
		props, _ := v.Properties()
		return value.Float(float64(len(props)))
	case value.String:
		s, _ := v.StringValue()
		return value.Float(float64(len([]rune(s))))
	default:
		return value.Null()
	}
}

func fnKeys(v value.V) value.V {
	props, ok := v.Properties()
	if !ok {
		return value.Null()
	}
	out := make([]value.V, len(props))
	for i, p := range props {
		out[i] = value.Str(p.Name)
	}
	return value.Arr(out)
}

func fnSum(v value.V) value.V {
	elems, ok := v.Elements()
	if !ok {
		return value.Null()
	}
	total := new(big.Rat)
	for _, e := range elems {
		r, ok := e.Decimal()
		if !ok {
			return value.Null()
		}
		total.Add(total, r)
	}
	return value.FromRat(total)
}

func fnAvg(v value.V) value.V {
	elems, ok := v.Elements()
	if !ok || len(elems) == 0 {
		return value.Null()
	}
	total := new(big.Rat)
	for _, e := range elems {
		r, ok := e.Decimal()
		if !ok {
			return value.Null()
		}
		total.Add(total, r)
	}
	return value.FromRat(total.Quo(total, big.NewRat(int64(len(elems)), 1)))
}

func fnProd(v value.V) value.V {
	elems, ok := v.Elements()
	if !ok || len(elems) == 0 {
		return value.Null()
	}
	total := big.NewRat(1, 1)
	for _, e := range elems {
		r, ok := e.Decimal()
		if !ok {
			return value.Null()
		}
		total.Mul(total, r)
	}
	return value.FromRat(total)
}

func fnExtreme(v value.V, wantMin bool) value.V {
	elems, ok := v.Elements()
	if !ok || len(elems) == 0 {
		return value.Null()
	}
	kind := elems[0].Kind()
	if kind != value.Number && kind != value.String {
		return value.Null()
	}
	best := elems[0]
	for _, e := range elems[1:] {
		if e.Kind() != kind {
			return value.Null()
		}
		if wantMin && valueLess(e, best, kind) {
			best = e
		}
		if !wantMin && valueLess(best, e, kind) {
			best = e
		}
	}
	return best
}

func valueLess(a, b value.V, kind value.Kind) bool {
	if kind == value.Number {
		ar, aok := a.Decimal()
		br, bok := b.Decimal()
		if aok && bok {
			return ar.Cmp(br) < 0
		}
		af, _ := a.Double()
		bf, _ := b.Double()
		return af < bf
	}
	as, _ := a.StringValue()
	bs, _ := b.StringValue()
	return strings.Compare(as, bs) < 0
}

func fnToNumber(v value.V) value.V {
	if v.Kind() == value.Number {
		return v
	}
	s, ok := v.StringValue()
	if !ok {
		return value.Null()
	}
	if r, ok := new(big.Rat).SetString(s); ok {
		return value.FromRat(r)
	}
	return value.Null()
}

func fnContains(haystack, needle value.V) value.V {
	switch haystack.Kind() {
	case value.String:
		hs, _ := haystack.StringValue()
		ns, ok := needle.StringValue()
		if !ok {
			return value.Null()
		}
		return value.Bool(strings.Contains(hs, ns))
	case value.Array:
		elems, _ := haystack.Elements()
		for _, e := range elems {
			if value.Equal(e, needle) {
				return value.Bool(true)
			}
		}
		return value.Bool(false)
	default:
		return value.Null()
	}
}

func fnStringPredicate(s, prefix value.V, pred func(string, string) bool) value.V {
	ss, ok1 := s.StringValue()
	ps, ok2 := prefix.StringValue()
	if !ok1 || !ok2 {
		return value.Null()
	}
	return value.Bool(pred(ss, ps))
}

func fnTokenize(s, pattern value.V) value.V {
	ss, ok1 := s.StringValue()
	ps, ok2 := pattern.StringValue()
	if !ok1 || !ok2 {
		return value.Null()
	}
	re, err := regexp.Compile(ps)
	if err != nil {
		return value.Null()
	}
	parts := re.Split(ss, -1)
	out := make([]value.V, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.Arr(out)
}
