package ast

// UnaryOp identifies a prefix operator in a filter/argument expression.
type UnaryOp int

//revive:disable:exported
const (
	UnaryNot   UnaryOp = iota // !
	UnaryNeg                  // unary -
)

// Precedence returns op's binding power; higher binds tighter. Per spec.md
// §4.C, both unary operators share precedence 8 and are right-associative.
func (UnaryOp) Precedence() int { return 8 }

// RightAssoc reports whether op is right-associative (always true for the
// unary operators).
func (UnaryOp) RightAssoc() bool { return true }

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	default:
		return "?"
	}
}

// BinaryOp identifies an infix operator in a filter/argument expression.
type BinaryOp int

//revive:disable:exported
const (
	Or BinaryOp = iota // ||
	And                // &&
	Eq                 // ==
	Ne                 // !=
	Lt                 // <
	Le                 // <=
	Gt                 // >
	Ge                 // >=
	Add                // +
	Sub                // -
	Mul                // *
	Div                // /
	Mod                // %
)

// precedenceTable mirrors spec.md §4.C: || (1), && (2), ==/!= (3),
// comparisons (4), +/- (5), */÷/% (6). Regex match (=~) sits at 7 and is
// not a BinaryOp; its precedence is the RegexMatchPrecedence constant below.
var precedenceTable = map[BinaryOp]int{
	Or: 1, And: 2,
	Eq: 3, Ne: 3,
	Lt: 4, Le: 4, Gt: 4, Ge: 4,
	Add: 5, Sub: 5,
	Mul: 6, Div: 6, Mod: 6,
}

// Precedence returns op's binding power; higher binds tighter.
func (op BinaryOp) Precedence() int { return precedenceTable[op] }

// RightAssoc reports whether op is right-associative. All binary operators
// in this dialect are left-associative.
func (BinaryOp) RightAssoc() bool { return false }

func (op BinaryOp) String() string {
	switch op {
	case Or:
		return "||"
	case And:
		return "&&"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return "?"
	}
}

// RegexMatchPrecedence is the precedence of the =~ operator (spec.md §4.C:
// precedence 7, right-associative).
const RegexMatchPrecedence = 7

// Function identifies a built-in function callable from a filter or
// argument expression.
type Function struct {
	Name  string
	Arity int // -1 means variadic/unchecked
}

// Functions is the closed registry of built-in function signatures
// recognized by the parser (spec.md §4.C). internal/exec supplies their
// implementations.
var Functions = map[string]Function{
	"abs":         {Name: "abs", Arity: 1},
	"ceil":        {Name: "ceil", Arity: 1},
	"floor":       {Name: "floor", Arity: 1},
	"length":      {Name: "length", Arity: 1},
	"keys":        {Name: "keys", Arity: 1},
	"sum":         {Name: "sum", Arity: 1},
	"avg":         {Name: "avg", Arity: 1},
	"prod":        {Name: "prod", Arity: 1},
	"min":         {Name: "min", Arity: 1},
	"max":         {Name: "max", Arity: 1},
	"to_number":   {Name: "to_number", Arity: 1},
	"contains":    {Name: "contains", Arity: 2},
	"starts_with": {Name: "starts_with", Arity: 2},
	"ends_with":   {Name: "ends_with", Arity: 2},
	"tokenize":    {Name: "tokenize", Arity: 2},
}
