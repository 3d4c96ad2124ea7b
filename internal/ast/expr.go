package ast

import "github.com/lucidpath/jsonpath/internal/value"

// InstrKind tags the variant of an Instr in a postfix Expression stream
// (spec.md §3's Token sum, narrowed to the subset that survives shunting-yard
// assembly into reverse-polish form — bracket/separator scaffolding tokens
// are consumed during parsing and never appear in the stored stream).
type InstrKind int

//revive:disable:exported
const (
	InstrValue InstrKind = iota
	InstrRoot
	InstrCurrent
	InstrUnary
	InstrBinary
	InstrRegex
	InstrSelector
	InstrFunction
	InstrArgument
	InstrExpression
)

// Instr is one entry in a postfix (reverse-polish) Expression token stream.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Instr struct {
	Kind InstrKind

	Val      value.V
	UnaryOp  UnaryOp
	BinaryOp BinaryOp
	Regex    Regex
	Sel      Selector
	Fn       Function
	Nested   Expression
}

// Expression is a postfix token stream produced by the parser's
// shunting-yard assembler and walked by internal/exec's expression runtime.
type Expression struct {
	Instrs []Instr
}

func (e Expression) String() string {
	// An Expression keeps only its postfix Instrs, not its source text, so
	// every expression renders as the same placeholder.
	return "<expr>"
}

// ValueInstr returns an Instr pushing a literal value.
func ValueInstr(v value.V) Instr { return Instr{Kind: InstrValue, Val: v} }

// RootInstr returns an Instr pushing the query root.
func RootInstr() Instr { return Instr{Kind: InstrRoot} }

// CurrentInstr returns an Instr pushing the filter's current node.
func CurrentInstr() Instr { return Instr{Kind: InstrCurrent} }

// UnaryInstr returns an Instr applying a unary operator to the top of stack.
func UnaryInstr(op UnaryOp) Instr { return Instr{Kind: InstrUnary, UnaryOp: op} }

// BinaryInstr returns an Instr applying a binary operator to the top two
// stack entries (rhs then lhs, per spec.md §4.D).
func BinaryInstr(op BinaryOp) Instr { return Instr{Kind: InstrBinary, BinaryOp: op} }

// RegexInstr returns an Instr applying a regex match to the top of stack.
func RegexInstr(r Regex) Instr { return Instr{Kind: InstrRegex, Regex: r} }

// SelectorInstr returns an Instr evaluating a selector chain against the
// current stack top.
func SelectorInstr(s Selector) Instr { return Instr{Kind: InstrSelector, Sel: s} }

// FunctionInstr returns an Instr invoking a built-in function over the
// accumulated argument list.
func FunctionInstr(fn Function) Instr { return Instr{Kind: InstrFunction, Fn: fn} }

// ArgumentInstr returns an Instr popping the stack top into the argument
// list.
func ArgumentInstr() Instr { return Instr{Kind: InstrArgument} }

// ExpressionInstr returns an Instr recursively evaluating a nested
// Expression and pushing its result.
func ExpressionInstr(e Expression) Instr { return Instr{Kind: InstrExpression, Nested: e} }
