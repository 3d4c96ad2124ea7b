package parser

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/lucidpath/jsonpath/internal/ast"
	"github.com/lucidpath/jsonpath/internal/value"
)

// Parser assembles a Lexer's tokens directly into ast.Selector and
// ast.Expression trees — a hand-written descent-and-precedence-climbing
// parser standing in for the teacher's goyacc-generated one (see package
// doc comment). Binary expressions are assembled by precedence climbing,
// which produces the same left-to-right reverse-polish Instr stream a
// shunting-yard assembler would.
type Parser struct {
	lex     *Lexer
	cur     Token
	rootSeq int
}

// Parse parses src as a complete JSONPath selector, the public entry point
// used by the driver (jsonpath) package.
func Parse(src string) (ast.Selector, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	sel, err := p.parseAnchoredSelector()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TEOF {
		return nil, errAt(p.cur, "unexpected trailing input")
	}
	return sel, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) nextRootID() string {
	id := fmt.Sprintf("root%d", p.rootSeq)
	p.rootSeq++
	return id
}

func (p *Parser) expect(kind TokenKind, what string) error {
	if p.cur.Kind != kind {
		return errAt(p.cur, "expected %s", what)
	}
	return p.advance()
}

// parseAnchoredSelector parses a full top-level query: $ or @ followed by
// zero or more steps.
func (p *Parser) parseAnchoredSelector() (ast.Selector, error) {
	switch p.cur.Kind {
	case TDollar:
		id := p.nextRootID()
		if err := p.advance(); err != nil {
			return nil, err
		}
		tail, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		return ast.Root{ID: id, Tail: tail}, nil
	case TAt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		tail, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		return ast.Current{Tail: tail}, nil
	default:
		return nil, errAt(p.cur, "expected '$' or '@'")
	}
}

// parseSteps parses a chain of selector steps, stopping at the first token
// that cannot start a new step, and links them in pipeline order.
func (p *Parser) parseSteps() (ast.Selector, error) {
	var head ast.Selector
	for {
		step, more, err := p.parseOneStep()
		if err != nil {
			return nil, err
		}
		if !more {
			return head, nil
		}
		head = ast.AppendTail(head, step)
	}
}

func (p *Parser) parseOneStep() (ast.Selector, bool, error) {
	switch p.cur.Kind {
	case TDot:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		switch p.cur.Kind {
		case TStar:
			if err := p.advance(); err != nil {
				return nil, false, err
			}
			return ast.Wildcard{}, true, nil
		case TIdent:
			name := p.cur.Str
			if err := p.advance(); err != nil {
				return nil, false, err
			}
			return ast.Identifier{Name: name}, true, nil
		default:
			return nil, false, errAt(p.cur, "expected identifier or '*' after '.'")
		}

	case TDotDot:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		switch p.cur.Kind {
		case TIdent:
			name := p.cur.Str
			if err := p.advance(); err != nil {
				return nil, false, err
			}
			return ast.RecursiveDescent{Tail: ast.Identifier{Name: name}}, true, nil
		case TStar:
			if err := p.advance(); err != nil {
				return nil, false, err
			}
			return ast.RecursiveDescent{Tail: ast.Wildcard{}}, true, nil
		}
		return ast.RecursiveDescent{}, true, nil

	case TCaret:
		depth := 0
		for p.cur.Kind == TCaret {
			depth++
			if err := p.advance(); err != nil {
				return nil, false, err
			}
		}
		return ast.Parent{Depth: depth}, true, nil

	case TLBracket:
		return p.parseBracket()

	default:
		return nil, false, nil
	}
}

func (p *Parser) parseBracket() (ast.Selector, bool, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, false, err
	}

	members := []ast.Selector{}
	for {
		m, err := p.parseBracketMember()
		if err != nil {
			return nil, false, err
		}
		members = append(members, m)
		if p.cur.Kind == TComma {
			if err := p.advance(); err != nil {
				return nil, false, err
			}
			continue
		}
		break
	}
	if err := p.expect(TRBracket, "']'"); err != nil {
		return nil, false, err
	}
	if len(members) == 1 {
		return members[0], true, nil
	}
	return ast.Union{Members: members}, true, nil
}

func (p *Parser) parseBracketMember() (ast.Selector, error) {
	switch p.cur.Kind {
	case TString:
		name := p.cur.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Identifier{Name: name}, nil

	case TStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Wildcard{}, nil

	case TQuestion:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.Filter{Expr: expr}, nil

	case TColon:
		return p.parseSliceFrom(nil)

	case TNumber, TMinus:
		n, err := p.parseSignedInt()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind == TColon {
			return p.parseSliceFrom(&n)
		}
		return ast.Index{Value: n}, nil

	default:
		return nil, errAt(p.cur, "unexpected token inside '[...]'")
	}
}

func (p *Parser) parseSliceFrom(start *int) (ast.Selector, error) {
	if err := p.expect(TColon, "':'"); err != nil {
		return nil, err
	}
	var stop, step *int
	if p.cur.Kind == TNumber || p.cur.Kind == TMinus {
		n, err := p.parseSignedInt()
		if err != nil {
			return nil, err
		}
		stop = &n
	}
	if p.cur.Kind == TColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == TNumber || p.cur.Kind == TMinus {
			n, err := p.parseSignedInt()
			if err != nil {
				return nil, err
			}
			step = &n
		}
	}
	return ast.Slice{Start: start, Stop: stop, Step: step}, nil
}

func (p *Parser) parseSignedInt() (int, error) {
	neg := false
	if p.cur.Kind == TMinus {
		neg = true
		if err := p.advance(); err != nil {
			return 0, err
		}
	}
	if p.cur.Kind != TNumber {
		return 0, errAt(p.cur, "expected a number")
	}
	n, err := strconv.Atoi(p.cur.Str)
	if err != nil {
		return 0, errAt(p.cur, "invalid integer literal %q", p.cur.Str)
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}

// --- Expressions ---

// binding holds a binary operator token's precedence and whether it's the
// regex-match operator (which takes a regex literal, not a sub-expression,
// as its right operand).
type binding struct {
	op    ast.BinaryOp
	prec  int
	regex bool
	ok    bool
}

func (p *Parser) peekBinaryOp() binding {
	switch p.cur.Kind {
	case TOr:
		return binding{op: ast.Or, prec: ast.Or.Precedence(), ok: true}
	case TAnd:
		return binding{op: ast.And, prec: ast.And.Precedence(), ok: true}
	case TEq:
		return binding{op: ast.Eq, prec: ast.Eq.Precedence(), ok: true}
	case TNe:
		return binding{op: ast.Ne, prec: ast.Ne.Precedence(), ok: true}
	case TLt:
		return binding{op: ast.Lt, prec: ast.Lt.Precedence(), ok: true}
	case TLe:
		return binding{op: ast.Le, prec: ast.Le.Precedence(), ok: true}
	case TGt:
		return binding{op: ast.Gt, prec: ast.Gt.Precedence(), ok: true}
	case TGe:
		return binding{op: ast.Ge, prec: ast.Ge.Precedence(), ok: true}
	case TPlus:
		return binding{op: ast.Add, prec: ast.Add.Precedence(), ok: true}
	case TMinus:
		return binding{op: ast.Sub, prec: ast.Sub.Precedence(), ok: true}
	case TStar:
		return binding{op: ast.Mul, prec: ast.Mul.Precedence(), ok: true}
	case TSlash:
		return binding{op: ast.Div, prec: ast.Div.Precedence(), ok: true}
	case TPercent:
		return binding{op: ast.Mod, prec: ast.Mod.Precedence(), ok: true}
	case TRegexMatch:
		return binding{prec: ast.RegexMatchPrecedence, regex: true, ok: true}
	default:
		return binding{}
	}
}

// parseExpression parses a full filter/argument expression (the lowest
// precedence level, i.e. including ||).
func (p *Parser) parseExpression() (ast.Expression, error) {
	instrs, err := p.parseExprPrec(1)
	if err != nil {
		return ast.Expression{}, err
	}
	return ast.Expression{Instrs: instrs}, nil
}

func (p *Parser) parseExprPrec(minPrec int) ([]ast.Instr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		b := p.peekBinaryOp()
		if !b.ok || b.prec < minPrec {
			return lhs, nil
		}
		if err := p.advance(); err != nil { // consume the operator token
			return nil, err
		}
		if b.regex {
			instr, err := p.parseRegexRHS()
			if err != nil {
				return nil, err
			}
			lhs = append(lhs, instr)
			continue
		}
		rhs, err := p.parseExprPrec(b.prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = append(lhs, rhs...)
		lhs = append(lhs, ast.BinaryInstr(b.op))
	}
}

// parseRegexRHS scans the regex literal that must immediately follow a =~
// operator (the lexer tokenized its opening '/' as TSlash already).
func (p *Parser) parseRegexRHS() (ast.Instr, error) {
	if p.cur.Kind != TSlash {
		return ast.Instr{}, errAt(p.cur, "expected a /regex/ literal after '=~'")
	}
	tok, err := p.lex.ScanRegex()
	if err != nil {
		return ast.Instr{}, err
	}
	if err := p.advance(); err != nil {
		return ast.Instr{}, err
	}
	return ast.RegexInstr(ast.Regex{Pattern: tok.Str, IgnoreCase: tok.Flag}), nil
}

func (p *Parser) parseUnary() ([]ast.Instr, error) {
	switch p.cur.Kind {
	case TNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return append(operand, ast.UnaryInstr(ast.UnaryNot)), nil
	case TMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return append(operand, ast.UnaryInstr(ast.UnaryNeg)), nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ([]ast.Instr, error) {
	switch p.cur.Kind {
	case TDollar:
		return p.parseAnchoredOperand(true)
	case TAt:
		return p.parseAnchoredOperand(false)
	case TLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExprPrec(1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case TNumber:
		v, err := p.parseNumberValue()
		if err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(v)}, nil
	case TString:
		s := p.cur.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(value.Str(s))}, nil
	case TTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(value.Bool(true))}, nil
	case TFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(value.Bool(false))}, nil
	case TNull:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(value.Null())}, nil
	case TLBracket:
		v, err := p.parseJSONArray()
		if err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(v)}, nil
	case TLBrace:
		v, err := p.parseJSONObject()
		if err != nil {
			return nil, err
		}
		return []ast.Instr{ast.ValueInstr(v)}, nil
	case TIdent:
		return p.parseFunctionCall()
	default:
		return nil, errAt(p.cur, "unexpected token in expression")
	}
}

// parseAnchoredOperand parses a $ or @ reference appearing inside an
// expression. Per internal/exec's runtime contract, InstrSelector pops a
// stack value to use as its evaluation input; the preceding InstrCurrent
// supplies that (the selector itself ignores it for Root, and forwards it
// for Current, which is exactly the ambient filter current/lastPath).
func (p *Parser) parseAnchoredOperand(isRoot bool) ([]ast.Instr, error) {
	if err := p.advance(); err != nil { // consume $ or @
		return nil, err
	}
	tail, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	var sel ast.Selector
	if isRoot {
		sel = ast.Root{ID: p.nextRootID(), Tail: tail}
	} else {
		sel = ast.Current{Tail: tail}
	}
	return []ast.Instr{ast.CurrentInstr(), ast.SelectorInstr(sel)}, nil
}

func (p *Parser) parseFunctionCall() ([]ast.Instr, error) {
	name := p.cur.Str
	fn, ok := ast.Functions[name]
	if !ok {
		return nil, errAt(p.cur, "unknown function %q", name)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(TLParen, "'('"); err != nil {
		return nil, err
	}

	var out []ast.Instr
	if p.cur.Kind != TRParen {
		for {
			arg, err := p.parseExprPrec(1)
			if err != nil {
				return nil, err
			}
			out = append(out, arg...)
			out = append(out, ast.ArgumentInstr())
			if p.cur.Kind == TComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expect(TRParen, "')'"); err != nil {
		return nil, err
	}
	out = append(out, ast.FunctionInstr(fn))
	return out, nil
}

func (p *Parser) parseNumberValue() (value.V, error) {
	s := p.cur.Str
	if err := p.advance(); err != nil {
		return value.V{}, err
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return value.V{}, errAt(p.cur, "invalid number literal %q", s)
	}
	return value.FromRat(r), nil
}

func (p *Parser) parseJSONArray() (value.V, error) {
	if err := p.advance(); err != nil { // consume '['
		return value.V{}, err
	}
	var items []value.V
	if p.cur.Kind != TRBracket {
		for {
			v, err := p.parseJSONValue()
			if err != nil {
				return value.V{}, err
			}
			items = append(items, v)
			if p.cur.Kind == TComma {
				if err := p.advance(); err != nil {
					return value.V{}, err
				}
				continue
			}
			break
		}
	}
	if err := p.expect(TRBracket, "']'"); err != nil {
		return value.V{}, err
	}
	return value.Arr(items), nil
}

func (p *Parser) parseJSONObject() (value.V, error) {
	if err := p.advance(); err != nil { // consume '{'
		return value.V{}, err
	}
	var props []value.KV
	if p.cur.Kind != TRBrace {
		for {
			if p.cur.Kind != TString {
				return value.V{}, errAt(p.cur, "expected a string key")
			}
			key := p.cur.Str
			if err := p.advance(); err != nil {
				return value.V{}, err
			}
			if err := p.expect(TColon, "':'"); err != nil {
				return value.V{}, err
			}
			v, err := p.parseJSONValue()
			if err != nil {
				return value.V{}, err
			}
			props = append(props, value.KV{Name: key, Value: v})
			if p.cur.Kind == TComma {
				if err := p.advance(); err != nil {
					return value.V{}, err
				}
				continue
			}
			break
		}
	}
	if err := p.expect(TRBrace, "'}'"); err != nil {
		return value.V{}, err
	}
	return value.Obj(props), nil
}

func (p *Parser) parseJSONValue() (value.V, error) {
	switch p.cur.Kind {
	case TString:
		s := p.cur.Str
		if err := p.advance(); err != nil {
			return value.V{}, err
		}
		return value.Str(s), nil
	case TNumber:
		return p.parseNumberValue()
	case TMinus:
		if err := p.advance(); err != nil {
			return value.V{}, err
		}
		v, err := p.parseNumberValue()
		if err != nil {
			return value.V{}, err
		}
		r, _ := v.Decimal()
		return value.FromRat(new(big.Rat).Neg(r)), nil
	case TTrue:
		if err := p.advance(); err != nil {
			return value.V{}, err
		}
		return value.Bool(true), nil
	case TFalse:
		if err := p.advance(); err != nil {
			return value.V{}, err
		}
		return value.Bool(false), nil
	case TNull:
		if err := p.advance(); err != nil {
			return value.V{}, err
		}
		return value.Null(), nil
	case TLBracket:
		return p.parseJSONArray()
	case TLBrace:
		return p.parseJSONObject()
	default:
		return value.V{}, errAt(p.cur, "expected a JSON value")
	}
}
