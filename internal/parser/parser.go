// Package parser turns Hollow source into an internal/ast tree using a
// hand-written recursive-descent, precedence-climbing parser. It is the
// reference front end used by pkg/hollow and cmd/hollow. The evaluator
// walks internal/ast trees and calls Parse itself only to load the files
// named by `import` expressions.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/lexer"
)

// Error is a parse failure with source position.
type Error struct {
	Pos ast.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parser consumes a token stream and builds an ast.Node tree.
type Parser struct {
	lex *lexer.Lexer
	src *ast.Source
}

// Parse parses src as a single expression, the whole of a Hollow
// document, and returns its root node.
func Parse(src *ast.Source) (ast.Node, error) {
	p := &Parser{lex: lexer.New(src), src: src}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Next()
	if err != nil {
		return nil, wrapLexErr(err)
	}
	if tok.Kind != lexer.EOF {
		return nil, &Error{Pos: tok.Pos, Msg: "unexpected trailing input: " + tok.Text}
	}
	return n, nil
}

func wrapLexErr(err error) error {
	if le, ok := err.(*lexer.Error); ok {
		return &Error{Pos: le.Pos, Msg: le.Msg}
	}
	return err
}

func (p *Parser) loc(start ast.Position) ast.Location {
	return ast.Location{Source: p.src, Start: start}
}

func (p *Parser) peek() (lexer.Token, error) {
	t, err := p.lex.Peek()
	if err != nil {
		return t, wrapLexErr(err)
	}
	return t, nil
}

func (p *Parser) next() (lexer.Token, error) {
	t, err := p.lex.Next()
	if err != nil {
		return t, wrapLexErr(err)
	}
	return t, nil
}

func (p *Parser) expectSym(s string) (lexer.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Kind != lexer.Symbol || t.Text != s {
		return t, &Error{Pos: t.Pos, Msg: fmt.Sprintf("expected %q, got %q", s, t.Text)}
	}
	return t, nil
}

func (p *Parser) expectKeyword(s string) (lexer.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Kind != lexer.Keyword || t.Text != s {
		return t, &Error{Pos: t.Pos, Msg: fmt.Sprintf("expected %q, got %q", s, t.Text)}
	}
	return t, nil
}

func (p *Parser) isSym(t lexer.Token, s string) bool {
	return t.Kind == lexer.Symbol && t.Text == s
}

func (p *Parser) isKeyword(t lexer.Token, s string) bool {
	return t.Kind == lexer.Keyword && t.Text == s
}

// parseExpr parses a full expression, including the low-precedence
// `local`, `if`, `assert ; rest`, and `function` forms.
func (p *Parser) parseExpr() (ast.Node, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isKeyword(t, "local"):
		return p.parseLocal()
	case p.isKeyword(t, "if"):
		return p.parseIf()
	case p.isKeyword(t, "assert"):
		return p.parseAssertExpr()
	case p.isKeyword(t, "function"):
		return p.parseFunctionLit("")
	case p.isKeyword(t, "import"), p.isKeyword(t, "importstr"), p.isKeyword(t, "importbin"):
		return p.parseImport()
	case p.isKeyword(t, "error"):
		return p.parseErrorExpr()
	}
	return p.parseBinary(0)
}

// parseLocal parses a "local" form. A body that is itself another
// "local" is folded into the same bind list rather than producing a
// nested Local node: sequential local clauses share one letrec scope,
// so bindings introduced by a later clause are visible to earlier ones
// (mutual recursion across clauses, not just within one comma-separated
// clause).
func (p *Parser) parseLocal() (ast.Node, error) {
	start, err := p.expectKeyword("local")
	if err != nil {
		return nil, err
	}
	var binds []ast.LocalBind
	for {
		group, err := p.parseLocalBindGroup()
		if err != nil {
			return nil, err
		}
		binds = append(binds, group...)
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !p.isKeyword(t, "local") {
			break
		}
		p.next()
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	loc := p.loc(start.Pos)
	return &ast.Local{Base: ast.Base{Location: loc}, Binds: binds, Body: body}, nil
}

// parseLocalBindGroup parses the comma-separated bind list between a
// "local" keyword and its terminating ";".
func (p *Parser) parseLocalBindGroup() ([]ast.LocalBind, error) {
	var binds []ast.LocalBind
	for {
		b, err := p.parseLocalBind()
		if err != nil {
			return nil, err
		}
		binds = append(binds, b)
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t, ",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return binds, nil
}

func (p *Parser) parseLocalBind() (ast.LocalBind, error) {
	name, err := p.next()
	if err != nil {
		return ast.LocalBind{}, err
	}
	if name.Kind != lexer.Ident {
		return ast.LocalBind{}, &Error{Pos: name.Pos, Msg: "expected identifier in local bind"}
	}
	t, err := p.peek()
	if err != nil {
		return ast.LocalBind{}, err
	}
	var params *ast.Params
	if p.isSym(t, "(") {
		pr, err := p.parseParams()
		if err != nil {
			return ast.LocalBind{}, err
		}
		params = pr
	}
	if _, err := p.expectSym("="); err != nil {
		return ast.LocalBind{}, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return ast.LocalBind{}, err
	}
	return ast.LocalBind{Name: name.Text, Params: params, Value: val}, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	start, err := p.expectKeyword("if")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	thenE, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var elseE ast.Node
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if p.isKeyword(t, "else") {
		p.next()
		elseE, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Base: ast.Base{Location: p.loc(start.Pos)}, Cond: cond, Then: thenE, Else: elseE}, nil
}

func (p *Parser) parseAssert() (ast.Assert, error) {
	if _, err := p.expectKeyword("assert"); err != nil {
		return ast.Assert{}, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return ast.Assert{}, err
	}
	var msg ast.Node
	t, err := p.peek()
	if err != nil {
		return ast.Assert{}, err
	}
	if p.isSym(t, ":") {
		p.next()
		msg, err = p.parseExpr()
		if err != nil {
			return ast.Assert{}, err
		}
	}
	return ast.Assert{Cond: cond, Msg: msg}, nil
}

func (p *Parser) parseAssertExpr() (ast.Node, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	a, err := p.parseAssert()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	rest, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssertExpr{Base: ast.Base{Location: p.loc(start.Pos)}, Assert: a, Rest: rest}, nil
}

func (p *Parser) parseErrorExpr() (ast.Node, error) {
	start, err := p.expectKeyword("error")
	if err != nil {
		return nil, err
	}
	operand, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Error{Base: ast.Base{Location: p.loc(start.Pos)}, Operand: operand}, nil
}

func (p *Parser) parseImport() (ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	var kind ast.ImportKind
	switch kw.Text {
	case "import":
		kind = ast.ImportEval
	case "importstr":
		kind = ast.ImportAsString
	case "importbin":
		kind = ast.ImportAsBinary
	}
	pathTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if pathTok.Kind != lexer.String {
		return nil, &Error{Pos: pathTok.Pos, Msg: "expected string literal after import"}
	}
	return &ast.Import{Base: ast.Base{Location: p.loc(kw.Pos)}, Kind: kind, Path: pathTok.Text}, nil
}

func (p *Parser) parseFunctionLit(name string) (ast.Node, error) {
	start, err := p.expectKeyword("function")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Func{Base: ast.Base{Location: p.loc(start.Pos)}, Name: name, Params: *params, Body: body}, nil
}

func (p *Parser) parseParams() (*ast.Params, error) {
	if _, err := p.expectSym("("); err != nil {
		return nil, err
	}
	var params ast.Params
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t, ")") {
			p.next()
			break
		}
		nameTok, err := p.next()
		if err != nil {
			return nil, err
		}
		if nameTok.Kind != lexer.Ident {
			return nil, &Error{Pos: nameTok.Pos, Msg: "expected parameter name"}
		}
		param := ast.Param{Name: nameTok.Text}
		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t2, "=") {
			p.next()
			def, err := p.parseExprNoComma()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params.List = append(params.List, param)
		t3, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t3, ",") {
			p.next()
			continue
		}
		if _, err := p.expectSym(")"); err != nil {
			return nil, err
		}
		break
	}
	return &params, nil
}

// parseExprNoComma parses a default-value/argument expression. Hollow's
// grammar has no comma operator, so this is just parseExpr; kept as a
// separate name to mark the call sites that rely on commas terminating.
func (p *Parser) parseExprNoComma() (ast.Node, error) {
	return p.parseExpr()
}

// precedence table, low to high.
var binPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, "<=": 7, ">": 7, ">=": 7, "in": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var binOpOf = map[string]ast.BinaryOp{
	"||": ast.BinOr, "&&": ast.BinAnd,
	"|": ast.BinBitOr, "^": ast.BinBitXor, "&": ast.BinBitAnd,
	"==": ast.BinEq, "!=": ast.BinNotEq,
	"<": ast.BinLt, "<=": ast.BinLtEq, ">": ast.BinGt, ">=": ast.BinGtEq,
	"in": ast.BinIn,
	"<<": ast.BinShl, ">>": ast.BinShr,
	"+": ast.BinAdd, "-": ast.BinSub,
	"*": ast.BinMul, "/": ast.BinDiv, "%": ast.BinMod,
}

func (p *Parser) parseBinary(minPrec int) (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		opText, ok := p.binOpText(t)
		if !ok {
			return left, nil
		}
		prec, ok := binPrec[opText]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok, err := p.next()
		if err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Base:  ast.Base{Location: ast.Location{Source: p.src, Start: opTok.Pos}},
			Op:    binOpOf[opText],
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) binOpText(t lexer.Token) (string, bool) {
	if t.Kind == lexer.Symbol {
		if _, ok := binPrec[t.Text]; ok {
			return t.Text, true
		}
		return "", false
	}
	if t.Kind == lexer.Keyword && t.Text == "in" {
		return "in", true
	}
	return "", false
}

func (p *Parser) parseUnary() (ast.Node, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.Symbol {
		var op ast.UnaryOp
		ok := true
		switch t.Text {
		case "-":
			op = ast.UnaryMinus
		case "+":
			op = ast.UnaryPlus
		case "!":
			op = ast.UnaryNot
		case "~":
			op = ast.UnaryBitwiseNot
		default:
			ok = false
		}
		if ok {
			p.next()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Base: ast.Base{Location: p.loc(t.Pos)}, Op: op, Operand: operand}, nil
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case p.isSym(t, "."):
			p.next()
			nameTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if nameTok.Kind != lexer.Ident && nameTok.Kind != lexer.Keyword {
				return nil, &Error{Pos: nameTok.Pos, Msg: "expected field name after '.'"}
			}
			node = &ast.FieldAccess{Base: ast.Base{Location: p.loc(t.Pos)}, Target: node, Name: nameTok.Text}
		case p.isSym(t, "["):
			p.next()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSym("]"); err != nil {
				return nil, err
			}
			node = &ast.Index{Base: ast.Base{Location: p.loc(t.Pos)}, Target: node, Index: idx}
		case p.isSym(t, "("):
			args, tailStrict, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			node = &ast.Apply{Base: ast.Base{Location: p.loc(t.Pos)}, Fn: node, Args: args, TailStrict: tailStrict}
		default:
			return node, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Arg, bool, error) {
	if _, err := p.expectSym("("); err != nil {
		return nil, false, err
	}
	var args []ast.Arg
	for {
		t, err := p.peek()
		if err != nil {
			return nil, false, err
		}
		if p.isSym(t, ")") {
			p.next()
			break
		}
		arg, err := p.parseArg()
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)
		t2, err := p.peek()
		if err != nil {
			return nil, false, err
		}
		if p.isSym(t2, ",") {
			p.next()
			continue
		}
		if _, err := p.expectSym(")"); err != nil {
			return nil, false, err
		}
		break
	}
	tailStrict := false
	t, err := p.peek()
	if err != nil {
		return nil, false, err
	}
	if p.isKeyword(t, "tailstrict") {
		p.next()
		tailStrict = true
	}
	return args, tailStrict, nil
}

func (p *Parser) parseArg() (ast.Arg, error) {
	// a named argument is `ident = expr`; disambiguate by peeking past
	// the identifier for '='.
	t, err := p.peek()
	if err != nil {
		return ast.Arg{}, err
	}
	if t.Kind == lexer.Ident {
		save := *p.lex
		name, _ := p.next()
		eqTok, err := p.peek()
		if err == nil && p.isSym(eqTok, "=") {
			p.next()
			val, err := p.parseExpr()
			if err != nil {
				return ast.Arg{}, err
			}
			return ast.Arg{Name: name.Text, Value: val}, nil
		}
		*p.lex = save
	}
	val, err := p.parseExpr()
	if err != nil {
		return ast.Arg{}, err
	}
	return ast.Arg{Value: val}, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	loc := p.loc(t.Pos)
	switch t.Kind {
	case lexer.Number:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &Error{Pos: t.Pos, Msg: "invalid number literal: " + t.Text}
		}
		return &ast.Number{Base: ast.Base{Location: loc}, Value: v}, nil
	case lexer.String:
		return &ast.Str{Base: ast.Base{Location: loc}, Value: t.Text}, nil
	case lexer.Ident:
		return &ast.Var{Base: ast.Base{Location: loc}, Name: t.Text}, nil
	case lexer.Keyword:
		switch t.Text {
		case "null":
			return &ast.Null{Base: ast.Base{Location: loc}}, nil
		case "true":
			return &ast.Bool{Base: ast.Base{Location: loc}, Value: true}, nil
		case "false":
			return &ast.Bool{Base: ast.Base{Location: loc}, Value: false}, nil
		case "self":
			return &ast.Self{Base: ast.Base{Location: loc}}, nil
		case "super":
			return &ast.Super{Base: ast.Base{Location: loc}}, nil
		case "function":
			// re-enter at parseFunctionLit: rewind isn't needed since we
			// already consumed `function`; reconstruct directly.
			params, err := p.parseParams()
			if err != nil {
				return nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.Func{Base: ast.Base{Location: loc}, Params: *params, Body: body}, nil
		}
		return nil, &Error{Pos: t.Pos, Msg: "unexpected keyword: " + t.Text}
	case lexer.Symbol:
		switch t.Text {
		case "(":
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSym(")"); err != nil {
				return nil, err
			}
			return n, nil
		case "[":
			return p.parseArrayOrComp(t.Pos)
		case "{":
			return p.parseObjectOrComp(t.Pos)
		}
	}
	return nil, &Error{Pos: t.Pos, Msg: "unexpected token: " + t.Text}
}

func (p *Parser) parseArrayOrComp(start ast.Position) (ast.Node, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if p.isSym(t, "]") {
		p.next()
		return &ast.Array{Base: ast.Base{Location: p.loc(start)}}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	t2, err := p.peek()
	if err != nil {
		return nil, err
	}
	if p.isKeyword(t2, "for") {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSym("]"); err != nil {
			return nil, err
		}
		return &ast.ArrayComp{Base: ast.Base{Location: p.loc(start)}, Body: first, Clauses: clauses}, nil
	}
	elements := []ast.Node{first}
	for {
		t3, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t3, ",") {
			p.next()
			t4, err := p.peek()
			if err != nil {
				return nil, err
			}
			if p.isSym(t4, "]") {
				break
			}
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			continue
		}
		break
	}
	if _, err := p.expectSym("]"); err != nil {
		return nil, err
	}
	return &ast.Array{Base: ast.Base{Location: p.loc(start)}, Elements: elements}, nil
}

func (p *Parser) parseCompClauses() ([]ast.CompClause, error) {
	var clauses []ast.CompClause
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isKeyword(t, "for") {
			p.next()
			nameTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if nameTok.Kind != lexer.Ident {
				return nil, &Error{Pos: nameTok.Pos, Msg: "expected identifier after 'for'"}
			}
			if _, err := p.expectKeyword("in"); err != nil {
				return nil, err
			}
			src, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.CompClause{IsFor: true, Var: nameTok.Text, Expr: src})
			continue
		}
		if p.isKeyword(t, "if") {
			p.next()
			cond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.CompClause{IsFor: false, Expr: cond})
			continue
		}
		break
	}
	return clauses, nil
}

func (p *Parser) parseObjectOrComp(start ast.Position) (ast.Node, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if p.isSym(t, "}") {
		p.next()
		return &ast.Object{Base: ast.Base{Location: p.loc(start)}}, nil
	}

	// Try to detect an object comprehension: `[expr]: expr for ...`
	if p.isSym(t, "[") {
		save := *p.lex
		p.next()
		keyExpr, err := p.parseExpr()
		if err == nil {
			if _, err2 := p.expectSym("]"); err2 == nil {
				if colonTok, err3 := p.peek(); err3 == nil && p.isSym(colonTok, ":") {
					p.next()
					valExpr, err4 := p.parseExpr()
					if err4 == nil {
						if forTok, err5 := p.peek(); err5 == nil && p.isKeyword(forTok, "for") {
							clauses, err6 := p.parseCompClauses()
							if err6 == nil {
								if _, err7 := p.expectSym("}"); err7 == nil {
									return &ast.ObjectComp{Base: ast.Base{Location: p.loc(start)}, KeyExpr: keyExpr, ValueExpr: valExpr, Clauses: clauses}, nil
								}
							}
						}
					}
				}
			}
		}
		*p.lex = save
	}

	var fields []ast.Field
	var asserts []ast.Assert
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t, "}") {
			p.next()
			break
		}
		if p.isKeyword(t, "assert") {
			a, err := p.parseAssert()
			if err != nil {
				return nil, err
			}
			asserts = append(asserts, a)
		} else {
			f, err := p.parseField()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		if p.isSym(t2, ",") {
			p.next()
			continue
		}
		if _, err := p.expectSym("}"); err != nil {
			return nil, err
		}
		break
	}
	return &ast.Object{Base: ast.Base{Location: p.loc(start)}, Fields: fields, Asserts: asserts}, nil
}

func (p *Parser) parseField() (ast.Field, error) {
	var field ast.Field
	t, err := p.peek()
	if err != nil {
		return field, err
	}
	if p.isSym(t, "[") {
		p.next()
		nameExpr, err := p.parseExpr()
		if err != nil {
			return field, err
		}
		if _, err := p.expectSym("]"); err != nil {
			return field, err
		}
		field.NameExpr = nameExpr
	} else {
		nameTok, err := p.next()
		if err != nil {
			return field, err
		}
		if nameTok.Kind != lexer.Ident && nameTok.Kind != lexer.Keyword && nameTok.Kind != lexer.String {
			return field, &Error{Pos: nameTok.Pos, Msg: "expected field name"}
		}
		field.Name = nameTok.Text
	}

	t2, err := p.peek()
	if err != nil {
		return field, err
	}
	if p.isSym(t2, "(") {
		params, err := p.parseParams()
		if err != nil {
			return field, err
		}
		field.Params = params
	}

	field.Kind = ast.FieldVisible
	t3, err := p.next()
	if err != nil {
		return field, err
	}
	switch {
	case p.isSym(t3, "+:"):
		field.Additive = true
		field.Kind = ast.FieldVisible
	case p.isSym(t3, ":"):
	case p.isSym(t3, "::"):
		field.Kind = ast.FieldHidden
	case p.isSym(t3, ":::"):
		field.Kind = ast.FieldForceVisible
	case p.isSym(t3, "+::"):
		field.Additive = true
		field.Kind = ast.FieldHidden
	default:
		return field, &Error{Pos: t3.Pos, Msg: "expected ':' after field name, got " + t3.Text}
	}

	val, err := p.parseExpr()
	if err != nil {
		return field, err
	}
	field.Value = val
	return field, nil
}

