package parser

import (
	"leoscript/internal/ast"
	"leoscript/internal/token"
)

func (p *Parser) expression() ast.Expr {
	return p.binary(1)
}

// binary implements precedence climbing over the left-associative table in
// `precedence` (levels 1-6: or/and/eq/rel/add/mul). It bottoms out at
// power(), which in turn bottoms out at unaryNot() — `^` (level 7) binds
// tighter than every table entry, and unary `not` (level 8) binds tighter
// still, per spec.md §4.2's ten-level table.
func (p *Parser) binary(minPrec int) ast.Expr {
	left := p.power()
	for {
		tok := p.tokens.Peek()
		prec, ok := precedence[tok.Kind]
		if !ok || prec < minPrec {
			break
		}
		pos := p.advance().Pos
		right := p.binary(prec + 1)
		left = ast.Binary{Base: ast.At(pos), Op: binOps[tok.Kind], Left: left, Right: right}
	}
	return left
}

// power handles `^`, right-associative.
func (p *Parser) power() ast.Expr {
	left := p.unaryNot()
	if p.check(token.Caret) {
		pos := p.advance().Pos
		right := p.power() // right-assoc: re-enter at the same level
		return ast.Binary{Base: ast.At(pos), Op: ast.OpPow, Left: left, Right: right}
	}
	return left
}

func (p *Parser) unaryNot() ast.Expr {
	if p.check(token.Not) {
		pos := p.advance().Pos
		operand := p.unaryNot()
		return ast.Not{Base: ast.At(pos), Operand: operand}
	}
	return p.postfix()
}

// postfix parses a primary expression followed by any chain of call,
// index, member and static-access suffixes.
func (p *Parser) postfix() ast.Expr {
	expr := p.primary()
	for {
		switch p.tokens.Peek().Kind {
		case token.LParen:
			pos := p.advance().Pos
			args := p.argList()
			p.expect(token.RParen, "to close call arguments")
			expr = ast.Call{Base: ast.At(pos), Target: expr, Args: args}
		case token.LBracket:
			pos := p.advance().Pos
			index := p.expression()
			p.expect(token.RBracket, "to close index expression")
			expr = ast.ArrayAccess{Base: ast.At(pos), Target: expr, Index: index}
		case token.Dot:
			pos := p.advance().Pos
			name := p.expectIdentOrFail("InvalidMemberAccess", "after '.'")
			expr = ast.MemberAccess{Base: ast.At(pos), Target: expr, Name: name}
		case token.DoubleColon:
			pos := p.advance().Pos
			name := p.expectIdentOrFail("InvalidMemberAccess", "after '::'")
			expr = ast.StaticAccess{Base: ast.At(pos), Target: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) expectIdentOrFail(kind, context string) string {
	if !p.check(token.Ident) {
		p.fail(kind, "expected an identifier "+context)
	}
	return p.advance().Lexeme
}

func (p *Parser) argList() []ast.Expr {
	var args []ast.Expr
	if !p.check(token.RParen) {
		args = append(args, p.expression())
		for p.match(token.Comma) {
			args = append(args, p.expression())
		}
	}
	return args
}

func (p *Parser) primary() ast.Expr {
	tok := p.tokens.Peek()
	switch tok.Kind {
	case token.Null:
		p.advance()
		return ast.Null{Base: ast.At(tok.Pos)}
	case token.True:
		p.advance()
		return ast.BoolLit{Base: ast.At(tok.Pos), Value: true}
	case token.False:
		p.advance()
		return ast.BoolLit{Base: ast.At(tok.Pos), Value: false}
	case token.Integer:
		p.advance()
		return ast.IntegerLit{Base: ast.At(tok.Pos), Value: p.parseIntLit(tok)}
	case token.Float:
		p.advance()
		return ast.FloatLit{Base: ast.At(tok.Pos), Value: p.parseFloatLit(tok)}
	case token.String:
		p.advance()
		return ast.StringLit{Base: ast.At(tok.Pos), Value: tok.Lexeme}
	case token.Ident:
		p.advance()
		return ast.Identifier{Base: ast.At(tok.Pos), Name: tok.Lexeme}
	case token.New:
		return p.newObject()
	case token.LParen:
		p.advance()
		inner := p.expression()
		p.expect(token.RParen, "to close parenthesized expression")
		return inner
	case token.LBracket:
		return p.arrayLit()
	case token.LBrace:
		return p.dictLit()
	case token.Function:
		return p.anonFunction()
	default:
		p.fail("InvalidExpressionItem", "unexpected token in expression position: "+string(tok.Kind))
		return nil
	}
}

// newObject parses `new Target(args)`. Target may be a qualified name
// (module.Class or module::Class) but never itself a call — the call
// immediately following is the constructor invocation, consumed here so
// any further postfix chain (e.g. `new Point(3,4).sum()`) is parsed by the
// caller's enclosing postfix loop against the resulting NewObject.
func (p *Parser) newObject() ast.Expr {
	pos := p.advance().Pos // 'new'
	target := p.newTargetChain()
	if !p.check(token.LParen) {
		p.fail("InvalidNewObject", "'new' must be followed by a call expression")
	}
	p.advance() // '('
	args := p.argList()
	p.expect(token.RParen, "to close constructor arguments")
	return ast.NewObject{Base: ast.At(pos), Target: target, Args: args}
}

func (p *Parser) newTargetChain() ast.Expr {
	tok := p.tokens.Peek()
	if tok.Kind != token.Ident {
		p.fail("InvalidNewObject", "expected a class name after 'new'")
	}
	p.advance()
	expr := ast.Expr(ast.Identifier{Base: ast.At(tok.Pos), Name: tok.Lexeme})
	for {
		switch p.tokens.Peek().Kind {
		case token.Dot:
			pos := p.advance().Pos
			name := p.expectIdentOrFail("InvalidMemberAccess", "after '.'")
			expr = ast.MemberAccess{Base: ast.At(pos), Target: expr, Name: name}
		case token.DoubleColon:
			pos := p.advance().Pos
			name := p.expectIdentOrFail("InvalidMemberAccess", "after '::'")
			expr = ast.StaticAccess{Base: ast.At(pos), Target: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) arrayLit() ast.Expr {
	pos := p.advance().Pos // '['
	var elems []ast.Expr
	if !p.check(token.RBracket) {
		elems = append(elems, p.expression())
		for p.match(token.Comma) {
			elems = append(elems, p.expression())
		}
	}
	p.expect(token.RBracket, "to close array literal")
	return ast.ArrayLit{Base: ast.At(pos), Elements: elems}
}

func (p *Parser) dictLit() ast.Expr {
	pos := p.advance().Pos // '{'
	var entries []ast.DictEntry
	for !p.check(token.RBrace) {
		keyTok := p.tokens.Peek()
		var key string
		switch keyTok.Kind {
		case token.String, token.Ident:
			key = keyTok.Lexeme
			p.advance()
		default:
			p.fail("InvalidMapItem", "expected a string or identifier dictionary key")
		}
		p.expect(token.Colon, "after dictionary key")
		value := p.expression()
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "to close dictionary literal")
	return ast.DictLit{Base: ast.At(pos), Entries: entries}
}

func (p *Parser) anonFunction() ast.Expr {
	pos := p.advance().Pos // 'function'
	params := p.paramList()
	body := p.blockUntil(token.End)
	p.expect(token.End, "to close anonymous function body")
	return ast.AnonFunction{Base: ast.At(pos), Name: p.nextLambdaName(), Params: params, Body: body}
}
