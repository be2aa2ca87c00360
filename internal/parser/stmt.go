package parser

import (
	"leoscript/internal/ast"
	"leoscript/internal/token"
)

// blockUntil parses statements until the stream is positioned at end,
// consuming none of end's tokens itself.
func (p *Parser) blockUntil(end token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(end) && !p.tokens.AtEOF() {
		stmts = append(stmts, p.statement())
	}
	return stmts
}

// blockUntilAny is blockUntil for callers that need to stop at more than
// one possible terminator (e.g. `else`/`end` after an if-arm).
func (p *Parser) blockUntilAny(ends ...token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.tokens.AtEOF() {
		for _, e := range ends {
			if p.check(e) {
				return stmts
			}
		}
		stmts = append(stmts, p.statement())
	}
	return stmts
}

func (p *Parser) statement() ast.Stmt {
	switch p.tokens.Peek().Kind {
	case token.Var:
		return p.varDecl()
	case token.If:
		return p.ifChain()
	case token.Match:
		return p.matchStmt()
	case token.While:
		return p.whileStmt()
	case token.For:
		return p.forStmt()
	case token.Return:
		return p.returnStmt()
	case token.Break:
		pos := p.advance().Pos
		return ast.BreakStmt{Base: ast.At(pos)}
	case token.Continue:
		pos := p.advance().Pos
		return ast.ContinueStmt{Base: ast.At(pos)}
	case token.Print:
		pos := p.advance().Pos
		value := p.expression()
		return ast.PrintStmt{Base: ast.At(pos), Value: value}
	case token.Sleep:
		pos := p.advance().Pos
		value := p.expression()
		return ast.SleepStmt{Base: ast.At(pos), Millis: value}
	default:
		return p.exprOrAssignStmt()
	}
}

// exprOrAssignStmt parses either a bare expression statement or, when the
// parsed expression is followed by '=', an Assign statement with that
// expression as the target (spec.md §4.3 assignment targets: Identifier,
// MemberAccess, ArrayAccess).
func (p *Parser) exprOrAssignStmt() ast.Stmt {
	pos := p.tokens.Peek().Pos
	target := p.expression()
	if p.match(token.Equal) {
		value := p.expression()
		return ast.Assign{Base: ast.At(pos), Target: target, Value: value}
	}
	return ast.ExprStmt{Base: ast.At(pos), X: target}
}

func (p *Parser) ifChain() ast.Stmt {
	pos := p.advance().Pos // 'if'
	chain := ast.IfChain{Base: ast.At(pos)}

	cond := p.expression()
	p.expect(token.Then, "after if condition")
	body := p.blockUntilAny(token.Else, token.End)
	chain.Branches = append(chain.Branches, ast.IfCase{Cond: cond, Body: body})

	for p.match(token.Else) {
		if p.match(token.If) {
			cond := p.expression()
			p.expect(token.Then, "after else-if condition")
			body := p.blockUntilAny(token.Else, token.End)
			chain.Branches = append(chain.Branches, ast.IfCase{Cond: cond, Body: body})
			continue
		}
		body := p.blockUntil(token.End)
		chain.Branches = append(chain.Branches, ast.IfCase{Cond: nil, Body: body})
		break
	}
	p.expect(token.End, "to close if-chain")
	return chain
}

func (p *Parser) matchStmt() ast.Stmt {
	pos := p.advance().Pos // 'match'
	subject := p.expression()
	m := ast.Match{Base: ast.At(pos), Subject: subject}

	for p.check(token.Case) || p.check(token.Default) {
		if p.match(token.Case) {
			var values []ast.Expr
			values = append(values, p.expression())
			for p.match(token.Comma) {
				values = append(values, p.expression())
			}
			p.expect(token.Then, "after case value")
			body := p.blockUntil(token.End)
			p.expect(token.End, "to close case arm")
			m.Cases = append(m.Cases, ast.MatchCase{Values: values, Body: body})
			continue
		}
		p.advance() // 'default'
		p.expect(token.Then, "after default")
		body := p.blockUntil(token.End)
		p.expect(token.End, "to close default arm")
		m.Cases = append(m.Cases, ast.MatchCase{Body: body})
	}
	p.expect(token.End, "to close match")
	return m
}

func (p *Parser) whileStmt() ast.Stmt {
	pos := p.advance().Pos // 'while'
	cond := p.expression()
	p.expect(token.Do, "after while condition")
	body := p.blockUntil(token.End)
	p.expect(token.End, "to close while loop")
	return ast.WhileLoop{Base: ast.At(pos), Cond: cond, Body: body}
}

// forStmt parses both loop forms: `for x in expr do ... end` and
// `for x = from to to (step s)? do ... end`.
func (p *Parser) forStmt() ast.Stmt {
	pos := p.advance().Pos // 'for'
	name := p.expectIdent("after for")

	if p.match(token.In) {
		iterable := p.expression()
		p.expect(token.Do, "after for-in iterable")
		body := p.blockUntil(token.End)
		p.expect(token.End, "to close for-in loop")
		return ast.ForIn{Base: ast.At(pos), Var: name, Iterable: iterable, Body: body}
	}

	p.expect(token.Equal, "after for-range variable")
	from := p.expression()
	p.expect(token.To, "in for-range")
	to := p.expression()
	var step ast.Expr
	if p.match(token.Step) {
		step = p.expression()
	}
	p.expect(token.Do, "after for-range bound")
	body := p.blockUntil(token.End)
	p.expect(token.End, "to close for-range loop")
	return ast.ForRange{Base: ast.At(pos), Var: name, From: from, To: to, Step: step, Body: body}
}

func (p *Parser) returnStmt() ast.Stmt {
	pos := p.advance().Pos // 'return'
	if p.atStatementBoundary() {
		return ast.ReturnStmt{Base: ast.At(pos)}
	}
	value := p.expression()
	return ast.ReturnStmt{Base: ast.At(pos), Value: value}
}

// atStatementBoundary reports whether the cursor sits at a token that can
// only begin a new statement or close the enclosing block, used to detect
// a bare `return` with no expression.
func (p *Parser) atStatementBoundary() bool {
	switch p.tokens.Peek().Kind {
	case token.End, token.Else, token.Case, token.Default, token.EOF:
		return true
	default:
		return false
	}
}
