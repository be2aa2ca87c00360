// Package parser implements LeoScript's recursive-descent + Pratt-style
// parser (spec.md §4.2): it drives a lexer.Stream and produces an
// ast.Program. Parse errors are raised by panic and recovered at the
// Parse boundary, the same control-flow idiom the teacher's parser used.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"leoscript/internal/ast"
	"leoscript/internal/errors"
	"leoscript/internal/lexer"
	"leoscript/internal/token"
)

// precedence maps a binary operator token to its climbing priority, lowest
// to highest per spec.md §4.2's ten-level table. `^` is handled separately
// as right-associative.
var precedence = map[token.Kind]int{
	token.Or:           1,
	token.And:          2,
	token.EqualEqual:   3,
	token.NotEqual:     3,
	token.Less:         4,
	token.LessEqual:    4,
	token.Greater:      4,
	token.GreaterEqual: 4,
	token.Plus:         5,
	token.Minus:        5,
	token.Star:         6,
	token.Slash:        6,
}

var binOps = map[token.Kind]ast.BinOp{
	token.Or:           ast.OpOr,
	token.And:          ast.OpAnd,
	token.EqualEqual:   ast.OpEq,
	token.NotEqual:     ast.OpNe,
	token.Less:         ast.OpLt,
	token.LessEqual:    ast.OpLe,
	token.Greater:      ast.OpGt,
	token.GreaterEqual: ast.OpGe,
	token.Plus:         ast.OpAdd,
	token.Minus:        ast.OpSub,
	token.Star:         ast.OpMul,
	token.Slash:        ast.OpDiv,
}

type Parser struct {
	tokens      *lexer.Stream
	file        string
	sourceLines []string
	lambdaSeq   int
}

func New(tokens []token.Token, source, file string) *Parser {
	return &Parser{
		tokens:      lexer.NewStream(tokens),
		file:        file,
		sourceLines: strings.Split(source, "\n"),
	}
}

// Parse consumes the whole token stream and returns a Program, converting
// any parse-time panic into a returned *errors.Error.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*errors.Error); ok {
				err = perr
				return
			}
			panic(r)
		}
	}()

	var decls []ast.Stmt
	for !p.tokens.AtEOF() {
		decls = append(decls, p.topLevelDecl())
	}
	return &ast.Program{Decls: decls}, nil
}

// topLevelDecl parses one of the five script-scope constructs.
func (p *Parser) topLevelDecl() ast.Stmt {
	switch p.tokens.Peek().Kind {
	case token.Import:
		return p.importDecl()
	case token.Function:
		return p.functionDecl(false)
	case token.Class:
		return p.classDecl()
	case token.Module:
		return p.moduleDecl()
	case token.Enum:
		return p.enumDecl()
	default:
		p.fail("UnexpectedToken", fmt.Sprintf("expected import/function/class/module/enum, found %q", p.tokens.Peek().Lexeme))
		return nil
	}
}

// ---- token utilities ----

func (p *Parser) check(k token.Kind) bool { return p.tokens.Peek().Kind == k }

func (p *Parser) checkNext(k token.Kind) bool { return p.tokens.PeekAt(1).Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.tokens.Next()
		return true
	}
	return false
}

func (p *Parser) advance() token.Token { return p.tokens.Next() }

func (p *Parser) expect(k token.Kind, context string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	tok := p.tokens.Peek()
	p.fail("UnexpectedToken", fmt.Sprintf("expected %s %s, found %q", k, context, tok.Lexeme))
	return token.Token{}
}

func (p *Parser) expectIdent(context string) string {
	tok := p.expect(token.Ident, context)
	return tok.Lexeme
}

func (p *Parser) fail(kind, message string) {
	p.failAt(kind, p.tokens.Peek().Pos, message)
}

func (p *Parser) failAt(kind string, pos token.Position, message string) {
	e := errors.New(errors.Syntax, kind, pos, message)
	panic(p.decorate(e))
}

// failWrap is like failAt but preserves cause as the error's underlying
// Go-level cause, for syntax errors that originate from a failed standard
// library conversion (e.g. strconv rejecting a numeric literal).
func (p *Parser) failWrap(kind string, pos token.Position, cause error, message string) {
	e := errors.Wrap(errors.Syntax, kind, pos, cause, message)
	panic(p.decorate(e))
}

func (p *Parser) decorate(e *errors.Error) *errors.Error {
	if e.Pos.Line > 0 && e.Pos.Line <= len(p.sourceLines) {
		e = e.WithSource(p.sourceLines[e.Pos.Line-1])
	}
	if p.file != "" {
		e = e.WithFile(p.file)
	}
	return e
}

func (p *Parser) nextLambdaName() string {
	p.lambdaSeq++
	return fmt.Sprintf("lambda_%d", p.lambdaSeq)
}

func (p *Parser) parseIntLit(tok token.Token) int64 {
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.failWrap("InvalidNumberLiteral", tok.Pos, err, fmt.Sprintf("%q is not a valid integer literal", tok.Lexeme))
		return 0
	}
	return v
}

func (p *Parser) parseFloatLit(tok token.Token) float64 {
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.failWrap("InvalidNumberLiteral", tok.Pos, err, fmt.Sprintf("%q is not a valid float literal", tok.Lexeme))
		return 0
	}
	return v
}
