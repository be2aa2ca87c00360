package parser

import (
	"leoscript/internal/ast"
	"leoscript/internal/token"
)

func (p *Parser) importDecl() ast.Stmt {
	pos := p.advance().Pos // 'import'
	var parts []string
	parts = append(parts, p.expectIdent("after import"))
	for p.match(token.Dot) {
		parts = append(parts, p.expectIdent("after '.'"))
	}
	path := parts[0]
	for _, part := range parts[1:] {
		path += "." + part
	}
	return ast.ImportDecl{Base: ast.At(pos), Path: path}
}

func (p *Parser) functionDecl(static bool) ast.FunctionDecl {
	pos := p.advance().Pos // 'function'
	name := p.expectIdent("for function name")
	params := p.paramList()
	body := p.blockUntil(token.End)
	p.expect(token.End, "to close function body")
	return ast.FunctionDecl{Base: ast.At(pos), Name: name, Params: params, Body: body, Static: static}
}

func (p *Parser) constructorDecl() ast.ConstructorDecl {
	pos := p.advance().Pos // 'constructor'
	params := p.paramList()
	body := p.blockUntil(token.End)
	p.expect(token.End, "to close constructor body")
	return ast.ConstructorDecl{Base: ast.At(pos), Params: params, Body: body}
}

func (p *Parser) paramList() []string {
	p.expect(token.LParen, "to start parameter list")
	var params []string
	if !p.check(token.RParen) {
		params = append(params, p.expectIdent("as parameter name"))
		for p.match(token.Comma) {
			params = append(params, p.expectIdent("as parameter name"))
		}
	}
	p.expect(token.RParen, "to close parameter list")
	return params
}

func (p *Parser) classDecl() ast.Stmt {
	pos := p.advance().Pos // 'class'
	name := p.expectIdent("for class name")

	decl := ast.ClassDecl{Base: ast.At(pos), Name: name}
	for !p.check(token.End) {
		switch p.tokens.Peek().Kind {
		case token.Attribute:
			decl.Attributes = append(decl.Attributes, p.attributeDecl(false))
		case token.Constructor:
			ctor := p.constructorDecl()
			decl.Constructor = &ctor
		case token.Static:
			p.advance()
			if p.check(token.Attribute) {
				decl.Attributes = append(decl.Attributes, p.attributeDecl(true))
			} else {
				decl.Methods = append(decl.Methods, p.staticFunctionDecl())
			}
		case token.Function:
			decl.Methods = append(decl.Methods, p.functionDecl(false))
		default:
			p.fail("UnexpectedToken", "expected attribute/constructor/function inside class body")
		}
	}
	p.expect(token.End, "to close class body")
	return decl
}

// staticFunctionDecl parses a `static function ... end` method.
func (p *Parser) staticFunctionDecl() ast.FunctionDecl {
	return p.functionDecl(true)
}

func (p *Parser) moduleDecl() ast.Stmt {
	pos := p.advance().Pos // 'module'
	name := p.expectIdent("for module name")

	decl := ast.ModuleDecl{Base: ast.At(pos), Name: name}
	for !p.check(token.End) {
		switch p.tokens.Peek().Kind {
		case token.Const:
			decl.Constants = append(decl.Constants, p.constDecl())
		case token.Function:
			decl.Functions = append(decl.Functions, p.functionDecl(false))
		case token.Class:
			decl.Classes = append(decl.Classes, p.classDecl().(ast.ClassDecl))
		default:
			p.fail("UnexpectedToken", "expected const/function/class inside module body")
		}
	}
	p.expect(token.End, "to close module body")
	return decl
}

func (p *Parser) enumDecl() ast.Stmt {
	pos := p.advance().Pos // 'enum'
	name := p.expectIdent("for enum name")
	var members []ast.EnumMember
	ordinal := 0
	for !p.check(token.End) {
		memberName := p.expectIdent("as enum member")
		members = append(members, ast.EnumMember{Name: memberName, Ordinal: ordinal})
		ordinal++
	}
	p.expect(token.End, "to close enum body")
	return ast.EnumDecl{Base: ast.At(pos), Name: name, Members: members}
}

func (p *Parser) attributeDecl(static bool) ast.AttributeDecl {
	pos := p.advance().Pos // 'attribute'
	name := p.expectIdent("for attribute name")
	var def ast.Expr
	if p.match(token.Equal) {
		def = p.expression()
	}
	return ast.AttributeDecl{Base: ast.At(pos), Name: name, Default: def, Static: static}
}

func (p *Parser) constDecl() ast.ConstDecl {
	pos := p.advance().Pos // 'const'
	name := p.expectIdent("for const name")
	p.expect(token.Equal, "after const name")
	value := p.expression()
	return ast.ConstDecl{Base: ast.At(pos), Name: name, Value: value}
}

func (p *Parser) varDecl() ast.Stmt {
	pos := p.advance().Pos // 'var'
	name := p.expectIdent("for variable name")
	var value ast.Expr
	if p.match(token.Equal) {
		value = p.expression()
	}
	return ast.VarDecl{Base: ast.At(pos), Name: name, Value: value}
}
