package parser

import (
	"testing"

	"leoscript/internal/ast"
	"leoscript/internal/lexer"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.NewScanner(source).ScanTokens()
	if err != nil {
		t.Fatalf("ScanTokens: unexpected error: %v", err)
	}
	prog, err := New(toks, source, "test.leo").Parse()
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return prog
}

func parseError(t *testing.T, source string) error {
	t.Helper()
	toks, err := lexer.NewScanner(source).ScanTokens()
	if err != nil {
		return err
	}
	_, err = New(toks, source, "test.leo").Parse()
	return err
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseSource(t, `
function add(a, b)
	return a + b
end
`)
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(prog.Decls))
	}
	fn, ok := prog.Decls[0].(ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Decls[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseClassWithStaticAttribute(t *testing.T) {
	prog := parseSource(t, `
class Counter
	attribute count = 0
	static attribute total = 0

	constructor()
		self.count = 0
	end

	static function reset()
	end
end
`)
	cls, ok := prog.Decls[0].(ast.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", prog.Decls[0])
	}
	if len(cls.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(cls.Attributes))
	}
	if cls.Attributes[0].Static {
		t.Fatalf("expected first attribute to be instance-level, got static")
	}
	if !cls.Attributes[1].Static || cls.Attributes[1].Name != "total" {
		t.Fatalf("expected second attribute to be static 'total', got %+v", cls.Attributes[1])
	}
	if cls.Constructor == nil {
		t.Fatal("expected a constructor")
	}
	if len(cls.Methods) != 1 || !cls.Methods[0].Static {
		t.Fatalf("expected one static method, got %+v", cls.Methods)
	}
}

func TestParseModuleDecl(t *testing.T) {
	prog := parseSource(t, `
module Shapes
	const Pi = 3.14

	function area(r)
		return Pi * r * r
	end
end
`)
	mod, ok := prog.Decls[0].(ast.ModuleDecl)
	if !ok {
		t.Fatalf("expected ModuleDecl, got %T", prog.Decls[0])
	}
	if len(mod.Constants) != 1 || mod.Constants[0].Name != "Pi" {
		t.Fatalf("unexpected constants: %+v", mod.Constants)
	}
	if len(mod.Functions) != 1 {
		t.Fatalf("unexpected functions: %+v", mod.Functions)
	}
}

func TestParseEnumDecl(t *testing.T) {
	prog := parseSource(t, `
enum Direction
	North
	South
	East
	West
end
`)
	en, ok := prog.Decls[0].(ast.EnumDecl)
	if !ok {
		t.Fatalf("expected EnumDecl, got %T", prog.Decls[0])
	}
	if len(en.Members) != 4 || en.Members[2].Name != "East" || en.Members[2].Ordinal != 2 {
		t.Fatalf("unexpected enum members: %+v", en.Members)
	}
}

func TestParseImportDecl(t *testing.T) {
	prog := parseSource(t, "import collections.stack\nfunction main()\nend\n")
	imp, ok := prog.Decls[0].(ast.ImportDecl)
	if !ok {
		t.Fatalf("expected ImportDecl, got %T", prog.Decls[0])
	}
	if imp.Path != "collections.stack" {
		t.Fatalf("unexpected import path: %q", imp.Path)
	}
}

func TestParseControlFlow(t *testing.T) {
	prog := parseSource(t, `
function classify(n)
	if n < 0 then
		return "negative"
	else
		return "non-negative"
	end

	while n > 0 do
		n = n - 1
	end

	for i = 0 to 10 step 1 do
		print i
	end

	match n
		case 0 then
			return "zero"
		end
		default then
			return "other"
		end
	end
end
`)
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	if err := parseError(t, "123"); err == nil {
		t.Fatal("expected a parse error for a bare numeric literal at top level")
	}
}

func TestParseUnterminatedBlockFails(t *testing.T) {
	if err := parseError(t, "function f()\nreturn 1\n"); err == nil {
		t.Fatal("expected a parse error for a function body missing its 'end'")
	}
}
