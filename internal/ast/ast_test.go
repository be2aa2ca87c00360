package ast

import "testing"

func TestWalkVisitsEveryNode(t *testing.T) {
	prog := Program{
		Decls: []Stmt{
			FunctionDecl{
				Name:   "add",
				Params: []string{"a", "b"},
				Body: []Stmt{
					ReturnStmt{Value: Binary{
						Op:    OpAdd,
						Left:  Identifier{Name: "a"},
						Right: Identifier{Name: "b"},
					}},
				},
			},
		},
	}

	var kinds []string
	Walk(prog, func(n Node) {
		switch n.(type) {
		case Program:
			kinds = append(kinds, "Program")
		case FunctionDecl:
			kinds = append(kinds, "FunctionDecl")
		case ReturnStmt:
			kinds = append(kinds, "ReturnStmt")
		case Binary:
			kinds = append(kinds, "Binary")
		case Identifier:
			kinds = append(kinds, "Identifier")
		}
	})

	want := []string{"Program", "FunctionDecl", "ReturnStmt", "Binary", "Identifier", "Identifier"}
	if len(kinds) != len(want) {
		t.Fatalf("Walk visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("node %d: got %s, want %s (full: %v)", i, kinds[i], want[i], kinds)
		}
	}
}

func TestWalkNilIsNoop(t *testing.T) {
	called := false
	Walk(nil, func(Node) { called = true })
	if called {
		t.Fatal("Walk(nil, ...) should not invoke fn")
	}
}

func TestWalkClassDeclVisitsAttributesConstructorAndMethods(t *testing.T) {
	cls := ClassDecl{
		Name: "Counter",
		Attributes: []AttributeDecl{
			{Name: "count", Default: IntegerLit{Value: 0}},
		},
		Constructor: &ConstructorDecl{Body: []Stmt{ReturnStmt{}}},
		Methods: []FunctionDecl{
			{Name: "reset", Static: true, Body: []Stmt{ReturnStmt{}}},
		},
	}

	count := 0
	Walk(cls, func(Node) { count++ })

	// ClassDecl + AttributeDecl + IntegerLit + ConstructorDecl + ReturnStmt +
	// FunctionDecl + ReturnStmt = 7
	if count != 7 {
		t.Fatalf("Walk visited %d nodes, want 7", count)
	}
}
