package errors

import (
	"errors"
	"strings"
	"testing"

	"leoscript/internal/token"
)

func TestErrorString(t *testing.T) {
	err := New(Syntax, "UnexpectedToken", token.Position{Line: 3, Column: 7}, "expected ')'")
	got := err.Error()
	for _, want := range []string{"SyntaxError", "UnexpectedToken", "expected ')'", "3:7"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestErrorWithSourceAndFile(t *testing.T) {
	err := New(Compile, "VariableAlreadyDeclared", token.Position{Line: 1, Column: 1}, "x").
		WithSource("let x = 1").
		WithFile("main.leo")
	got := err.Error()
	if !strings.Contains(got, "main.leo") || !strings.Contains(got, "let x = 1") {
		t.Fatalf("Error() = %q, expected file and source to appear", got)
	}
}

func TestErrorWithStack(t *testing.T) {
	err := New(Runtime, "GlobalNotFound", token.Position{}, "foo").
		WithStack([]StackFrame{{Function: "main", Line: 5}, {Function: "helper", Line: 2}})
	got := err.Error()
	if !strings.Contains(got, "main:5") || !strings.Contains(got, "helper:2") {
		t.Fatalf("Error() = %q, expected call trace entries", got)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(Runtime, "ImportFailed", token.Position{Line: 1}, cause, "could not resolve import")
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "ImportFailed") {
		t.Fatalf("Error() = %q, missing Kind", err.Error())
	}
}
