// Package errors defines the three positioned error taxonomies used across
// the LeoScript pipeline: lexer/parser syntax errors, compiler errors, and
// VM runtime errors. Each carries a source position and an optional
// wrapped Go-level cause, generalizing the single flat error type this
// package used to hold into one struct shared by all three categories.
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"leoscript/internal/token"
)

// Category distinguishes which stage of the pipeline raised the error.
type Category string

const (
	Syntax  Category = "SyntaxError"
	Compile Category = "CompileError"
	Runtime Category = "RuntimeError"
)

// StackFrame is a single entry of a captured call trace (spec.md §4.4.6).
type StackFrame struct {
	Function string
	Line     int
}

// Error is the common shape of every positioned error raised by this
// module. Kind is the taxonomy-specific tag named in spec.md §7
// (e.g. "VariableAlreadyDeclared", "GlobalNotFound", "UnexpectedToken").
type Error struct {
	Category  Category
	Kind      string
	Message   string
	Pos       token.Position
	File      string
	Source    string // the offending source line, if known
	Cause     error
	CallStack []StackFrame
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Category, e.Kind)
	if e.Message != "" {
		fmt.Fprintf(&sb, " (%s)", e.Message)
	}
	if e.Pos.Line > 0 {
		fmt.Fprintf(&sb, " at %d:%d", e.Pos.Line, e.Pos.Column)
	}
	if e.File != "" {
		fmt.Fprintf(&sb, " [%s]", e.File)
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "\n  %d | %s", e.Pos.Line, e.Source)
	}
	if len(e.CallStack) > 0 {
		sb.WriteString("\ncall trace:")
		for _, f := range e.CallStack {
			fmt.Fprintf(&sb, "\n  at %s:%d", f.Function, f.Line)
		}
	}
	return sb.String()
}

// Unwrap exposes the wrapped Go-level cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a positioned error of the given category and kind.
func New(cat Category, kind string, pos token.Position, message string) *Error {
	return &Error{Category: cat, Kind: kind, Pos: pos, Message: message}
}

// Wrap builds a positioned error that preserves an underlying Go error as
// its cause via github.com/pkg/errors' WithMessage, so errors.Is/As can
// still reach it. No Go-level stack is recorded, and the result's Error()
// renders only the positioned script-level message.
func Wrap(cat Category, kind string, pos token.Position, cause error, message string) *Error {
	return &Error{
		Category: cat,
		Kind:     kind,
		Pos:      pos,
		Message:  message,
		Cause:    pkgerrors.WithMessage(cause, message),
	}
}

// WithSource attaches the offending source line for display.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}

// WithFile attaches the originating file path.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// WithStack attaches a captured call-trace snapshot to a runtime error.
func (e *Error) WithStack(stack []StackFrame) *Error {
	e.CallStack = append([]StackFrame(nil), stack...)
	return e
}
