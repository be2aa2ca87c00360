package compiler

import (
	"leoscript/internal/ast"
	"leoscript/internal/bytecode"
	"leoscript/internal/token"
)

// funcUnit compiles one function/constructor/anonymous-function body,
// owning the slot allocation and loop/break/continue bookkeeping scoped to
// that single body (spec.md §4.3.1: "Each function owns: locals").
type funcUnit struct {
	c    *Compiler
	prog *bytecode.Program

	name   string
	locals map[string]int64
	next   int64
	loops  []*loopFrame
}

func newFuncUnit(c *Compiler, name string) *funcUnit {
	return &funcUnit{c: c, prog: c.prog, name: name, locals: make(map[string]int64)}
}

func (fu *funcUnit) currentIP() int64 { return fu.prog.Len() }

func (fu *funcUnit) emit(instr bytecode.Instruction) int64 { return fu.prog.Append(instr) }

// declareParam seats a parameter in the next free slot without emitting any
// instruction; the VM places call arguments directly into Frame.Variables
// in declaration order.
func (fu *funcUnit) declareParam(name string) {
	fu.locals[name] = fu.next
	fu.next++
}

func (fu *funcUnit) lookupLocal(name string) (int64, bool) {
	slot, ok := fu.locals[name]
	return slot, ok
}

// declareLocal allocates a fresh slot for name, erroring if it was already
// declared in this function body (spec.md §7's VariableAlreadyDeclared).
func (fu *funcUnit) declareLocal(name string, pos token.Position) (int64, error) {
	if _, exists := fu.locals[name]; exists {
		return 0, fu.c.fail("VariableAlreadyDeclared", pos, "variable %q is already declared in this scope", name)
	}
	slot := fu.next
	fu.next++
	fu.locals[name] = slot
	return slot, nil
}

// declareLoopSlot allocates a slot for a for-loop's induction variable,
// reusing the existing slot when the same loop variable name is reused by a
// sibling or nested loop within the same function (the language has no
// block scoping below function level, so this is the natural shadowing
// rule rather than an error).
func (fu *funcUnit) declareLoopSlot(name string) int64 {
	if slot, ok := fu.locals[name]; ok {
		return slot
	}
	slot := fu.next
	fu.next++
	fu.locals[name] = slot
	return slot
}

// compileBody compiles params into locals, the statement list, and appends
// an implicit `return` with no value if the body doesn't already end with
// one, matching spec.md §4.3.1's prologue/epilogue shape: PushStackTrace,
// body, an always-reachable Return, PopStackTrace.
func (fu *funcUnit) compileBody(params []string, selfFirst bool, body []ast.Stmt, trace bytecode.StackTraceInfo) error {
	fu.emit(bytecode.PushStackTrace(trace))
	if selfFirst {
		fu.declareParam("self")
	}
	for _, p := range params {
		fu.declareParam(p)
	}
	for _, s := range body {
		if err := fu.compileStmt(s); err != nil {
			return err
		}
	}
	if !endsInReturn(body) {
		fu.emit(bytecode.Return(false))
	}
	fu.emit(bytecode.PopStackTrace())
	return nil
}

func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(ast.ReturnStmt)
	return ok
}
