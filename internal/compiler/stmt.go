package compiler

import (
	"leoscript/internal/ast"
	"leoscript/internal/bytecode"
)

func (fu *funcUnit) compileStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case ast.VarDecl:
		return fu.compileVarDecl(n)
	case ast.Assign:
		return fu.compileAssign(n)
	case ast.ExprStmt:
		// The result, if any, is left on the operand stack: the instruction
		// set has no discard op, and Return's stack-pointer truncation
		// reclaims it once the enclosing function exits (spec.md §4.4.3).
		return fu.compileExpr(n.X)
	case ast.PrintStmt:
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
		fu.emit(bytecode.Print())
	case ast.SleepStmt:
		if err := fu.compileExpr(n.Millis); err != nil {
			return err
		}
		fu.emit(bytecode.Sleep())
	case ast.ReturnStmt:
		if n.Value != nil {
			if err := fu.compileExpr(n.Value); err != nil {
				return err
			}
			fu.emit(bytecode.Return(true))
		} else {
			fu.emit(bytecode.Return(false))
		}
	case ast.BreakStmt:
		return fu.compileBreak(n)
	case ast.ContinueStmt:
		return fu.compileContinue(n)
	case ast.IfChain:
		return fu.compileIfChain(n)
	case ast.Match:
		return fu.compileMatch(n)
	case ast.WhileLoop:
		return fu.compileWhile(n)
	case ast.ForRange:
		return fu.compileForRange(n)
	case ast.ForIn:
		return fu.compileForIn(n)
	default:
		return fu.c.fail("UnsupportedStatement", s.Pos(), "codegen has no case for this statement")
	}
	return nil
}

func (fu *funcUnit) compileVarDecl(n ast.VarDecl) error {
	slot, err := fu.declareLocal(n.Name, n.Pos())
	if err != nil {
		return err
	}
	if n.Value != nil {
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
	} else {
		fu.emit(bytecode.PushNull())
	}
	fu.emit(bytecode.MoveToLocalVariable(slot))
	return nil
}

// compileAssign lowers the assignable target shapes spec.md §4.3 allows
// (a bare local Identifier, a MemberAccess, an ArrayAccess) plus StaticAccess
// for writing a class's static attributes (see DESIGN.md O4).
func (fu *funcUnit) compileAssign(n ast.Assign) error {
	switch t := n.Target.(type) {
	case ast.Identifier:
		slot, ok := fu.lookupLocal(t.Name)
		if !ok {
			return fu.c.fail("VariableNotDeclared", t.Pos(), "variable %q is not declared", t.Name)
		}
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
		fu.emit(bytecode.MoveToLocalVariable(slot))
	case ast.MemberAccess:
		if err := fu.compileExpr(t.Target); err != nil {
			return err
		}
		fu.emit(bytecode.PushIdentifier(t.Name))
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
		fu.emit(bytecode.SetCollectionItem())
	case ast.StaticAccess:
		// Counter::total = ... writes through to the Class template's
		// Statics table (see DESIGN.md O4); the VM enforces
		// that only a static member name may be set this way.
		if err := fu.compileExpr(t.Target); err != nil {
			return err
		}
		fu.emit(bytecode.PushIdentifier(t.Name))
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
		fu.emit(bytecode.SetCollectionItem())
	case ast.ArrayAccess:
		if err := fu.compileExpr(t.Target); err != nil {
			return err
		}
		if err := fu.compileExpr(t.Index); err != nil {
			return err
		}
		if err := fu.compileExpr(n.Value); err != nil {
			return err
		}
		fu.emit(bytecode.SetCollectionItem())
	default:
		return fu.c.fail("UnableToAssignItem", n.Pos(), "this expression cannot be an assignment target")
	}
	return nil
}

func (fu *funcUnit) compileBreak(n ast.BreakStmt) error {
	if len(fu.loops) == 0 {
		return fu.c.fail("BreakOutsideOfLoop", n.Pos(), "'break' used outside of a loop")
	}
	ip := fu.emit(bytecode.NoOperation())
	lf := fu.loops[len(fu.loops)-1]
	lf.breaks = append(lf.breaks, ip)
	return nil
}

func (fu *funcUnit) compileContinue(n ast.ContinueStmt) error {
	if len(fu.loops) == 0 {
		return fu.c.fail("ContinueOutsideOfLoop", n.Pos(), "'continue' used outside of a loop")
	}
	ip := fu.emit(bytecode.NoOperation())
	lf := fu.loops[len(fu.loops)-1]
	lf.continues = append(lf.continues, ip)
	return nil
}

// compileIfChain compiles each conditioned branch as a test-then-body with
// a forward jump to the chain's end, and a trailing else (Cond == nil) as
// an unconditional fallthrough body (spec.md §4.3.2).
func (fu *funcUnit) compileIfChain(n ast.IfChain) error {
	var endJumps []int64
	for _, branch := range n.Branches {
		if branch.Cond == nil {
			for _, s := range branch.Body {
				if err := fu.compileStmt(s); err != nil {
					return err
				}
			}
			continue
		}
		if err := fu.compileExpr(branch.Cond); err != nil {
			return err
		}
		falseJump := fu.emit(bytecode.JumpForwardIfFalse(0))
		for _, s := range branch.Body {
			if err := fu.compileStmt(s); err != nil {
				return err
			}
		}
		endJump := fu.emit(bytecode.JumpForward(0))
		endJumps = append(endJumps, endJump)
		fu.patchJump(falseJump, fu.currentIP())
	}
	final := fu.currentIP()
	for _, ip := range endJumps {
		fu.patchJump(ip, final)
	}
	return nil
}

// compileMatch mirrors compileIfChain, synthesizing each case's condition
// as `subject == v1 or subject == v2 ...` and treating a value-less case
// (the `default` arm) as the unconditional fallthrough.
func (fu *funcUnit) compileMatch(n ast.Match) error {
	var endJumps []int64
	for _, c := range n.Cases {
		if len(c.Values) == 0 {
			for _, s := range c.Body {
				if err := fu.compileStmt(s); err != nil {
					return err
				}
			}
			continue
		}
		for i, v := range c.Values {
			if err := fu.compileExpr(n.Subject); err != nil {
				return err
			}
			if err := fu.compileExpr(v); err != nil {
				return err
			}
			fu.emit(bytecode.Equal())
			if i > 0 {
				fu.emit(bytecode.Or())
			}
		}
		falseJump := fu.emit(bytecode.JumpForwardIfFalse(0))
		for _, s := range c.Body {
			if err := fu.compileStmt(s); err != nil {
				return err
			}
		}
		endJump := fu.emit(bytecode.JumpForward(0))
		endJumps = append(endJumps, endJump)
		fu.patchJump(falseJump, fu.currentIP())
	}
	final := fu.currentIP()
	for _, ip := range endJumps {
		fu.patchJump(ip, final)
	}
	return nil
}

func (fu *funcUnit) compileWhile(n ast.WhileLoop) error {
	startIP := fu.currentIP()
	fu.pushLoop(startIP)
	if err := fu.compileExpr(n.Cond); err != nil {
		return err
	}
	falseJump := fu.emit(bytecode.JumpForwardIfFalse(0))
	for _, s := range n.Body {
		if err := fu.compileStmt(s); err != nil {
			return err
		}
	}
	back := fu.emit(bytecode.JumpBackward(0))
	fu.patchJump(back, startIP)
	endIP := fu.currentIP()
	fu.patchJump(falseJump, endIP)
	fu.popLoop(endIP)
	return nil
}

// compileForRange lowers `for x = from to to (step s)? do ... end` onto the
// iterator protocol: push (target, step, start) in that order so
// IteratorInit's pop order (start, step, target) lines up, then loop on
// IteratorNext (spec.md §4.3.1, §4.4.4).
func (fu *funcUnit) compileForRange(n ast.ForRange) error {
	if err := fu.compileExpr(n.To); err != nil {
		return err
	}
	if n.Step != nil {
		if err := fu.compileExpr(n.Step); err != nil {
			return err
		}
	} else {
		fu.emit(bytecode.PushInteger(1))
	}
	if err := fu.compileExpr(n.From); err != nil {
		return err
	}
	fu.emit(bytecode.IteratorInit())
	return fu.compileIteratorLoop(n.Var, n.Body)
}

// compileForIn lowers `for x in expr do ... end`: the iterable is the
// target, starting at index 0 and stepping by 1.
func (fu *funcUnit) compileForIn(n ast.ForIn) error {
	if err := fu.compileExpr(n.Iterable); err != nil {
		return err
	}
	fu.emit(bytecode.PushInteger(1))
	fu.emit(bytecode.PushInteger(0))
	fu.emit(bytecode.IteratorInit())
	return fu.compileIteratorLoop(n.Var, n.Body)
}

func (fu *funcUnit) compileIteratorLoop(varName string, body []ast.Stmt) error {
	slot := fu.declareLoopSlot(varName)
	headIP := fu.currentIP()
	fu.pushLoop(headIP)
	fu.emit(bytecode.IteratorNext(slot))
	falseJump := fu.emit(bytecode.JumpForwardIfFalse(0))
	for _, s := range body {
		if err := fu.compileStmt(s); err != nil {
			return err
		}
	}
	back := fu.emit(bytecode.JumpBackward(0))
	fu.patchJump(back, headIP)
	endIP := fu.currentIP()
	fu.patchJump(falseJump, endIP)
	fu.popLoop(endIP)
	return nil
}
