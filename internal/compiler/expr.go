package compiler

import (
	"leoscript/internal/ast"
	"leoscript/internal/bytecode"
	"leoscript/internal/value"
)

var binOpInstr = map[ast.BinOp]func() bytecode.Instruction{
	ast.OpAdd: bytecode.Add,
	ast.OpSub: bytecode.Sub,
	ast.OpMul: bytecode.Multiply,
	ast.OpDiv: bytecode.Divide,
	ast.OpPow: bytecode.Pow,
	ast.OpEq:  bytecode.Equal,
	ast.OpNe:  bytecode.NotEqual,
	ast.OpLt:  bytecode.LessThan,
	ast.OpLe:  bytecode.LessThanOrEqual,
	ast.OpGt:  bytecode.GreaterThan,
	ast.OpGe:  bytecode.GreaterThanOrEqual,
	ast.OpAnd: bytecode.And,
	ast.OpOr:  bytecode.Or,
}

func (fu *funcUnit) compileExpr(e ast.Expr) error {
	switch n := e.(type) {
	case ast.Null:
		fu.emit(bytecode.PushNull())
	case ast.IntegerLit:
		fu.emit(bytecode.PushInteger(n.Value))
	case ast.FloatLit:
		fu.emit(bytecode.PushFloat(n.Value))
	case ast.BoolLit:
		fu.emit(bytecode.PushBool(n.Value))
	case ast.StringLit:
		fu.emit(bytecode.PushString(n.Value))
	case ast.ArrayLit:
		for _, el := range n.Elements {
			if err := fu.compileExpr(el); err != nil {
				return err
			}
		}
		fu.emit(bytecode.CreateCollectionAsArray(int64(len(n.Elements))))
	case ast.DictLit:
		for _, entry := range n.Entries {
			fu.emit(bytecode.PushString(entry.Key))
			if err := fu.compileExpr(entry.Value); err != nil {
				return err
			}
		}
		fu.emit(bytecode.CreateCollectionAsDictionary(int64(len(n.Entries))))
	case ast.Identifier:
		if slot, ok := fu.lookupLocal(n.Name); ok {
			fu.emit(bytecode.LoadLocalVariable(slot))
		} else {
			fu.emit(bytecode.LoadGlobal(n.Name))
		}
	case ast.MemberAccess:
		if err := fu.compileExpr(n.Target); err != nil {
			return err
		}
		fu.emit(bytecode.PushIdentifier(n.Name))
		fu.emit(bytecode.LoadMember())
	case ast.StaticAccess:
		if err := fu.compileExpr(n.Target); err != nil {
			return err
		}
		fu.emit(bytecode.PushIdentifier(n.Name))
		fu.emit(bytecode.GetCollectionItem())
	case ast.ArrayAccess:
		if err := fu.compileExpr(n.Target); err != nil {
			return err
		}
		if err := fu.compileExpr(n.Index); err != nil {
			return err
		}
		fu.emit(bytecode.GetCollectionItem())
	case ast.Binary:
		if err := fu.compileExpr(n.Left); err != nil {
			return err
		}
		if err := fu.compileExpr(n.Right); err != nil {
			return err
		}
		ctor, ok := binOpInstr[n.Op]
		if !ok {
			return fu.c.fail("UnknownOperator", n.Pos(), "unknown binary operator %q", n.Op)
		}
		fu.emit(ctor())
	case ast.Not:
		if err := fu.compileExpr(n.Operand); err != nil {
			return err
		}
		fu.emit(bytecode.Not())
	case ast.Call:
		return fu.compileCall(n)
	case ast.NewObject:
		return fu.compileNewObject(n)
	case ast.AnonFunction:
		return fu.compileAnonFunction(n)
	default:
		return fu.c.fail("UnsupportedExpression", e.Pos(), "codegen has no case for this expression")
	}
	return nil
}

// compileCall lowers a call, special-casing a MemberAccess target so the
// receiver LoadMember leaves on the stack is folded into argc as an
// implicit first argument (spec.md §4.3.1).
func (fu *funcUnit) compileCall(n ast.Call) error {
	argc := int64(len(n.Args))
	if ma, ok := n.Target.(ast.MemberAccess); ok {
		if err := fu.compileExpr(ma.Target); err != nil {
			return err
		}
		fu.emit(bytecode.PushIdentifier(ma.Name))
		fu.emit(bytecode.LoadMember())
		argc++
	} else if err := fu.compileExpr(n.Target); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := fu.compileExpr(a); err != nil {
			return err
		}
	}
	fu.emit(bytecode.Call(argc))
	return nil
}

// compileNewObject lowers `new Target(args)`: instantiate the class
// template into a fresh Object, then call its constructor method the same
// way any other member call is compiled, with the new Object as receiver.
func (fu *funcUnit) compileNewObject(n ast.NewObject) error {
	if err := fu.compileExpr(n.Target); err != nil {
		return err
	}
	fu.emit(bytecode.CreateObject())
	fu.emit(bytecode.PushIdentifier("constructor"))
	fu.emit(bytecode.LoadMember())
	for _, a := range n.Args {
		if err := fu.compileExpr(a); err != nil {
			return err
		}
	}
	fu.emit(bytecode.Call(int64(len(n.Args)) + 1))
	return nil
}

// compileAnonFunction compiles a lambda body in place behind a JumpForward
// that carries the enclosing function past it, registers it in the
// program's globals table under its synthetic name (the only place the
// VM looks up a FunctionRef at call time), and pushes a reference to it in
// the enclosing expression.
func (fu *funcUnit) compileAnonFunction(n ast.AnonFunction) error {
	skip := fu.emit(bytecode.JumpForward(0))
	ip, err := fu.c.compileFunction(n.Name, n.Params, n.Body, false)
	if err != nil {
		return err
	}
	fu.patchJump(skip, fu.currentIP())
	fu.c.prog.Globals[n.Name] = value.FunctionPointer(ip)
	fu.emit(bytecode.PushFunctionRef(n.Name))
	return nil
}
