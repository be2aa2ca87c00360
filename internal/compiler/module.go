package compiler

import (
	"leoscript/internal/ast"
	"leoscript/internal/value"
)

// compileModule lowers a module to a Module template (spec.md §4.3.4):
// constants, nested functions (each receiving an implicit `self` bound to
// the module), and nested classes, all installed under their declared
// names.
func (c *Compiler) compileModule(decl ast.ModuleDecl) (value.Variant, error) {
	mod := &value.Module{Name: decl.Name, Members: make(map[string]value.Variant)}
	mod.Members["_type"] = value.Type(decl.Name)

	for _, cd := range decl.Constants {
		v, err := c.constEval(cd.Value)
		if err != nil {
			return value.Variant{}, err
		}
		mod.Members[cd.Name] = v
	}
	for _, fn := range decl.Functions {
		ip, err := c.compileFunction(decl.Name+"."+fn.Name, fn.Params, fn.Body, true)
		if err != nil {
			return value.Variant{}, err
		}
		mod.Members[fn.Name] = value.FunctionPointer(ip)
	}
	for _, cls := range decl.Classes {
		v, err := c.compileClass(cls)
		if err != nil {
			return value.Variant{}, err
		}
		mod.Members[cls.Name] = v
	}

	return value.NewModule(mod), nil
}

// constEval evaluates the restricted constant-expression subset allowed in
// a module's `const` initializer: literals, arrays of constants, unary
// `not`, and binary operators over other constants. Anything else (a call,
// a variable reference, a lambda) isn't a compile-time constant.
func (c *Compiler) constEval(e ast.Expr) (value.Variant, error) {
	switch n := e.(type) {
	case ast.Null:
		return value.Null, nil
	case ast.IntegerLit:
		return value.Int(n.Value), nil
	case ast.FloatLit:
		return value.Float(n.Value), nil
	case ast.BoolLit:
		return value.Boolean(n.Value), nil
	case ast.StringLit:
		return value.Str(n.Value), nil
	case ast.ArrayLit:
		elems := make([]value.Variant, len(n.Elements))
		for i, el := range n.Elements {
			v, err := c.constEval(el)
			if err != nil {
				return value.Variant{}, err
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil
	case ast.Not:
		v, err := c.constEval(n.Operand)
		if err != nil {
			return value.Variant{}, err
		}
		return value.LogicalNot(v), nil
	case ast.Binary:
		l, err := c.constEval(n.Left)
		if err != nil {
			return value.Variant{}, err
		}
		r, err := c.constEval(n.Right)
		if err != nil {
			return value.Variant{}, err
		}
		return c.constEvalBinary(n, l, r)
	default:
		return value.Variant{}, c.fail("InvalidExpressionItem", e.Pos(), "const initializer must be a compile-time constant")
	}
}

func (c *Compiler) constEvalBinary(n ast.Binary, l, r value.Variant) (value.Variant, error) {
	switch n.Op {
	case ast.OpAdd:
		v, err := value.Add(l, r)
		return c.wrapArith(n, v, err)
	case ast.OpSub:
		v, err := value.Sub(l, r)
		return c.wrapArith(n, v, err)
	case ast.OpMul:
		v, err := value.Mul(l, r)
		return c.wrapArith(n, v, err)
	case ast.OpDiv:
		v, err := value.Div(l, r)
		return c.wrapArith(n, v, err)
	case ast.OpPow:
		v, err := value.Pow(l, r)
		return c.wrapArith(n, v, err)
	case ast.OpAnd:
		return value.Boolean(l.IsTruthy() && r.IsTruthy()), nil
	case ast.OpOr:
		return value.Boolean(l.IsTruthy() || r.IsTruthy()), nil
	case ast.OpEq:
		return value.Boolean(value.Equal(l, r)), nil
	case ast.OpNe:
		return value.Boolean(!value.Equal(l, r)), nil
	default:
		cmp, err := value.Compare(l, r)
		if err != nil {
			return value.Variant{}, c.fail("InvalidExpressionItem", n.Pos(), "%v", err)
		}
		switch n.Op {
		case ast.OpLt:
			return value.Boolean(cmp < 0), nil
		case ast.OpLe:
			return value.Boolean(cmp <= 0), nil
		case ast.OpGt:
			return value.Boolean(cmp > 0), nil
		case ast.OpGe:
			return value.Boolean(cmp >= 0), nil
		}
		return value.Variant{}, c.fail("InvalidExpressionItem", n.Pos(), "unknown operator %q", n.Op)
	}
}

func (c *Compiler) wrapArith(n ast.Binary, v value.Variant, err error) (value.Variant, error) {
	if err != nil {
		return value.Variant{}, c.fail("InvalidExpressionItem", n.Pos(), "%v", err)
	}
	return v, nil
}
