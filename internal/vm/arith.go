package vm

import (
	"leoscript/internal/bytecode"
	"leoscript/internal/value"
)

// execArith applies one of Add/Sub/Multiply/Divide/Pow. The second pop is
// the left operand (spec.md §4.4.2): the right-hand side was pushed last
// and so comes off the stack first.
func (t *Thread) execArith(op bytecode.Op) error {
	r, l := t.pop(), t.pop()
	var (
		result value.Variant
		err    error
	)
	switch op {
	case bytecode.OpAdd:
		result, err = value.Add(l, r)
	case bytecode.OpSub:
		result, err = value.Sub(l, r)
	case bytecode.OpMultiply:
		result, err = value.Mul(l, r)
	case bytecode.OpDivide:
		result, err = value.Div(l, r)
	case bytecode.OpPow:
		result, err = value.Pow(l, r)
	}
	if err != nil {
		return t.fail("ExpectedValueOnStack", "%v", err)
	}
	t.push(result)
	return nil
}

// execCompare applies one of LessThan/LessThanOrEqual/GreaterThan/
// GreaterThanOrEqual via value.Compare, producing a Bool.
func (t *Thread) execCompare(op bytecode.Op) error {
	r, l := t.pop(), t.pop()
	cmp, err := value.Compare(l, r)
	if err != nil {
		return t.fail("ExpectedValueOnStack", "%v", err)
	}
	var out bool
	switch op {
	case bytecode.OpLessThan:
		out = cmp < 0
	case bytecode.OpLessThanOrEqual:
		out = cmp <= 0
	case bytecode.OpGreaterThan:
		out = cmp > 0
	case bytecode.OpGreaterThanOrEqual:
		out = cmp >= 0
	}
	t.push(value.Boolean(out))
	return nil
}
