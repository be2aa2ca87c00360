package value

import (
	"fmt"
	"math"
)

// ArithError reports an operation attempted on a Variant pairing spec.md
// §3.5 does not define.
type ArithError struct {
	Op       string
	Lhs, Rhs Kind
}

func (e *ArithError) Error() string {
	return fmt.Sprintf("cannot %s %s and %s", e.Op, kindName(e.Lhs), kindName(e.Rhs))
}

func kindName(k Kind) string {
	return Variant{Kind: k}.TypeName()
}

// Add implements spec.md §3.5's addition table: integer/float arithmetic
// with promotion, string concatenation with any scalar, array concatenation,
// and boolean AND (not OR) for Bool+Bool.
func Add(lhs, rhs Variant) (Variant, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		return Int(lhs.Int + rhs.Int), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return Float(float64(lhs.Int) + rhs.Flt), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return Float(lhs.Flt + float64(rhs.Int)), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return Float(lhs.Flt + rhs.Flt), nil
	case lhs.Kind == KindString:
		return Str(lhs.Str + rhs.String()), nil
	case lhs.Kind == KindArray && rhs.Kind == KindArray:
		out := make([]Variant, 0, len(lhs.Arr.Elements)+len(rhs.Arr.Elements))
		out = append(out, lhs.Arr.Elements...)
		out = append(out, rhs.Arr.Elements...)
		return NewArray(out), nil
	case lhs.Kind == KindBool && rhs.Kind == KindBool:
		return Boolean(lhs.Bool && rhs.Bool), nil
	default:
		return Null, &ArithError{"add", lhs.Kind, rhs.Kind}
	}
}

// Sub implements integer/float subtraction with promotion; nothing else is
// defined.
func Sub(lhs, rhs Variant) (Variant, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		return Int(lhs.Int - rhs.Int), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return Float(float64(lhs.Int) - rhs.Flt), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return Float(lhs.Flt - float64(rhs.Int)), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return Float(lhs.Flt - rhs.Flt), nil
	default:
		return Null, &ArithError{"subtract", lhs.Kind, rhs.Kind}
	}
}

func Mul(lhs, rhs Variant) (Variant, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		return Int(lhs.Int * rhs.Int), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return Float(float64(lhs.Int) * rhs.Flt), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return Float(lhs.Flt * float64(rhs.Int)), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return Float(lhs.Flt * rhs.Flt), nil
	default:
		return Null, &ArithError{"multiply", lhs.Kind, rhs.Kind}
	}
}

// Div truncates toward zero for Integer/Integer, per spec.md §3.5.
func Div(lhs, rhs Variant) (Variant, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		if rhs.Int == 0 {
			return Null, &ArithError{"divide by zero in", lhs.Kind, rhs.Kind}
		}
		return Int(lhs.Int / rhs.Int), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return Float(float64(lhs.Int) / rhs.Flt), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return Float(lhs.Flt / float64(rhs.Int)), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return Float(lhs.Flt / rhs.Flt), nil
	default:
		return Null, &ArithError{"divide", lhs.Kind, rhs.Kind}
	}
}

func Pow(lhs, rhs Variant) (Variant, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		result := int64(1)
		base := lhs.Int
		for n := rhs.Int; n > 0; n-- {
			result *= base
		}
		return Int(result), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return Float(math.Pow(float64(lhs.Int), rhs.Flt)), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return Float(math.Pow(lhs.Flt, float64(rhs.Int))), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return Float(math.Pow(lhs.Flt, rhs.Flt)), nil
	default:
		return Null, &ArithError{"raise", lhs.Kind, rhs.Kind}
	}
}

// LogicalNot flips a Bool; any other Variant yields Bool(false), per
// spec.md §3.5.
func LogicalNot(v Variant) Variant {
	if v.Kind == KindBool {
		return Boolean(!v.Bool)
	}
	return Boolean(false)
}

// Compare orders (Integer,Integer) and (Float,Float) pairs only; mixed
// numerics promote the Integer to Float first, matching spec.md §3.4's
// equality/comparison rule.
func Compare(lhs, rhs Variant) (int, error) {
	switch {
	case lhs.Kind == KindInteger && rhs.Kind == KindInteger:
		return cmpInt64(lhs.Int, rhs.Int), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindFloat:
		return cmpFloat64(lhs.Flt, rhs.Flt), nil
	case lhs.Kind == KindInteger && rhs.Kind == KindFloat:
		return cmpFloat64(float64(lhs.Int), rhs.Flt), nil
	case lhs.Kind == KindFloat && rhs.Kind == KindInteger:
		return cmpFloat64(lhs.Flt, float64(rhs.Int)), nil
	default:
		return 0, &ArithError{"compare", lhs.Kind, rhs.Kind}
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
