package stdlib

import (
	"math"

	"leoscript/internal/value"
)

// installMath registers the native Math module: a stateless collection of
// pure functions of their arguments, generalizing the wrapped-primitive
// convention dictionary.go/string.go use for stateful native classes
// (SPEC_FULL.md §10) -- Math needs no "_value" receiver since it holds no
// per-instance state, so it is bound as a Module rather than a Class.
func installMath(r Registrar) {
	r.RegisterNative("std_math_abs", mathAbs)
	r.RegisterNative("std_math_floor", mathFloor)
	r.RegisterNative("std_math_ceil", mathCeil)
	r.RegisterNative("std_math_pow", mathPow)
	r.RegisterNative("std_math_sqrt", mathSqrt)
	r.RegisterNative("std_math_max", mathMax)
	r.RegisterNative("std_math_min", mathMin)

	mod := &value.Module{Name: "Math", Members: map[string]value.Variant{
		"_type": value.Type("Math"),
		"abs":   value.NativeFunctionRef("std_math_abs"),
		"floor": value.NativeFunctionRef("std_math_floor"),
		"ceil":  value.NativeFunctionRef("std_math_ceil"),
		"pow":   value.NativeFunctionRef("std_math_pow"),
		"sqrt":  value.NativeFunctionRef("std_math_sqrt"),
		"max":   value.NativeFunctionRef("std_math_max"),
		"min":   value.NativeFunctionRef("std_math_min"),
	}}
	r.AddGlobal("Math", value.NewModule(mod))
}

// mathOperand reads the numeric argument at index i as a float64, promoting
// Integer the way spec.md §3.5 promotes mixed-numeric arithmetic. args[0]
// is the Math module itself (every module function's implicit receiver,
// spec.md §4.4.5), so the first real argument is at index 1.
func mathOperand(args []value.Variant, i int) (float64, error) {
	if i >= len(args) {
		return 0, argError("ExpectedValueOnStack", "Math function missing a numeric argument")
	}
	switch args[i].Kind {
	case value.KindInteger:
		return float64(args[i].Int), nil
	case value.KindFloat:
		return args[i].Flt, nil
	default:
		return 0, argError("ExpectedValueOnStack", "Math function requires a numeric argument")
	}
}

// isIntegral reports whether args[i] was an Integer, so Math functions that
// preserve the input's numeric kind (abs, max, min) can return an Integer
// instead of always promoting to Float. floor and ceil always return an
// Integer.
func isIntegral(args []value.Variant, i int) bool {
	return i < len(args) && args[i].Kind == value.KindInteger
}

func mathAbs(args []value.Variant) (value.Variant, bool, error) {
	n, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	if isIntegral(args, 1) {
		return value.Int(int64(math.Abs(n))), true, nil
	}
	return value.Float(math.Abs(n)), true, nil
}

func mathFloor(args []value.Variant) (value.Variant, bool, error) {
	n, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	return value.Int(int64(math.Floor(n))), true, nil
}

func mathCeil(args []value.Variant) (value.Variant, bool, error) {
	n, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	return value.Int(int64(math.Ceil(n))), true, nil
}

func mathPow(args []value.Variant) (value.Variant, bool, error) {
	base, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	exp, err := mathOperand(args, 2)
	if err != nil {
		return value.Null, false, err
	}
	return value.Float(math.Pow(base, exp)), true, nil
}

func mathSqrt(args []value.Variant) (value.Variant, bool, error) {
	n, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	return value.Float(math.Sqrt(n)), true, nil
}

func mathMax(args []value.Variant) (value.Variant, bool, error) {
	a, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	b, err := mathOperand(args, 2)
	if err != nil {
		return value.Null, false, err
	}
	if isIntegral(args, 1) && isIntegral(args, 2) {
		return value.Int(int64(math.Max(a, b))), true, nil
	}
	return value.Float(math.Max(a, b)), true, nil
}

func mathMin(args []value.Variant) (value.Variant, bool, error) {
	a, err := mathOperand(args, 1)
	if err != nil {
		return value.Null, false, err
	}
	b, err := mathOperand(args, 2)
	if err != nil {
		return value.Null, false, err
	}
	if isIntegral(args, 1) && isIntegral(args, 2) {
		return value.Int(int64(math.Min(a, b))), true, nil
	}
	return value.Float(math.Min(a, b)), true, nil
}
