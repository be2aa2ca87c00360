package stdlib

import (
	"strings"

	"leoscript/internal/value"
)

// installString registers the native String class: a stateful wrapper
// around a Go string, grounded on _examples/original_source/workspace/
// lib/src/runtime/stdlib/string.rs for constructor/length. upper/lower/
// split are SPEC_FULL.md §10 additions, written in the same wrapped-
// primitive idiom since the original only shows length().
func installString(r Registrar) {
	r.RegisterNative("std_string_constructor", stringConstructor)
	r.RegisterNative("std_string_length", stringLength)
	r.RegisterNative("std_string_upper", stringUpper)
	r.RegisterNative("std_string_lower", stringLower)
	r.RegisterNative("std_string_split", stringSplit)

	cls := newNativeClassTemplate("String")
	cls.Members["constructor"] = value.NativeFunctionRef("std_string_constructor")
	cls.Members["length"] = value.NativeFunctionRef("std_string_length")
	cls.Members["upper"] = value.NativeFunctionRef("std_string_upper")
	cls.Members["lower"] = value.NativeFunctionRef("std_string_lower")
	cls.Members["split"] = value.NativeFunctionRef("std_string_split")
	cls.Ctor = cls.Members["constructor"]
	r.AddGlobal("String", value.NewClass(cls))
}

func stringConstructor(args []value.Variant) (value.Variant, bool, error) {
	self, err := getSelf(args)
	if err != nil {
		return value.Null, false, err
	}
	init := value.Str("")
	if len(args) > 1 && args[1].Kind == value.KindString {
		init = args[1]
	}
	if err := setObjectValue(self, init); err != nil {
		return value.Null, false, err
	}
	return self, true, nil
}

func stringValue(args []value.Variant) (string, error) {
	self, err := getSelf(args)
	if err != nil {
		return "", err
	}
	v, err := getObjectValue(self)
	if err != nil {
		return "", err
	}
	if v.Kind != value.KindString {
		return "", errSelf
	}
	return v.Str, nil
}

func stringLength(args []value.Variant) (value.Variant, bool, error) {
	s, err := stringValue(args)
	if err != nil {
		return value.Null, false, err
	}
	return value.Int(int64(len(s))), true, nil
}

func stringUpper(args []value.Variant) (value.Variant, bool, error) {
	s, err := stringValue(args)
	if err != nil {
		return value.Null, false, err
	}
	return value.Str(strings.ToUpper(s)), true, nil
}

func stringLower(args []value.Variant) (value.Variant, bool, error) {
	s, err := stringValue(args)
	if err != nil {
		return value.Null, false, err
	}
	return value.Str(strings.ToLower(s)), true, nil
}

func stringSplit(args []value.Variant) (value.Variant, bool, error) {
	s, err := stringValue(args)
	if err != nil {
		return value.Null, false, err
	}
	sep := ""
	if len(args) > 1 && args[1].Kind == value.KindString {
		sep = args[1].Str
	}
	var parts []string
	if sep == "" {
		parts = strings.Split(s, "")
	} else {
		parts = strings.Split(s, sep)
	}
	elems := make([]value.Variant, len(parts))
	for i, p := range parts {
		elems[i] = value.Str(p)
	}
	return value.NewArray(elems), true, nil
}
