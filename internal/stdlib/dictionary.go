package stdlib

import "leoscript/internal/value"

// installDictionary registers the native Dictionary class: a stateful
// wrapper around value.Map, grounded on _examples/original_source/
// workspace/lib/src/runtime/stdlib/dictionary.rs. contains_key/remove/
// clear/keys/values are carried over from the original even though
// spec.md's S6 scenario only exercises get/set/length (SPEC_FULL.md §10).
func installDictionary(r Registrar) {
	r.RegisterNative("std_dictionary_constructor", dictConstructor)
	r.RegisterNative("std_dictionary_get", dictGet)
	r.RegisterNative("std_dictionary_set", dictSet)
	r.RegisterNative("std_dictionary_length", dictLength)
	r.RegisterNative("std_dictionary_remove", dictRemove)
	r.RegisterNative("std_dictionary_clear", dictClear)
	r.RegisterNative("std_dictionary_keys", dictKeys)
	r.RegisterNative("std_dictionary_values", dictValues)
	r.RegisterNative("std_dictionary_contains_key", dictContainsKey)

	cls := newNativeClassTemplate("Dictionary")
	cls.Members["constructor"] = value.NativeFunctionRef("std_dictionary_constructor")
	cls.Members["get"] = value.NativeFunctionRef("std_dictionary_get")
	cls.Members["set"] = value.NativeFunctionRef("std_dictionary_set")
	cls.Members["length"] = value.NativeFunctionRef("std_dictionary_length")
	cls.Members["remove"] = value.NativeFunctionRef("std_dictionary_remove")
	cls.Members["clear"] = value.NativeFunctionRef("std_dictionary_clear")
	cls.Members["keys"] = value.NativeFunctionRef("std_dictionary_keys")
	cls.Members["values"] = value.NativeFunctionRef("std_dictionary_values")
	cls.Members["contains_key"] = value.NativeFunctionRef("std_dictionary_contains_key")
	cls.Ctor = cls.Members["constructor"]
	r.AddGlobal("Dictionary", value.NewClass(cls))
}

func dictConstructor(args []value.Variant) (value.Variant, bool, error) {
	self, err := getSelf(args)
	if err != nil {
		return value.Null, false, err
	}
	m := value.NewMap()
	if len(args) > 1 && args[1].Kind == value.KindMap {
		for _, k := range args[1].Map.Keys() {
			v, _ := args[1].Map.Get(k)
			m.Set(k, v)
		}
	}
	if err := setObjectValue(self, value.NewMapVariant(m)); err != nil {
		return value.Null, false, err
	}
	return self, true, nil
}

func dictKey(args []value.Variant) (string, error) {
	if len(args) < 2 || args[1].Kind != value.KindString {
		return "", argError("InvalidDictionaryKey", "Dictionary method requires a String key")
	}
	return args[1].Str, nil
}

func dictMap(args []value.Variant) (*value.Map, error) {
	self, err := getSelf(args)
	if err != nil {
		return nil, err
	}
	v, err := getObjectValue(self)
	if err != nil {
		return nil, err
	}
	if v.Kind != value.KindMap {
		return nil, errSelf
	}
	return v.Map, nil
}

func dictGet(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	key, err := dictKey(args)
	if err != nil {
		return value.Null, false, err
	}
	v, ok := m.Get(key)
	if !ok {
		return value.Null, false, argError("InvalidObjectMember", "Dictionary has no key "+key)
	}
	return v, true, nil
}

func dictSet(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	key, err := dictKey(args)
	if err != nil {
		return value.Null, false, err
	}
	if len(args) < 3 {
		return value.Null, false, argError("InvalidObjectMember", "Dictionary.set requires a value")
	}
	m.Set(key, args[2])
	return value.Null, false, nil
}

func dictLength(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	return value.Int(int64(m.Len())), true, nil
}

func dictRemove(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	key, err := dictKey(args)
	if err != nil {
		return value.Null, false, err
	}
	m.Delete(key)
	return value.Null, false, nil
}

func dictClear(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	m.Clear()
	return value.Null, false, nil
}

func dictKeys(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	keys := m.Keys()
	elems := make([]value.Variant, len(keys))
	for i, k := range keys {
		elems[i] = value.Str(k)
	}
	return value.NewArray(elems), true, nil
}

func dictValues(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	return value.NewArray(m.Values()), true, nil
}

func dictContainsKey(args []value.Variant) (value.Variant, bool, error) {
	m, err := dictMap(args)
	if err != nil {
		return value.Null, false, err
	}
	key, err := dictKey(args)
	if err != nil {
		return value.Null, false, err
	}
	_, ok := m.Get(key)
	return value.Boolean(ok), true, nil
}
