// Package stdlib builds the native Dictionary and String classes and the
// Math module (spec.md §4.4.5, SPEC_FULL.md §10), grounded directly on the wrapped-
// primitive convention used by leoscript-lib's own runtime stdlib
// (_examples/original_source/workspace/lib/src/runtime/stdlib/
// dictionary.rs, string.rs) and its stateless-module convention
// (.../lib/src/stdlib/math.rs).
package stdlib

import "leoscript/internal/value"

// Registrar is the subset of vm.Thread's host API stdlib needs: a place to
// install native functions and a place to bind the Class/Module templates
// that reference them by name.
type Registrar interface {
	RegisterNative(name string, fn value.NativeFunc)
	AddGlobal(name string, v value.Variant)
}

const valueField = "_value"

// getSelf returns args[0], the receiver or module convention every native
// function follows (spec.md §4.4.5).
func getSelf(args []value.Variant) (value.Variant, error) {
	if len(args) == 0 {
		return value.Null, errSelf
	}
	return args[0], nil
}

// getObjectValue reads the wrapped primitive out of a native object's
// reserved "_value" field, mirroring dictionary.rs's get_object_value.
func getObjectValue(self value.Variant) (value.Variant, error) {
	if self.Kind != value.KindObject {
		return value.Null, errSelf
	}
	v, ok := self.Obj.Fields[valueField]
	if !ok {
		return value.Null, errSelf
	}
	return v, nil
}

// setObjectValue writes v into the receiver's "_value" field, mirroring
// dictionary.rs's set_object_value.
func setObjectValue(self value.Variant, v value.Variant) error {
	if self.Kind != value.KindObject {
		return errSelf
	}
	self.Obj.Fields[valueField] = v
	return nil
}

// param returns args[i] or Null if the call omitted it, for optional
// constructor arguments (e.g. Dictionary()'s no-arg form).
func param(args []value.Variant, i int) value.Variant {
	if i < len(args) {
		return args[i]
	}
	return value.Null
}

// newNativeClassTemplate seeds the `_type` member every Class carries
// (spec.md §4.3.3), generalizing leoscript-lib's generic_native_class!()
// macro into a small Go helper shared by every stdlib class.
func newNativeClassTemplate(name string) *value.Class {
	return &value.Class{
		Name:    name,
		Members: map[string]value.Variant{"_type": value.Type(name)},
		Statics: map[string]value.Variant{},
	}
}

// Install registers every stdlib native function and binds the Dictionary,
// String, and Math templates as globals, in the order the original
// compiles them (dictionary, string, math).
func Install(r Registrar) {
	installDictionary(r)
	installString(r)
	installMath(r)
}
