package vm

import "leoscript/internal/value"

// NativeFunc is the signature every native function registered with a
// Thread must satisfy (spec.md §4.4.5). It is a type alias for
// value.NativeFunc, not a new defined type: stdlib.Registrar's
// RegisterNative method is declared against value.NativeFunc directly, and
// Go's interface satisfaction requires the parameter types to be
// identical, not merely assignable, for *Thread to implement that
// interface. The bool return stands in for spec.md's `Option<Variant>`:
// true means the call produced a value to push, false means nothing is
// pushed.
type NativeFunc = value.NativeFunc

// RegisterNative installs fn under name in the native-function table. Class
// and module templates reference it indirectly via a NativeFunctionRef(name)
// member; Call resolves the name against this table at dispatch time.
func (t *Thread) RegisterNative(name string, fn NativeFunc) {
	t.natives[name] = fn
}

// AddGlobal installs v under name in the Thread's global table, the same
// table LoadGlobal/FunctionRef resolution reads from. Used by stdlib
// installers to bind a Class/Module template (e.g. "Dictionary", "Math")
// alongside the compiled program's own globals.
func (t *Thread) AddGlobal(name string, v value.Variant) {
	t.globals[name] = v
}
