// Package value defines Variant, the single runtime value representation
// shared by the code generator and the VM (spec.md §3.4), together with
// the Counter iterator state (§3.6) and the call Frame (§3.7).
package value

import (
	"fmt"
	"math"
)

// NativeFunc is the signature every native function bridges through
// (spec.md §4.4.5): it receives the full argument buffer (args[0] is the
// receiver for a method call, or the module itself for a module function)
// and returns an optional value plus an error. Defined here, rather than
// in vm or stdlib, so both packages can share one identical named type:
// vm.Thread.RegisterNative and stdlib.Registrar must agree on the exact
// parameter type for *vm.Thread to satisfy stdlib.Registrar.
type NativeFunc func(args []Variant) (Variant, bool, error)

// Kind discriminates the Variant union.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindString
	KindArray
	KindMap
	KindEnum
	KindModule
	KindClass
	KindObject
	KindFunctionRef
	KindFunctionPointer
	KindNativeFunctionRef
	KindIterator
	KindIdentifier
	KindType
)

// Class is a template: a class's member table, built once by the code
// generator and never mutated afterward. Objects are cloned from it. Its
// Statics table is the one mutable part: SetCollectionItem overwrites it.
type Class struct {
	Name       string
	Members    map[string]Variant // methods (FunctionPointer) and instance attributes (Null until the constructor runs)
	Statics    map[string]Variant // shared static attributes, not cloned per Object
	Ctor       Variant            // FunctionPointer, or NativeFunctionRef for stdlib classes
}

// Object is a shared, mutable instance cloned from a Class template. Go's
// pointer semantics give the reference-counted aliasing spec.md §3.4
// describes for free: copies of a Variant holding an *Object alias the same
// backing Fields map without any explicit refcount or RefCell wrapper.
type Object struct {
	Class  *Class
	Fields map[string]Variant
}

// Module is an immutable mapping of name to member Variant (constants,
// functions, nested classes), built once by the code generator.
type Module struct {
	Name    string
	Members map[string]Variant
}

// Enum is a mapping of member name to ordinal.
type Enum struct {
	Name    string
	Members map[string]int
}

// Array is the ordered, resizable backing store of an Array Variant. It is
// a pointer type so VM-level aliasing (two Variants over the same array,
// as the host language also allows) works without extra wrapping.
type Array struct {
	Elements []Variant
}

// Map is the backing store of a Map Variant: an insertion-ordered mapping
// of string keys to Variants. Order isn't part of any guarantee (spec.md
// §3.6 says map-iteration order is unspecified) but keeping insertion order
// makes `Iterator` behavior deterministic within a single run, which is
// convenient for tests even though it's not a promise to user code.
type Map struct {
	keys   []string
	values map[string]Variant
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Variant)}
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Variant, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set inserts or overwrites key, recording insertion order for new keys.
func (m *Map) Set(key string, v Variant) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.keys = nil
	m.values = make(map[string]Variant)
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Values returns the values in the same order as Keys.
func (m *Map) Values() []Variant {
	out := make([]Variant, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.values[k]
	}
	return out
}

// Variant is the single tagged-union runtime value. Only the field(s)
// matching Kind are meaningful; the rest are zero. A struct-of-fields
// union is the idiomatic Go rendering of spec.md's Rust-shaped enum: it
// avoids an interface{} box and a type-switch per access while keeping
// Variant comparable for primitives.
type Variant struct {
	Kind Kind

	Int  int64
	Flt  float64
	Bool bool
	Str  string // String, FunctionRef name, NativeFunctionRef name, Identifier name, Type name
	IP   int64  // FunctionPointer absolute instruction index

	Arr    *Array
	Map    *Map
	En     *Enum
	Mod    *Module
	Cls    *Class
	Obj    *Object
	Iter   *Counter
}

// Null is the canonical null Variant.
var Null = Variant{Kind: KindNull}

func Int(v int64) Variant    { return Variant{Kind: KindInteger, Int: v} }
func Float(v float64) Variant { return Variant{Kind: KindFloat, Flt: v} }
func Boolean(v bool) Variant  { return Variant{Kind: KindBool, Bool: v} }
func Str(v string) Variant   { return Variant{Kind: KindString, Str: v} }
func Ident(v string) Variant { return Variant{Kind: KindIdentifier, Str: v} }
func Type(v string) Variant  { return Variant{Kind: KindType, Str: v} }
func FunctionRef(name string) Variant       { return Variant{Kind: KindFunctionRef, Str: name} }
func FunctionPointer(ip int64) Variant      { return Variant{Kind: KindFunctionPointer, IP: ip} }
func NativeFunctionRef(name string) Variant { return Variant{Kind: KindNativeFunctionRef, Str: name} }

func NewArray(elems []Variant) Variant {
	return Variant{Kind: KindArray, Arr: &Array{Elements: elems}}
}

func NewMapVariant(m *Map) Variant { return Variant{Kind: KindMap, Map: m} }
func NewEnum(e *Enum) Variant      { return Variant{Kind: KindEnum, En: e} }
func NewModule(m *Module) Variant  { return Variant{Kind: KindModule, Mod: m} }
func NewClass(c *Class) Variant    { return Variant{Kind: KindClass, Cls: c} }
func NewObject(o *Object) Variant  { return Variant{Kind: KindObject, Obj: o} }
func NewIterator(c *Counter) Variant { return Variant{Kind: KindIterator, Iter: c} }

// IsTruthy reports whether v is Bool(true). Used by JumpForwardIfFalse.
func (v Variant) IsTruthy() bool {
	return v.Kind == KindBool && v.Bool
}

// TypeName returns the language-level type name used in error messages and
// by the reserved `_type` member.
func (v Variant) TypeName() string {
	switch v.Kind {
	case KindNull:
		return "Null"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindEnum:
		return "Enum"
	case KindModule:
		return "Module"
	case KindClass:
		return "Class"
	case KindObject:
		return "Object"
	case KindFunctionRef, KindFunctionPointer:
		return "Function"
	case KindNativeFunctionRef:
		return "NativeFunction"
	case KindIterator:
		return "Iterator"
	case KindIdentifier:
		return "Identifier"
	case KindType:
		return "Type"
	default:
		return "Unknown"
	}
}

// String renders v the way Print and string concatenation do (spec.md
// §3.5: Bool formats as "true"/"false", numerics decimally).
func (v Variant) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInteger:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		if math.IsNaN(v.Flt) {
			return "nan"
		}
		return fmt.Sprintf("%g", v.Flt)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindArray:
		return fmt.Sprintf("Array(%d)", len(v.Arr.Elements))
	case KindMap:
		return fmt.Sprintf("Map(%d)", v.Map.Len())
	case KindEnum:
		return fmt.Sprintf("Enum(%s)", v.En.Name)
	case KindModule:
		return fmt.Sprintf("Module(%s)", v.Mod.Name)
	case KindClass:
		return fmt.Sprintf("Class(%s)", v.Cls.Name)
	case KindObject:
		return fmt.Sprintf("Object(%s)", v.Obj.Class.Name)
	case KindFunctionRef:
		return fmt.Sprintf("Function(%s)", v.Str)
	case KindFunctionPointer:
		return fmt.Sprintf("Function@%d", v.IP)
	case KindNativeFunctionRef:
		return fmt.Sprintf("NativeFunction(%s)", v.Str)
	case KindIterator:
		return "Iterator"
	case KindIdentifier:
		return v.Str
	case KindType:
		return v.Str
	default:
		return "?"
	}
}

// Equal implements the structural equality spec.md §3.4 requires: exact on
// primitives and strings, bit-for-bit IEEE on floats (so NaN != NaN),
// reference identity for Array/Map/Object (aliased collections compare
// equal only to themselves or another alias of the same backing store).
func Equal(a, b Variant) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindInteger:
		return a.Int == b.Int
	case KindFloat:
		return a.Flt == b.Flt
	case KindBool:
		return a.Bool == b.Bool
	case KindString, KindIdentifier, KindType, KindFunctionRef, KindNativeFunctionRef:
		return a.Str == b.Str
	case KindFunctionPointer:
		return a.IP == b.IP
	case KindArray:
		return a.Arr == b.Arr
	case KindMap:
		return a.Map == b.Map
	case KindObject:
		return a.Obj == b.Obj
	case KindClass:
		return a.Cls == b.Cls
	case KindModule:
		return a.Mod == b.Mod
	case KindEnum:
		return a.En == b.En
	default:
		return false
	}
}

// Counter drives the iterator protocol (spec.md §3.6 and §4.4.4). It is
// produced by IteratorInit and advanced by IteratorNext.
type Counter struct {
	Start  int64
	Step   int64
	Cursor int64
	Target Variant // Integer bound; unset for Array/Map counters, which use snapshot

	// snapshot holds the materialized element sequence when Target is an
	// Array or Map, so Map enumeration order is fixed for the lifetime of
	// one loop even though spec.md leaves map order unspecified overall.
	snapshot []Variant
}

// NewIntegerCounter builds a Counter over the integer range [start, target).
func NewIntegerCounter(start, step, target int64) *Counter {
	return &Counter{Start: start, Step: step, Cursor: start, Target: Int(target)}
}

// NewSequenceCounter builds a Counter over a materialized element sequence,
// used for both Array iteration and Map iteration (after the VM snapshots
// the map's values in whatever order Map.Values returns them).
func NewSequenceCounter(start, step int64, elems []Variant) *Counter {
	return &Counter{Start: start, Step: step, Cursor: start, snapshot: elems}
}

// Next reports the next yielded value and advances the cursor, or reports
// ok=false when the sequence is exhausted.
func (c *Counter) Next() (Variant, bool) {
	if c.snapshot != nil {
		idx := c.Cursor
		if idx < 0 || idx >= int64(len(c.snapshot)) {
			return Null, false
		}
		v := c.snapshot[idx]
		c.Cursor += c.Step
		return v, true
	}

	cur := c.Cursor
	bound := c.Target.Int
	if c.Step > 0 {
		if cur >= bound {
			return Null, false
		}
	} else if c.Step < 0 {
		if cur <= bound {
			return Null, false
		}
	} else {
		return Null, false
	}
	c.Cursor += c.Step
	return Int(cur), true
}
