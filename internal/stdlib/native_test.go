package stdlib

import (
	"testing"

	"leoscript/internal/value"
)

// fakeRegistrar is a minimal Registrar recording what Install binds, used to
// check the native table and globals without standing up a full vm.Thread.
type fakeRegistrar struct {
	natives map[string]value.NativeFunc
	globals map[string]value.Variant
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{natives: map[string]value.NativeFunc{}, globals: map[string]value.Variant{}}
}

func (f *fakeRegistrar) RegisterNative(name string, fn value.NativeFunc) { f.natives[name] = fn }
func (f *fakeRegistrar) AddGlobal(name string, v value.Variant)          { f.globals[name] = v }

func TestInstallRegistersAllThreeGlobals(t *testing.T) {
	r := newFakeRegistrar()
	Install(r)

	for _, name := range []string{"Dictionary", "String", "Math"} {
		if _, ok := r.globals[name]; !ok {
			t.Errorf("expected Install to bind a global named %q", name)
		}
	}
	if r.globals["Dictionary"].Kind != value.KindClass {
		t.Error("expected Dictionary to be a Class")
	}
	if r.globals["Math"].Kind != value.KindModule {
		t.Error("expected Math to be a Module, not a Class (it is stateless)")
	}
}

func newDictObject(t *testing.T) value.Variant {
	t.Helper()
	r := newFakeRegistrar()
	Install(r)
	cls := r.globals["Dictionary"].Cls
	fields := make(map[string]value.Variant, len(cls.Members))
	for k, v := range cls.Members {
		fields[k] = v
	}
	obj := value.NewObject(&value.Object{Class: cls, Fields: fields})
	if _, _, err := dictConstructor([]value.Variant{obj}); err != nil {
		t.Fatalf("dictConstructor: unexpected error: %v", err)
	}
	return obj
}

func TestDictionarySetGetLength(t *testing.T) {
	d := newDictObject(t)

	if _, _, err := dictSet([]value.Variant{d, value.Str("k"), value.Int(1)}); err != nil {
		t.Fatalf("dictSet: unexpected error: %v", err)
	}
	if _, _, err := dictSet([]value.Variant{d, value.Str("k"), value.Int(2)}); err != nil {
		t.Fatalf("dictSet: unexpected error: %v", err)
	}

	got, _, err := dictGet([]value.Variant{d, value.Str("k")})
	if err != nil {
		t.Fatalf("dictGet: unexpected error: %v", err)
	}
	if got.Int != 2 {
		t.Fatalf("dictGet(\"k\") = %d, want 2 (overwrite)", got.Int)
	}

	length, _, err := dictLength([]value.Variant{d})
	if err != nil {
		t.Fatalf("dictLength: unexpected error: %v", err)
	}
	if length.Int != 1 {
		t.Fatalf("dictLength() = %d, want 1", length.Int)
	}
}

func TestDictionaryContainsKeyAndRemove(t *testing.T) {
	d := newDictObject(t)
	dictSet([]value.Variant{d, value.Str("k"), value.Int(1)})

	ok, _, err := dictContainsKey([]value.Variant{d, value.Str("k")})
	if err != nil || !ok.Bool {
		t.Fatalf("expected contains_key(\"k\") = true, got %v err=%v", ok, err)
	}

	dictRemove([]value.Variant{d, value.Str("k")})
	ok, _, err = dictContainsKey([]value.Variant{d, value.Str("k")})
	if err != nil || ok.Bool {
		t.Fatalf("expected contains_key(\"k\") = false after remove, got %v err=%v", ok, err)
	}
}

func TestDictionaryGetMissingKeyErrors(t *testing.T) {
	d := newDictObject(t)
	if _, _, err := dictGet([]value.Variant{d, value.Str("missing")}); err == nil {
		t.Fatal("expected an error reading a missing key")
	}
}

func TestStringUpperLowerSplit(t *testing.T) {
	self := value.NewObject(&value.Object{Fields: map[string]value.Variant{}})
	setObjectValue(self, value.Str("Hello World"))

	upper, _, err := stringUpper([]value.Variant{self})
	if err != nil || upper.Str != "HELLO WORLD" {
		t.Fatalf("stringUpper = %v, err=%v", upper, err)
	}
	lower, _, err := stringLower([]value.Variant{self})
	if err != nil || lower.Str != "hello world" {
		t.Fatalf("stringLower = %v, err=%v", lower, err)
	}
	split, _, err := stringSplit([]value.Variant{self, value.Str(" ")})
	if err != nil {
		t.Fatalf("stringSplit: unexpected error: %v", err)
	}
	if len(split.Arr.Elements) != 2 || split.Arr.Elements[0].Str != "Hello" || split.Arr.Elements[1].Str != "World" {
		t.Fatalf("stringSplit = %v", split.Arr.Elements)
	}
}

func TestMathFunctions(t *testing.T) {
	mod := value.Null // Math doesn't need a real receiver value, just args[0] present
	if got, _, err := mathAbs([]value.Variant{mod, value.Int(-5)}); err != nil || got.Int != 5 {
		t.Fatalf("mathAbs(-5) = %v, err=%v", got, err)
	}
	if got, _, err := mathFloor([]value.Variant{mod, value.Float(1.9)}); err != nil || got.Int != 1 {
		t.Fatalf("mathFloor(1.9) = %v, err=%v", got, err)
	}
	if got, _, err := mathCeil([]value.Variant{mod, value.Float(1.1)}); err != nil || got.Int != 2 {
		t.Fatalf("mathCeil(1.1) = %v, err=%v", got, err)
	}
	if got, _, err := mathPow([]value.Variant{mod, value.Float(2), value.Float(3)}); err != nil || got.Flt != 8 {
		t.Fatalf("mathPow(2,3) = %v, err=%v", got, err)
	}
	if got, _, err := mathSqrt([]value.Variant{mod, value.Float(16)}); err != nil || got.Flt != 4 {
		t.Fatalf("mathSqrt(16) = %v, err=%v", got, err)
	}
	if got, _, err := mathMax([]value.Variant{mod, value.Int(2), value.Int(5)}); err != nil || got.Int != 5 {
		t.Fatalf("mathMax(2,5) = %v, err=%v", got, err)
	}
	if got, _, err := mathMin([]value.Variant{mod, value.Int(2), value.Int(5)}); err != nil || got.Int != 2 {
		t.Fatalf("mathMin(2,5) = %v, err=%v", got, err)
	}
}

func TestMathFunctionMissingArgumentErrors(t *testing.T) {
	if _, _, err := mathSqrt([]value.Variant{value.Null}); err == nil {
		t.Fatal("expected an error when the numeric argument is missing")
	}
}
