package value

import "testing"

func TestEqualPrimitives(t *testing.T) {
	if !Equal(Int(5), Int(5)) {
		t.Fatal("Int(5) should equal Int(5)")
	}
	if Equal(Int(5), Float(5)) {
		t.Fatal("Int(5) should not equal Float(5): different Kind")
	}
	if !Equal(Str("x"), Str("x")) {
		t.Fatal("identical strings should be equal")
	}
}

func TestEqualNaN(t *testing.T) {
	nan := Float(nan())
	if Equal(nan, nan) {
		t.Fatal("NaN should never equal itself")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEqualArrayIsReferenceIdentity(t *testing.T) {
	a := NewArray([]Variant{Int(1)})
	b := NewArray([]Variant{Int(1)})
	if Equal(a, b) {
		t.Fatal("two distinct Array instances with equal contents should not be Equal")
	}
	if !Equal(a, a) {
		t.Fatal("an Array should equal itself")
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v    Variant
		want string
	}{
		{Null, "Null"},
		{Int(1), "Integer"},
		{Float(1), "Float"},
		{Boolean(true), "Bool"},
		{Str("x"), "String"},
		{FunctionRef("f"), "Function"},
		{FunctionPointer(0), "Function"},
	}
	for _, tt := range tests {
		if got := tt.v.TypeName(); got != tt.want {
			t.Errorf("TypeName(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCounterIntegerRange(t *testing.T) {
	c := NewIntegerCounter(0, 1, 3)
	var got []int64
	for {
		v, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, v.Int)
	}
	want := []int64{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCounterIntegerDescending(t *testing.T) {
	c := NewIntegerCounter(3, -1, 0)
	var got []int64
	for {
		v, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, v.Int)
	}
	want := []int64{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCounterSequence(t *testing.T) {
	c := NewSequenceCounter(0, 1, []Variant{Str("a"), Str("b")})
	first, ok := c.Next()
	if !ok || first.Str != "a" {
		t.Fatalf("expected first element 'a', got %v ok=%v", first, ok)
	}
	second, ok := c.Next()
	if !ok || second.Str != "b" {
		t.Fatalf("expected second element 'b', got %v ok=%v", second, ok)
	}
	if _, ok := c.Next(); ok {
		t.Fatal("expected the sequence to be exhausted")
	}
}

func TestMapInsertionOrderAndDelete(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(2))
	m.Set("a", Int(1))
	m.Set("b", Int(20)) // overwrite, should not move position

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	v, _ := m.Get("b")
	if v.Int != 20 {
		t.Fatalf("expected overwritten value 20, got %d", v.Int)
	}
	if !m.Delete("a") {
		t.Fatal("expected Delete(\"a\") to report true")
	}
	if m.Delete("a") {
		t.Fatal("expected a second Delete(\"a\") to report false")
	}
	if m.Len() != 1 {
		t.Fatalf("expected length 1 after delete, got %d", m.Len())
	}
}
