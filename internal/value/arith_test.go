package value

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		lhs  Variant
		rhs  Variant
		want Variant
	}{
		{"int+int", Int(2), Int(3), Int(5)},
		{"int+float", Int(2), Float(1.5), Float(3.5)},
		{"float+int", Float(1.5), Int(2), Float(3.5)},
		{"string+string", Str("foo"), Str("bar"), Str("foobar")},
		{"string+int", Str("n="), Int(3), Str("n=3")},
		{"bool+bool is AND", Boolean(true), Boolean(false), Boolean(false)},
		{"bool+bool true", Boolean(true), Boolean(true), Boolean(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.lhs, tt.rhs)
			if err != nil {
				t.Fatalf("Add: unexpected error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Fatalf("Add(%v, %v) = %v, want %v", tt.lhs, tt.rhs, got, tt.want)
			}
		})
	}
}

func TestAddArrayConcatenation(t *testing.T) {
	a := NewArray([]Variant{Int(1), Int(2)})
	b := NewArray([]Variant{Int(3)})
	got, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	if len(got.Arr.Elements) != 3 {
		t.Fatalf("expected concatenated array of length 3, got %d", len(got.Arr.Elements))
	}
}

func TestAddUndefinedCombination(t *testing.T) {
	if _, err := Add(Int(1), Boolean(true)); err == nil {
		t.Fatal("expected an ArithError for Integer+Bool")
	}
}

func TestDivIntegerByZero(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); err == nil {
		t.Fatal("expected an error dividing an Integer by zero")
	}
}

func TestDivFloatByZeroIsInf(t *testing.T) {
	got, err := Div(Float(1), Float(0))
	if err != nil {
		t.Fatalf("Div: unexpected error: %v", err)
	}
	if got.Kind != KindFloat || !math.IsInf(got.Flt, 1) {
		t.Fatalf("expected a +Inf Float result, got %s %v", got.TypeName(), got)
	}
}

func TestPowIntegerExponent(t *testing.T) {
	got, err := Pow(Int(2), Int(10))
	if err != nil {
		t.Fatalf("Pow: unexpected error: %v", err)
	}
	if got.Kind != KindInteger || got.Int != 1024 {
		t.Fatalf("Pow(2,10) = %v, want Integer(1024)", got)
	}
}

func TestLogicalNot(t *testing.T) {
	if !Equal(LogicalNot(Boolean(true)), Boolean(false)) {
		t.Fatal("LogicalNot(true) should be false")
	}
	if !Equal(LogicalNot(Int(5)), Boolean(false)) {
		t.Fatal("LogicalNot of a non-Bool should be false, not an error")
	}
}

func TestCompareMixedNumeric(t *testing.T) {
	c, err := Compare(Int(2), Float(2.5))
	if err != nil {
		t.Fatalf("Compare: unexpected error: %v", err)
	}
	if c != -1 {
		t.Fatalf("Compare(2, 2.5) = %d, want -1", c)
	}
}

func TestCompareIncomparableKinds(t *testing.T) {
	if _, err := Compare(Str("a"), Int(1)); err == nil {
		t.Fatal("expected an error comparing String to Integer")
	}
}
