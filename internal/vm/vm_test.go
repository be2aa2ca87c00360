package vm_test

import (
	"testing"

	"leoscript/internal/compiler"
	"leoscript/internal/value"
	"leoscript/internal/vm"
)

// runScript compiles and runs source's "main" entry point, failing the test
// on any compile or runtime error.
func runScript(t *testing.T, source string) value.Variant {
	t.Helper()
	prog, _, err := compiler.Compile(source, "test.leo", ".")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	thread, err := vm.Load(prog)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	result, err := thread.Run("main", nil)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	if result.Output == nil {
		t.Fatal("expected main to return a value")
	}
	return *result.Output
}

func TestArithmeticPrecedence(t *testing.T) {
	got := runScript(t, `function main() return 1 + 2 * 3 == 7 end`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestForRangeBreakAndContinue(t *testing.T) {
	got := runScript(t, `
function main()
  var c = 0
  for t = 1 to 10 step 1 do
    if t == 5 then continue end
    if t >= 10 then break end
    c = c + 1
  end
  return c == 8
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestClassConstructorAndMethod(t *testing.T) {
	got := runScript(t, `
class Point
  attribute x
  attribute y
  constructor(x, y)
    self.x = x
    self.y = y
  end
  function sum() return self.x + self.y end
end
function main()
  var p = new Point(3, 4)
  return p.sum() == 7
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestEnumAccess(t *testing.T) {
	got := runScript(t, `
enum Color Red Green Blue end
function main()
  return Color::Green == 1
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestMatchWithDefault(t *testing.T) {
	got := runScript(t, `
function main()
  var a = 9
  var b = false
  match a
    case 1 then b = false end
    case 2 then b = false end
    default then b = true end
  end
  return b
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestDictionaryMutationThroughSharedObject(t *testing.T) {
	got := runScript(t, `
function main()
  var d = new Dictionary()
  d.set("k", 1)
  d.set("k", 2)
  return d.get("k") == 2 and d.length() == 1
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestStaticClassAttributeSharedAcrossInstances(t *testing.T) {
	got := runScript(t, `
class Counter
  static attribute total = 0
  constructor()
    Counter::total = Counter::total + 1
  end
end
function main()
  var a = new Counter()
  var b = new Counter()
  return Counter::total == 2
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestMathModule(t *testing.T) {
	got := runScript(t, `
function main()
  return Math.sqrt(9.0) == 3.0 and Math.max(2, 5) == 5
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestZeroIterationForRange(t *testing.T) {
	got := runScript(t, `
function main()
  var c = 0
  for i = 1 to 0 step 1 do
    c = c + 1
  end
  return c == 0
end
`)
	if !got.IsTruthy() {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	prog, _, err := compiler.Compile(`function main() return 1 / 0 end`, "test.leo", ".")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	thread, err := vm.Load(prog)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if _, err := thread.Run("main", nil); err == nil {
		t.Fatal("expected a runtime error dividing an Integer by zero")
	}
}

func TestEntryPointNotFound(t *testing.T) {
	prog, _, err := compiler.Compile(`function other() return 1 end`, "test.leo", ".")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	thread, err := vm.Load(prog)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if _, err := thread.Run("main", nil); err == nil {
		t.Fatal("expected EntryPointNotFound for a missing entry point")
	}
}

func TestNonShortCircuitAndStillEvaluatesBothSides(t *testing.T) {
	got := runScript(t, `
class Flag
  static attribute hit = false
end
function sideEffect()
  Flag::hit = true
  return false
end
function main()
  var r = false and sideEffect()
  return r == false and Flag::hit
end
`)
	if !got.IsTruthy() {
		t.Fatal("expected 'false and sideEffect()' to be false with sideEffect still run")
	}
}
