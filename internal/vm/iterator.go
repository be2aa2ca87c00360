package vm

import "leoscript/internal/value"

// execIteratorInit implements spec.md §4.4.4: pops start, step, target (in
// that order -- the compiler pushes target/step/start so start lands on
// top) and pushes an Iterator wrapping the right Counter shape for target.
func (t *Thread) execIteratorInit() error {
	start := t.pop()
	step := t.pop()
	target := t.pop()

	if start.Kind != value.KindInteger || step.Kind != value.KindInteger {
		return t.fail("ExpectedIntegerOnStack", "iterator start/step must be Integer")
	}

	var counter *value.Counter
	switch target.Kind {
	case value.KindInteger:
		counter = value.NewIntegerCounter(start.Int, step.Int, target.Int)
	case value.KindArray:
		counter = value.NewSequenceCounter(start.Int, step.Int, target.Arr.Elements)
	case value.KindMap:
		counter = value.NewSequenceCounter(start.Int, step.Int, target.Map.Values())
	default:
		return t.fail("ExpectedValueOnStack", "cannot iterate over %s", target.TypeName())
	}
	t.push(value.NewIterator(counter))
	return nil
}

// execIteratorNext implements spec.md §4.4.4: pops the iterator, asks it
// for the next value. On success, writes the value into slot, pushes the
// iterator back, then Bool(true); on exhaustion, pushes only Bool(false).
func (t *Thread) execIteratorNext(slot int) error {
	it := t.pop()
	if it.Kind != value.KindIterator {
		return t.fail("ExpectedIteratorOnStack", "IteratorNext requires an Iterator on the stack, got %s", it.TypeName())
	}
	v, ok := it.Iter.Next()
	if !ok {
		t.push(value.Boolean(false))
		return nil
	}
	t.current().SetLocal(slot, v)
	t.push(it)
	t.push(value.Boolean(true))
	return nil
}
