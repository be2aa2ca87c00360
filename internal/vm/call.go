package vm

import "leoscript/internal/value"

// execCall implements spec.md §4.4.3's Call(argc): pop argc arguments
// (restoring source order), pop the callee, resolve it, then dispatch to a
// native or scripted function.
func (t *Thread) execCall(argc int) error {
	args := make([]value.Variant, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = t.pop()
	}
	callee := t.pop()

	if callee.Kind == value.KindFunctionRef {
		g, ok := t.globals[callee.Str]
		if !ok {
			return t.fail("GlobalNotFound", "global %q not found", callee.Str)
		}
		callee = g
	}

	if callee.Kind == value.KindClass {
		cls := callee.Cls
		fields := make(map[string]value.Variant, len(cls.Members))
		for k, v := range cls.Members {
			fields[k] = v
		}
		obj := value.NewObject(&value.Object{Class: cls, Fields: fields})
		args = append([]value.Variant{obj}, args...)

		ctor, ok := cls.Members["constructor"]
		if !ok || ctor.Kind != value.KindFunctionPointer {
			return t.fail("ConstructorNotFound", "class %q has no constructor", cls.Name)
		}
		callee = ctor
	}

	switch callee.Kind {
	case value.KindNativeFunctionRef:
		fn, ok := t.natives[callee.Str]
		if !ok {
			return t.fail("InvalidCallDestination", "native function %q is not registered", callee.Str)
		}
		out, hasValue, err := fn(args)
		if err != nil {
			return err
		}
		if hasValue {
			t.push(out)
		}
		return nil
	case value.KindFunctionPointer:
		frame := value.NewFrame(t.ip, len(t.stack))
		for i, a := range args {
			frame.SetLocal(i, a)
		}
		t.frames = append(t.frames, frame)
		t.ip = callee.IP
		return nil
	default:
		return t.fail("InvalidCallOnStack", "cannot call value of kind %s", callee.TypeName())
	}
}

// execReturn implements spec.md §4.4.3's Return{with_value}. It reports
// done=true when the returning frame was the outermost one, in which case
// the run has terminated and out carries its result.
func (t *Thread) execReturn(withValue bool) (done bool, out *value.Variant, err error) {
	ret := t.current()

	var v value.Variant
	if withValue {
		v = t.pop()
	}
	t.ip = ret.ReturnAddress

	if len(t.frames) == 1 {
		if withValue {
			return true, &v, nil
		}
		return true, nil, nil
	}

	t.frames = t.frames[:len(t.frames)-1]
	t.stack = t.stack[:ret.StackPointer]
	if withValue {
		t.push(v)
	}
	return false, nil, nil
}
