package value

// Frame is a single call activation (spec.md §3.7): the return address into
// the instruction stream, the operand-stack depth at the moment of call,
// and the slot-indexed local variables belonging to this call only.
type Frame struct {
	ReturnAddress int64
	StackPointer  int
	Variables     []Variant
}

// NewFrame builds a Frame with no locals; Variables grows on demand.
func NewFrame(returnAddress int64, stackPointer int) *Frame {
	return &Frame{ReturnAddress: returnAddress, StackPointer: stackPointer}
}

// Local returns the value at slot, growing Variables with Null as needed
// per spec.md §3.7's invariant that LoadLocalVariable/MoveToLocalVariable
// never index out of bounds.
func (f *Frame) Local(slot int) Variant {
	f.ensure(slot)
	return f.Variables[slot]
}

// SetLocal stores v at slot, growing Variables with Null as needed.
func (f *Frame) SetLocal(slot int, v Variant) {
	f.ensure(slot)
	f.Variables[slot] = v
}

func (f *Frame) ensure(slot int) {
	for len(f.Variables) <= slot {
		f.Variables = append(f.Variables, Null)
	}
}
