package compiler

import "leoscript/internal/bytecode"

// loopFrame tracks the jump fixups owed to a single loop body while it is
// being compiled: every break/continue emits a NoOperation placeholder and
// records its offset here, to be rewritten once the loop's start and end
// are both known (spec.md §4.3.2).
type loopFrame struct {
	continueIP int64 // where a `continue` resumes: condition re-test or IteratorNext
	breaks     []int64
	continues  []int64
}

func (fu *funcUnit) pushLoop(continueIP int64) {
	fu.loops = append(fu.loops, &loopFrame{continueIP: continueIP})
}

// popLoop patches every recorded break to JumpForward(endIP) and every
// continue to JumpBackward(continueIP), then drops the loop frame.
func (fu *funcUnit) popLoop(endIP int64) {
	lf := fu.loops[len(fu.loops)-1]
	fu.loops = fu.loops[:len(fu.loops)-1]
	for _, ip := range lf.breaks {
		fu.prog.Instructions[ip] = bytecode.JumpForward(endIP - ip)
	}
	for _, ip := range lf.continues {
		fu.prog.Instructions[ip] = bytecode.JumpBackward(ip - lf.continueIP)
	}
}

// patchJump rewrites the Int operand of an already-emitted forward/backward
// jump at ip to land on target, keeping the jump's original Op (used for
// if/match/while condition tests, whose Op is correct from the start and
// only the placeholder delta of 0 needs fixing up).
func (fu *funcUnit) patchJump(ip, target int64) {
	instr := &fu.prog.Instructions[ip]
	switch instr.Op {
	case bytecode.OpJumpForward, bytecode.OpJumpForwardIfFalse:
		instr.Int = target - ip
	case bytecode.OpJumpBackward:
		instr.Int = ip - target
	}
}
