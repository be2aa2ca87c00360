// Package vm is the bytecode interpreter (spec.md §4.4): Thread owns the
// operand stack, the frame stack, globals, and the native-function table,
// and executes a compiled bytecode.Program with a single fetch-decode loop
// in the teacher's EnhancedVM style, generalized to LeoScript's instruction
// set instead of sentra's.
package vm

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"leoscript/internal/bytecode"
	"leoscript/internal/errors"
	"leoscript/internal/stdlib"
	"leoscript/internal/token"
	"leoscript/internal/value"
)

// Thread is a single run's worth of VM state: one operand stack, one frame
// stack, and the globals/native tables shared across every call the run
// makes. Reused across Run calls the way the teacher's EnhancedVM is reused
// across scripts sharing one process.
type Thread struct {
	prog    *bytecode.Program
	globals map[string]value.Variant
	natives map[string]NativeFunc

	stack  []value.Variant
	frames []*value.Frame
	ip     int64

	opts  Options
	trace []bytecode.StackTraceInfo
}

// RunResult is the host-visible outcome of a run (spec.md §6 Host API:
// `{ output, elapsed }`).
type RunResult struct {
	Output  *value.Variant
	Elapsed time.Duration
	RunID   string
}

// String renders a human-readable summary using go-humanize, for CLI/log
// consumption; it is not used internally.
func (r RunResult) String() string {
	out := "null"
	if r.Output != nil {
		out = r.Output.String()
	}
	return fmt.Sprintf("run %s: %s (%s)", r.RunID, out, humanize.RelTime(time.Now().Add(-r.Elapsed), time.Now(), "", ""))
}

// Load builds a Thread ready to run prog, failing immediately if prog has
// no instructions (spec.md §6 Host API: "Thread::load ... fails on empty
// instructions").
func Load(prog *bytecode.Program, opts ...Option) (*Thread, error) {
	if prog == nil || len(prog.Instructions) == 0 {
		return nil, errors.New(errors.Runtime, "NoInstructions", token.Position{}, "program has no instructions")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	globals := make(map[string]value.Variant, len(prog.Globals))
	for k, v := range prog.Globals {
		globals[k] = v
	}
	t := &Thread{
		prog:    prog,
		globals: globals,
		natives: make(map[string]NativeFunc),
		opts:    o,
	}
	stdlib.Install(t)
	return t, nil
}

// Run executes entryName (spec.md §4.4.1): entryName must resolve in
// globals to a FunctionPointer, or the run fails with EntryPointNotFound.
func (t *Thread) Run(entryName string, initialArgs []value.Variant) (RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	entry, ok := t.globals[entryName]
	if !ok || entry.Kind != value.KindFunctionPointer {
		return RunResult{RunID: runID}, t.fail("EntryPointNotFound", "entry point %q not found", entryName)
	}

	frame := value.NewFrame(-1, 0)
	for i, a := range initialArgs {
		frame.SetLocal(i, a)
	}
	t.stack = t.stack[:0]
	t.frames = []*value.Frame{frame}
	t.ip = entry.IP

	out, err := t.dispatch()
	elapsed := time.Since(start)
	if err != nil {
		if re, ok := err.(*errors.Error); ok {
			re.CallStack = t.snapshotTrace()
		}
		return RunResult{RunID: runID, Elapsed: elapsed}, err
	}
	return RunResult{Output: out, Elapsed: elapsed, RunID: runID}, nil
}

// dispatch is the fetch-decode loop (spec.md §4.4.2). Every case mutates
// t.ip explicitly; there is no fall-through between instruction handlers.
func (t *Thread) dispatch() (*value.Variant, error) {
	for {
		if len(t.frames) > t.opts.maxFrames {
			return nil, t.fail("InstructionPointerOutOfBounds", "call stack exceeded %d frames", t.opts.maxFrames)
		}
		if t.ip < 0 || t.ip >= int64(len(t.prog.Instructions)) {
			return nil, t.fail("InstructionPointerOutOfBounds", "ip %d out of bounds", t.ip)
		}
		ip := t.ip
		instr := t.prog.Instructions[ip]
		t.ip++

		switch instr.Op {
		case bytecode.OpNoOperation:
			// placeholder left by a break/continue that never got patched
			// (unreachable in well-formed code emitted by internal/compiler).

		case bytecode.OpHalt:
			return nil, nil

		case bytecode.OpPushNull:
			t.push(value.Null)
		case bytecode.OpPushInteger:
			t.push(value.Int(instr.Int))
		case bytecode.OpPushFloat:
			t.push(value.Float(instr.Float))
		case bytecode.OpPushBool:
			t.push(value.Boolean(instr.Bool))
		case bytecode.OpPushString:
			t.push(value.Str(instr.Str))
		case bytecode.OpPushIdentifier:
			t.push(value.Ident(instr.Str))
		case bytecode.OpPushFunctionRef:
			t.push(value.FunctionRef(instr.Str))
		case bytecode.OpPushFunctionPointer:
			t.push(value.FunctionPointer(instr.Int))

		case bytecode.OpLoadLocalVariable:
			t.push(t.current().Local(int(instr.Int)))
		case bytecode.OpMoveToLocalVariable:
			t.current().SetLocal(int(instr.Int), t.pop())
		case bytecode.OpLoadGlobal:
			g, ok := t.globals[instr.Str]
			if !ok {
				return nil, t.fail("GlobalNotFound", "global %q not found", instr.Str)
			}
			t.push(g)

		case bytecode.OpLoadMember:
			if err := t.execLoadMember(); err != nil {
				return nil, err
			}
		case bytecode.OpGetCollectionItem:
			if err := t.execGetCollectionItem(); err != nil {
				return nil, err
			}
		case bytecode.OpSetCollectionItem:
			if err := t.execSetCollectionItem(); err != nil {
				return nil, err
			}
		case bytecode.OpCreateCollectionAsArray:
			n := int(instr.Int)
			elems := make([]value.Variant, n)
			for i := n - 1; i >= 0; i-- {
				elems[i] = t.pop()
			}
			t.push(value.NewArray(elems))
		case bytecode.OpCreateCollectionAsDictionary:
			n := int(instr.Int)
			m := value.NewMap()
			pairs := make([]value.Variant, 0, n*2)
			for i := 0; i < n; i++ {
				v := t.pop()
				k := t.pop()
				pairs = append(pairs, k, v)
			}
			for i := len(pairs) - 2; i >= 0; i -= 2 {
				k, v := pairs[i], pairs[i+1]
				if k.Kind != value.KindString {
					return nil, t.fail("InvalidDictionaryKey", "dictionary key must be a string, got %s", k.TypeName())
				}
				m.Set(k.Str, v)
			}
			t.push(value.NewMapVariant(m))
		case bytecode.OpCreateObject:
			cls := t.pop()
			if cls.Kind != value.KindClass {
				return nil, t.fail("ExpectedClassOnStack", "CreateObject requires a Class on the stack, got %s", cls.TypeName())
			}
			fields := make(map[string]value.Variant, len(cls.Cls.Members))
			for k, v := range cls.Cls.Members {
				fields[k] = v
			}
			t.push(value.NewObject(&value.Object{Class: cls.Cls, Fields: fields}))

		case bytecode.OpCall:
			if err := t.execCall(int(instr.Int)); err != nil {
				return nil, err
			}
		case bytecode.OpReturn:
			done, out, err := t.execReturn(instr.WithValue)
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}

		case bytecode.OpJumpForward:
			t.ip = ip + instr.Int
		case bytecode.OpJumpBackward:
			t.ip = ip - instr.Int
		case bytecode.OpJumpForwardIfFalse:
			cond := t.pop()
			if cond.Kind != value.KindBool {
				return nil, t.fail("ExpectedValueOnStack", "JumpForwardIfFalse requires a Bool on the stack, got %s", cond.TypeName())
			}
			if !cond.Bool {
				t.ip = ip + instr.Int
			}

		case bytecode.OpIteratorInit:
			if err := t.execIteratorInit(); err != nil {
				return nil, err
			}
		case bytecode.OpIteratorNext:
			if err := t.execIteratorNext(int(instr.Int)); err != nil {
				return nil, err
			}

		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMultiply, bytecode.OpDivide, bytecode.OpPow:
			if err := t.execArith(instr.Op); err != nil {
				return nil, err
			}
		case bytecode.OpNot:
			t.push(value.LogicalNot(t.pop()))
		case bytecode.OpAnd:
			r, l := t.pop(), t.pop()
			t.push(value.Boolean(l.IsTruthy() && r.IsTruthy()))
		case bytecode.OpOr:
			r, l := t.pop(), t.pop()
			t.push(value.Boolean(l.IsTruthy() || r.IsTruthy()))
		case bytecode.OpEqual:
			r, l := t.pop(), t.pop()
			t.push(value.Boolean(value.Equal(l, r)))
		case bytecode.OpNotEqual:
			r, l := t.pop(), t.pop()
			t.push(value.Boolean(!value.Equal(l, r)))
		case bytecode.OpLessThan, bytecode.OpLessThanOrEqual, bytecode.OpGreaterThan, bytecode.OpGreaterThanOrEqual:
			if err := t.execCompare(instr.Op); err != nil {
				return nil, err
			}

		case bytecode.OpPrint:
			fmt.Println(t.pop().String())
		case bytecode.OpSleep:
			ms := t.pop()
			if ms.Kind != value.KindInteger {
				return nil, t.fail("ExpectedIntegerOnStack", "sleep requires an Integer, got %s", ms.TypeName())
			}
			time.Sleep(time.Duration(ms.Int) * time.Millisecond)

		case bytecode.OpPushStackTrace:
			if t.opts.trace {
				t.trace = append(t.trace, instr.Trace)
			}
		case bytecode.OpPopStackTrace:
			if t.opts.trace && len(t.trace) > 0 {
				t.trace = t.trace[:len(t.trace)-1]
			}

		default:
			return nil, t.fail("InstructionNotImplemented", "instruction %s is not implemented", instr.Op)
		}
	}
}

func (t *Thread) current() *value.Frame {
	return t.frames[len(t.frames)-1]
}

func (t *Thread) push(v value.Variant) {
	t.stack = append(t.stack, v)
}

func (t *Thread) pop() value.Variant {
	n := len(t.stack) - 1
	v := t.stack[n]
	t.stack = t.stack[:n]
	return v
}

func (t *Thread) fail(kind, format string, args ...interface{}) error {
	return errors.New(errors.Runtime, kind, token.Position{}, fmt.Sprintf(format, args...))
}

func (t *Thread) snapshotTrace() []errors.StackFrame {
	if len(t.trace) == 0 {
		return nil
	}
	out := make([]errors.StackFrame, len(t.trace))
	for i, f := range t.trace {
		out[i] = errors.StackFrame{Function: f.Function, Line: f.Line}
	}
	return out
}
