package vm

// Options configures a Thread at construction time (SPEC_FULL.md §11.3),
// generalizing the teacher's ad-hoc EnhancedVM.maxStackSize/maxFrames
// fields into an explicit functional-option surface.
type Options struct {
	maxFrames int
	trace     bool
}

// Option mutates an Options value.
type Option func(*Options)

// WithMaxFrames caps the call-frame stack depth; exceeding it fails a run
// with a stack-overflow RuntimeError rather than growing without bound.
func WithMaxFrames(n int) Option {
	return func(o *Options) { o.maxFrames = n }
}

// WithTrace enables PushStackTrace/PopStackTrace bookkeeping (spec.md
// §4.4.6). Disabled by default since most runs don't need a call trace.
func WithTrace(enabled bool) Option {
	return func(o *Options) { o.trace = enabled }
}

func defaultOptions() Options {
	return Options{maxFrames: 1024, trace: false}
}
