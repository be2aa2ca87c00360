package compiler

import "leoscript/internal/token"

// Warning is a non-fatal compiler diagnostic (spec.md §4.3.5's
// CompilerWarning). The only variant spec.md's distillation names is
// ImportFileEmpty; SPEC_FULL.md §10 keeps compile()'s three-valued return
// so warnings reach the host instead of being silently dropped.
type Warning struct {
	Kind    string
	Path    string
	Pos     token.Position
	Message string
}
