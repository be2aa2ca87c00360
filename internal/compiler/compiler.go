// Package compiler is the code generator: it walks the Syntax tree produced
// by internal/parser and emits a flat bytecode.Program (spec.md §4.3).
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"leoscript/internal/ast"
	"leoscript/internal/bytecode"
	"leoscript/internal/errors"
	"leoscript/internal/lexer"
	"leoscript/internal/parser"
	"leoscript/internal/token"
	"leoscript/internal/value"
)

// Compiler holds the in-progress Program and the warnings accumulated while
// building it. One Compiler compiles exactly one source file's worth of
// declarations, plus whatever its imports recursively contribute.
type Compiler struct {
	prog     *bytecode.Program
	warnings []Warning
	workDir  string
	file     string
}

// Compile parses source (read from file, a path rooted under workDir) and
// lowers it to a Program, following spec.md §4.3's two-stage design: Stage
// 1 resolves imports, Stage 2 compiles the remaining top-level
// declarations in source order.
func Compile(source, file, workDir string) (*bytecode.Program, []Warning, error) {
	return compileSource(source, file, workDir, map[[32]byte]bool{})
}

func compileSource(source, file, workDir string, inProgress map[[32]byte]bool) (*bytecode.Program, []Warning, error) {
	toks, err := lexer.NewScanner(source).ScanTokens()
	if err != nil {
		return nil, nil, err
	}
	prog, err := parser.New(toks, source, file).Parse()
	if err != nil {
		return nil, nil, err
	}

	c := &Compiler{prog: bytecode.NewProgram(), workDir: workDir, file: file}
	if err := c.resolveImports(prog, inProgress); err != nil {
		return nil, nil, err
	}
	if err := c.compileDecls(prog); err != nil {
		return nil, nil, err
	}
	return c.prog, c.warnings, nil
}

// compileDecls runs Stage 2: Function/Class/Module/Enum, in source order,
// skipping ImportDecl (already handled by resolveImports).
func (c *Compiler) compileDecls(prog *ast.Program) error {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case ast.ImportDecl:
			continue
		case ast.FunctionDecl:
			ip, err := c.compileFunction(n.Name, n.Params, n.Body, false)
			if err != nil {
				return err
			}
			c.prog.Globals[n.Name] = value.FunctionPointer(ip)
		case ast.ClassDecl:
			cls, err := c.compileClass(n)
			if err != nil {
				return err
			}
			c.prog.Globals[n.Name] = cls
		case ast.ModuleDecl:
			mod, err := c.compileModule(n)
			if err != nil {
				return err
			}
			c.prog.Globals[n.Name] = mod
		case ast.EnumDecl:
			members := make(map[string]int, len(n.Members))
			for _, m := range n.Members {
				members[m.Name] = m.Ordinal
			}
			c.prog.Globals[n.Name] = value.NewEnum(&value.Enum{Name: n.Name, Members: members})
		default:
			return c.fail("InvalidExpressionItem", d.Pos(), "unsupported top-level declaration")
		}
	}
	return nil
}

// compileFunction compiles a named function/method/constructor body into
// its own funcUnit and returns the absolute instruction offset it starts
// at. selfFirst seats an implicit `self` at slot 0 ahead of params, used
// for non-static methods, module functions, and constructors.
func (c *Compiler) compileFunction(name string, params []string, body []ast.Stmt, selfFirst bool) (int64, error) {
	ip := c.prog.Len()
	fu := newFuncUnit(c, name)
	line := 0
	if len(body) > 0 {
		line = body[0].Pos().Line
	}
	trace := bytecode.StackTraceInfo{Function: name, File: c.file, Line: line}
	if err := fu.compileBody(params, selfFirst, body, trace); err != nil {
		return 0, err
	}
	return ip, nil
}

func (c *Compiler) fail(kind string, pos token.Position, format string, args ...interface{}) error {
	return errors.New(errors.Compile, kind, pos, fmt.Sprintf(format, args...)).WithFile(c.file)
}

// failWrap is like fail but preserves cause as the error's underlying Go-level
// cause (errors.Is/As can still reach it), for failures that originate below
// the compiler itself (e.g. a filesystem error resolving an import).
func (c *Compiler) failWrap(kind string, pos token.Position, cause error, format string, args ...interface{}) error {
	return errors.Wrap(errors.Compile, kind, pos, cause, fmt.Sprintf(format, args...)).WithFile(c.file)
}

// --- Stage 1: imports ---

// resolveImports compiles every sibling Import in prog concurrently
// (errgroup.Group), then merges the results back in declaration order so
// "later definitions overwrite earlier" (spec.md §4.3 Stage 1) holds
// deterministically despite the concurrent resolution.
func (c *Compiler) resolveImports(prog *ast.Program, inProgress map[[32]byte]bool) error {
	var imports []ast.ImportDecl
	for _, d := range prog.Decls {
		if imp, ok := d.(ast.ImportDecl); ok {
			imports = append(imports, imp)
		}
	}
	if len(imports) == 0 {
		return nil
	}

	results := make([]importResult, len(imports))

	g, _ := errgroup.WithContext(context.Background())
	for i, imp := range imports {
		i, imp := i, imp
		g.Go(func() error {
			results[i] = c.resolveOneImport(imp, inProgress)
			return nil
		})
	}
	_ = g.Wait() // every goroutine reports its own error via its importResult.err

	for _, r := range results {
		if r.err != nil {
			return r.err
		}
		offset := c.prog.Len()
		contributed := 0
		for name, v := range r.sub.Globals {
			c.prog.Globals[name] = shiftGlobal(v, offset)
			contributed++
		}
		c.prog.Append(r.sub.Instructions...)
		c.warnings = append(c.warnings, r.warnings...)
		if contributed == 0 {
			c.warnings = append(c.warnings, Warning{Kind: "ImportFileEmpty", Path: r.path})
		}
	}
	return nil
}

type importResult = struct {
	sub      *bytecode.Program
	warnings []Warning
	path     string
	err      error
}

func (c *Compiler) resolveOneImport(imp ast.ImportDecl, inProgress map[[32]byte]bool) importResult {
	path := resolveImportPath(c.workDir, imp.Path)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	key := blake2b.Sum256([]byte(abs))
	if inProgress[key] {
		return importResult{err: c.fail("InvalidImportPath", imp.Pos(), "circular import of %q", imp.Path)}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return importResult{err: c.failWrap("InvalidImportPath", imp.Pos(), err, "cannot read imported file %q", path)}
	}

	childInProgress := make(map[[32]byte]bool, len(inProgress)+1)
	for k := range inProgress {
		childInProgress[k] = true
	}
	childInProgress[key] = true

	sub, warns, err := compileSource(string(src), path, filepath.Dir(path), childInProgress)
	if err != nil {
		return importResult{err: err}
	}
	return importResult{sub: sub, warnings: warns, path: path}
}

// resolveImportPath maps a dotted import path to a file, per spec.md §6:
// `import A.B.C` -> `<workDir>/A/B/C.leo`.
func resolveImportPath(workDir, dotted string) string {
	parts := strings.Split(dotted, ".")
	segs := append([]string{workDir}, parts...)
	path := filepath.Join(segs...)
	return path + ".leo"
}

// shiftGlobal rewrites every FunctionPointer reachable from v (directly, or
// nested inside a Class/Module's members) by offset, so an imported
// program's absolute instruction offsets remain valid once its
// instructions are appended after the importer's own (spec.md §4.3 Stage
// 1's "ip_offset = current instructions length + outer_offset").
func shiftGlobal(v value.Variant, offset int64) value.Variant {
	switch v.Kind {
	case value.KindFunctionPointer:
		return value.FunctionPointer(v.IP + offset)
	case value.KindClass:
		shifted := &value.Class{Name: v.Cls.Name, Members: make(map[string]value.Variant, len(v.Cls.Members)), Statics: make(map[string]value.Variant, len(v.Cls.Statics))}
		for k, mv := range v.Cls.Members {
			shifted.Members[k] = shiftGlobal(mv, offset)
		}
		for k, mv := range v.Cls.Statics {
			shifted.Statics[k] = shiftGlobal(mv, offset)
		}
		shifted.Ctor = shiftGlobal(v.Cls.Ctor, offset)
		return value.NewClass(shifted)
	case value.KindModule:
		shifted := &value.Module{Name: v.Mod.Name, Members: make(map[string]value.Variant, len(v.Mod.Members))}
		for k, mv := range v.Mod.Members {
			shifted.Members[k] = shiftGlobal(mv, offset)
		}
		return value.NewModule(shifted)
	default:
		return v
	}
}
