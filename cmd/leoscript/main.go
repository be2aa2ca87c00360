// cmd/leoscript is the host driver spec.md §1 keeps out of scope: a thin
// exerciser for the compile/load/run pipeline, in the teacher's
// os.Args-dispatch idiom (cmd/sentra/main.go) scaled down to the one
// command this language's core actually needs.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"leoscript/internal/compiler"
	"leoscript/internal/value"
	"leoscript/internal/vm"
)

const usage = `usage: leoscript run <file>.leo [args...]`

func main() {
	if len(os.Args) < 3 || os.Args[1] != "run" {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err := runFile(os.Args[2], os.Args[3:]); err != nil {
		log.Fatalf("leoscript: %v", err)
	}
}

func runFile(path string, rawArgs []string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	workDir := filepath.Dir(path)

	prog, warnings, err := compiler.Compile(string(src), path, workDir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Printf("warning: %s: %s", w.Kind, w.Path)
	}

	thread, err := vm.Load(prog)
	if err != nil {
		return err
	}

	args := make([]value.Variant, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = value.Str(a)
	}

	result, err := thread.Run("main", args)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// printResult renders the run's outcome using the same humanize-flavored
// ambient formatting the teacher's CLI layer uses for timing/counts
// (SPEC_FULL.md §12); colorized only when stdout is a real terminal.
func printResult(result vm.RunResult) {
	out := "null"
	if result.Output != nil {
		out = result.Output.String()
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("\x1b[32m==>\x1b[0m %s (run %s, %s elapsed)\n", out, result.RunID, humanize.Comma(result.Elapsed.Microseconds())+"us")
	} else {
		fmt.Printf("==> %s (run %s, %dus elapsed)\n", out, result.RunID, result.Elapsed.Microseconds())
	}
}
