// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for date and time
// calculations, with the datetime module predeclared.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// If an input line can be parsed as an expression,
// the REPL evaluates it and prints its result.
// Otherwise the REPL reads lines until a blank line
// and executes them as a file, for side effects;
// the names it defines stay visible to later input.
package repl // import "go.civiltime.net/repl"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.civiltime.net/lib/datetime"
)

var interrupted = make(chan os.Signal, 1)

// Predeclared returns the environment scripts run in.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{datetime.ModuleName: datetime.Module}
}

// REPL executes a read, eval, print loop.
//
// Before evaluating each item, it sets the Starlark thread local
// variable named "context" to a context.Context that is cancelled by a
// SIGINT (Control-C).
func REPL(thread *starlark.Thread, globals starlark.StringDict) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, thread, globals); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Starlark errors are printed.
func rep(rl *readline.Instance, thread *starlark.Thread, globals starlark.StringDict) error {
	// Each item gets its own context,
	// which is cancelled by a SIGINT.
	//
	// Note: during Readline calls, Control-C causes Readline to return
	// ErrInterrupt but does not generate a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()

	thread.SetLocal("context", ctx)

	var (
		eof bool
		src bytes.Buffer
	)

	// readline returns EOF, ErrInterrupted, or a line including "\n".
	rl.SetPrompt(">>> ")
	readline := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF {
				eof = true
			}
			return nil, err
		}
		src.WriteString(line + "\n")
		return []byte(line + "\n"), nil
	}

	// parse
	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if err != nil {
		if eof {
			return io.EOF
		}
		PrintError(err)
		return nil
	}

	if err := eval(thread, globals, f, src.Bytes(), os.Stdout); err != nil {
		PrintError(err)
	}
	return nil
}

// eval evaluates one parsed item whose text is src. A sole expression
// is printed to out unless it is None; statements are executed and the
// globals they bind are added to globals.
func eval(thread *starlark.Thread, globals starlark.StringDict, f *syntax.File, src []byte, out io.Writer) error {
	// Treat load bindings as global in the REPL.
	// Not safe wrt concurrent interpreters.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if soleExpr(f) != nil {
		v, err := starlark.Eval(thread, "<stdin>", src, globals)
		if err != nil {
			return err
		}
		if v != starlark.None {
			fmt.Fprintln(out, v)
		}
		return nil
	}

	bound, err := starlark.ExecFile(thread, "<stdin>", src, globals)
	for name, v := range bound {
		globals[name] = v
	}
	if len(bound) > 0 {
		slog.Debug("repl: bound globals", "count", len(bound))
	}
	return err
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError prints the error to stderr,
// or its backtrace if it is a Starlark evaluation error.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, errorText(err))
}

func errorText(err error) string {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return evalErr.Backtrace()
	}
	return err.Error()
}

// MakeLoad returns a simple sequential implementation of module loading
// suitable for use in the REPL. Loading "datetime" yields the datetime
// module; any other name is executed as a file with the datetime module
// predeclared.
// Each function returned by MakeLoad accesses a distinct private cache.
func MakeLoad() func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	var cache = make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		if module == datetime.ModuleName {
			return datetime.LoadModule()
		}
		e, ok := cache[module]
		if e == nil {
			if ok {
				// request for package whose loading is in progress
				return nil, fmt.Errorf("cycle in load graph")
			}

			// Add a placeholder to indicate "load in progress".
			cache[module] = nil

			// Load it, sharing the caller's clock and formatter.
			child := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			datetime.Inherit(child, thread)
			globals, err := starlark.ExecFile(child, module, nil, Predeclared())
			e = &entry{globals, err}

			// Update the cache.
			cache[module] = e
		}
		return e.globals, e.err
	}
}
