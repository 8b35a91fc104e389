// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The civiltime command evaluates date and time calculations written in
// Starlark, with the datetime module predeclared.
// With no arguments it starts a read-eval-print loop (REPL), or, when
// standard input is not a terminal, executes standard input.
//
// Defaults for formatting and the meaning of Local are read from the
// environment; run with -help to list the variables.
package main // import "go.civiltime.net/cmd/civiltime"

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"go.starlark.net/starlark"
	"golang.org/x/term"

	"go.civiltime.net/internal/config"
	"go.civiltime.net/lib/datetime"
	"go.civiltime.net/repl"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	showenv    = flag.Bool("showenv", false, "on success, print final global environment")
	execprog   = flag.String("c", "", "execute program `prog`")
	zone       = flag.String("zone", "", "tz database name that Local stands for; overrides CIVILTIME_ZONE")
	pattern    = flag.String("pattern", "", "default format pattern; overrides CIVILTIME_PATTERN")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: civiltime [flags] [file]\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n%s\n", config.Usage())
	}
	os.Exit(doMain())
}

func doMain() int {
	flag.Parse()

	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintln(os.Stderr, "civiltime:", err)
		return 1
	}
	if *zone != "" {
		cfg.Zone = *zone
	}
	if *pattern != "" {
		cfg.Pattern = *pattern
	}

	logger := cfg.Logger(os.Stderr).With("cmd", "civiltime")
	slog.SetDefault(logger)

	if err := cfg.ApplyZone(); err != nil {
		logger.Error("cannot resolve zone", "zone", cfg.Zone, "err", err)
		return 1
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		logger.Error("invalid formatting defaults", "err", err)
		return 1
	}
	logger.Debug("configured", "zone", cfg.Zone, "locale", cfg.Locale, "pattern", cfg.Pattern)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(logger, err)
		err = pprof.StartCPUProfile(f)
		check(logger, err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(logger, err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(logger, err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(logger, err)
			err = f.Close()
			check(logger, err)
		}()
	}

	thread := &starlark.Thread{Load: repl.MakeLoad()}
	datetime.SetFormatter(thread, formatter)
	globals := repl.Predeclared()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	switch {
	case flag.NArg() == 1 || *execprog != "" || (flag.NArg() == 0 && !interactive):
		var (
			filename string
			src      interface{}
		)
		switch {
		case *execprog != "":
			// Execute provided program.
			filename = "cmdline"
			src = *execprog
		case flag.NArg() == 1:
			// Execute specified file.
			filename = flag.Arg(0)
		default:
			filename = "<stdin>"
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				logger.Error("cannot read standard input", "err", err)
				return 1
			}
			src = b
		}
		thread.Name = "exec " + filename
		logger.Debug("executing", "file", filename)
		bound, err := starlark.ExecFile(thread, filename, src, globals)
		if err != nil {
			repl.PrintError(err)
			return 1
		}
		for name, v := range bound {
			globals[name] = v
		}
	case flag.NArg() == 0:
		fmt.Println("Welcome to civiltime. The datetime module is predeclared.")
		thread.Name = "REPL"
		repl.REPL(thread, globals)
	default:
		logger.Error("want at most one file name", "args", flag.Args())
		return 1
	}

	// Print the global environment.
	if *showenv {
		for _, name := range globals.Keys() {
			if !strings.HasPrefix(name, "_") && name != datetime.ModuleName {
				fmt.Fprintf(os.Stderr, "%s = %s\n", name, globals[name])
			}
		}
	}

	return 0
}

func check(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("profiling failed", "err", err)
		os.Exit(1)
	}
}
