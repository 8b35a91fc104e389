// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scripttest runs chunked Starlark test scripts that exercise the
// datetime module.
//
// Scripts see the datetime module and an assert module with these
// functions, which report failures to the Go test:
//
//	assert.eq(x, y)           x == y
//	assert.ne(x, y)           x != y
//	assert.lt(x, y)           x < y
//	assert.true(cond, msg?)   cond is truthy
//	assert.fails(f, pattern)  f() fails with an error matching pattern
//	assert.matches(pattern, s)
//
// Expected script errors are marked with "###" as described in package
// chunkedfile.
package scripttest // import "go.civiltime.net/internal/scripttest"

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"go.civiltime.net/internal/chunkedfile"
	"go.civiltime.net/lib/datetime"
)

const localKey = "Reporter"

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// SetReporter associates an error reporter (such as a testing.T in
// a Go test) with the Starlark thread so that scripts may report
// errors to it.
func SetReporter(thread *starlark.Thread, r Reporter) {
	thread.SetLocal(localKey, r)
}

// GetReporter returns the Starlark thread's error reporter.
// It must be preceded by a call to SetReporter.
func GetReporter(thread *starlark.Thread) Reporter {
	r, ok := thread.Local(localKey).(Reporter)
	if !ok {
		panic("internal error: scripttest.SetReporter was not called")
	}
	return r
}

// Assert is the assert module.
var Assert = &starlarkstruct.Module{
	Name: "assert",
	Members: starlark.StringDict{
		"eq":      starlark.NewBuiltin("eq", compare(syntax.EQL)),
		"ne":      starlark.NewBuiltin("ne", compare(syntax.NEQ)),
		"lt":      starlark.NewBuiltin("lt", compare(syntax.LT)),
		"true":    starlark.NewBuiltin("true", assertTrue),
		"fails":   starlark.NewBuiltin("fails", fails),
		"matches": starlark.NewBuiltin("matches", matches),
	},
}

// Predeclared returns the environment test scripts run in.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		datetime.ModuleName: datetime.Module,
		"assert":            Assert,
	}
}

// RunFile runs each chunk of filename on a new thread prepared by setup,
// which may be nil, and checks its errors against the chunk's
// expectations.
func RunFile(r Reporter, filename string, setup func(*starlark.Thread)) {
	for _, chunk := range chunkedfile.Read(filename, r) {
		thread := &starlark.Thread{Name: filename}
		SetReporter(thread, r)
		if setup != nil {
			setup(thread)
		}
		_, err := starlark.ExecFile(thread, filename, chunk.Source, Predeclared())
		switch err := err.(type) {
		case *starlark.EvalError:
			found := false
			for i := len(err.CallStack) - 1; i >= 0; i-- {
				posn := err.CallStack[i].Pos
				if posn.Filename() == filename {
					chunk.GotError(int(posn.Line), err.Error())
					found = true
					break
				}
			}
			if !found {
				r.Error(err.Backtrace())
			}
		case syntax.Error:
			chunk.GotError(int(err.Pos.Line), err.Msg)
		case resolve.ErrorList:
			for _, e := range err {
				chunk.GotError(int(e.Pos.Line), e.Msg)
			}
		case nil:
			// success
		default:
			r.Error(err)
		}
		chunk.Done()
	}
}

// report reports a failed assertion at the caller's script position.
func report(thread *starlark.Thread, format string, args ...interface{}) {
	buf := new(strings.Builder)
	stk := thread.CallStack()
	stk.Pop()
	fmt.Fprintf(buf, "%sError: ", stk)
	fmt.Fprintf(buf, format, args...)
	GetReporter(thread).Error(buf.String())
}

func compare(op syntax.Token) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x, y starlark.Value
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
			return nil, err
		}
		ok, err := starlark.Compare(op, x, y)
		if err != nil {
			return nil, err
		}
		if !ok {
			report(thread, "%s %s %s", x, negated[op], y)
		}
		return starlark.None, nil
	}
}

var negated = map[syntax.Token]string{
	syntax.EQL: "!=",
	syntax.NEQ: "==",
	syntax.LT:  ">=",
}

func assertTrue(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		cond starlark.Value
		msg  = "assertion failed"
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &cond, &msg); err != nil {
		return nil, err
	}
	if !cond.Truth() {
		report(thread, "%s", msg)
	}
	return starlark.None, nil
}

// fails(f, pattern) calls f and checks that it fails with an error
// matching pattern.
func fails(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		fn      starlark.Callable
		pattern string
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &fn, &pattern); err != nil {
		return nil, err
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	_, err = starlark.Call(thread, fn, nil, nil)
	switch {
	case err == nil:
		report(thread, "evaluation succeeded unexpectedly (want error matching %q)", pattern)
	case !rx.MatchString(err.Error()):
		report(thread, "regular expression (%s) did not match error (%s)", pattern, err)
	}
	return starlark.None, nil
}

// matches(pattern, str) reports whether string str matches the regular expression pattern.
func matches(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "str", &str); err != nil {
		return nil, err
	}
	ok, err := regexp.MatchString(pattern, str)
	if err != nil {
		return nil, fmt.Errorf("matches: %s", err)
	}
	return starlark.Bool(ok), nil
}
