// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"fmt"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.civiltime.net/civil"
)

// Duration is a Starlark representation of an elapsed time.
type Duration civil.Duration

func newDuration(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x                                           starlark.Value = starlark.None
		days, hours, minutes, seconds, milliseconds int
	)
	if err := starlark.UnpackArgs("duration", args, kwargs,
		"x?", &x, "days?", &days, "hours?", &hours, "minutes?", &minutes,
		"seconds?", &seconds, "milliseconds?", &milliseconds); err != nil {
		return nil, err
	}
	d := Duration(civil.NewDuration(days, hours, minutes, seconds, milliseconds))
	if x != starlark.None {
		var base Duration
		if err := base.Unpack(x); err != nil {
			return nil, fmt.Errorf("duration: %v", err)
		}
		d += base
	}
	return d, nil
}

func parseDuration(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_duration", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	d, err := civil.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return Duration(d), nil
}

// assert at compile time that Duration implements Unpacker.
var _ starlark.Unpacker = (*Duration)(nil)

// Unpack accepts a duration, an int number of milliseconds or an ISO-8601
// string such as "PT1H30M".
func (d *Duration) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Duration:
		*d = x
		return nil
	case starlark.Int:
		i, ok := x.Int64()
		if !ok {
			return fmt.Errorf("int value out of range (want signed 64-bit value)")
		}
		*d = Duration(i)
		return nil
	case starlark.String:
		dur, err := civil.ParseDuration(string(x))
		if err != nil {
			return err
		}
		*d = Duration(dur)
		return nil
	}
	return fmt.Errorf("cannot convert %s to %s", v.Type(), d.Type())
}

// String renders d in ISO-8601 form, such as "PT1H30M".
func (d Duration) String() string { return civil.Duration(d).String() }

// Type returns "datetime.duration".
func (d Duration) Type() string { return "datetime.duration" }

// Freeze is a no-op; durations are immutable.
func (d Duration) Freeze() {}

func (d Duration) Hash() (uint32, error) {
	return uint32(d) ^ uint32(int64(d)>>32), nil
}

// Truth reports whether d is non-zero.
func (d Duration) Truth() starlark.Bool { return d != 0 }

// Attr returns the components and totals of d. Components share the sign
// of d.
func (d Duration) Attr(name string) (starlark.Value, error) {
	x := civil.Duration(d)
	switch name {
	case "days":
		return starlark.MakeInt(x.Days()), nil
	case "hours":
		return starlark.MakeInt(x.Hours()), nil
	case "minutes":
		return starlark.MakeInt(x.Minutes()), nil
	case "seconds":
		return starlark.MakeInt(x.Seconds()), nil
	case "milliseconds":
		return starlark.MakeInt(x.Milliseconds()), nil
	case "total_days":
		return starlark.Float(x.TotalDays()), nil
	case "total_hours":
		return starlark.Float(x.TotalHours()), nil
	case "total_minutes":
		return starlark.Float(x.TotalMinutes()), nil
	case "total_seconds":
		return starlark.Float(x.TotalSeconds()), nil
	case "total_milliseconds":
		return starlark.MakeInt64(int64(x)), nil
	}
	return builtinAttr(d, name, durationMethods)
}

func (d Duration) AttrNames() []string {
	return append(builtinAttrNames(durationMethods),
		"days",
		"hours",
		"minutes",
		"seconds",
		"milliseconds",
		"total_days",
		"total_hours",
		"total_minutes",
		"total_seconds",
		"total_milliseconds",
	)
}

var durationMethods = map[string]builtinMethod{
	"abs":    durationAbs,
	"equals": durationEquals,
}

func durationAbs(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Duration(civil.Duration(recV.(Duration)).Abs()), nil
}

func durationEquals(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return starlark.Bool(civil.Duration(recV.(Duration)).Equal(civil.Duration(y))), nil
}

// CompareSameType orders durations by length.
func (d Duration) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, civil.Compare(civil.Duration(d), civil.Duration(yV.(Duration)))), nil
}

// Unary implements unary minus and plus.
func (d Duration) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Duration(civil.Duration(d).Negate()), nil
	case syntax.PLUS:
		return d, nil
	}
	return nil, nil
}

// Binary implements binary operators:
//
//	duration + duration = duration
//	duration + datetime = datetime
//	duration - duration = duration
//	duration * int = duration
//	int * duration = duration
//	duration / duration = float
//	duration // duration = int
//	duration // int = duration
func (d Duration) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := civil.Duration(d)

	switch op {
	case syntax.PLUS:
		switch y := yV.(type) {
		case Duration:
			return Duration(x.Add(civil.Duration(y))), nil
		case DateTime:
			return DateTime(civil.DateTime(y).Add(x)), nil
		}

	case syntax.MINUS:
		if y, ok := yV.(Duration); ok {
			if side == starlark.Left {
				return Duration(x.Subtract(civil.Duration(y))), nil
			}
			return Duration(civil.Duration(y).Subtract(x)), nil
		}

	case syntax.STAR:
		if y, ok := yV.(starlark.Int); ok {
			i, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			return d * Duration(i), nil
		}

	case syntax.SLASH:
		if y, ok := yV.(Duration); ok && side == starlark.Left {
			if y == 0 {
				return nil, fmt.Errorf("%s division by zero", d.Type())
			}
			return starlark.Float(float64(d) / float64(y)), nil
		}

	case syntax.SLASHSLASH:
		if side != starlark.Left {
			break
		}
		switch y := yV.(type) {
		case Duration:
			if y == 0 {
				return nil, fmt.Errorf("%s floored division by zero", d.Type())
			}
			return starlark.MakeInt64(floorDiv(int64(d), int64(y))), nil
		case starlark.Int:
			i, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			if i == 0 {
				return nil, fmt.Errorf("%s floored division by zero", d.Type())
			}
			return Duration(floorDiv(int64(d), i)), nil
		}
	}

	return nil, nil
}

func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

// fromSeconds converts Starlark seconds, an int or a float, to
// milliseconds.
func fromSeconds(v starlark.Value) (int64, error) {
	switch x := v.(type) {
	case starlark.Int:
		i, ok := x.Int64()
		if !ok || i > math.MaxInt64/1000 || i < math.MinInt64/1000 {
			return 0, fmt.Errorf("int value out of range")
		}
		return i * 1000, nil
	case starlark.Float:
		ms := math.Round(float64(x) * 1e3)
		if math.IsNaN(ms) || ms >= math.MaxInt64 || ms < math.MinInt64 {
			return 0, fmt.Errorf("float value out of range")
		}
		return int64(ms), nil
	}
	return 0, fmt.Errorf("got %s, want int or float seconds", v.Type())
}
