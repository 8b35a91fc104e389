// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rickb777/period"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
	"golang.org/x/text/language"

	"go.civiltime.net/civil"
	"go.civiltime.net/format"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "datetime"

// Module datetime is a Starlark module of calendar dates and durations.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"datetime":       starlark.NewBuiltin("datetime", newDateTime),
		"date":           starlark.NewBuiltin("date", newDate),
		"now":            starlark.NewBuiltin("now", now),
		"now_utc":        starlark.NewBuiltin("now_utc", nowUTC),
		"today":          starlark.NewBuiltin("today", today),
		"today_utc":      starlark.NewBuiltin("today_utc", todayUTC),
		"from_timestamp": starlark.NewBuiltin("from_timestamp", fromTimestamp),
		"parse":          starlark.NewBuiltin("parse", parse),
		"duration":       starlark.NewBuiltin("duration", newDuration),
		"parse_duration": starlark.NewBuiltin("parse_duration", parseDuration),
		"between":        starlark.NewBuiltin("between", between),
		"is_leap_year":   starlark.NewBuiltin("is_leap_year", isLeapYear),
		"zone":           starlark.NewBuiltin("zone", loadZone),

		"epoch": DateTime{},
		"utc":   Zone{civil.UTC},
		"local": Zone{civil.Local},

		"millisecond": Duration(civil.Millisecond),
		"second":      Duration(civil.Second),
		"minute":      Duration(civil.Minute),
		"hour":        Duration(civil.Hour),
		"day":         Duration(civil.Day),
	},
}

// LoadModule loads the datetime module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// NowFunc is a function that generates the current time. Intentionally exported
// so that it can be overridden, for example by applications that require their
// Starlark scripts to be fully deterministic.
var NowFunc = time.Now

const (
	nowKey       = "datetime.now"
	formatterKey = "datetime.formatter"
)

// SetNow sets the thread's clock, which takes precedence over NowFunc.
func SetNow(thread *starlark.Thread, nowFunc func() (time.Time, error)) {
	thread.SetLocal(nowKey, nowFunc)
}

// Now returns the current time as seen by the thread.
func Now(thread *starlark.Thread) (time.Time, error) {
	if nowFunc, ok := thread.Local(nowKey).(func() (time.Time, error)); ok {
		return nowFunc()
	}
	if NowFunc != nil {
		return NowFunc(), nil
	}
	return time.Time{}, errors.New("datetime.now() is not available")
}

// SetFormatter sets the formatter used by the thread's format and parse
// calls. Threads without one use format.Default().
func SetFormatter(thread *starlark.Thread, f *format.Formatter) {
	thread.SetLocal(formatterKey, f)
}

// Inherit copies the clock and formatter of parent to child.
func Inherit(child, parent *starlark.Thread) {
	for _, key := range []string{nowKey, formatterKey} {
		if v := parent.Local(key); v != nil {
			child.SetLocal(key, v)
		}
	}
}

func formatter(thread *starlark.Thread) *format.Formatter {
	if f, ok := thread.Local(formatterKey).(*format.Formatter); ok && f != nil {
		return f
	}
	return format.Default()
}

func currentInstant(thread *starlark.Thread) (civil.Instant, error) {
	t, err := Now(thread)
	if err != nil {
		return 0, err
	}
	return civil.InstantFromTime(t), nil
}

func now(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var z zoneArg
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "zone?", &z); err != nil {
		return nil, err
	}
	i, err := currentInstant(thread)
	if err != nil {
		return nil, err
	}
	return DateTime(civil.FromInstant(i, civil.Gregorian, z.zone())), nil
}

func nowUTC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return now(thread, b, starlark.Tuple{Zone{civil.UTC}}, nil)
}

func today(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	v, err := now(thread, b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(v.(DateTime)).Date()), nil
}

func todayUTC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return today(thread, b, starlark.Tuple{Zone{civil.UTC}}, nil)
}

func newDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		f = civil.Fields{Month: 1, Day: 1}
		z zoneArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"year", &f.Year, "month?", &f.Month, "day?", &f.Day,
		"hour?", &f.Hour, "minute?", &f.Minute, "second?", &f.Second,
		"millisecond?", &f.Millisecond, "zone?", &z); err != nil {
		return nil, err
	}
	d, err := civil.Compose(f, civil.Gregorian, z.zone())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return DateTime(d), nil
}

func newDate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		year, month, day int
		z                zoneArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "year", &year, "month", &month, "day", &day, "zone?", &z); err != nil {
		return nil, err
	}
	d, err := civil.Date(year, month, day, z.zone())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return DateTime(d), nil
}

func fromTimestamp(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x starlark.Value
		z zoneArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "zone?", &z); err != nil {
		return nil, err
	}
	if s, ok := x.(starlark.String); ok {
		d, err := format.ParseUnixTimestamp(string(s), z.zone())
		if err != nil {
			return nil, err
		}
		return DateTime(d), nil
	}
	ms, err := fromSeconds(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return DateTime(civil.FromInstant(civil.UnixMilliInstant(ms), civil.Gregorian, z.zone())), nil
}

func parse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		s, pattern string
		z          zoneArg
		loc        localeArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "s", &s, "pattern", &pattern, "zone?", &z, "locale?", &loc); err != nil {
		return nil, err
	}
	d, err := formatter(thread).Parse(s, pattern, format.Options{Zone: z.Zone, Locale: loc.tag})
	if err != nil {
		return nil, err
	}
	return DateTime(d), nil
}

func between(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y DateTime
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	return Duration(civil.Between(civil.DateTime(x), civil.DateTime(y))), nil
}

func isLeapYear(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var year int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &year); err != nil {
		return nil, err
	}
	return starlark.Bool(civil.Gregorian.IsLeapYear(year)), nil
}

func loadZone(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	z, err := civil.LoadZone(name)
	if err != nil {
		return nil, err
	}
	return Zone{z}, nil
}

// DateTime is a Starlark representation of a civil date and time.
type DateTime civil.DateTime

// assert at compile time that DateTime implements Unpacker.
var _ starlark.Unpacker = (*DateTime)(nil)

// Unpack accepts only datetimes.
func (t *DateTime) Unpack(v starlark.Value) error {
	d, ok := v.(DateTime)
	if !ok {
		return fmt.Errorf("got %s, want %s", v.Type(), t.Type())
	}
	*t = d
	return nil
}

func (t DateTime) String() string { return civil.DateTime(t).String() }

// Type returns "datetime.datetime".
func (t DateTime) Type() string { return "datetime.datetime" }

// Freeze is a no-op; datetimes are immutable.
func (t DateTime) Freeze() {}

// Hash hashes the instant only, so that equal datetimes in different zones
// hash alike.
func (t DateTime) Hash() (uint32, error) {
	i := int64(civil.DateTime(t).Instant())
	return uint32(i) ^ uint32(i>>32), nil
}

func (t DateTime) Truth() starlark.Bool { return true }

// Attr gets a value for a string attribute, implementing dot expression support
// in starlark. required by starlark.HasAttrs interface.
func (t DateTime) Attr(name string) (starlark.Value, error) {
	d := civil.DateTime(t)
	switch name {
	case "year":
		return starlark.MakeInt(d.Year()), nil
	case "month":
		return starlark.MakeInt(d.Month()), nil
	case "day":
		return starlark.MakeInt(d.Day()), nil
	case "hour":
		return starlark.MakeInt(d.Hour()), nil
	case "minute":
		return starlark.MakeInt(d.Minute()), nil
	case "second":
		return starlark.MakeInt(d.Second()), nil
	case "millisecond":
		return starlark.MakeInt(d.Millisecond()), nil
	case "offset":
		return starlark.MakeInt(d.Offset()), nil
	case "zone":
		return Zone{d.Zone()}, nil
	case "calendar":
		return starlark.String(d.Calendar().Name()), nil
	case "day_of_week":
		return starlark.MakeInt(d.DayOfWeek()), nil
	case "day_of_year":
		return starlark.MakeInt(d.DayOfYear()), nil
	case "is_leap_year":
		return starlark.Bool(d.IsLeapYear()), nil
	case "is_leap_month":
		return starlark.Bool(d.IsLeapMonth()), nil
	case "unix":
		return starlark.Float(d.Unix()), nil
	case "since_reference_date":
		return starlark.Float(d.SinceReferenceDate()), nil
	case "date":
		return DateTime(d.Date()), nil
	case "time_of_day":
		return Duration(d.TimeOfDay()), nil
	}
	return builtinAttr(t, name, dateTimeMethods)
}

// AttrNames lists available dot expression strings for datetime. required by
// starlark.HasAttrs interface.
func (t DateTime) AttrNames() []string {
	return append(builtinAttrNames(dateTimeMethods),
		"calendar",
		"date",
		"day",
		"day_of_week",
		"day_of_year",
		"hour",
		"is_leap_month",
		"is_leap_year",
		"millisecond",
		"minute",
		"month",
		"offset",
		"second",
		"since_reference_date",
		"time_of_day",
		"unix",
		"year",
		"zone",
	)
}

// CompareSameType orders datetimes by instant, whatever their zones.
// required by starlark.Comparable interface.
func (t DateTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, civil.DateTime(t).Compare(civil.DateTime(yV.(DateTime)))), nil
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface
//
//	datetime + duration = datetime
//	datetime - duration = datetime
//	datetime - datetime = duration
func (t DateTime) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := civil.DateTime(t)

	switch op {
	case syntax.PLUS:
		switch y := yV.(type) {
		case Duration:
			return DateTime(x.Add(civil.Duration(y))), nil
		case DateTime:
			return nil, fmt.Errorf("cannot add %s to %s", t.Type(), yV.Type())
		}
	case syntax.MINUS:
		switch y := yV.(type) {
		case Duration:
			if side == starlark.Left {
				return DateTime(x.Subtract(civil.Duration(y))), nil
			}
		case DateTime:
			// datetime - datetime = duration
			if side == starlark.Left {
				return Duration(civil.Between(civil.DateTime(y), x)), nil
			}
			return Duration(civil.Between(x, civil.DateTime(y))), nil
		}
	}

	return nil, nil
}

var dateTimeMethods = map[string]builtinMethod{
	"add_fields":        dateTimeAddFields,
	"add_days":          dateTimeAddDays,
	"add_duration":      dateTimeAddDuration,
	"subtract_duration": dateTimeSubtractDuration,
	"add_period":        dateTimeAddPeriod,
	"in_zone":           dateTimeIn,
	"utc":               dateTimeUTC,
	"local":             dateTimeLocal,
	"format":            dateTimeFormat,
	"unix_timestamp":    dateTimeUnixTimestamp,
	"equals":            dateTimeEquals,
}

func dateTimeAddFields(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var delta civil.Delta
	if err := starlark.UnpackArgs(fnname, args, kwargs,
		"years?", &delta.Years, "months?", &delta.Months, "days?", &delta.Days,
		"hours?", &delta.Hours, "minutes?", &delta.Minutes, "seconds?", &delta.Seconds,
		"milliseconds?", &delta.Milliseconds); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).AddFields(delta)), nil
}

func dateTimeAddDays(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).AddDays(n)), nil
}

func dateTimeAddDuration(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).Add(civil.Duration(d))), nil
}

func dateTimeSubtractDuration(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).Subtract(civil.Duration(d))), nil
}

func dateTimeAddPeriod(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var iso string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &iso); err != nil {
		return nil, err
	}
	p, err := period.Parse(iso)
	if err != nil {
		return nil, err
	}
	d, err := civil.DateTime(recV.(DateTime)).AddPeriod(p)
	if err != nil {
		return nil, err
	}
	return DateTime(d), nil
}

func dateTimeIn(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var z zoneArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &z); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).In(z.zone())), nil
}

func dateTimeUTC(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).UTC()), nil
}

func dateTimeLocal(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return DateTime(civil.DateTime(recV.(DateTime)).Local()), nil
}

func dateTimeFormat(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		opts                 format.Options
		dateStyle, timeStyle styleArg
		z                    zoneArg
		loc                  localeArg
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs,
		"pattern?", &opts.Pattern, "template?", &opts.Template,
		"date_style?", &dateStyle, "time_style?", &timeStyle,
		"zone?", &z, "locale?", &loc); err != nil {
		return nil, err
	}
	opts.DateStyle, opts.TimeStyle = dateStyle.style, timeStyle.style
	opts.Zone, opts.Locale = z.Zone, loc.tag
	s, err := formatter(thread).Format(civil.DateTime(recV.(DateTime)), opts)
	if err != nil {
		return nil, err
	}
	return starlark.String(s), nil
}

func dateTimeUnixTimestamp(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(format.FormatUnixTimestamp(civil.DateTime(recV.(DateTime)))), nil
}

func dateTimeEquals(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y DateTime
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return starlark.Bool(civil.DateTime(recV.(DateTime)).Equal(civil.DateTime(y))), nil
}

// Zone is a Starlark representation of a time zone.
type Zone struct{ civil.Zone }

func (z Zone) String() string        { return z.Name() }
func (z Zone) Type() string          { return "datetime.zone" }
func (z Zone) Freeze()               {}
func (z Zone) Truth() starlark.Bool  { return true }
func (z Zone) Hash() (uint32, error) { return starlark.String(z.Name()).Hash() }

func (z Zone) Attr(name string) (starlark.Value, error) {
	if name == "name" {
		return starlark.String(z.Name()), nil
	}
	return builtinAttr(z, name, zoneMethods)
}

func (z Zone) AttrNames() []string { return append(builtinAttrNames(zoneMethods), "name") }

// CompareSameType compares zones by name.
func (z Zone) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	switch op {
	case syntax.EQL, syntax.NEQ:
		eq := z.Name() == yV.(Zone).Name()
		return eq == (op == syntax.EQL), nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", z.Type(), op, yV.Type())
}

var zoneMethods = map[string]builtinMethod{
	"offset_at": zoneOffsetAt,
}

func zoneOffsetAt(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t DateTime
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &t); err != nil {
		return nil, err
	}
	return starlark.MakeInt(recV.(Zone).OffsetAt(civil.DateTime(t).Instant())), nil
}

// zoneArg unpacks None, a zone or a tz database name.
type zoneArg struct{ civil.Zone }

func (a *zoneArg) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case starlark.NoneType:
		a.Zone = nil
	case Zone:
		a.Zone = x.Zone
	case starlark.String:
		z, err := civil.LoadZone(string(x))
		if err != nil {
			return err
		}
		a.Zone = z
	default:
		return fmt.Errorf("got %s, want zone or string", v.Type())
	}
	return nil
}

// zone returns the unpacked zone, or Local.
func (a zoneArg) zone() civil.Zone {
	if a.Zone == nil {
		return civil.Local
	}
	return a.Zone
}

// localeArg unpacks a BCP 47 language tag such as "de-AT".
type localeArg struct{ tag language.Tag }

func (a *localeArg) Unpack(v starlark.Value) error {
	if v == starlark.None {
		return nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("got %s, want string", v.Type())
	}
	tag, err := language.Parse(s)
	if err != nil {
		return err
	}
	a.tag = tag
	return nil
}

// styleArg unpacks a style name such as "medium".
type styleArg struct{ style format.Style }

func (a *styleArg) Unpack(v starlark.Value) error {
	if v == starlark.None {
		return nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("got %s, want string", v.Type())
	}
	style, err := format.ParseStyle(s)
	if err != nil {
		return err
	}
	a.style = style
	return nil
}

type builtinMethod func(thread *starlark.Thread, fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(thread, b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}
