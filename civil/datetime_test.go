// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"

	"go.civiltime.net/civil"
)

func mustDate(t *testing.T, opts civil.Options) civil.DateTime {
	t.Helper()
	if opts.Zone == nil {
		opts.Zone = civil.UTC
	}
	d, err := civil.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func mustZone(t *testing.T, name string) civil.Zone {
	t.Helper()
	z, err := civil.LoadZone(name)
	if err != nil {
		t.Fatal(err)
	}
	return z
}

func TestEqualIgnoresCalendarAndZone(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	tokyo := civil.FixedZone("JST", 9*60)
	for _, i := range []civil.Instant{0, -1, 1, 86399999, -978307200000, 1700000000123} {
		a := civil.FromInstant(i, civil.Gregorian, berlin)
		b := civil.FromInstant(i, nil, tokyo)
		if !a.Equal(b) {
			t.Errorf("instant %d: %v not equal to %v", i, a, b)
		}
		if a.In(civil.UTC).Instant() != i || b.In(berlin).Instant() != i {
			t.Errorf("instant %d: zone conversion changed the instant", i)
		}
	}
}

func TestFields(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	for _, test := range []struct {
		d    civil.DateTime
		want civil.Fields
	}{
		{civil.DateTime{}, civil.Fields{Year: 2001, Month: 1, Day: 1}},
		{civil.FromInstant(civil.UnixInstant(0), nil, civil.UTC), civil.Fields{Year: 1970, Month: 1, Day: 1}},
		{civil.FromInstant(-1, nil, civil.UTC), civil.Fields{Year: 2000, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Millisecond: 999}},
		{civil.FromInstant(0, nil, berlin), civil.Fields{Year: 2001, Month: 1, Day: 1, Hour: 1}},
		{civil.FromInstant(0, nil, civil.FixedZone("", -90)), civil.Fields{Year: 2000, Month: 12, Day: 31, Hour: 22, Minute: 30}},
		{civil.FromTime(time.Date(2024, 2, 29, 13, 14, 15, 16e6, time.UTC)), civil.Fields{Year: 2024, Month: 2, Day: 29, Hour: 13, Minute: 14, Second: 15, Millisecond: 16}},
		{civil.FromTime(time.Date(1600, 3, 1, 0, 0, 0, 0, time.UTC)), civil.Fields{Year: 1600, Month: 3, Day: 1}},
		{civil.FromTime(time.Date(-44, 3, 15, 12, 0, 0, 0, time.UTC)), civil.Fields{Year: -44, Month: 3, Day: 15, Hour: 12}},
	} {
		if diff := cmp.Diff(test.want, test.d.Fields()); diff != "" {
			t.Errorf("%v: fields mismatch (-want +got):\n%s", test.d, diff)
		}
	}
}

func TestFieldsAgreeWithTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip(err)
	}
	z := civil.ZoneOf(loc)
	start := time.Date(1901, 1, 1, 0, 0, 0, 0, time.UTC)
	for tt := start; tt.Year() < 2100; tt = tt.Add(97*time.Hour + 13*time.Minute + 7*time.Second + 3*time.Millisecond) {
		d := civil.FromInstant(civil.InstantFromTime(tt), nil, z)
		lt := tt.In(loc)
		want := civil.Fields{
			Year: lt.Year(), Month: int(lt.Month()), Day: lt.Day(),
			Hour: lt.Hour(), Minute: lt.Minute(), Second: lt.Second(),
			Millisecond: lt.Nanosecond() / 1e6,
		}
		if got := d.Fields(); got != want {
			t.Fatalf("%v: got %v, want %v", tt, got, want)
		}
		if got, want := d.DayOfWeek(), int(lt.Weekday())+1; got != want {
			t.Fatalf("%v: day of week %d, want %d", tt, got, want)
		}
		if got, want := d.DayOfYear(), lt.YearDay(); got != want {
			t.Fatalf("%v: day of year %d, want %d", tt, got, want)
		}
	}
}

func TestNewRejectsInvalidFields(t *testing.T) {
	for _, opts := range []civil.Options{
		{Year: 2023, Month: 2, Day: 30},
		{Year: 2023, Month: 2, Day: 29},
		{Year: 1900, Month: 2, Day: 29},
		{Year: 2023, Month: 13, Day: 1},
		{Year: 2023, Month: -1, Day: 1},
		{Year: 2023, Month: 4, Day: 31},
		{Year: 2023, Month: 1, Day: -3},
		{Year: 2023, Month: 1, Day: 1, Hour: 24},
		{Year: 2023, Month: 1, Day: 1, Minute: 60},
		{Year: 2023, Month: 1, Day: 1, Second: -1},
		{Year: 2023, Month: 1, Day: 1, Millisecond: 1000},
	} {
		opts.Zone = civil.UTC
		if d, err := civil.New(opts); !errors.Is(err, civil.ErrInvalidDate) {
			t.Errorf("New(%+v) = %v, %v, want ErrInvalidDate", opts, d, err)
		}
	}

	for _, opts := range []civil.Options{
		{Year: 2024, Month: 2, Day: 29},
		{Year: 2000, Month: 2, Day: 29},
		{Year: 2023, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Millisecond: 999},
		{Year: 2023},
	} {
		opts.Zone = civil.UTC
		if _, err := civil.New(opts); err != nil {
			t.Errorf("New(%+v): %v", opts, err)
		}
	}
}

func TestDateRejectsZeroFields(t *testing.T) {
	for _, test := range []struct{ y, m, d int }{
		{2023, 0, 0},
		{2023, 0, 5},
		{2023, 2, 0},
	} {
		if d, err := civil.Date(test.y, test.m, test.d, civil.UTC); !errors.Is(err, civil.ErrInvalidDate) {
			t.Errorf("Date(%d, %d, %d) = %v, %v, want ErrInvalidDate", test.y, test.m, test.d, d, err)
		}
	}
	if _, err := civil.Compose(civil.Fields{Year: 2023}, nil, civil.UTC); !errors.Is(err, civil.ErrInvalidDate) {
		t.Errorf("Compose with zero month and day: %v, want ErrInvalidDate", err)
	}
}

func TestFieldsStringNegativeYear(t *testing.T) {
	for _, test := range []struct {
		f    civil.Fields
		want string
	}{
		{civil.Fields{Year: -44, Month: 3, Day: 15}, "-0044-03-15 00:00:00.000"},
		{civil.Fields{Year: 7, Month: 1, Day: 2, Hour: 3}, "0007-01-02 03:00:00.000"},
		{civil.Fields{Year: 12345, Month: 12, Day: 31}, "12345-12-31 00:00:00.000"},
	} {
		if got := test.f.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.f, got, test.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	defer func(prev func() *time.Location) { civil.LocalFunc = prev }(civil.LocalFunc)
	civil.LocalFunc = func() *time.Location { return time.FixedZone("X", 3600) }

	d, err := civil.New(civil.Options{Year: 2023})
	if err != nil {
		t.Fatal(err)
	}
	if d.Calendar() != civil.Gregorian || d.Zone() != civil.Local {
		t.Errorf("defaults: calendar %v, zone %v", d.Calendar(), d.Zone())
	}
	if got, want := d.Fields(), (civil.Fields{Year: 2023, Month: 1, Day: 1}); got != want {
		t.Errorf("fields %v, want %v", got, want)
	}
	if got := d.UTC().Hour(); got != 23 {
		t.Errorf("UTC hour %d, want 23", got)
	}
}

func TestLeapYear(t *testing.T) {
	for year, want := range map[int]bool{2000: true, 1900: false, 2024: true, 2023: false, 1600: true, 2100: false, 0: true, -4: true} {
		if got := civil.Gregorian.IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %t, want %t", year, got, want)
		}
		d := mustDate(t, civil.Options{Year: year, Month: 6, Day: 1})
		if got := d.IsLeapYear(); got != want {
			t.Errorf("%v.IsLeapYear() = %t, want %t", d, got, want)
		}
	}
}

func TestLeapMonthIsAlwaysFalse(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for month := 1; month <= 12; month++ {
			d := mustDate(t, civil.Options{Year: year, Month: month, Day: 1})
			if d.IsLeapMonth() {
				t.Errorf("%v.IsLeapMonth() = true", d)
			}
		}
	}
}

func TestDayOfWeekAndYear(t *testing.T) {
	for _, test := range []struct {
		y, m, d      int
		weekday, doy int
	}{
		{2023, 1, 1, 1, 1},
		{2023, 1, 7, 7, 7},
		{2023, 12, 31, 1, 365},
		{2024, 12, 31, 3, 366},
		{2001, 1, 1, 2, 1},
		{1970, 1, 1, 5, 1},
	} {
		d := mustDate(t, civil.Options{Year: test.y, Month: test.m, Day: test.d})
		if got := d.DayOfWeek(); got != test.weekday {
			t.Errorf("%v.DayOfWeek() = %d, want %d", d, got, test.weekday)
		}
		if got := d.DayOfYear(); got != test.doy {
			t.Errorf("%v.DayOfYear() = %d, want %d", d, got, test.doy)
		}
	}
}

func TestAddFieldsClampsDay(t *testing.T) {
	for _, test := range []struct {
		from  civil.Options
		delta civil.Delta
		want  civil.Options
	}{
		{civil.Options{Year: 2023, Month: 1, Day: 31}, civil.Delta{Months: 1}, civil.Options{Year: 2023, Month: 2, Day: 28}},
		{civil.Options{Year: 2024, Month: 1, Day: 31}, civil.Delta{Months: 1}, civil.Options{Year: 2024, Month: 2, Day: 29}},
		{civil.Options{Year: 2024, Month: 2, Day: 29}, civil.Delta{Years: 1}, civil.Options{Year: 2025, Month: 2, Day: 28}},
		{civil.Options{Year: 2023, Month: 3, Day: 31}, civil.Delta{Months: -1}, civil.Options{Year: 2023, Month: 2, Day: 28}},
		{civil.Options{Year: 2023, Month: 11, Day: 30}, civil.Delta{Months: 3}, civil.Options{Year: 2024, Month: 2, Day: 29}},
		{civil.Options{Year: 2023, Month: 1, Day: 15}, civil.Delta{Months: -13}, civil.Options{Year: 2021, Month: 12, Day: 15}},
		{civil.Options{Year: 2023, Month: 1, Day: 31}, civil.Delta{Months: 1, Days: 1}, civil.Options{Year: 2023, Month: 3, Day: 1}},
		{civil.Options{Year: 2023, Month: 5, Day: 31, Hour: 10, Minute: 20}, civil.Delta{Months: 1, Hours: 2}, civil.Options{Year: 2023, Month: 6, Day: 30, Hour: 12, Minute: 20}},
		{civil.Options{Year: 2023, Month: 1, Day: 31}, civil.Delta{Days: 1}, civil.Options{Year: 2023, Month: 2, Day: 1}},
		{civil.Options{Year: 2023, Month: 12, Day: 31, Hour: 23}, civil.Delta{Minutes: 90}, civil.Options{Year: 2024, Month: 1, Day: 1, Minute: 30}},
		{civil.Options{Year: 2023, Month: 1, Day: 1}, civil.Delta{Milliseconds: -1}, civil.Options{Year: 2022, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Millisecond: 999}},
	} {
		from, want := mustDate(t, test.from), mustDate(t, test.want)
		if got := from.AddFields(test.delta); !got.Equal(want) {
			t.Errorf("%v + %+v = %v, want %v", from, test.delta, got, want)
		}
	}
}

func TestConvenienceAdditions(t *testing.T) {
	jan31 := mustDate(t, civil.Options{Year: 2023, Month: 1, Day: 31})
	for _, test := range []struct {
		name string
		got  civil.DateTime
		want civil.Options
	}{
		{"AddDate", jan31.AddDate(0, 1, 0), civil.Options{Year: 2023, Month: 2, Day: 28}},
		{"AddDays", jan31.AddDays(1), civil.Options{Year: 2023, Month: 2, Day: 1}},
		{"AddDays-negative", jan31.AddDays(-31), civil.Options{Year: 2022, Month: 12, Day: 31}},
		{"AddDays-year", jan31.AddDays(365), civil.Options{Year: 2024, Month: 1, Day: 31}},
		{"AddClock", jan31.AddClock(25, 61, 61), civil.Options{Year: 2023, Month: 2, Day: 1, Hour: 2, Minute: 2, Second: 1}},
		{"AddHours", jan31.AddHours(-1), civil.Options{Year: 2023, Month: 1, Day: 30, Hour: 23}},
		{"AddMinutes", jan31.AddMinutes(1440), civil.Options{Year: 2023, Month: 2, Day: 1}},
		{"AddSeconds", jan31.AddSeconds(59), civil.Options{Year: 2023, Month: 1, Day: 31, Second: 59}},
		{"AddMilliseconds", jan31.AddMilliseconds(1001), civil.Options{Year: 2023, Month: 1, Day: 31, Second: 1, Millisecond: 1}},
		{"Add", jan31.Add(civil.Day + civil.Hour), civil.Options{Year: 2023, Month: 2, Day: 1, Hour: 1}},
		{"Subtract", jan31.Subtract(civil.Minute), civil.Options{Year: 2023, Month: 1, Day: 30, Hour: 23, Minute: 59}},
	} {
		if want := mustDate(t, test.want); !test.got.Equal(want) {
			t.Errorf("%s: got %v, want %v", test.name, test.got, want)
		}
	}
}

func TestAdditionAcrossDaylightSaving(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	noon := mustDate(t, civil.Options{Year: 2023, Month: 3, Day: 25, Hour: 12, Zone: berlin})

	// Days are elapsed time: 24 hours after noon is 13:00 summer time.
	if got := noon.AddDays(1).Fields(); got.Day != 26 || got.Hour != 13 {
		t.Errorf("AddDays across spring forward: %v", got)
	}
	// Months keep the wall clock.
	feb := mustDate(t, civil.Options{Year: 2023, Month: 2, Day: 26, Hour: 12, Zone: berlin})
	if got := feb.AddDate(0, 1, 0).Fields(); got.Month != 3 || got.Day != 26 || got.Hour != 12 {
		t.Errorf("AddDate across spring forward: %v", got)
	}
	if got := civil.Between(feb, feb.AddDate(0, 1, 0)); got != 28*civil.Day-civil.Hour {
		t.Errorf("one month in Berlin from 26 Feb is %v", got)
	}
}

func TestComposeAtTransitions(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	newYork := mustZone(t, "America/New_York")
	for _, test := range []struct {
		zone   civil.Zone
		opts   civil.Options
		fields civil.Fields
		offset int
	}{
		// Skipped wall times move forward by the gap.
		{berlin, civil.Options{Year: 2023, Month: 3, Day: 26, Hour: 2, Minute: 30}, civil.Fields{Year: 2023, Month: 3, Day: 26, Hour: 3, Minute: 30}, 120},
		{newYork, civil.Options{Year: 2023, Month: 3, Day: 12, Hour: 2, Minute: 30}, civil.Fields{Year: 2023, Month: 3, Day: 12, Hour: 3, Minute: 30}, -240},
		// Repeated wall times take the earlier instant.
		{berlin, civil.Options{Year: 2023, Month: 10, Day: 29, Hour: 2, Minute: 30}, civil.Fields{Year: 2023, Month: 10, Day: 29, Hour: 2, Minute: 30}, 120},
		{newYork, civil.Options{Year: 2023, Month: 11, Day: 5, Hour: 1, Minute: 30}, civil.Fields{Year: 2023, Month: 11, Day: 5, Hour: 1, Minute: 30}, -240},
		// Neighbours of the transitions.
		{berlin, civil.Options{Year: 2023, Month: 3, Day: 26, Hour: 3, Minute: 30}, civil.Fields{Year: 2023, Month: 3, Day: 26, Hour: 3, Minute: 30}, 120},
		{berlin, civil.Options{Year: 2023, Month: 10, Day: 29, Hour: 1, Minute: 30}, civil.Fields{Year: 2023, Month: 10, Day: 29, Hour: 1, Minute: 30}, 120},
		{newYork, civil.Options{Year: 2023, Month: 11, Day: 5, Hour: 2, Minute: 30}, civil.Fields{Year: 2023, Month: 11, Day: 5, Hour: 2, Minute: 30}, -300},
	} {
		test.opts.Zone = test.zone
		d := mustDate(t, test.opts)
		if diff := cmp.Diff(test.fields, d.Fields()); diff != "" {
			t.Errorf("%+v: fields mismatch (-want +got):\n%s", test.opts, diff)
		}
		if got := d.Offset(); got != test.offset {
			t.Errorf("%+v: offset %d, want %d", test.opts, got, test.offset)
		}
	}
}

func TestDateAndTimeOfDayRecompose(t *testing.T) {
	berlin := mustZone(t, "Europe/Berlin")
	saoPaulo := mustZone(t, "America/Sao_Paulo")
	for _, d := range []civil.DateTime{
		{},
		civil.FromInstant(-1, nil, civil.UTC),
		civil.FromInstant(1700000000123, nil, berlin),
		mustDate(t, civil.Options{Year: 2023, Month: 3, Day: 26, Hour: 23, Zone: berlin}),
		mustDate(t, civil.Options{Year: 2023, Month: 10, Day: 29, Hour: 5, Second: 7, Zone: berlin}),
		// Midnight did not exist on 2018-11-04 in São Paulo.
		mustDate(t, civil.Options{Year: 2018, Month: 11, Day: 4, Hour: 12, Zone: saoPaulo}),
		mustDate(t, civil.Options{Year: -1000, Month: 7, Day: 4, Hour: 8, Millisecond: 5}),
	} {
		date := d.Date()
		if f := date.Fields(); f.Day != d.Day() || f.Minute != 0 || f.Second != 0 || f.Millisecond != 0 {
			t.Errorf("%v.Date() = %v", d, date)
		}
		if date.Zone() != d.Zone() || date.Calendar() != d.Calendar() {
			t.Errorf("%v.Date() changed zone or calendar", d)
		}
		if got := date.Add(d.TimeOfDay()); !got.Equal(d) {
			t.Errorf("%v: date %v + time of day %v = %v", d, date, d.TimeOfDay(), got)
		}
	}

	d := mustDate(t, civil.Options{Year: 2018, Month: 11, Day: 4, Hour: 12, Zone: saoPaulo})
	if got := d.Date().Hour(); got != 1 {
		t.Errorf("São Paulo day started at hour %d, want 1", got)
	}
	if got := d.TimeOfDay(); got != 11*civil.Hour {
		t.Errorf("São Paulo time of day %v, want 11h", got)
	}
}

func TestTimestamps(t *testing.T) {
	d := mustDate(t, civil.Options{Year: 1970, Month: 1, Day: 2})
	if got := d.Unix(); got != 86400 {
		t.Errorf("Unix() = %v, want 86400", got)
	}
	if got := d.SinceReferenceDate(); got != 86400-978307200 {
		t.Errorf("SinceReferenceDate() = %v", got)
	}
	if got := civil.FromInstant(civil.InstantOf(1.5), nil, civil.UTC).Millisecond(); got != 500 {
		t.Errorf("InstantOf(1.5) millisecond = %d", got)
	}
	if got := civil.UnixInstant(d.Unix()); got != d.Instant() {
		t.Errorf("UnixInstant(Unix()) = %d, want %d", got, d.Instant())
	}
	want := time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := d.Time(); !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestNowUsesNowFunc(t *testing.T) {
	defer func(prev func() time.Time) { civil.NowFunc = prev }(civil.NowFunc)
	civil.NowFunc = func() time.Time { return time.Date(2023, 6, 15, 22, 30, 0, 0, time.UTC) }

	if got := civil.NowUTC().Fields(); got != (civil.Fields{Year: 2023, Month: 6, Day: 15, Hour: 22, Minute: 30}) {
		t.Errorf("NowUTC() = %v", got)
	}
	if got := civil.TodayUTC().Fields(); got != (civil.Fields{Year: 2023, Month: 6, Day: 15}) {
		t.Errorf("TodayUTC() = %v", got)
	}
	tokyo := civil.FixedZone("JST", 9*60)
	if got := civil.NowIn(tokyo).Date().Fields(); got != (civil.Fields{Year: 2023, Month: 6, Day: 16}) {
		t.Errorf("NowIn(JST).Date() = %v", got)
	}

	defer func(prev func() *time.Location) { civil.LocalFunc = prev }(civil.LocalFunc)
	civil.LocalFunc = func() *time.Location { return time.FixedZone("X", -3600) }
	if got := civil.Today().Fields(); got != (civil.Fields{Year: 2023, Month: 6, Day: 15}) {
		t.Errorf("Today() = %v", got)
	}
	if got := civil.Now().Hour(); got != 21 {
		t.Errorf("Now().Hour() = %d", got)
	}
}

func TestCompare(t *testing.T) {
	a := mustDate(t, civil.Options{Year: 2023, Month: 1, Day: 1})
	b := a.In(civil.FixedZone("", 600)).AddMilliseconds(1)
	if !a.Before(b) || !b.After(a) || a.Compare(b) != -1 || b.Compare(a) != +1 || a.Compare(a.Local()) != 0 {
		t.Errorf("ordering of %v and %v is wrong", a, b)
	}
}

func TestString(t *testing.T) {
	d := mustDate(t, civil.Options{Year: 2023, Month: 7, Day: 4, Hour: 9, Minute: 5, Second: 3, Millisecond: 7, Zone: civil.FixedZone("X", -150)})
	if got, want := d.String(), "2023-07-04 09:05:03.007 -0230 X"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
