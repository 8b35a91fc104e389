// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"fmt"
	"time"
)

// A DateTime is an Instant read in a Calendar and a Zone.
//
// Its civil fields are computed from the instant on every access. Calendars
// and zones are shared by reference between DateTimes. Use Equal, not ==,
// to compare DateTimes: Equal ignores the calendar and zone.
//
// The zero DateTime is the reference date, 2001-01-01T00:00:00Z, read in
// the Gregorian calendar and UTC.
type DateTime struct {
	instant  Instant
	calendar Calendar
	zone     Zone
}

// Options are the fields of a DateTime under construction. Every field may
// be left at its zero value: Month and Day then default to 1, Calendar to
// Gregorian and Zone to Local.
type Options struct {
	Year, Month, Day                  int
	Hour, Minute, Second, Millisecond int

	Calendar Calendar
	Zone     Zone
}

// New returns the DateTime whose civil fields in opts.Calendar and
// opts.Zone are those of opts. It fails with an error wrapping
// ErrInvalidDate if the fields do not name a real date and time; it never
// normalizes them.
func New(opts Options) (DateTime, error) {
	if opts.Month == 0 {
		opts.Month = 1
	}
	if opts.Day == 0 {
		opts.Day = 1
	}
	return Compose(Fields{
		Year:        opts.Year,
		Month:       opts.Month,
		Day:         opts.Day,
		Hour:        opts.Hour,
		Minute:      opts.Minute,
		Second:      opts.Second,
		Millisecond: opts.Millisecond,
	}, opts.Calendar, opts.Zone)
}

// Compose returns the DateTime whose civil fields in cal and zone are f,
// with no defaults applied: a zero month or day is invalid. A nil cal
// means Gregorian; a nil zone means Local.
func Compose(f Fields, cal Calendar, zone Zone) (DateTime, error) {
	cal, zone = resolve(cal, zone)
	i, err := cal.Compose(f, zone)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{i, cal, zone}, nil
}

// Date returns midnight of the given Gregorian date in zone, or Local if
// zone is nil. Month and day must both be given.
func Date(year, month, day int, zone Zone) (DateTime, error) {
	return Compose(Fields{Year: year, Month: month, Day: day}, Gregorian, zone)
}

// FromInstant returns the DateTime of i read in cal and zone. A nil cal
// means Gregorian; a nil zone means Local.
func FromInstant(i Instant, cal Calendar, zone Zone) DateTime {
	cal, zone = resolve(cal, zone)
	return DateTime{i, cal, zone}
}

// FromTime returns the Gregorian DateTime of t in t's location.
func FromTime(t time.Time) DateTime {
	return DateTime{InstantFromTime(t), Gregorian, ZoneOf(t.Location())}
}

// resolve applies the defaults for an absent calendar or zone.
func resolve(cal Calendar, zone Zone) (Calendar, Zone) {
	if cal == nil {
		cal = Gregorian
	}
	if zone == nil {
		zone = Local
	}
	return cal, zone
}

// NowIn returns the current date and time in zone.
func NowIn(zone Zone) DateTime { return FromInstant(NowInstant(), Gregorian, zone) }

// Now returns the current local date and time.
func Now() DateTime { return NowIn(Local) }

// NowUTC returns the current date and time in UTC.
func NowUTC() DateTime { return NowIn(UTC) }

// Today returns the current local date at midnight.
func Today() DateTime { return Now().Date() }

// TodayUTC returns the current UTC date at midnight.
func TodayUTC() DateTime { return NowUTC().Date() }

// Instant returns the absolute instant of d.
func (d DateTime) Instant() Instant { return d.instant }

// Calendar returns the calendar used to read d's fields.
func (d DateTime) Calendar() Calendar {
	if d.calendar == nil {
		return Gregorian
	}
	return d.calendar
}

// Zone returns the zone used to read d's fields.
func (d DateTime) Zone() Zone {
	if d.zone == nil {
		return UTC
	}
	return d.zone
}

// Fields returns all civil fields of d at once.
func (d DateTime) Fields() Fields { return d.Calendar().Decompose(d.instant, d.Zone()) }

func (d DateTime) Year() int        { return d.Fields().Year }
func (d DateTime) Month() int       { return d.Fields().Month }
func (d DateTime) Day() int         { return d.Fields().Day }
func (d DateTime) Hour() int        { return d.Fields().Hour }
func (d DateTime) Minute() int      { return d.Fields().Minute }
func (d DateTime) Second() int      { return d.Fields().Second }
func (d DateTime) Millisecond() int { return d.Fields().Millisecond }

// Offset returns the offset of d's zone at d, in minutes east of UTC.
func (d DateTime) Offset() int { return d.Zone().OffsetAt(d.instant) }

// SinceReferenceDate returns the seconds elapsed since
// 2001-01-01T00:00:00Z.
func (d DateTime) SinceReferenceDate() float64 { return d.instant.Seconds() }

// Unix returns the seconds elapsed since 1970-01-01T00:00:00Z.
func (d DateTime) Unix() float64 { return d.instant.Unix() }

// Time returns d as a time.Time in the equivalent Go location.
func (d DateTime) Time() time.Time { return d.instant.Time().In(Location(d.Zone())) }

// IsLeapYear reports whether d's year is a leap year in d's calendar.
func (d DateTime) IsLeapYear() bool { return d.Calendar().IsLeapYear(d.Year()) }

// IsLeapMonth reports whether d's month is a leap month in d's calendar.
// It is always false in the Gregorian calendar.
func (d DateTime) IsLeapMonth() bool {
	f := d.Fields()
	return d.Calendar().IsLeapMonth(f.Year, f.Month)
}

// DayOfWeek returns the 1-based day of the week; in the Gregorian calendar
// 1 is Sunday.
func (d DateTime) DayOfWeek() int {
	f := d.Fields()
	return d.Calendar().DayOfWeek(f.Year, f.Month, f.Day)
}

// DayOfYear returns the 1-based day of the year.
func (d DateTime) DayOfYear() int {
	f := d.Fields()
	return d.Calendar().DayOfYear(f.Year, f.Month, f.Day)
}

// Date returns the start of d's day in the same calendar and zone. When
// midnight is skipped by a zone transition, the day starts at the first
// wall time after the gap.
func (d DateTime) Date() DateTime {
	f := d.Fields()
	f.Hour, f.Minute, f.Second, f.Millisecond = 0, 0, 0, 0
	i, err := d.Calendar().Compose(f, d.Zone())
	if err != nil {
		panic(fmt.Sprintf("civil: recomposing %v: %v", f, err))
	}
	return DateTime{i, d.Calendar(), d.Zone()}
}

// TimeOfDay returns the time elapsed since the start of d's day, so that
// d.Date().Add(d.TimeOfDay()) is equal to d.
func (d DateTime) TimeOfDay() Duration { return d.instant.Sub(d.Date().instant) }

// AddFields returns d with delta added as described by AddFields: years and
// months on the civil date with the day clamped to the month, everything
// finer as flat elapsed time.
func (d DateTime) AddFields(delta Delta) DateTime {
	return DateTime{AddFields(d.Calendar(), d.instant, d.Zone(), delta), d.Calendar(), d.Zone()}
}

// AddDate returns d with the given years, months and days added.
func (d DateTime) AddDate(years, months, days int) DateTime {
	return d.AddFields(Delta{Years: years, Months: months, Days: days})
}

// AddClock returns d with the given hours, minutes and seconds added.
func (d DateTime) AddClock(hours, minutes, seconds int) DateTime {
	return d.AddFields(Delta{Hours: hours, Minutes: minutes, Seconds: seconds})
}

// AddDays returns d with n days of 24 hours added. Days are never clamped.
func (d DateTime) AddDays(n int) DateTime { return d.AddFields(Delta{Days: n}) }

func (d DateTime) AddHours(n int) DateTime        { return d.AddFields(Delta{Hours: n}) }
func (d DateTime) AddMinutes(n int) DateTime      { return d.AddFields(Delta{Minutes: n}) }
func (d DateTime) AddSeconds(n int) DateTime      { return d.AddFields(Delta{Seconds: n}) }
func (d DateTime) AddMilliseconds(n int) DateTime { return d.AddFields(Delta{Milliseconds: n}) }

// Add returns d moved forward by the elapsed time e.
func (d DateTime) Add(e Duration) DateTime {
	return DateTime{d.instant.Add(e), d.Calendar(), d.Zone()}
}

// Subtract returns d moved back by the elapsed time e.
func (d DateTime) Subtract(e Duration) DateTime { return d.Add(-e) }

// Equal reports whether d and e denote the same instant, whatever their
// calendars and zones.
func (d DateTime) Equal(e DateTime) bool { return d.instant == e.instant }

// Compare returns -1, 0 or +1 as d is before, equal to or after e.
func (d DateTime) Compare(e DateTime) int { return d.instant.Compare(e.instant) }

// Before reports whether d is before e.
func (d DateTime) Before(e DateTime) bool { return d.instant < e.instant }

// After reports whether d is after e.
func (d DateTime) After(e DateTime) bool { return d.instant > e.instant }

// In returns d read in zone, or Local if zone is nil. The instant is
// unchanged.
func (d DateTime) In(zone Zone) DateTime {
	if zone == nil {
		zone = Local
	}
	return DateTime{d.instant, d.Calendar(), zone}
}

// UTC returns d read in UTC.
func (d DateTime) UTC() DateTime { return d.In(UTC) }

// Local returns d read in the host's zone.
func (d DateTime) Local() DateTime { return d.In(Local) }

// WithCalendar returns d read in cal, or Gregorian if cal is nil.
func (d DateTime) WithCalendar(cal Calendar) DateTime {
	if cal == nil {
		cal = Gregorian
	}
	return DateTime{d.instant, cal, d.Zone()}
}

// String renders d as "2006-01-02 15:04:05.000 +0100 Europe/Berlin".
// It is meant for debugging; see package format for presentation.
func (d DateTime) String() string {
	off := d.Offset()
	sign := '+'
	if off < 0 {
		sign, off = '-', -off
	}
	return fmt.Sprintf("%v %c%02d%02d %s", d.Fields(), sign, off/60, off%60, d.Zone().Name())
}
