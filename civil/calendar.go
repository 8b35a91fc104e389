// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when civil fields do not name a real date and
// time in a calendar, such as month 13 or 30 February.
var ErrInvalidDate = errors.New("invalid date")

// Fields are civil date and time fields as read in some calendar and zone.
// Month and Day are 1-based.
type Fields struct {
	Year, Month, Day                  int
	Hour, Minute, Second, Millisecond int
}

func (f Fields) String() string {
	year, sign := f.Year, ""
	if year < 0 {
		year, sign = -year, "-"
	}
	return fmt.Sprintf("%s%04d-%02d-%02d %02d:%02d:%02d.%03d",
		sign, year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Millisecond)
}

// A Delta is a signed amount of each civil field, added by AddFields.
type Delta struct {
	Years, Months, Days                   int
	Hours, Minutes, Seconds, Milliseconds int
}

// elapsed returns the sub-month part of d as flat elapsed time.
func (d Delta) elapsed() Duration {
	return NewDuration(d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds)
}

// A Calendar converts between instants and civil fields.
//
// Compose must reject fields that do not name a real date and time with an
// error wrapping ErrInvalidDate; it never normalizes them. For valid
// fields, Decompose(Compose(f, z), z) == f, except for wall times skipped
// by a zone transition.
type Calendar interface {
	// Name identifies the calendar, for example "gregorian".
	Name() string

	// Compose interprets f as wall-clock time in z.
	Compose(f Fields, z Zone) (Instant, error)
	// Decompose returns the wall-clock fields of i in z.
	Decompose(i Instant, z Zone) Fields

	IsLeapYear(year int) bool
	// IsLeapMonth reports whether the month exists only in leap years.
	IsLeapMonth(year, month int) bool
	MonthsInYear(year int) int
	DaysInMonth(year, month int) int
	// DayOfWeek returns 1 for the first day of the week through 7.
	DayOfWeek(year, month, day int) int
	// DayOfYear returns 1 for the first day of the year.
	DayOfYear(year, month, day int) int
}

// AddFields adds d to the instant i read in calendar c and zone z.
//
// Years and months are added to the civil date first, carrying month
// overflow into the year, and the day is clamped to the length of the
// resulting month: 31 January plus one month is the last day of February.
// The clamped date is recomposed with the original time of day. Days and
// finer fields are then added as flat elapsed time, which crosses zone
// offset transitions without adjustment.
func AddFields(c Calendar, i Instant, z Zone, d Delta) Instant {
	if d.Years != 0 || d.Months != 0 {
		f := c.Decompose(i, z)
		f.Year, f.Month = addMonths(c, f.Year+d.Years, f.Month, d.Months)
		if n := c.DaysInMonth(f.Year, f.Month); f.Day > n {
			f.Day = n
		}
		var err error
		i, err = c.Compose(f, z)
		if err != nil {
			// Unreachable: every field was produced by c itself.
			panic(fmt.Sprintf("civil: %s recomposing %v: %v", c.Name(), f, err))
		}
	}
	return i.Add(d.elapsed())
}

// addMonths moves n months from (year, month), normalizing the month into
// the range of the calendar.
func addMonths(c Calendar, year, month, n int) (int, int) {
	if c, ok := c.(interface{ monthsPerYear() int }); ok {
		q, r := floorDiv(int64(month-1+n), int64(c.monthsPerYear()))
		return year + int(q), int(r) + 1
	}
	month += n
	for month > c.MonthsInYear(year) {
		month -= c.MonthsInYear(year)
		year++
	}
	for month < 1 {
		year--
		month += c.MonthsInYear(year)
	}
	return year, month
}

// compose resolves the wall-clock milliseconds local (read as if in UTC)
// to an instant in z. A wall time skipped by a forward transition is pushed
// forward by the size of the gap; a repeated wall time resolves to the
// earlier of its two instants. Transitions are assumed to shift the offset
// by at most an hour when looking for a repeated wall time.
func compose(local int64, z Zone) Instant {
	offset := func(i Instant) int64 { return int64(z.OffsetAt(i)) * int64(Minute) }

	o1 := offset(Instant(local))
	i := Instant(local - o1)
	o2 := offset(i)
	if o1 == o2 {
		if o0 := offset(i - Instant(Hour)); o0 != o1 {
			if j := Instant(local - o0); j < i && offset(j) == o0 {
				return j
			}
		}
		return i
	}
	if j := Instant(local - o2); offset(j) == o2 {
		return j
	}
	// Neither offset reproduces the wall time: it lies in a gap.
	return Instant(local - min(o1, o2))
}
