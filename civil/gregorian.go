// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"fmt"
	"time"

	"github.com/rickb777/date/v2"
	"github.com/rickb777/date/v2/gregorian"
)

// Gregorian is the proleptic Gregorian calendar, the default calendar.
// Weeks start on Sunday. It has no leap months.
var Gregorian Calendar = gregorianCalendar{}

type gregorianCalendar struct{}

func (gregorianCalendar) Name() string       { return "gregorian" }
func (gregorianCalendar) String() string     { return "gregorian" }
func (gregorianCalendar) monthsPerYear() int { return 12 }

func (gregorianCalendar) MonthsInYear(int) int { return 12 }

// IsLeapYear reports whether year is divisible by 4, except centuries not
// divisible by 400.
func (gregorianCalendar) IsLeapYear(year int) bool { return gregorian.IsLeap(year) }

// IsLeapMonth is always false: every Gregorian month exists in every year.
// February of a leap year is a longer month, not a leap month.
func (gregorianCalendar) IsLeapMonth(year, month int) bool { return false }

func (gregorianCalendar) DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return gregorian.DaysIn(year, time.Month(month))
}

// DayOfWeek returns 1 for Sunday through 7 for Saturday.
func (gregorianCalendar) DayOfWeek(year, month, day int) int {
	return int(date.New(year, time.Month(month), day).Weekday()) + 1
}

func (gregorianCalendar) DayOfYear(year, month, day int) int {
	return date.New(year, time.Month(month), day).YearDay()
}

func (g gregorianCalendar) Compose(f Fields, z Zone) (Instant, error) {
	if err := g.validate(f); err != nil {
		return 0, err
	}
	days := daysFromCivil(int64(f.Year), int64(f.Month), int64(f.Day)) - referenceDays
	local := days*int64(Day) +
		int64(f.Hour)*int64(Hour) +
		int64(f.Minute)*int64(Minute) +
		int64(f.Second)*int64(Second) +
		int64(f.Millisecond)
	return compose(local, z), nil
}

func (gregorianCalendar) Decompose(i Instant, z Zone) Fields {
	local := int64(i) + int64(z.OffsetAt(i))*int64(Minute)
	days, ms := floorDiv(local, int64(Day))
	y, m, d := civilFromDays(days + referenceDays)
	return Fields{
		Year:        int(y),
		Month:       int(m),
		Day:         int(d),
		Hour:        int(ms / int64(Hour)),
		Minute:      int(ms % int64(Hour) / int64(Minute)),
		Second:      int(ms % int64(Minute) / int64(Second)),
		Millisecond: int(ms % int64(Second)),
	}
}

func (g gregorianCalendar) validate(f Fields) error {
	switch {
	case f.Month < 1 || f.Month > 12:
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, f.Month)
	case f.Day < 1 || f.Day > g.DaysInMonth(f.Year, f.Month):
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, f.Day, f.Year, f.Month)
	case f.Hour < 0 || f.Hour > 23:
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidDate, f.Hour)
	case f.Minute < 0 || f.Minute > 59:
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidDate, f.Minute)
	case f.Second < 0 || f.Second > 59:
		return fmt.Errorf("%w: second %d out of range", ErrInvalidDate, f.Second)
	case f.Millisecond < 0 || f.Millisecond > 999:
		return fmt.Errorf("%w: millisecond %d out of range", ErrInvalidDate, f.Millisecond)
	}
	return nil
}

// daysFromCivil returns the number of days from 1970-01-01 to the given
// proleptic Gregorian date. Years are counted from March so that the leap
// day falls at the end of the counting year.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era, yoe := floorDiv(y, 400)
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (y, m, d int64) {
	era, doe := floorDiv(days+719468, 146097)
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = doy - (153*mp+2)/5 + 1
	m = mp + 3
	if m > 12 {
		m -= 12
	}
	y = yoe + era*400
	if m <= 2 {
		y++
	}
	return y, m, d
}
