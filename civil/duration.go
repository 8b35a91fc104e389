// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"math"
	"time"
)

// A Duration is a signed elapsed time in milliseconds.
//
// Its component fields (Days, Hours, Minutes, Seconds, Milliseconds) are
// truncated quotients that all carry the sign of the whole duration, so
//
//	d.Days()*Day + d.Hours()*Hour + d.Minutes()*Minute +
//		d.Seconds()*Second + d.Milliseconds()*Millisecond == d
type Duration int64

// Common durations.
const (
	Millisecond Duration = 1
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
)

// DurationOf returns the duration of the given number of seconds, rounded
// to the nearest millisecond.
func DurationOf(seconds float64) Duration {
	return Duration(math.Round(seconds * 1e3))
}

// NewDuration returns the sum of the given components. Mixed signs are
// allowed; the result is simply their total.
func NewDuration(days, hours, minutes, seconds, milliseconds int) Duration {
	return Duration(days)*Day +
		Duration(hours)*Hour +
		Duration(minutes)*Minute +
		Duration(seconds)*Second +
		Duration(milliseconds)*Millisecond
}

// Between returns the elapsed time from a to b. It is negative when a is
// later than b. Calendars and zones play no part.
func Between(a, b DateTime) Duration { return b.instant.Sub(a.instant) }

// FromStd converts a time.Duration, truncating it to the millisecond.
func FromStd(d time.Duration) Duration { return Duration(d.Milliseconds()) }

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) * time.Millisecond }

// TimeInterval returns the duration as fractional seconds.
func (d Duration) TimeInterval() float64 { return d.TotalSeconds() }

// Days returns the whole-days component.
func (d Duration) Days() int { return int(d / Day) }

// Hours returns the hours component, in [-23, 23].
func (d Duration) Hours() int { return int(d % Day / Hour) }

// Minutes returns the minutes component, in [-59, 59].
func (d Duration) Minutes() int { return int(d % Hour / Minute) }

// Seconds returns the seconds component, in [-59, 59].
func (d Duration) Seconds() int { return int(d % Minute / Second) }

// Milliseconds returns the milliseconds component, in [-999, 999].
func (d Duration) Milliseconds() int { return int(d % Second) }

// TotalDays returns the duration as fractional days.
func (d Duration) TotalDays() float64 { return float64(d) / float64(Day) }

// TotalHours returns the duration as fractional hours.
func (d Duration) TotalHours() float64 { return float64(d) / float64(Hour) }

// TotalMinutes returns the duration as fractional minutes.
func (d Duration) TotalMinutes() float64 { return float64(d) / float64(Minute) }

// TotalSeconds returns the duration as fractional seconds.
func (d Duration) TotalSeconds() float64 { return float64(d) / float64(Second) }

// TotalMilliseconds returns the duration as a number of milliseconds.
func (d Duration) TotalMilliseconds() float64 { return float64(d) }

// Add returns d+e.
func (d Duration) Add(e Duration) Duration { return d + e }

// Subtract returns d-e.
func (d Duration) Subtract(e Duration) Duration { return d - e }

// Negate returns -d.
func (d Duration) Negate() Duration { return -d }

// Abs returns the absolute value of d.
func (d Duration) Abs() Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Equal reports whether d and e are the same length.
func (d Duration) Equal(e Duration) bool { return d == e }

// CompareTo returns -1, 0 or +1 as d is shorter than, equal to or longer
// than e.
func (d Duration) CompareTo(e Duration) int { return Compare(d, e) }

// Compare returns -1, 0 or +1 as a is shorter than, equal to or longer
// than b.
func Compare(a, b Duration) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	}
	return 0
}
