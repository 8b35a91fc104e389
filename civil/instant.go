// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"math"
	"time"
)

// An Instant is an absolute point in time, independent of any calendar or
// zone. It counts milliseconds elapsed since the reference date, the first
// instant of 1 January 2001 UTC. Negative values precede the reference date.
type Instant int64

// unixToReference is the number of seconds between the Unix epoch and the
// reference date.
const unixToReference = 978307200

// referenceDays is the number of days from 1970-01-01 to 2001-01-01.
const referenceDays = unixToReference / 86400

// NowFunc returns the current time. Intentionally exported so that it can be
// overridden, for example by applications or tests that require a fixed
// clock.
var NowFunc = time.Now

// NowInstant returns the current Instant as reported by NowFunc.
func NowInstant() Instant { return InstantFromTime(NowFunc()) }

// InstantOf returns the Instant the given number of seconds after the
// reference date, rounded to the nearest millisecond.
func InstantOf(seconds float64) Instant {
	return Instant(math.Round(seconds * 1e3))
}

// UnixInstant returns the Instant the given number of seconds after
// 1970-01-01T00:00:00Z, rounded to the nearest millisecond.
func UnixInstant(seconds float64) Instant {
	return InstantOf(seconds - unixToReference)
}

// UnixMilliInstant returns the Instant ms milliseconds after
// 1970-01-01T00:00:00Z.
func UnixMilliInstant(ms int64) Instant { return Instant(ms - unixToReference*1e3) }

// InstantFromTime returns the Instant of t, truncated to the millisecond.
func InstantFromTime(t time.Time) Instant {
	return UnixMilliInstant(t.UnixMilli())
}

// Time returns the instant as a time.Time in UTC.
func (i Instant) Time() time.Time {
	return time.UnixMilli(i.UnixMilli()).UTC()
}

// Seconds returns the fractional number of seconds since the reference date.
func (i Instant) Seconds() float64 { return float64(i) / 1e3 }

// Unix returns the fractional number of seconds since 1970-01-01T00:00:00Z.
func (i Instant) Unix() float64 { return float64(i)/1e3 + unixToReference }

// UnixMilli returns the milliseconds elapsed since 1970-01-01T00:00:00Z.
func (i Instant) UnixMilli() int64 { return int64(i) + unixToReference*1e3 }

// Add returns the instant i+d.
func (i Instant) Add(d Duration) Instant { return i + Instant(d) }

// Sub returns the elapsed time i-j.
func (i Instant) Sub(j Instant) Duration { return Duration(i - j) }

// Compare returns -1, 0 or +1 as i is before, equal to or after j.
func (i Instant) Compare(j Instant) int {
	switch {
	case i < j:
		return -1
	case i > j:
		return +1
	}
	return 0
}

// Before reports whether i precedes j.
func (i Instant) Before(j Instant) bool { return i < j }

// After reports whether i follows j.
func (i Instant) After(j Instant) bool { return i > j }

// Equal reports whether i and j denote the same instant.
func (i Instant) Equal(j Instant) bool { return i == j }

// floorDiv returns the quotient and non-negative remainder of x/y, y > 0.
func floorDiv(x, y int64) (q, r int64) {
	q, r = x/y, x%y
	if r < 0 {
		q--
		r += y
	}
	return q, r
}
