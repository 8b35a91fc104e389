// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package civil defines calendar-aware date and time values.

Three coordinate systems meet here:

	Instant   an absolute point in time, milliseconds since 2001-01-01T00:00:00Z
	Calendar  rules mapping an Instant to civil fields (year, month, day, ...)
	Zone      the UTC offset in effect at a given Instant

A DateTime pairs an Instant with a Calendar and a Zone. Its fields are
derived on every read; only the Instant is stored. Two DateTimes are Equal
when their Instants are equal, whatever their calendars and zones.

A Duration is a signed elapsed time with millisecond resolution. It knows
nothing about calendars.

Field addition is calendar arithmetic, not offset arithmetic:

	jan31, _ := civil.Date(2023, 1, 31, civil.UTC)
	jan31.AddDate(0, 1, 0) // 2023-02-28: the day is clamped to the month
	jan31.AddDays(1)       // 2023-02-01: days are flat elapsed time

Years and months are added on the civil date, clamping the day to the
length of the resulting month. Everything finer than a month is added as
elapsed time, so it crosses daylight saving transitions correctly.

All values are immutable and safe for concurrent use.
*/
package civil // import "go.civiltime.net/civil"
