// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/rickb777/period"
)

// Period returns d as an ISO-8601 period of days, hours, minutes and
// seconds, with the milliseconds as a fraction of the seconds field.
func (d Duration) Period() period.Period {
	if d == 0 {
		return period.Zero
	}
	a := d.Abs()
	p := period.MustNewDecimal(
		decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.MustNew(int64(a.Days()), 0),
		decimal.MustNew(int64(a.Hours()), 0),
		decimal.MustNew(int64(a.Minutes()), 0),
		decimal.MustNew(int64(a%Minute), 3).Trim(0),
	)
	if d < 0 {
		return p.Negate()
	}
	return p
}

// String renders d as an ISO-8601 period, such as "P1DT2H3M4.005S" or
// "-PT0.25S". The zero duration is "P0D".
func (d Duration) String() string { return d.Period().String() }

// ParseDuration parses an ISO-8601 period such as "PT1H30M" or "-P2DT0.5S".
// Weeks count as seven days. Years and months have no fixed length and
// are rejected; add them to a DateTime with AddPeriod instead.
func ParseDuration(s string) (Duration, error) {
	p, err := period.Parse(s)
	if err != nil {
		return 0, err
	}
	if p.Years() != 0 || p.Months() != 0 || !p.YearsDecimal().IsInt() || !p.MonthsDecimal().IsInt() {
		return 0, fmt.Errorf("duration %q has years or months", s)
	}
	return periodElapsed(p)
}

// AddPeriod returns d with the ISO-8601 period p added. Years and months
// are added on the civil date with the day clamped, as by AddFields; weeks,
// days and the clock fields are added as elapsed time. A fraction is
// allowed only in the seconds field.
func (d DateTime) AddPeriod(p period.Period) (DateTime, error) {
	if !p.YearsDecimal().IsInt() || !p.MonthsDecimal().IsInt() {
		return DateTime{}, fmt.Errorf("period %s has fractional years or months", p)
	}
	e, err := periodElapsed(p)
	if err != nil {
		return DateTime{}, err
	}
	return d.AddFields(Delta{Years: p.Years(), Months: p.Months()}).Add(e), nil
}

// periodElapsed returns the weeks, days and clock fields of p as elapsed
// time.
func periodElapsed(p period.Period) (Duration, error) {
	for _, f := range []decimal.Decimal{p.WeeksDecimal(), p.DaysDecimal(), p.HoursDecimal(), p.MinutesDecimal()} {
		if !f.IsInt() {
			return 0, fmt.Errorf("period %s: only seconds may have a fraction", p)
		}
	}
	whole, frac, ok := p.SecondsDecimal().Int64(3)
	if !ok {
		return 0, fmt.Errorf("period %s: seconds out of range", p)
	}
	return NewDuration(p.DaysIncWeeks(), p.Hours(), p.Minutes(), 0, 0) +
		Duration(whole)*Second + Duration(frac), nil
}
