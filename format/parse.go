// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/govalues/decimal"

	"go.civiltime.net/civil"
)

// ErrParse is returned when text does not match the layout it is parsed
// with, or names a date that does not exist.
var ErrParse = errors.New("cannot parse date")

// Parse parses s with an explicit pattern. Fields absent from the pattern
// default to those of the reference date, 2001-01-01 00:00:00. An offset
// or zone in s takes precedence over the Zone option.
func (f *Formatter) Parse(s, pattern string, opts ...Options) (civil.DateTime, error) {
	o := f.resolve(opts)
	fields, err := compile(pattern)
	if err != nil {
		return civil.DateTime{}, err
	}
	p := parser{in: s, l: lookupLocale(o.Locale), era: hasEra(fields), pm: -1}
	p.fields = civil.Fields{Year: 2001, Month: 1, Day: 1}
	p.zone = o.Zone
	for _, fld := range fields {
		if err := p.field(fld); err != nil {
			return civil.DateTime{}, fmt.Errorf("%w %q as %q: %v", ErrParse, s, pattern, err)
		}
	}
	if p.in != "" {
		return civil.DateTime{}, fmt.Errorf("%w %q as %q: extra text %q", ErrParse, s, pattern, p.in)
	}
	if p.pm >= 0 {
		p.fields.Hour = p.fields.Hour%12 + 12*p.pm
	}
	if p.bc {
		p.fields.Year = 1 - p.fields.Year
	}
	if p.yearDay > 0 {
		month, day, ok := monthDay(p.fields.Year, p.yearDay)
		if !ok {
			return civil.DateTime{}, fmt.Errorf("%w %q as %q: day %d out of range", ErrParse, s, pattern, p.yearDay)
		}
		p.fields.Month, p.fields.Day = month, day
	}
	d, err := civil.Compose(p.fields, nil, p.zone)
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("%w %q as %q: %w", ErrParse, s, pattern, err)
	}
	return d, nil
}

// monthDay converts a 1-based day of the year to a Gregorian month and day.
func monthDay(year, yearDay int) (month, day int, ok bool) {
	for month = 1; month <= 12; month++ {
		n := civil.Gregorian.DaysInMonth(year, month)
		if yearDay <= n {
			return month, yearDay, true
		}
		yearDay -= n
	}
	return 0, 0, false
}

// Parse parses s with the Default formatter.
func Parse(s, pattern string, opts ...Options) (civil.DateTime, error) {
	return std.Parse(s, pattern, opts...)
}

type parser struct {
	in  string
	l   *locale
	era bool

	fields  civil.Fields
	zone    civil.Zone
	pm      int // -1 unless an AM/PM marker was read
	bc      bool
	yearDay int
}

func (p *parser) field(f field) error {
	var err error
	switch f.letter {
	case 0:
		if !strings.HasPrefix(p.in, f.literal) {
			return fmt.Errorf("expected %q", f.literal)
		}
		p.in = p.in[len(f.literal):]
	case 'G':
		var i int
		if i, err = p.name(p.l.eras[:]); err == nil {
			p.bc = i == 0
		}
	case 'y':
		switch f.width {
		case 2:
			var y int
			if y, err = p.number(2, 2, false); err == nil {
				p.fields.Year = 2000 + y
				if y >= 69 {
					p.fields.Year = 1900 + y
				}
			}
		case 4:
			p.fields.Year, err = p.number(4, 4, !p.era)
		default:
			p.fields.Year, err = p.number(1, 0, !p.era)
		}
	case 'M':
		if f.width >= 3 {
			names := p.l.shortMonths[:]
			if f.width == 4 {
				names = p.l.months[:]
			}
			var i int
			i, err = p.name(names)
			p.fields.Month = i + 1
		} else {
			p.fields.Month, err = p.number(f.width, 2, false)
		}
	case 'd':
		p.fields.Day, err = p.number(f.width, 2, false)
	case 'D':
		if p.yearDay, err = p.number(f.width, 3, false); err == nil && p.yearDay < 1 {
			err = fmt.Errorf("day of year %d out of range", p.yearDay)
		}
	case 'E':
		names := p.l.shortDays[:]
		if f.width == 4 {
			names = p.l.weekdays[:]
		}
		_, err = p.name(names)
	case 'a':
		p.pm, err = p.name(p.l.ampm[:])
	case 'h', 'H':
		p.fields.Hour, err = p.number(f.width, 2, false)
	case 'm':
		p.fields.Minute, err = p.number(f.width, 2, false)
	case 's':
		p.fields.Second, err = p.number(f.width, 2, false)
	case 'S':
		var n int
		if n, err = p.number(f.width, f.width, false); err == nil {
			for i := f.width; i < 3; i++ {
				n *= 10
			}
			p.fields.Millisecond = n
		}
	case 'Z':
		err = p.offset()
	case 'z':
		err = p.parseZone()
	}
	return err
}

// number reads between lo and hi decimal digits; hi 0 means no limit.
func (p *parser) number(lo, hi int, signed bool) (int, error) {
	neg := false
	s := p.in
	if signed && s != "" && s[0] == '-' {
		neg, s = true, s[1:]
	}
	n := 0
	for n < len(s) && (hi == 0 || n < hi) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	if n < lo || n == 0 {
		return 0, fmt.Errorf("expected %d digits at %q", lo, p.in)
	}
	v := 0
	for _, c := range s[:n] {
		v = v*10 + int(c-'0')
	}
	if neg {
		v = -v
	}
	p.in = s[n:]
	return v, nil
}

// name reads the longest of names that prefixes the input, ignoring case,
// and returns its index.
func (p *parser) name(names []string) (int, error) {
	best, size := -1, 0
	for i, name := range names {
		if len(name) > size && len(name) <= len(p.in) && strings.EqualFold(p.in[:len(name)], name) {
			best, size = i, len(name)
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("expected one of %q at %q", names, p.in)
	}
	p.in = p.in[size:]
	return best, nil
}

// offset reads "Z", +hh, +hhmm or +hh:mm and fixes the zone to it.
func (p *parser) offset() error {
	if strings.HasPrefix(p.in, "Z") {
		p.in = p.in[1:]
		p.zone = civil.UTC
		return nil
	}
	if p.in == "" || p.in[0] != '+' && p.in[0] != '-' {
		return fmt.Errorf("expected offset at %q", p.in)
	}
	sign := 1
	if p.in[0] == '-' {
		sign = -1
	}
	p.in = p.in[1:]
	h, err := p.number(2, 2, false)
	if err != nil {
		return err
	}
	m := 0
	if strings.HasPrefix(p.in, ":") {
		p.in = p.in[1:]
		if m, err = p.number(2, 2, false); err != nil {
			return err
		}
	} else if len(p.in) >= 2 && '0' <= p.in[0] && p.in[0] <= '9' {
		if m, err = p.number(2, 2, false); err != nil {
			return err
		}
	}
	if h > 23 || m > 59 {
		return fmt.Errorf("offset %02d:%02d out of range", h, m)
	}
	p.zone = civil.FixedZone("", sign*(h*60+m))
	return nil
}

// parseZone reads a tz database name such as "Europe/Paris", or a GMT or UTC
// offset such as "GMT+02:00".
func (p *parser) parseZone() error {
	for _, prefix := range []string{"GMT", "UTC"} {
		if strings.HasPrefix(p.in, prefix) {
			p.in = p.in[len(prefix):]
			if p.in != "" && (p.in[0] == '+' || p.in[0] == '-') {
				return p.offset()
			}
			p.zone = civil.UTC
			return nil
		}
	}
	n := strings.IndexFunc(p.in, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("/_-+", r))
	})
	if n < 0 {
		n = len(p.in)
	}
	if n == 0 {
		r, _ := utf8.DecodeRuneInString(p.in)
		return fmt.Errorf("expected zone name at %q", r)
	}
	z, err := civil.LoadZone(p.in[:n])
	if err != nil {
		return err
	}
	p.in = p.in[n:]
	p.zone = z
	return nil
}

// FormatUnixTimestamp renders d as decimal seconds since
// 1970-01-01T00:00:00Z, with a fraction only when d has milliseconds.
func FormatUnixTimestamp(d civil.DateTime) string {
	return decimal.MustNew(d.Instant().UnixMilli(), 3).Trim(0).String()
}

// ParseUnixTimestamp parses decimal seconds since 1970-01-01T00:00:00Z,
// rounded to the millisecond, and reads the result in zone, or Local if
// zone is nil.
func ParseUnixTimestamp(s string, zone civil.Zone) (civil.DateTime, error) {
	secs, err := decimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("%w: unix timestamp %q: %w", ErrParse, s, err)
	}
	ms, err := secs.Mul(decimal.MustNew(1000, 0))
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("%w: unix timestamp %q: %w", ErrParse, s, err)
	}
	whole, _, ok := ms.Int64(0)
	if !ok {
		return civil.DateTime{}, fmt.Errorf("%w: unix timestamp %q out of range", ErrParse, s)
	}
	return civil.FromInstant(civil.UnixMilliInstant(whole), civil.Gregorian, zone), nil
}
