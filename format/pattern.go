// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.civiltime.net/civil"
)

// ErrPattern is returned for a pattern that uses an unsupported letter or
// has an unterminated quote.
var ErrPattern = errors.New("invalid pattern")

// A field is one run of a pattern letter, or a literal when letter is 0.
type field struct {
	letter  byte
	width   int
	literal string
}

// widths lists the run lengths each pattern letter accepts.
var widths = map[byte][]int{
	'G': {1, 2, 3, 4},
	'y': {1, 2, 4},
	'M': {1, 2, 3, 4},
	'd': {1, 2},
	'D': {1, 2, 3},
	'E': {1, 2, 3, 4},
	'a': {1},
	'h': {1, 2},
	'H': {1, 2},
	'm': {1, 2},
	's': {1, 2},
	'S': {1, 2, 3},
	'Z': {1, 2, 3, 5},
	'z': {1, 2, 3, 4},
}

// compile splits pattern into fields. ASCII letters are pattern letters;
// text between single quotes is literal and two single quotes are one
// quote.
func compile(pattern string) ([]field, error) {
	var fields []field
	lit := func(s string) {
		if n := len(fields); n > 0 && fields[n-1].letter == 0 {
			fields[n-1].literal += s
			return
		}
		fields = append(fields, field{literal: s})
	}
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit("'")
				i += 2
				continue
			}
			var sb strings.Builder
			j := i + 1
			for ; ; j++ {
				if j == len(pattern) {
					return nil, fmt.Errorf("%w: unterminated quote in %q", ErrPattern, pattern)
				}
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						sb.WriteByte('\'')
						j++
						continue
					}
					break
				}
				sb.WriteByte(pattern[j])
			}
			lit(sb.String())
			i = j + 1
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			n := j - i
			ok := false
			for _, w := range widths[c] {
				ok = ok || w == n
			}
			if !ok {
				return nil, fmt.Errorf("%w: %q in %q", ErrPattern, pattern[i:j], pattern)
			}
			fields = append(fields, field{letter: c, width: n})
			i = j
		default:
			lit(string(c))
			i++
		}
	}
	return fields, nil
}

// hasEra reports whether fields include an era, which turns years into
// years of the era.
func hasEra(fields []field) bool {
	for _, f := range fields {
		if f.letter == 'G' {
			return true
		}
	}
	return false
}

// render formats d with fields in locale l.
func render(fields []field, d civil.DateTime, l *locale) string {
	var sb strings.Builder
	t := d.Fields()
	era := hasEra(fields)
	for _, f := range fields {
		switch f.letter {
		case 0:
			sb.WriteString(f.literal)
		case 'G':
			sb.WriteString(l.eras[b2i(t.Year > 0)])
		case 'y':
			y := t.Year
			if era && y <= 0 {
				y = 1 - y
			}
			switch f.width {
			case 2:
				sb.WriteString(pad(((y%100)+100)%100, 2))
			default:
				sb.WriteString(pad(y, f.width))
			}
		case 'M':
			switch f.width {
			case 3:
				sb.WriteString(l.shortMonths[t.Month-1])
			case 4:
				sb.WriteString(l.months[t.Month-1])
			default:
				sb.WriteString(pad(t.Month, f.width))
			}
		case 'd':
			sb.WriteString(pad(t.Day, f.width))
		case 'D':
			sb.WriteString(pad(d.DayOfYear(), f.width))
		case 'E':
			if f.width == 4 {
				sb.WriteString(l.weekdays[d.DayOfWeek()-1])
			} else {
				sb.WriteString(l.shortDays[d.DayOfWeek()-1])
			}
		case 'a':
			sb.WriteString(l.ampm[b2i(t.Hour >= 12)])
		case 'h':
			h := t.Hour % 12
			if h == 0 {
				h = 12
			}
			sb.WriteString(pad(h, f.width))
		case 'H':
			sb.WriteString(pad(t.Hour, f.width))
		case 'm':
			sb.WriteString(pad(t.Minute, f.width))
		case 's':
			sb.WriteString(pad(t.Second, f.width))
		case 'S':
			sb.WriteString(pad(t.Millisecond, 3)[:f.width])
		case 'Z':
			sb.WriteString(offsetString(d.Offset(), f.width == 5))
		case 'z':
			sb.WriteString(zoneAbbrev(d))
		}
	}
	return sb.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// pad renders n with at least width digits. Negative numbers keep their
// sign in front of the padding.
func pad(n, width int) string {
	s := strconv.Itoa(abs(n))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if n < 0 {
		s = "-" + s
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// offsetString renders an offset in minutes as +hhmm or, in extended form,
// as +hh:mm with "Z" for UTC.
func offsetString(minutes int, extended bool) string {
	if extended && minutes == 0 {
		return "Z"
	}
	sign := "+"
	if minutes < 0 {
		sign = "-"
	}
	h, m := pad(abs(minutes)/60, 2), pad(abs(minutes)%60, 2)
	if extended {
		return sign + h + ":" + m
	}
	return sign + h + m
}

// zoneAbbrev returns the tz database abbreviation of d's zone at d, such as
// "CEST", or a GMT offset when the zone has none.
func zoneAbbrev(d civil.DateTime) string {
	name, _ := d.Time().Zone()
	if name == "" || name[0] == '+' || name[0] == '-' {
		off := d.Offset()
		if off == 0 {
			return "GMT"
		}
		name = "GMT" + offsetString(off, true)
	}
	return name
}
