// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strings"
)

// templatePattern localizes a template: a skeleton such as "yMMMd" or
// "jm" that names the fields to show but not their order or punctuation.
// The letter 'j' stands for the locale's preferred hour, h or H.
func templatePattern(template string, l *locale) (string, error) {
	runs := make(map[byte]int)
	for i := 0; i < len(template); {
		c := template[i]
		j := i
		for j < len(template) && template[j] == c {
			j++
		}
		if !strings.ContainsRune("GyMdEjhHmsSazZ", rune(c)) {
			return "", fmt.Errorf("%w: %q in template %q", ErrPattern, template[i:j], template)
		}
		if c == 'j' {
			c = 'H'
			if l.hour12 {
				c = 'h'
			}
		}
		runs[c] = max(runs[c], j-i)
		i = j
	}
	run := func(c byte, n int) string {
		if runs[c] == 0 {
			return ""
		}
		return strings.Repeat(string(c), max(runs[c], n))
	}

	var date string
	if m := runs['M']; m >= 3 {
		date = l.textMonth(run('d', 1), run('M', 0), run('y', 1))
	} else {
		var parts []string
		for _, c := range []byte(l.numericOrder) {
			if s := run(c, 1); s != "" {
				parts = append(parts, s)
			}
		}
		date = strings.Join(parts, l.numericSep)
	}
	if e := runs['E']; e > 0 {
		date = joinNonEmpty(l.weekdaySep, run('E', 3), date)
	}
	if g := runs['G']; g > 0 {
		date = joinNonEmpty(" ", date, run('G', 1))
	}

	var clock []string
	hour := run('h', 1) + run('H', 1)
	if hour != "" {
		clock = append(clock, hour)
	}
	if runs['m'] > 0 {
		clock = append(clock, run('m', 2))
	}
	if runs['s'] > 0 {
		s := run('s', 2)
		if runs['S'] > 0 {
			s += "." + run('S', 1)
		}
		clock = append(clock, s)
	}
	time := strings.Join(clock, ":")
	if runs['h'] > 0 || runs['a'] > 0 {
		time = joinNonEmpty(" ", time, "a")
	}
	time = joinNonEmpty(" ", time, run('z', 1), run('Z', 1))

	switch {
	case date == "":
		return time, nil
	case time == "":
		return date, nil
	}
	return fmt.Sprintf(l.join, date, time), nil
}
