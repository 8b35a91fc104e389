// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pt"
	"golang.org/x/text/language"
)

// A locale holds the names and layouts of one supported language. Month,
// weekday and era names are CLDR data from the locale's Translator; the
// layouts below are the CLDR Gregorian patterns for the language.
type locale struct {
	tag language.Tag

	months      [12]string
	shortMonths [12]string
	weekdays    [7]string // Sunday first
	shortDays   [7]string
	ampm        [2]string
	eras        [2]string // before and after year 1

	// Patterns indexed by Style; the None and unset slots are empty.
	date, time [Full + 1]string
	// join combines a date and a time pattern; %[1]s is the date.
	join string

	hour12 bool // 'j' in a template means 'h' rather than 'H'

	// Template layouts. numeric lists the order of y, M and d with a
	// separator; textMonth lays out a date whose month is spelled out.
	numericOrder string
	numericSep   string
	textMonth    func(d, m, y string) string
	weekdaySep   string
}

// withNames fills in the names of l from tr.
func withNames(l *locale, tr locales.Translator) *locale {
	for m := time.January; m <= time.December; m++ {
		l.months[m-1] = tr.MonthWide(m)
		l.shortMonths[m-1] = tr.MonthAbbreviated(m)
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		l.weekdays[wd] = tr.WeekdayWide(wd)
		l.shortDays[wd] = tr.WeekdayAbbreviated(wd)
	}
	copy(l.eras[:], tr.ErasAbbreviated())
	return l
}

// 24-hour layouts shared by most languages.
var (
	time24 = [Full + 1]string{Short: "HH:mm", Medium: "HH:mm:ss", Long: "HH:mm:ss z", Full: "HH:mm:ss z"}
	ampm   = [2]string{"AM", "PM"}
)

func spaced(d, m, y string) string { return joinNonEmpty(" ", d, m, y) }

func withDe(d, m, y string) string { return joinNonEmpty(" 'de' ", d, m, y) }

var english = withNames(&locale{
	tag:    language.English,
	ampm:   ampm,
	date:   [Full + 1]string{Short: "M/d/yy", Medium: "MMM d, y", Long: "MMMM d, y", Full: "EEEE, MMMM d, y"},
	time:   [Full + 1]string{Short: "h:mm a", Medium: "h:mm:ss a", Long: "h:mm:ss a z", Full: "h:mm:ss a z"},
	join:   "%[1]s, %[2]s",
	hour12: true,

	numericOrder: "Mdy",
	numericSep:   "/",
	textMonth: func(d, m, y string) string {
		if d == "" {
			return joinNonEmpty(" ", m, y)
		}
		return joinNonEmpty(", ", m+" "+d, y)
	},
	weekdaySep: ", ",
}, en.New())

var german = withNames(&locale{
	tag:  language.German,
	ampm: ampm,
	date: [Full + 1]string{Short: "dd.MM.yy", Medium: "dd.MM.y", Long: "d. MMMM y", Full: "EEEE, d. MMMM y"},
	time: time24,
	join: "%[1]s, %[2]s",

	numericOrder: "dMy",
	numericSep:   ".",
	textMonth: func(d, m, y string) string {
		if d != "" {
			d += "."
		}
		return joinNonEmpty(" ", d, m, y)
	},
	weekdaySep: ", ",
}, de.New())

var french = withNames(&locale{
	tag:  language.French,
	ampm: ampm,
	date: [Full + 1]string{Short: "dd/MM/y", Medium: "d MMM y", Long: "d MMMM y", Full: "EEEE d MMMM y"},
	time: time24,
	join: "%[1]s %[2]s",

	numericOrder: "dMy",
	numericSep:   "/",
	textMonth:    spaced,
	weekdaySep:   " ",
}, fr.New())

var spanish = withNames(&locale{
	tag:  language.Spanish,
	ampm: [2]string{"a. m.", "p. m."},
	date: [Full + 1]string{Short: "d/M/yy", Medium: "d MMM y", Long: "d 'de' MMMM 'de' y", Full: "EEEE, d 'de' MMMM 'de' y"},
	time: [Full + 1]string{Short: "H:mm", Medium: "H:mm:ss", Long: "H:mm:ss z", Full: "H:mm:ss z"},
	join: "%[1]s, %[2]s",

	numericOrder: "dMy",
	numericSep:   "/",
	textMonth:    withDe,
	weekdaySep:   ", ",
}, es.New())

var italian = withNames(&locale{
	tag:  language.Italian,
	ampm: ampm,
	date: [Full + 1]string{Short: "dd/MM/yy", Medium: "d MMM y", Long: "d MMMM y", Full: "EEEE d MMMM y"},
	time: time24,
	join: "%[1]s, %[2]s",

	numericOrder: "dMy",
	numericSep:   "/",
	textMonth:    spaced,
	weekdaySep:   " ",
}, it.New())

var portuguese = withNames(&locale{
	tag:  language.Portuguese,
	ampm: ampm,
	date: [Full + 1]string{Short: "dd/MM/y", Medium: "d 'de' MMM 'de' y", Long: "d 'de' MMMM 'de' y", Full: "EEEE, d 'de' MMMM 'de' y"},
	time: time24,
	join: "%[1]s %[2]s",

	numericOrder: "dMy",
	numericSep:   "/",
	textMonth:    withDe,
	weekdaySep:   ", ",
}, pt.New())

var dutch = withNames(&locale{
	tag:  language.Dutch,
	ampm: [2]string{"a.m.", "p.m."},
	date: [Full + 1]string{Short: "dd-MM-y", Medium: "d MMM y", Long: "d MMMM y", Full: "EEEE d MMMM y"},
	time: time24,
	join: "%[1]s %[2]s",

	numericOrder: "dMy",
	numericSep:   "-",
	textMonth:    spaced,
	weekdaySep:   " ",
}, nl.New())

var (
	supported = []*locale{english, german, french, spanish, italian, portuguese, dutch}
	matcher   = language.NewMatcher(Locales())
)

// lookupLocale returns the supported locale closest to tag. Unsupported
// and undetermined tags get English.
func lookupLocale(tag language.Tag) *locale {
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return english
	}
	return supported[i]
}

// Locales returns the tags of the supported locales.
func Locales() []language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.tag
	}
	return tags
}

func joinNonEmpty(sep string, parts ...string) string {
	var s string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if s != "" {
			s += sep
		}
		s += p
	}
	return s
}
