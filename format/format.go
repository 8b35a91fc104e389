// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format renders civil DateTimes as localized text and parses
// them back.
//
// A Formatter holds default Options. Each call may pass further Options;
// fields left at their zero value fall back to the formatter's defaults.
// The layout is taken, in order of preference, from a Pattern, a Template
// or the date and time Styles:
//
//	f := format.New(format.Options{Locale: language.German})
//	s, _ := f.Format(d, format.Options{Template: "yMMMd"}) // "4. Juli 2023"
//
// Patterns use the CLDR letters G y M d D E a h H m s S Z z; text in single
// quotes is literal. Templates name fields without order or punctuation
// and are arranged for the locale. English, German, French, Spanish,
// Italian, Portuguese and Dutch are supported; other locales fall back to
// the closest match, or English. Month, weekday and era names come from
// the CLDR data of github.com/go-playground/locales.
//
// Formatters are immutable and safe for concurrent use.
package format // import "go.civiltime.net/format"

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"go.civiltime.net/civil"
)

// A Style is a predefined length of date or time layout.
type Style int8

const (
	unset Style = iota
	None        // omit this part
	Short
	Medium
	Long
	Full
)

var styleNames = [...]string{unset: "", None: "none", Short: "short", Medium: "medium", Long: "long", Full: "full"}

func (s Style) String() string {
	if 0 <= s && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the Style named s, one of "none", "short", "medium",
// "long" or "full".
func ParseStyle(s string) (Style, error) {
	for i, name := range styleNames {
		if name != "" && strings.EqualFold(name, s) {
			return Style(i), nil
		}
	}
	return unset, fmt.Errorf("unknown style %q", s)
}

// Options configure formatting and parsing. Zero fields are unset.
type Options struct {
	DateStyle, TimeStyle Style

	// Template is a skeleton of pattern letters, such as "yMMMd" or "jm".
	Template string
	// Pattern is an explicit layout, such as "yyyy-MM-dd'T'HH:mm".
	Pattern string

	// Zone overrides the zone a DateTime is read in; parsing assumes it
	// when the text carries no offset. When unset, DateTimes are read in
	// their own zone and text is parsed in Local.
	Zone civil.Zone
	// Locale selects month names and layouts.
	Locale language.Tag
}

// merge returns o with its unset fields taken from def. Any layout set in
// o, whether a pattern, a template or a style, hides the pattern and
// template of def.
func (o Options) merge(def Options) Options {
	if o.Pattern == "" && o.Template == "" && o.DateStyle == unset && o.TimeStyle == unset {
		o.Pattern, o.Template = def.Pattern, def.Template
	}
	if o.DateStyle == unset {
		o.DateStyle = def.DateStyle
	}
	if o.TimeStyle == unset {
		o.TimeStyle = def.TimeStyle
	}
	if o.Zone == nil {
		o.Zone = def.Zone
	}
	if o.Locale == language.Und {
		o.Locale = def.Locale
	}
	return o
}

// A Formatter formats and parses DateTimes with a fixed set of defaults.
// The zero Formatter uses medium dates, short times and English.
type Formatter struct {
	defaults Options
}

var std = New(Options{})

// Default returns the Formatter used by the package-level functions. It
// has the built-in defaults and, like every Formatter, cannot be changed.
func Default() *Formatter { return std }

// New returns a Formatter with the given defaults. Styles left unset
// default to Medium for dates and Short for times.
func New(defaults Options) *Formatter {
	return &Formatter{defaults.merge(Options{DateStyle: Medium, TimeStyle: Short})}
}

// With returns a Formatter whose defaults are f's overridden by opts.
func (f *Formatter) With(opts Options) *Formatter {
	return &Formatter{opts.merge(f.Defaults())}
}

// Defaults returns the options f falls back on.
func (f *Formatter) Defaults() Options {
	var o Options
	if f != nil {
		o = f.defaults
	}
	return o.merge(Options{DateStyle: Medium, TimeStyle: Short})
}

// layout resolves the pattern for o in locale l.
func layout(o Options, l *locale) (string, error) {
	switch {
	case o.Pattern != "":
		return o.Pattern, nil
	case o.Template != "":
		return templatePattern(o.Template, l)
	}
	if o.DateStyle < unset || o.DateStyle > Full || o.TimeStyle < unset || o.TimeStyle > Full {
		return "", fmt.Errorf("%w: styles %v, %v", ErrPattern, o.DateStyle, o.TimeStyle)
	}
	date, time := l.date[o.DateStyle], l.time[o.TimeStyle]
	switch {
	case date == "":
		return time, nil
	case time == "":
		return date, nil
	}
	return fmt.Sprintf(l.join, date, time), nil
}

// Format renders d. The options of each call are merged in order over the
// formatter's defaults.
func (f *Formatter) Format(d civil.DateTime, opts ...Options) (string, error) {
	o := f.resolve(opts)
	l := lookupLocale(o.Locale)
	pattern, err := layout(o, l)
	if err != nil {
		return "", err
	}
	fields, err := compile(pattern)
	if err != nil {
		return "", err
	}
	if o.Zone != nil {
		d = d.In(o.Zone)
	}
	return render(fields, d, l), nil
}

func (f *Formatter) resolve(opts []Options) Options {
	o := f.Defaults()
	for _, opt := range opts {
		o = opt.merge(o)
	}
	return o
}

// LocalizedString renders d with the given styles.
func (f *Formatter) LocalizedString(d civil.DateTime, date, time Style) string {
	s, err := f.Format(d, Options{DateStyle: date, TimeStyle: time})
	if err != nil {
		return ""
	}
	return s
}

// LocalizedDate renders the date of d alone.
func (f *Formatter) LocalizedDate(d civil.DateTime, style Style) string {
	return f.LocalizedString(d, style, None)
}

// LocalizedTime renders the time of d alone.
func (f *Formatter) LocalizedTime(d civil.DateTime, style Style) string {
	return f.LocalizedString(d, None, style)
}

// Format renders d with the Default formatter.
func Format(d civil.DateTime, opts ...Options) (string, error) {
	return std.Format(d, opts...)
}

// LocalizedString renders d with the Default formatter.
func LocalizedString(d civil.DateTime, date, time Style) string {
	return std.LocalizedString(d, date, time)
}
