// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"

	"go.civiltime.net/civil"
)

func TestRead(t *testing.T) {
	t.Setenv("CIVILTIME_ZONE", "Asia/Tokyo")
	t.Setenv("CIVILTIME_LOCALE", "de-AT")
	t.Setenv("CIVILTIME_DATE_STYLE", "long")
	t.Setenv("CIVILTIME_PATTERN", "d.M.yyyy")
	t.Setenv("CIVILTIME_DEBUG", "true")

	cfg, err := Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Zone:      "Asia/Tokyo",
		Locale:    "de-AT",
		DateStyle: "long",
		Pattern:   "d.M.yyyy",
		Debug:     true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatter(t *testing.T) {
	d, err := civil.Date(2023, 7, 4, civil.UTC)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		cfg  Config
		want string
	}{
		{Config{Pattern: "d.M.yyyy"}, "4.7.2023"},
		{Config{Locale: "de", Pattern: "EEEE"}, "Dienstag"},
		{Config{Template: "yMMMMd"}, "July 4, 2023"},
		{Config{DateStyle: "none", TimeStyle: "short"}, "12:00 AM"},
	} {
		f, err := test.cfg.Formatter()
		if err != nil {
			t.Errorf("%+v: %v", test.cfg, err)
			continue
		}
		got, err := f.Format(d)
		if err != nil {
			t.Errorf("%+v: Format: %v", test.cfg, err)
		} else if got != test.want {
			t.Errorf("%+v: Format = %q, want %q", test.cfg, got, test.want)
		}
	}
}

func TestFormatterErrors(t *testing.T) {
	for _, test := range []struct {
		cfg  Config
		want string
	}{
		{Config{Locale: "not a tag!"}, "CIVILTIME_LOCALE"},
		{Config{DateStyle: "huge"}, "CIVILTIME_DATE_STYLE"},
		{Config{TimeStyle: "tiny"}, "CIVILTIME_TIME_STYLE"},
	} {
		if _, err := test.cfg.Formatter(); err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%+v: got %v, want error mentioning %s", test.cfg, err, test.want)
		}
	}
}

func TestApplyZone(t *testing.T) {
	defer func(prev func() *time.Location) { civil.LocalFunc = prev }(civil.LocalFunc)

	if err := (Config{}).ApplyZone(); err != nil {
		t.Fatal(err)
	}
	if err := (Config{Zone: "Asia/Tokyo"}).ApplyZone(); err != nil {
		t.Fatal(err)
	}
	d, err := civil.Date(2023, 7, 4, civil.Local)
	if err != nil {
		t.Fatal(err)
	}
	if d.Offset() != 540 {
		t.Errorf("Local offset = %d, want 540", d.Offset())
	}

	err = (Config{Zone: "Nowhere/Special"}).ApplyZone()
	if !errors.Is(err, civil.ErrUnresolvedTimeZone) {
		t.Errorf("ApplyZone(Nowhere/Special) = %v, want ErrUnresolvedTimeZone", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	Config{}.Logger(&buf).Debug("hidden")
	Config{}.Logger(&buf).Info("shown", "zone", "UTC")
	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "msg=shown zone=UTC") {
		t.Errorf("info logger wrote %q", got)
	}

	buf.Reset()
	Config{Debug: true}.Logger(&buf).Debug("visible")
	if got := buf.String(); !strings.Contains(got, "level=DEBUG") || !strings.Contains(got, "msg=visible") {
		t.Errorf("debug logger wrote %q", got)
	}
}

func TestUsage(t *testing.T) {
	u := Usage()
	for _, name := range []string{"CIVILTIME_ZONE", "CIVILTIME_LOCALE", "CIVILTIME_DEBUG"} {
		if !strings.Contains(u, name) {
			t.Errorf("Usage() does not mention %s:\n%s", name, u)
		}
	}
}
