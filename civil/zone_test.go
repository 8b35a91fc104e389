// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil_test

import (
	"errors"
	"testing"
	"time"

	"go.civiltime.net/civil"
)

func TestLoadZone(t *testing.T) {
	for name, want := range map[string]civil.Zone{
		"":      civil.Local,
		"Local": civil.Local,
		"UTC":   civil.UTC,
	} {
		z, err := civil.LoadZone(name)
		if err != nil || z != want {
			t.Errorf("LoadZone(%q) = %v, %v", name, z, err)
		}
	}

	tokyo := mustZone(t, "Asia/Tokyo")
	if tokyo.Name() != "Asia/Tokyo" {
		t.Errorf("Name() = %q", tokyo.Name())
	}
	if got := tokyo.OffsetAt(0); got != 9*60 {
		t.Errorf("Tokyo offset = %d", got)
	}
	if again := mustZone(t, "Asia/Tokyo"); again != tokyo {
		t.Error("LoadZone does not cache zones")
	}

	_, err := civil.LoadZone("Mars/Olympus_Mons")
	if !errors.Is(err, civil.ErrUnresolvedTimeZone) {
		t.Errorf("LoadZone of unknown zone: got %v", err)
	}
}

func TestFixedZone(t *testing.T) {
	z := civil.FixedZone("NST", -210)
	if z.Name() != "NST" || z.OffsetAt(0) != -210 || z.OffsetAt(1<<40) != -210 {
		t.Errorf("FixedZone = %s %d", z.Name(), z.OffsetAt(0))
	}
	loc := civil.Location(z)
	if _, off := time.Unix(0, 0).In(loc).Zone(); off != -210*60 {
		t.Errorf("Location offset = %d", off)
	}
	if civil.Location(civil.UTC) != time.UTC {
		t.Error("Location(UTC) is not time.UTC")
	}
}

func TestZoneOf(t *testing.T) {
	if civil.ZoneOf(time.UTC) != civil.UTC || civil.ZoneOf(nil) != civil.UTC {
		t.Error("ZoneOf(UTC)")
	}
	if civil.ZoneOf(time.Local) != civil.Local {
		t.Error("ZoneOf(Local)")
	}
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	z := civil.ZoneOf(berlin)
	if z.Name() != "Europe/Berlin" || civil.Location(z) != berlin {
		t.Errorf("ZoneOf(Berlin) = %v", z)
	}
	d := civil.FromTime(time.Date(2023, 7, 1, 12, 0, 0, 0, berlin))
	if d.Hour() != 12 || d.Offset() != 120 {
		t.Errorf("FromTime = %v", d)
	}
	if got := d.Time(); !got.Equal(time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC)) || got.Location() != berlin {
		t.Errorf("Time() = %v", got)
	}
}

func TestLocalFollowsLocalFunc(t *testing.T) {
	defer func(f func() *time.Location) { civil.LocalFunc = f }(civil.LocalFunc)

	d := mustDate(t, civil.Options{Year: 2023, Month: 1, Day: 1, Hour: 12}).Local()
	civil.LocalFunc = func() *time.Location { return time.FixedZone("A", 3600) }
	if d.Hour() != 13 {
		t.Errorf("hour in +01:00 = %d", d.Hour())
	}
	civil.LocalFunc = func() *time.Location { return time.FixedZone("B", -3600) }
	if d.Hour() != 11 {
		t.Errorf("hour in -01:00 = %d", d.Hour())
	}
	if d.Zone().Name() != "Local" {
		t.Errorf("Name() = %q", d.Zone().Name())
	}
}

// TestZoneRulesOverride checks that a custom provider's zones behave like
// any other zone.
func TestZoneRulesOverride(t *testing.T) {
	var rules civil.ZoneRules = fakeRules{"Mars/Olympus_Mons": civil.FixedZone("Mars/Olympus_Mons", 37)}
	z, err := rules.LoadZone("Mars/Olympus_Mons")
	if err != nil {
		t.Fatal(err)
	}
	d := mustDate(t, civil.Options{Year: 2023, Month: 1, Day: 1, Zone: z})
	if got := d.UTC().Fields(); got.Day != 31 || got.Hour != 23 || got.Minute != 23 {
		t.Errorf("UTC fields = %v", got)
	}
	if _, err := rules.LoadZone("Venus/Maxwell"); !errors.Is(err, civil.ErrUnresolvedTimeZone) {
		t.Errorf("got %v", err)
	}
}

type fakeRules map[string]civil.Zone

func (r fakeRules) LoadZone(name string) (civil.Zone, error) {
	if z, ok := r[name]; ok {
		return z, nil
	}
	return nil, civil.ErrUnresolvedTimeZone
}
