// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnresolvedTimeZone is returned when a zone name is unknown to the
// zone rules in use.
var ErrUnresolvedTimeZone = errors.New("unresolved time zone")

// A Zone reports the offset from UTC in effect at an instant.
// The offset may vary over time, for example with daylight saving.
type Zone interface {
	// Name returns the zone identifier, such as "UTC" or "Europe/Berlin".
	Name() string
	// OffsetAt returns the offset from UTC at i, in minutes east of UTC.
	OffsetAt(i Instant) int
}

// ZoneRules resolves zone identifiers.
type ZoneRules interface {
	LoadZone(name string) (Zone, error)
}

// UTC is the zero-offset zone.
var UTC Zone = fixedZone{name: "UTC"}

// Local is the host's zone. It is resolved through LocalFunc on every
// call, so a DateTime in Local follows changes of the host zone.
var Local Zone = localZone{}

// LocalFunc returns the host's current zone. The default reports
// time.Local.
var LocalFunc = func() *time.Location { return time.Local }

// FixedZone returns a zone with a constant offset in minutes east of UTC.
func FixedZone(name string, minutes int) Zone {
	return fixedZone{name: name, offset: minutes}
}

type fixedZone struct {
	name   string
	offset int
}

func (z fixedZone) Name() string         { return z.name }
func (z fixedZone) OffsetAt(Instant) int { return z.offset }
func (z fixedZone) String() string       { return z.name }

type localZone struct{}

func (localZone) Name() string             { return "Local" }
func (localZone) OffsetAt(i Instant) int   { return locationOffset(LocalFunc(), i) }
func (localZone) String() string           { return "Local" }
func (localZone) location() *time.Location { return LocalFunc() }

// ZoneOf adapts a Go location. time.UTC and time.Local map to UTC and
// Local.
func ZoneOf(loc *time.Location) Zone {
	switch loc {
	case nil, time.UTC:
		return UTC
	case time.Local:
		return Local
	}
	return locationZone{loc}
}

type locationZone struct {
	loc *time.Location
}

func (z locationZone) Name() string             { return z.loc.String() }
func (z locationZone) OffsetAt(i Instant) int   { return locationOffset(z.loc, i) }
func (z locationZone) String() string           { return z.loc.String() }
func (z locationZone) location() *time.Location { return z.loc }

// Offsets finer than a minute, such as historical local mean time, are
// truncated toward zero.
func locationOffset(loc *time.Location, i Instant) int {
	_, offset := i.Time().In(loc).Zone()
	return offset / 60
}

// Location returns a Go location equivalent to z. Zones not backed by
// the tz database are approximated by their offset at the reference date.
func Location(z Zone) *time.Location {
	switch z := z.(type) {
	case interface{ location() *time.Location }:
		return z.location()
	case fixedZone:
		if z == UTC {
			return time.UTC
		}
		return time.FixedZone(z.name, z.offset*60)
	}
	return time.FixedZone(z.Name(), z.OffsetAt(0)*60)
}

// IANA resolves zone names against the host's tz database. Loaded zones
// are cached; IANA is safe for concurrent use.
var IANA ZoneRules = &tzdb{zones: make(map[string]Zone)}

type tzdb struct {
	mu    sync.Mutex
	zones map[string]Zone
}

func (db *tzdb) LoadZone(name string) (Zone, error) {
	switch name {
	case "", "Local":
		return Local, nil
	case "UTC":
		return UTC, nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if z, ok := db.zones[name]; ok {
		return z, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnresolvedTimeZone, name, err)
	}
	z := locationZone{loc}
	db.zones[name] = z
	return z, nil
}

// LoadZone resolves name with the IANA rules. The names "" and "Local"
// denote Local; "UTC" denotes UTC.
func LoadZone(name string) (Zone, error) { return IANA.LoadZone(name) }
