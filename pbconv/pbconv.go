// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbconv converts civil values to and from the well-known
// protocol buffer types google.protobuf.Timestamp and
// google.protobuf.Duration.
//
// A Timestamp carries only the instant. The calendar and zone of a
// DateTime are not transmitted; the receiver chooses the zone in which to
// read it. Sub-millisecond precision is truncated on the way in.
package pbconv // import "go.civiltime.net/pbconv"

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.civiltime.net/civil"
)

var errNil = errors.New("nil message")

// Timestamp returns the instant of d as a Timestamp.
func Timestamp(d civil.DateTime) *timestamppb.Timestamp {
	ms := d.Instant().UnixMilli()
	secs, rem := ms/1000, ms%1000
	if rem < 0 {
		secs, rem = secs-1, rem+1000
	}
	return &timestamppb.Timestamp{Seconds: secs, Nanos: int32(rem * 1e6)}
}

// FromTimestamp returns the Gregorian DateTime of ts read in zone, or
// Local if zone is nil.
func FromTimestamp(ts *timestamppb.Timestamp, zone civil.Zone) (civil.DateTime, error) {
	if ts == nil {
		return civil.DateTime{}, fmt.Errorf("pbconv: timestamp: %w", errNil)
	}
	if err := ts.CheckValid(); err != nil {
		return civil.DateTime{}, fmt.Errorf("pbconv: %w", err)
	}
	ms := ts.GetSeconds()*1000 + int64(ts.GetNanos())/1e6
	return civil.FromInstant(civil.UnixMilliInstant(ms), civil.Gregorian, zone), nil
}

// Duration returns d as a protocol buffer Duration.
func Duration(d civil.Duration) *durationpb.Duration {
	ms := int64(d)
	return &durationpb.Duration{Seconds: ms / 1000, Nanos: int32(ms % 1000 * 1e6)}
}

// FromDuration returns pb truncated to the millisecond.
func FromDuration(pb *durationpb.Duration) (civil.Duration, error) {
	if pb == nil {
		return 0, fmt.Errorf("pbconv: duration: %w", errNil)
	}
	if err := pb.CheckValid(); err != nil {
		return 0, fmt.Errorf("pbconv: %w", err)
	}
	return civil.Duration(pb.GetSeconds()*1000 + int64(pb.GetNanos())/1e6), nil
}
