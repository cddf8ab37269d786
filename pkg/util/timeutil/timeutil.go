// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"sync"
	"time"
)

// Now returns the current UTC time.
func Now() time.Time {
	return time.Now().UTC()
}

// TimeSource is used to interact with clocks and timers.
type TimeSource interface {
	Now() time.Time
}

// DefaultTimeSource is a TimeSource using the system clock.
type DefaultTimeSource struct{}

var _ TimeSource = DefaultTimeSource{}

// Now returns timeutil.Now().
func (DefaultTimeSource) Now() time.Time {
	return Now()
}

// ManualTime is a TimeSource whose time only moves when told to. It is
// safe for concurrent use.
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

var _ TimeSource = &ManualTime{}

// NewManualTime constructs a new ManualTime at the given time.
func NewManualTime(initialTime time.Time) *ManualTime {
	return &ManualTime{now: initialTime}
}

// Now returns the current time.
func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
