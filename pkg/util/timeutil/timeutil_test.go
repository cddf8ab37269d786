// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualTime(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManualTime(start)
	require.Equal(t, start, m.Now())
	m.Advance(36 * time.Hour)
	require.Equal(t, start.Add(36*time.Hour), m.Now())
}

func TestNowIsUTC(t *testing.T) {
	require.Equal(t, time.UTC, Now().Location())
	require.Equal(t, time.UTC, DefaultTimeSource{}.Now().Location())
}
