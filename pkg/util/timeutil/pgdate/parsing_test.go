// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgdate

import (
	"testing"
	"time"

	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		s        string
		expected string
		code     pgcode.Code
	}{
		{s: "2020-02-29", expected: "2020-02-29"},
		{s: "02/29/2020", expected: "2020-02-29"},
		{s: "29.02.2020", expected: "2020-02-29"},
		{s: "  2020-02-29\t", expected: "2020-02-29"},
		{s: "2020001", expected: "2020-01-01"},
		{s: "2020366", expected: "2020-12-31"},
		{s: "0001001", expected: "0001-01-01"},
		{s: "2021366", code: pgcode.DatetimeFieldOverflow},
		{s: "0000100", code: pgcode.DatetimeFieldOverflow},
		{s: "2021-02-29", code: pgcode.InvalidDatetimeFormat},
		{s: "20210229", code: pgcode.InvalidDatetimeFormat},
		{s: "", code: pgcode.InvalidDatetimeFormat},
	}
	for _, tc := range testCases {
		t.Run(tc.s, func(t *testing.T) {
			d, err := ParseDate(tc.s)
			if tc.code != (pgcode.Code{}) {
				require.Error(t, err)
				require.Equal(t, tc.code, pgerror.GetPGCode(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, d.Format("2006-01-02"))
		})
	}
}

func TestParseTime(t *testing.T) {
	for s, expected := range map[string]string{
		"13:14:15": "13:14:15",
		"13.14.15": "13:14:15",
		"13:14":    "13:14:00",
	} {
		v, err := ParseTime(s)
		require.NoError(t, err, s)
		require.Equal(t, expected, v.Format("15:04:05"))
		require.Equal(t, 1, v.Year())
	}
	_, err := ParseTime("25:00:00")
	require.Equal(t, pgcode.InvalidDatetimeFormat, pgerror.GetPGCode(err))
}

func TestParseTimestamp(t *testing.T) {
	const layout = "2006-01-02 15:04:05.999999999"
	for s, expected := range map[string]string{
		"2020-01-02 03:04:05":        "2020-01-02 03:04:05",
		"2020-01-02T03:04:05.25":     "2020-01-02 03:04:05.25",
		"2020-01-02-03.04.05.000001": "2020-01-02 03:04:05.000001",
		"20200102030405":             "2020-01-02 03:04:05",
	} {
		v, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		require.Equal(t, expected, v.Format(layout))
	}
	for _, s := range []string{"2020-01-02", "20201302030405", "now"} {
		_, err := ParseTimestamp(s)
		require.Equal(t, pgcode.InvalidDatetimeFormat, pgerror.GetPGCode(err), s)
	}
}

func TestDayNumbers(t *testing.T) {
	require.Equal(t, int64(1), DayNumber(DateEpoch))
	require.Equal(t, int64(3652059), MaxDayNumber)

	for _, n := range []int64{1, 2, 59, 60, 365, 366, 730120, 738000, MaxDayNumber} {
		d, err := DateFromDayNumber(n)
		require.NoError(t, err)
		require.Equal(t, n, DayNumber(d))
	}

	// The time of day is ignored.
	require.Equal(t, DayNumber(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		DayNumber(time.Date(2000, 1, 1, 23, 59, 59, 0, time.UTC)))

	for _, n := range []int64{0, -1, MaxDayNumber + 1} {
		_, err := DateFromDayNumber(n)
		require.Equal(t, pgcode.DatetimeFieldOverflow, pgerror.GetPGCode(err))
	}
}
