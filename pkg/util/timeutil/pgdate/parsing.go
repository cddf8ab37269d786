// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgdate parses the string forms of DATE, TIME and TIMESTAMP values
// and converts between dates and day numbers. All values are in UTC.
package pgdate

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
)

var (
	// DateEpoch is day number 1.
	DateEpoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	// MaxDate is the last representable day.
	MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	// MaxDayNumber is the day number of MaxDate.
	MaxDayNumber = DayNumber(MaxDate)
)

// dateLayouts are tried in order. ISO and JIS share a layout.
var dateLayouts = []string{
	"2006-01-02", // ISO, JIS
	"01/02/2006", // USA
	"02.01.2006", // EUR
}

var timeLayouts = []string{
	"15:04:05", // ISO, JIS
	"15.04.05", // EUR
	"15:04",
}

// Fractional seconds are accepted after the seconds field of each layout.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02-15.04.05",
}

const (
	secondsPerDay       = 24 * 60 * 60
	dayOfYearLen        = len("yyyyddd")
	compactTimestampLen = len("yyyymmddhhmmss")
)

// ParseDate converts a string into a date. Besides the ISO, USA and EUR
// forms it accepts the seven digit yyyyddd day-of-year form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == dayOfYearLen && allDigits(s) {
		return parseDayOfYear(s)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, parseError("date", s)
}

// ParseTime converts a string into a time of day on DateEpoch.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(1, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, parseError("time", s)
}

// ParseTimestamp converts a string into a timestamp. Besides the ISO and
// the dashed yyyy-mm-dd-hh.mm.ss forms it accepts the fourteen digit
// yyyymmddhhmmss form.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == compactTimestampLen && allDigits(s) {
		if t, err := time.Parse("20060102150405", s); err == nil {
			return t, nil
		}
		return time.Time{}, parseError("timestamp", s)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, parseError("timestamp", s)
}

// DateFromDayNumber returns the date n-1 days after DateEpoch.
func DateFromDayNumber(n int64) (time.Time, error) {
	if n < 1 || n > MaxDayNumber {
		return time.Time{}, pgerror.Newf(pgcode.DatetimeFieldOverflow,
			"day number %d is outside the range [1, %d]", n, MaxDayNumber)
	}
	return DateEpoch.AddDate(0, 0, int(n-1)), nil
}

// DayNumber is the inverse of DateFromDayNumber.
func DayNumber(t time.Time) int64 {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return (d.Unix()-DateEpoch.Unix())/secondsPerDay + 1
}

func parseDayOfYear(s string) (time.Time, error) {
	year, _ := strconv.Atoi(s[:4])
	day, _ := strconv.Atoi(s[4:])
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if year < 1 || day < 1 || day > daysInYear(year) {
		return time.Time{}, pgerror.Newf(pgcode.DatetimeFieldOverflow,
			"day %d is outside year %d", day, year)
	}
	return start.AddDate(0, 0, day-1), nil
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseError(kind string, s string) error {
	return errors.WithHint(
		pgerror.Newf(pgcode.InvalidDatetimeFormat, "could not parse %q as type %s", s, errors.Safe(kind)),
		"supported forms are yyyy-mm-dd, mm/dd/yyyy, dd.mm.yyyy and, for timestamps, yyyy-mm-dd hh:mm:ss[.ffffff]",
	)
}
