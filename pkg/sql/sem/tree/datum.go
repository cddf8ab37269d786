// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// A Datum is a constant value: a literal from the statement or the result
// of folding constant operands at bind time.
type Datum interface {
	// String renders the datum as a SQL literal.
	String() string
	// Text renders the datum the way a cast to a character type does.
	Text() string
	datum()
}

var (
	// DNull is the NULL Datum.
	DNull Datum = dNull{}

	// DBoolTrue is the TRUE Datum.
	DBoolTrue = DBool(true)
	// DBoolFalse is the FALSE Datum.
	DBoolFalse = DBool(false)
)

type dNull struct{}

func (dNull) datum()         {}
func (dNull) String() string { return "NULL" }
func (dNull) Text() string   { return "NULL" }

// DBool is the boolean Datum.
type DBool bool

func (DBool) datum() {}

func (d DBool) String() string { return strings.ToUpper(d.Text()) }

func (d DBool) Text() string { return strconv.FormatBool(bool(d)) }

// DInt is the Datum for all exact integer families. The family of the
// enclosing constant bounds its range.
type DInt int64

func (DInt) datum() {}

func (d DInt) String() string { return d.Text() }

func (d DInt) Text() string { return strconv.FormatInt(int64(d), 10) }

// DFloat is the Datum for REAL and DOUBLE.
type DFloat float64

func (DFloat) datum() {}

func (d DFloat) String() string { return d.Text() }

func (d DFloat) Text() string {
	return strconv.FormatFloat(float64(d), 'G', -1, 64)
}

// DDecimal is the DECIMAL Datum.
type DDecimal struct {
	apd.Decimal
}

// ParseDDecimal parses a decimal literal.
func ParseDDecimal(s string) (*DDecimal, error) {
	d := &DDecimal{}
	if _, _, err := d.SetString(strings.TrimSpace(s)); err != nil {
		return nil, errors.Wrapf(err, "could not parse %q as type DECIMAL", s)
	}
	return d, nil
}

func (*DDecimal) datum() {}

func (d *DDecimal) String() string { return d.Text() }

func (d *DDecimal) Text() string { return d.Decimal.Text('f') }

// DString is the Datum for CHAR and VARCHAR.
type DString string

func (DString) datum() {}

func (d DString) String() string {
	return "'" + strings.ReplaceAll(string(d), "'", "''") + "'"
}

func (d DString) Text() string { return string(d) }

// DDate is the DATE Datum. The time of day is always midnight UTC.
type DDate struct {
	time.Time
}

// MakeDDate truncates t to its date.
func MakeDDate(t time.Time) DDate {
	return DDate{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (DDate) datum() {}

func (d DDate) String() string { return "DATE '" + d.Text() + "'" }

func (d DDate) Text() string { return d.Format("2006-01-02") }

// DTime is the TIME Datum. The date part is always 0001-01-01.
type DTime struct {
	time.Time
}

// MakeDTime keeps the time of day of t, dropping fractional seconds.
func MakeDTime(t time.Time) DTime {
	return DTime{time.Date(1, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func (DTime) datum() {}

func (d DTime) String() string { return "TIME '" + d.Text() + "'" }

func (d DTime) Text() string { return d.Format("15:04:05") }

// DTimestamp is the TIMESTAMP Datum.
type DTimestamp struct {
	time.Time
}

// MakeDTimestamp normalizes t to UTC.
func MakeDTimestamp(t time.Time) DTimestamp {
	return DTimestamp{t.UTC()}
}

func (DTimestamp) datum() {}

func (d DTimestamp) String() string { return "TIMESTAMP '" + d.Text() + "'" }

func (d DTimestamp) Text() string { return d.Format("2006-01-02 15:04:05.999999999") }
