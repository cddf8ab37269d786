// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package eval evaluates operations on constant values. The binder uses it
// to fold expressions whose operands are all known at compile time, with
// the same results the runtime value factory produces.
package eval

import (
	"context"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/timeutil"
	"github.com/sqlsema/sqlsema/pkg/util/timeutil/pgdate"
)

// DataValueFactory implements tree.ValueFactory.
type DataValueFactory struct {
	// Clock supplies the current date when a TIME is widened to a
	// TIMESTAMP.
	Clock timeutil.TimeSource
}

var _ tree.ValueFactory = &DataValueFactory{}

// NewDataValueFactory returns a factory using the system clock.
func NewDataValueFactory() *DataValueFactory {
	return &DataValueFactory{Clock: timeutil.DefaultTimeSource{}}
}

func (f *DataValueFactory) now() tree.DDate {
	if f.Clock == nil {
		return tree.MakeDDate(timeutil.Now())
	}
	return tree.MakeDDate(f.Clock.Now())
}

// GetDate implements the tree.ValueFactory interface. A number is a day
// number counted from 0001-01-01, which is day 1. A string is a date, a
// day of year in the form yyyyddd, or a timestamp whose date is taken.
func (f *DataValueFactory) GetDate(_ context.Context, d tree.Datum) (tree.Datum, error) {
	switch t := d.(type) {
	case tree.DInt:
		return dateFromDayNumber(int64(t))
	case tree.DFloat:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil, pgerror.Newf(pgcode.DatetimeFieldOverflow, "day number %s is out of range", t)
		}
		return dateFromDayNumber(int64(math.Trunc(float64(t))))
	case *tree.DDecimal:
		n, err := truncateToInt64(&t.Decimal)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.DatetimeFieldOverflow, "day number %s", t)
		}
		return dateFromDayNumber(n)
	case tree.DString:
		v, err := pgdate.ParseDate(string(t))
		if err == nil {
			return tree.MakeDDate(v), nil
		}
		if ts, tsErr := pgdate.ParseTimestamp(string(t)); tsErr == nil {
			return tree.MakeDDate(ts), nil
		}
		return nil, err
	case tree.DDate:
		return t, nil
	case tree.DTimestamp:
		return tree.MakeDDate(t.Time), nil
	}
	return nil, unsupportedConversion(d, types.DateFamily)
}

// GetTimestamp implements the tree.ValueFactory interface.
func (f *DataValueFactory) GetTimestamp(_ context.Context, d tree.Datum) (tree.Datum, error) {
	switch t := d.(type) {
	case tree.DString:
		v, err := pgdate.ParseTimestamp(string(t))
		if err != nil {
			return nil, err
		}
		return tree.MakeDTimestamp(v), nil
	case tree.DDate:
		return tree.MakeDTimestamp(t.Time), nil
	case tree.DTimestamp:
		return t, nil
	}
	return nil, unsupportedConversion(d, types.TimestampFamily)
}

func dateFromDayNumber(n int64) (tree.Datum, error) {
	t, err := pgdate.DateFromDayNumber(n)
	if err != nil {
		return nil, err
	}
	return tree.MakeDDate(t), nil
}

func unsupportedConversion(d tree.Datum, fam types.Family) error {
	return pgerror.Newf(pgcode.InvalidCast, "cannot convert %s to %s", d, fam)
}

// truncateToInt64 drops the fractional digits of d and returns the result
// if it fits in 64 bits.
func truncateToInt64(d *apd.Decimal) (int64, error) {
	var i apd.Decimal
	c := decimalCtx
	c.Rounding = apd.RoundDown
	if _, err := c.Quantize(&i, d, 0); err != nil {
		return 0, err
	}
	return i.Int64()
}
