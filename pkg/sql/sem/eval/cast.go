// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/timeutil/pgdate"
)

// Cast implements the tree.ValueFactory interface.
func (f *DataValueFactory) Cast(
	ctx context.Context, d tree.Datum, target *types.T,
) (tree.Datum, error) {
	if d == tree.DNull {
		return tree.DNull, nil
	}
	switch fam := target.Family(); {
	case fam.IsExactInteger():
		return castToInt(d, fam)
	case fam == types.RealFamily || fam == types.DoubleFamily:
		v, err := castToFloat(d, fam)
		if err != nil {
			return nil, err
		}
		return checkFloatRange(v, fam)
	case fam == types.DecimalFamily:
		v, err := castToDecimal(d)
		if err != nil {
			return nil, err
		}
		res := &tree.DDecimal{}
		res.Set(v)
		return fitDecimal(res, target)
	case fam.IsCharacter():
		return castToString(d, target)
	case fam == types.BoolFamily:
		return castToBool(d)
	case fam == types.DateFamily:
		switch t := d.(type) {
		case tree.DString, tree.DDate, tree.DTimestamp:
			return f.GetDate(ctx, t)
		}
	case fam == types.TimeFamily:
		switch t := d.(type) {
		case tree.DString:
			v, err := pgdate.ParseTime(string(t))
			if err != nil {
				return nil, err
			}
			return tree.MakeDTime(v), nil
		case tree.DTime:
			return t, nil
		case tree.DTimestamp:
			return tree.MakeDTime(t.Time), nil
		}
	case fam == types.TimestampFamily:
		if t, ok := d.(tree.DTime); ok {
			today := f.now()
			return tree.MakeDTimestamp(today.Add(t.Sub(pgdate.DateEpoch))), nil
		}
		return f.GetTimestamp(ctx, d)
	}
	return nil, unsupportedConversion(d, target.Family())
}

func invalidCharacterValue(s string, fam types.Family) error {
	return pgerror.Newf(pgcode.InvalidCharacterValue,
		"invalid character string format for type %s: %q", fam, s)
}

func castToInt(d tree.Datum, fam types.Family) (tree.Datum, error) {
	switch t := d.(type) {
	case tree.DInt:
		return checkIntRange(int64(t), fam)
	case tree.DFloat:
		v := math.Trunc(float64(t))
		if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, outOfRange(fam)
		}
		return checkIntRange(int64(v), fam)
	case *tree.DDecimal:
		v, err := truncateToInt64(&t.Decimal)
		if err != nil {
			return nil, outOfRange(fam)
		}
		return checkIntRange(v, fam)
	case tree.DString:
		s := strings.TrimSpace(string(t))
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, outOfRange(fam)
			}
			return nil, invalidCharacterValue(s, fam)
		}
		return checkIntRange(v, fam)
	}
	return nil, unsupportedConversion(d, fam)
}

func castToFloat(d tree.Datum, fam types.Family) (float64, error) {
	if s, ok := d.(tree.DString); ok {
		str := strings.TrimSpace(string(s))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, outOfRange(fam)
			}
			return 0, invalidCharacterValue(str, fam)
		}
		return v, nil
	}
	switch d.(type) {
	case tree.DInt, tree.DFloat, *tree.DDecimal:
		return toFloat(d)
	}
	return 0, unsupportedConversion(d, fam)
}

func castToDecimal(d tree.Datum) (*apd.Decimal, error) {
	if s, ok := d.(tree.DString); ok {
		v, err := tree.ParseDDecimal(string(s))
		if err != nil || v.Form != apd.Finite {
			return nil, invalidCharacterValue(string(s), types.DecimalFamily)
		}
		return &v.Decimal, nil
	}
	switch d.(type) {
	case tree.DInt, tree.DFloat, *tree.DDecimal:
		return toDecimal(d)
	}
	return nil, unsupportedConversion(d, types.DecimalFamily)
}

// castToString renders d as text. CHAR values are padded with spaces to
// the target width. Text longer than the width may only lose trailing
// spaces.
func castToString(d tree.Datum, target *types.T) (tree.Datum, error) {
	s := d.Text()
	width := int(target.MaxWidth())
	if n := utf8.RuneCountInString(s); n > width {
		cut := s
		for i := 0; i < width; i++ {
			_, size := utf8.DecodeRuneInString(cut)
			cut = cut[size:]
		}
		if strings.TrimRight(cut, " ") != "" {
			return nil, pgerror.Newf(pgcode.StringDataRightTruncation,
				"a truncation error was encountered trying to shrink %s '%s' to length %d",
				target.Family(), s, width)
		}
		s = s[:len(s)-len(cut)]
	} else if target.Family() == types.CharFamily {
		s += strings.Repeat(" ", width-n)
	}
	return tree.DString(s), nil
}

func castToBool(d tree.Datum) (tree.Datum, error) {
	switch t := d.(type) {
	case tree.DBool:
		return t, nil
	case tree.DString:
		switch s := strings.ToLower(strings.TrimSpace(string(t))); s {
		case "true":
			return tree.DBoolTrue, nil
		case "false":
			return tree.DBoolFalse, nil
		default:
			return nil, invalidCharacterValue(s, types.BoolFamily)
		}
	case tree.DInt:
		return tree.DBool(t != 0), nil
	case tree.DFloat:
		return tree.DBool(t != 0), nil
	case *tree.DDecimal:
		return tree.DBool(!t.IsZero()), nil
	}
	return nil, unsupportedConversion(d, types.BoolFamily)
}
