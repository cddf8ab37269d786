// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// NewConstant returns a constant of the given type. A non-null value is
// typed NOT NULL.
func NewConstant(d Datum, typ *types.T) *Constant {
	if d == DNull {
		return NewTypedNull(typ)
	}
	return &Constant{typeAnnotation: typeAnnotation{typ: typ.WithNullability(false)}, Value: d}
}

// NewTypedNull returns a null of the given type.
func NewTypedNull(typ *types.T) *Constant {
	return &Constant{typeAnnotation: typeAnnotation{typ: typ.WithNullability(true)}, Value: DNull}
}

// NewNullConstant returns an untyped NULL literal. Binding gives it the
// type of its context.
func NewNullConstant() *Constant {
	return &Constant{typeAnnotation: typeAnnotation{typ: types.Unknown}, Value: DNull}
}

// NewIntConstant returns an integer literal. Values that fit in 32 bits are
// INTEGER, others BIGINT.
func NewIntConstant(v int64) *Constant {
	fam := types.IntFamily
	if v < math.MinInt32 || v > math.MaxInt32 {
		fam = types.BigIntFamily
	}
	return NewConstant(DInt(v), types.MakeScalar(fam, false))
}

// NewFloatConstant returns a DOUBLE literal.
func NewFloatConstant(v float64) *Constant {
	return NewConstant(DFloat(v), types.Double)
}

// NewDecimalConstant returns a DECIMAL literal whose precision and scale
// are those of the written digits.
func NewDecimalConstant(s string) (*Constant, error) {
	d, err := ParseDDecimal(s)
	if err != nil {
		return nil, pgerror.WithCandidateCode(err, pgcode.Syntax)
	}
	if d.Form != apd.Finite {
		return nil, pgerror.Newf(pgcode.Syntax, "%q is not a finite decimal", s)
	}
	if d.Exponent > 0 {
		if _, _, err := d.Decimal.SetString(d.Decimal.Text('f')); err != nil {
			return nil, errors.NewAssertionErrorWithWrappedErrf(err, "reparsing %q", s)
		}
	}
	scale := int32(-d.Exponent)
	precision := max(int32(d.NumDigits()), scale)
	lim := types.GetLimits()
	if precision > lim.MaxDecimalPrecisionScale {
		return nil, pgerror.Newf(pgcode.NumericValueOutOfRange,
			"decimal literal %s exceeds the maximum precision %d", s, lim.MaxDecimalPrecisionScale)
	}
	return NewConstant(d, types.MakeDecimal(precision, scale, false)), nil
}

// NewStringConstant returns a CHAR literal as wide as the string. Literals
// too long for CHAR are VARCHAR.
func NewStringConstant(s string) *Constant {
	n := max(1, utf8.RuneCountInString(s))
	if n > types.MaxCharLength {
		return NewConstant(DString(s), types.MakeVarChar(int32(n), false))
	}
	return NewConstant(DString(s), types.MakeChar(int32(n), false))
}

// NewBoolConstant returns a BOOLEAN literal.
func NewBoolConstant(b bool) *Constant {
	return NewConstant(DBool(b), types.Bool)
}

// NewDateConstant returns a DATE literal.
func NewDateConstant(t time.Time) *Constant {
	return NewConstant(MakeDDate(t), types.Date)
}

// NewTimeConstant returns a TIME literal.
func NewTimeConstant(t time.Time) *Constant {
	return NewConstant(MakeDTime(t), types.Time)
}

// NewTimestampConstant returns a TIMESTAMP literal.
func NewTimestampConstant(t time.Time) *Constant {
	return NewConstant(MakeDTimestamp(t), types.Timestamp)
}

// asConstant returns the expression as a constant, if it is one.
func asConstant(e TypedExpr) (*Constant, bool) {
	c, ok := e.(*Constant)
	return c, ok
}

// retypeNull gives an untyped NULL operand the type its context requires.
// Other expressions are returned unchanged.
func retypeNull(e TypedExpr, typ *types.T) TypedExpr {
	if c, ok := asConstant(e); ok && c.IsNull() && c.typ.Family() == types.UnknownFamily {
		return NewTypedNull(typ)
	}
	return e
}
