// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// numericTypeCompiler handles TINYINT, SMALLINT, INTEGER, BIGINT, REAL,
// DOUBLE and DECIMAL.
type numericTypeCompiler struct {
	baseCompiler
}

var _ TypeCompiler = numericTypeCompiler{}

func (c numericTypeCompiler) PrimitiveKind() (PrimitiveKind, bool) {
	switch c.fam {
	case types.TinyIntFamily:
		return PrimitiveInt8, true
	case types.SmallIntFamily:
		return PrimitiveInt16, true
	case types.IntFamily:
		return PrimitiveInt32, true
	case types.BigIntFamily:
		return PrimitiveInt64, true
	case types.RealFamily:
		return PrimitiveFloat32, true
	case types.DoubleFamily:
		return PrimitiveFloat64, true
	case types.DecimalFamily:
		return PrimitiveNone, false
	}
	panic(errors.AssertionFailedf("unexpected numeric family %s", c.fam))
}

func (c numericTypeCompiler) AccessorName() (string, error) {
	switch c.fam {
	case types.TinyIntFamily:
		return "GetByte", nil
	case types.SmallIntFamily:
		return "GetShort", nil
	case types.IntFamily:
		return "GetInt", nil
	case types.BigIntFamily:
		return "GetLong", nil
	case types.RealFamily:
		return "GetFloat", nil
	case types.DoubleFamily:
		return "GetDouble", nil
	case types.DecimalFamily:
		return "GetDecimal", nil
	}
	return "", errors.AssertionFailedf("unexpected numeric family %s", c.fam)
}

func (c numericTypeCompiler) NullAccessorName() (string, error) {
	switch c.fam {
	case types.TinyIntFamily:
		return "GetNullByte", nil
	case types.SmallIntFamily:
		return "GetNullShort", nil
	case types.IntFamily:
		return "GetNullInteger", nil
	case types.BigIntFamily:
		return "GetNullLong", nil
	case types.RealFamily:
		return "GetNullFloat", nil
	case types.DoubleFamily:
		return "GetNullDouble", nil
	case types.DecimalFamily:
		return "GetNullDecimal", nil
	}
	return "", errors.AssertionFailedf("unexpected numeric family %s", c.fam)
}

func (c numericTypeCompiler) DataValueMethodName() string {
	if c.fam == types.DecimalFamily {
		return "GetDecimalDataValue"
	}
	return "GetDataValue"
}

func (numericTypeCompiler) InterfaceName() string { return NumberDataValue }

func (c numericTypeCompiler) CastToTextWidth(t *types.T) int32 {
	switch c.fam {
	case types.TinyIntFamily:
		return 4
	case types.SmallIntFamily:
		return 6
	case types.IntFamily:
		return 11
	case types.BigIntFamily:
		return 20
	case types.RealFamily:
		return 25
	case types.DoubleFamily:
		return 54
	case types.DecimalFamily:
		// Sign and decimal point.
		return saturate(int64(t.Precision()) + 2)
	}
	panic(errors.AssertionFailedf("unexpected numeric family %s", c.fam))
}

// Convertible implements the TypeCompiler interface. Numbers convert to
// other numbers and to BOOLEAN. Exact numbers convert to CHAR; floating
// point numbers only do so through the CHAR data type function.
func (c numericTypeCompiler) Convertible(other types.Family, forDataTypeFunction bool) bool {
	switch {
	case other == types.UnknownFamily, other.IsNumeric(), other == types.BoolFamily:
		return true
	case other == types.CharFamily:
		floating := c.fam == types.RealFamily || c.fam == types.DoubleFamily
		return !floating || forDataTypeFunction
	}
	return false
}

func (numericTypeCompiler) Compatible(other types.Family) bool {
	return other.IsNumeric() || other == types.UnknownFamily
}

func (numericTypeCompiler) Storable(other types.Family) bool {
	return other.IsNumeric() || other == types.UnknownFamily
}

// GenerateDataValue implements the TypeCompiler interface. Decimal
// literals are widened to Number so the factory overload that accepts any
// numeric class is selected.
func (c numericTypeCompiler) GenerateDataValue(b *codegen.Builder, _ *types.T) {
	if c.fam == types.DecimalFamily {
		b.UpCast("Number")
	}
	generateDataValue(b, c.DataValueMethodName(), c.InterfaceName())
}

func (c numericTypeCompiler) GenerateNull(b *codegen.Builder) error {
	return generateNull(b, c)
}

// ResolveArithmetic implements the TypeCompiler interface.
//
// The right operand must be numeric, and MOD requires two exact integers.
// The operand whose family has the higher precedence determines the result
// family, with the left operand winning ties. When that family is DECIMAL,
// the precision and scale are derived from both operands; otherwise they
// are the left operand's, and the width is that of the result family.
func (c numericTypeCompiler) ResolveArithmetic(
	left, right *types.T, op Operator,
) (*types.T, error) {
	if left.Family() != c.fam {
		return nil, errors.AssertionFailedf(
			"%s compiler asked to resolve a %s left operand", c.fam, left.Family())
	}
	if !right.IsNumeric() {
		return nil, unsupportedOperatorError(op, left, right)
	}
	if op == Mod && !(left.IsExactInteger() && right.IsExactInteger()) {
		return nil, unsupportedOperatorError(op, left, right)
	}

	higher := left
	if right.Family().Precedence() > left.Family().Precedence() {
		higher = right
	}

	var precision, scale, maxWidth int32
	if higher.IsDecimal() {
		scale = decimalScale(op, left, right)
		precision = decimalPrecision(op, left, right, scale)
		maxWidth = types.DecimalMaxWidth(precision, scale)
	} else {
		precision, scale, maxWidth = left.Precision(), left.Scale(), higher.MaxWidth()
	}

	nullable := left.Nullable() || right.Nullable()
	return types.MakeResolved(higher.Family(), precision, scale, nullable, maxWidth), nil
}

// decimalScale computes the scale of a DECIMAL result. The intermediate
// arithmetic is done in 64 bits so that no operand combination can wrap.
func decimalScale(op Operator, left, right *types.T) int32 {
	lim := types.GetLimits()
	ls, rs := int64(left.Scale()), int64(right.Scale())
	lp := int64(left.Precision())

	var val int64
	switch op {
	case Times:
		val = ls + rs
	case Divide:
		val = max(int64(lim.MaxDecimalPrecisionScale)-lp+ls-rs, 0)
	case Avg:
		val = max(ls, rs, int64(lim.MinDecimalDivideScale))
	default:
		// NoOp, Plus, Minus, Sum and Mod.
		val = max(ls, rs)
	}
	return int32(min(val, int64(lim.MaxDecimalPrecisionScale)))
}

// decimalPrecision computes the precision of a DECIMAL result given its
// already clamped scale. Merging two types without an operation does not
// reserve the extra carry digit that addition does.
func decimalPrecision(op Operator, left, right *types.T, scale int32) int32 {
	lim := types.GetLimits()
	lp, ls := int64(left.Precision()), int64(left.Scale())
	rp, rs := int64(right.Precision()), int64(right.Scale())
	s := int64(scale)

	var val int64
	switch op {
	case NoOp:
		val = s + max(lp-ls, rp-rs)
	case Times:
		val = lp + rp
	case Sum:
		val = lp - ls + rp - rs + s
	case Divide:
		val = min(int64(lim.MaxDecimalPrecisionScale), s+lp-ls+rp)
	default:
		// Plus, Minus, Avg and Mod.
		val = min(s+max(lp-ls, rp-rs)+1, int64(lim.DB2MaxDecimalPrecisionScale))
	}
	return int32(min(val, math.MaxInt32, int64(lim.MaxDecimalPrecisionScale)))
}

func saturate(v int64) int32 {
	if v > types.MaxWidthSentinel {
		return types.MaxWidthSentinel
	}
	return int32(v)
}
