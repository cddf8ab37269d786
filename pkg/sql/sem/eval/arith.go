// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"context"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// decimalCtx has room for the exact product or quotient of any two
// decimals within the precision limit before the result is cut down to
// its resolved scale.
var decimalCtx = *apd.BaseContext.WithPrecision(200)

// ErrDivByZero is reported when dividing by zero.
var ErrDivByZero = pgerror.New(pgcode.DivisionByZero, "attempt to divide by zero")

func outOfRange(fam types.Family) error {
	return pgerror.Newf(pgcode.NumericValueOutOfRange,
		"the resulting value is outside the range for the data type %s", fam)
}

// intRange returns the bounds of an exact integer family.
func intRange(fam types.Family) (lo, hi int64) {
	switch fam {
	case types.TinyIntFamily:
		return math.MinInt8, math.MaxInt8
	case types.SmallIntFamily:
		return math.MinInt16, math.MaxInt16
	case types.IntFamily:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func checkIntRange(v int64, fam types.Family) (tree.Datum, error) {
	lo, hi := intRange(fam)
	if v < lo || v > hi {
		return nil, outOfRange(fam)
	}
	return tree.DInt(v), nil
}

// BinaryArithmetic implements the tree.ValueFactory interface. The
// operands are converted to the result family before the operation.
func (f *DataValueFactory) BinaryArithmetic(
	_ context.Context, op typecomp.Operator, left, right tree.Datum, result *types.T,
) (tree.Datum, error) {
	switch fam := result.Family(); {
	case fam.IsExactInteger():
		a, aok := left.(tree.DInt)
		b, bok := right.(tree.DInt)
		if !aok || !bok {
			return nil, errors.AssertionFailedf("%s result from operands %T and %T", fam, left, right)
		}
		v, err := intArithmetic(op, int64(a), int64(b))
		if err != nil {
			if errors.Is(err, errIntOverflow) {
				return nil, outOfRange(fam)
			}
			return nil, err
		}
		return checkIntRange(v, fam)

	case fam == types.RealFamily || fam == types.DoubleFamily:
		a, err := toFloat(left)
		if err != nil {
			return nil, err
		}
		b, err := toFloat(right)
		if err != nil {
			return nil, err
		}
		var v float64
		switch op {
		case typecomp.Plus:
			v = a + b
		case typecomp.Minus:
			v = a - b
		case typecomp.Times:
			v = a * b
		case typecomp.Divide:
			if b == 0 {
				return nil, ErrDivByZero
			}
			v = a / b
		default:
			return nil, errors.AssertionFailedf("unexpected operator %s for %s", op, fam)
		}
		return checkFloatRange(v, fam)

	case fam == types.DecimalFamily:
		a, err := toDecimal(left)
		if err != nil {
			return nil, err
		}
		b, err := toDecimal(right)
		if err != nil {
			return nil, err
		}
		res := &tree.DDecimal{}
		switch op {
		case typecomp.Plus:
			_, err = decimalCtx.Add(&res.Decimal, a, b)
		case typecomp.Minus:
			_, err = decimalCtx.Sub(&res.Decimal, a, b)
		case typecomp.Times:
			_, err = decimalCtx.Mul(&res.Decimal, a, b)
		case typecomp.Divide:
			if b.IsZero() {
				return nil, ErrDivByZero
			}
			_, err = decimalCtx.Quo(&res.Decimal, a, b)
		default:
			return nil, errors.AssertionFailedf("unexpected operator %s for %s", op, fam)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", op)
		}
		return fitDecimal(res, result)
	}
	return nil, errors.AssertionFailedf("unexpected arithmetic result type %s", result)
}

var errIntOverflow = errors.New("integer out of range")

func intArithmetic(op typecomp.Operator, a, b int64) (int64, error) {
	switch op {
	case typecomp.Plus:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, errIntOverflow
		}
		return a + b, nil
	case typecomp.Minus:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, errIntOverflow
		}
		return a - b, nil
	case typecomp.Times:
		if a == 0 || b == 0 {
			return 0, nil
		}
		c := a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
			return 0, errIntOverflow
		}
		return c, nil
	case typecomp.Divide:
		if b == 0 {
			return 0, ErrDivByZero
		}
		if a == math.MinInt64 && b == -1 {
			return 0, errIntOverflow
		}
		return a / b, nil
	case typecomp.Mod:
		if b == 0 {
			return 0, ErrDivByZero
		}
		if b == -1 {
			return 0, nil
		}
		return a % b, nil
	}
	return 0, errors.AssertionFailedf("unexpected integer operator %s", op)
}

// UnaryArithmetic implements the tree.ValueFactory interface.
func (f *DataValueFactory) UnaryArithmetic(
	_ context.Context, op tree.UnaryOperator, d tree.Datum, result *types.T,
) (tree.Datum, error) {
	if op != tree.UnaryMinus && op != tree.UnaryAbs {
		return nil, errors.AssertionFailedf("unexpected unary operator %s", op)
	}
	switch t := d.(type) {
	case tree.DInt:
		v := int64(t)
		if op == tree.UnaryMinus || v < 0 {
			if v == math.MinInt64 {
				return nil, outOfRange(result.Family())
			}
			v = -v
		}
		return checkIntRange(v, result.Family())
	case tree.DFloat:
		v := float64(t)
		if op == tree.UnaryMinus {
			v = -v
		} else {
			v = math.Abs(v)
		}
		return tree.DFloat(v), nil
	case *tree.DDecimal:
		res := &tree.DDecimal{}
		if op == tree.UnaryMinus {
			res.Neg(&t.Decimal)
		} else {
			res.Abs(&t.Decimal)
		}
		return res, nil
	}
	return nil, errors.AssertionFailedf("unexpected %T operand for unary %s", d, op)
}

func checkFloatRange(v float64, fam types.Family) (tree.Datum, error) {
	if fam == types.RealFamily {
		if math.Abs(v) > math.MaxFloat32 {
			return nil, outOfRange(fam)
		}
		v = float64(float32(v))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, outOfRange(fam)
	}
	return tree.DFloat(v), nil
}

func toFloat(d tree.Datum) (float64, error) {
	switch t := d.(type) {
	case tree.DInt:
		return float64(t), nil
	case tree.DFloat:
		return float64(t), nil
	case *tree.DDecimal:
		return t.Float64()
	}
	return 0, errors.AssertionFailedf("cannot use %T as a floating point number", d)
}

func toDecimal(d tree.Datum) (*apd.Decimal, error) {
	switch t := d.(type) {
	case tree.DInt:
		return apd.New(int64(t), 0), nil
	case tree.DFloat:
		v := &apd.Decimal{}
		if _, err := v.SetFloat64(float64(t)); err != nil {
			return nil, pgerror.Wrapf(err, pgcode.NumericValueOutOfRange, "converting %s", t)
		}
		return v, nil
	case *tree.DDecimal:
		return &t.Decimal, nil
	}
	return nil, errors.AssertionFailedf("cannot use %T as a decimal", d)
}

// fitDecimal rounds v toward zero to the scale of typ and checks that the
// result fits its precision.
func fitDecimal(v *tree.DDecimal, typ *types.T) (tree.Datum, error) {
	c := decimalCtx
	c.Rounding = apd.RoundDown
	if _, err := c.Quantize(&v.Decimal, &v.Decimal, -typ.Scale()); err != nil {
		return nil, outOfRange(typ.Family())
	}
	if !v.IsZero() && v.NumDigits() > int64(typ.Precision()) {
		return nil, outOfRange(typ.Family())
	}
	return v, nil
}
