// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
)

// genDecimal generates DECIMAL descriptors within the default limits.
func genDecimal() gopter.Gen {
	return gopter.CombineGens(
		gen.Int32Range(1, 31),
		gen.Int32Range(0, 31),
		gen.Bool(),
	).Map(func(v []interface{}) *types.T {
		prec, scale := v[0].(int32), v[1].(int32)
		return types.MakeDecimal(prec, min(scale, prec), v[2].(bool))
	})
}

func TestDecimalResultBounds(t *testing.T) {
	defer leaktest.AfterTest(t)()
	types.ResetLimits()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	ops := []typecomp.Operator{
		typecomp.Plus, typecomp.Minus, typecomp.Times, typecomp.Divide,
		typecomp.Sum, typecomp.Avg, typecomp.NoOp,
	}
	lim := types.GetLimits()

	properties.Property("scale and precision stay within limits", prop.ForAll(
		func(left, right *types.T, opIdx int) bool {
			res, err := typecomp.ForType(left).ResolveArithmetic(left, right, ops[opIdx])
			if err != nil {
				return false
			}
			return res.IsDecimal() &&
				res.Scale() >= 0 &&
				res.Scale() <= res.Precision() &&
				res.Precision() <= lim.MaxDecimalPrecisionScale &&
				res.MaxWidth() == types.DecimalMaxWidth(res.Precision(), res.Scale()) &&
				res.Nullable() == (left.Nullable() || right.Nullable())
		},
		genDecimal(), genDecimal(), gen.IntRange(0, len(ops)-1),
	))

	properties.Property("integer operands keep the decimal scale", prop.ForAll(
		func(left *types.T, fam types.Family) bool {
			right := types.MakeScalar(fam, false)
			res, err := typecomp.ForType(left).ResolveArithmetic(left, right, typecomp.Plus)
			if err != nil {
				return false
			}
			return res.IsDecimal() && res.Scale() == left.Scale()
		},
		genDecimal(),
		gen.OneConstOf(types.TinyIntFamily, types.SmallIntFamily, types.IntFamily, types.BigIntFamily),
	))

	properties.TestingRun(t)
}
