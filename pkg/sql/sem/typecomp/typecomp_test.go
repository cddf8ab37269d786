// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/stretchr/testify/require"
)

var operators = map[string]typecomp.Operator{
	"+":     typecomp.Plus,
	"-":     typecomp.Minus,
	"*":     typecomp.Times,
	"/":     typecomp.Divide,
	"mod":   typecomp.Mod,
	"sum":   typecomp.Sum,
	"avg":   typecomp.Avg,
	"merge": typecomp.NoOp,
}

func resolveLine(t *testing.T, line string) string {
	parts := strings.Split(line, "|")
	if len(parts) != 3 {
		t.Fatalf("expected 'left | op | right', got %q", line)
	}
	left, err := types.Parse(parts[0])
	require.NoError(t, err)
	right, err := types.Parse(parts[2])
	require.NoError(t, err)
	opName := strings.TrimSpace(parts[1])
	op, ok := operators[opName]
	if !ok {
		t.Fatalf("unknown operator %q", opName)
	}

	var res *types.T
	if op == typecomp.NoOp {
		res, err = typecomp.MergeTypes(left, right)
	} else {
		res, err = typecomp.ForType(left).ResolveArithmetic(left, right, op)
	}
	if err != nil {
		return fmt.Sprintf("error %s: %s", pgerror.GetPGCode(err), err)
	}
	return fmt.Sprintf("%s width=%d", res.SQLString(), res.MaxWidth())
}

func TestResolveDataDriven(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	defer types.ResetLimits()

	datadriven.RunTest(t, "testdata/resolve", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "resolve":
			var out []string
			for _, line := range strings.Split(d.Input, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				out = append(out, resolveLine(t, line))
			}
			return strings.Join(out, "\n")

		case "limits":
			lim := types.GetLimits()
			var v int
			if d.HasArg("max") {
				d.ScanArgs(t, "max", &v)
				lim.MaxDecimalPrecisionScale = int32(v)
			}
			if d.HasArg("db2") {
				d.ScanArgs(t, "db2", &v)
				lim.DB2MaxDecimalPrecisionScale = int32(v)
			}
			if d.HasArg("divide") {
				d.ScanArgs(t, "divide", &v)
				lim.MinDecimalDivideScale = int32(v)
			}
			if err := types.SetLimits(lim); err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			return "ok"

		case "reset-limits":
			types.ResetLimits()
			return "ok"

		default:
			return fmt.Sprintf("unknown command %s", d.Cmd)
		}
	})
}

func TestRegistryCoversEveryFamily(t *testing.T) {
	defer leaktest.AfterTest(t)()

	for fam := types.Family(0); fam < types.NumFamilies; fam++ {
		tc := typecomp.Get(fam)
		require.NotNil(t, tc, "%s", fam)
		require.Equal(t, fam, tc.Family())
	}
	require.Panics(t, func() { typecomp.Get(types.NumFamilies) })
}

func TestResolveArithmeticIsPure(t *testing.T) {
	defer leaktest.AfterTest(t)()

	left := types.MakeDecimal(5, 2, false)
	right := types.MakeDecimal(3, 1, true)
	leftCopy, rightCopy := *left, *right

	first, err := typecomp.ForType(left).ResolveArithmetic(left, right, typecomp.Times)
	require.NoError(t, err)
	second, err := typecomp.ForType(left).ResolveArithmetic(left, right, typecomp.Times)
	require.NoError(t, err)

	require.NotSame(t, first, second)
	require.True(t, first.Identical(second))
	if diff := pretty.Diff(leftCopy, *left); len(diff) > 0 {
		t.Fatalf("left operand modified: %v", diff)
	}
	if diff := pretty.Diff(rightCopy, *right); len(diff) > 0 {
		t.Fatalf("right operand modified: %v", diff)
	}
}

func TestNonDecimalResultParameters(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testCases := []struct {
		left, right      string
		op               typecomp.Operator
		typ              string
		precision, scale int32
		width            int32
	}{
		{"INTEGER", "BIGINT", typecomp.Plus, "BIGINT", 10, 0, types.BigIntMaxWidth},
		{"BIGINT", "INTEGER", typecomp.Plus, "BIGINT", 19, 0, types.BigIntMaxWidth},
		{"DECIMAL(5,2)", "DOUBLE", typecomp.Plus, "DOUBLE", 5, 2, types.DoubleMaxWidth},
		{"DECIMAL(5,2)", "REAL", typecomp.Divide, "REAL", 5, 2, types.RealMaxWidth},
		{"SMALLINT", "TINYINT", typecomp.Mod, "SMALLINT", 5, 0, types.SmallIntMaxWidth},
		{"REAL", "DOUBLE", typecomp.Times, "DOUBLE", 23, 0, types.DoubleMaxWidth},
	}
	for _, tc := range testCases {
		left, err := types.Parse(tc.left)
		require.NoError(t, err)
		right, err := types.Parse(tc.right)
		require.NoError(t, err)
		res, err := typecomp.ForType(left).ResolveArithmetic(left, right, tc.op)
		require.NoError(t, err)
		name := fmt.Sprintf("%s %s %s", tc.left, tc.op, tc.right)
		require.Equal(t, tc.typ, res.SQLString(), name)
		require.Equal(t, tc.precision, res.Precision(), name)
		require.Equal(t, tc.scale, res.Scale(), name)
		require.Equal(t, tc.width, res.MaxWidth(), name)
	}
}

func TestResolveArithmeticWrongCompiler(t *testing.T) {
	defer leaktest.AfterTest(t)()

	_, err := typecomp.Get(types.DoubleFamily).ResolveArithmetic(types.Int, types.Int, typecomp.Plus)
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))
}

func TestCastToTextWidth(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testCases := []struct {
		typ   *types.T
		width int32
	}{
		{types.MakeScalar(types.TinyIntFamily, true), 4},
		{types.MakeScalar(types.SmallIntFamily, true), 6},
		{types.Int, 11},
		{types.BigInt, 20},
		{types.Real, 25},
		{types.Double, 54},
		{types.MakeDecimal(5, 2, true), 7},
		{types.MakeDecimal(31, 0, true), 33},
		{types.Bool, 5},
		{types.Date, 10},
		{types.Time, 8},
		{types.Timestamp, 29},
		{types.MakeChar(12, true), 12},
		{types.MakeVarChar(300, true), 300},
		{types.Unknown, 1},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.width, typecomp.ForType(tc.typ).CastToTextWidth(tc.typ), tc.typ.SQLString())
	}
}

func TestConvertible(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testCases := []struct {
		from, to            types.Family
		forDataTypeFunction bool
		expected            bool
	}{
		{types.IntFamily, types.DecimalFamily, false, true},
		{types.IntFamily, types.CharFamily, false, true},
		{types.DoubleFamily, types.CharFamily, false, false},
		{types.DoubleFamily, types.CharFamily, true, true},
		{types.IntFamily, types.DateFamily, false, false},
		{types.CharFamily, types.DateFamily, false, true},
		{types.CharFamily, types.BoolFamily, false, true},
		{types.TimestampFamily, types.DateFamily, false, true},
		{types.TimestampFamily, types.TimeFamily, false, true},
		{types.DateFamily, types.TimestampFamily, false, true},
		{types.DateFamily, types.TimeFamily, false, false},
		{types.DateFamily, types.IntFamily, false, false},
		{types.BoolFamily, types.CharFamily, false, true},
		{types.BoolFamily, types.IntFamily, false, false},
		{types.UnknownFamily, types.TimeFamily, false, true},
	}
	for _, tc := range testCases {
		got := typecomp.Get(tc.from).Convertible(tc.to, tc.forDataTypeFunction)
		require.Equal(t, tc.expected, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCompatibleAndStorable(t *testing.T) {
	defer leaktest.AfterTest(t)()

	char := typecomp.Get(types.CharFamily)
	require.True(t, char.Compatible(types.DateFamily))
	require.False(t, char.Compatible(types.BoolFamily))
	require.True(t, char.Storable(types.BoolFamily))

	num := typecomp.Get(types.IntFamily)
	require.True(t, num.Compatible(types.DecimalFamily))
	require.False(t, num.Compatible(types.CharFamily))
	require.True(t, typecomp.Get(types.UnknownFamily).Compatible(types.TimeFamily))
}

type literal string

func (l literal) String() string { return string(l) }

func TestGenerateNullAndDataValue(t *testing.T) {
	defer leaktest.AfterTest(t)()

	emit := func(fn func(b *codegen.Builder) error) []string {
		b := codegen.NewBuilder()
		b.PushFactory()
		b.LoadConstant(literal("x"))
		require.NoError(t, fn(b))
		prog, err := b.Finish(types.Int)
		require.NoError(t, err)
		var ops []string
		for _, op := range prog.Ops[2:] {
			ops = append(ops, op.String())
		}
		return ops
	}

	dec := types.MakeDecimal(5, 2, true)
	require.Equal(t, []string{
		"upcast Number",
		"invoke-interface DataValueFactory.GetDecimalDataValue/1 -> NumberDataValue",
	}, emit(func(b *codegen.Builder) error {
		typecomp.ForType(dec).GenerateDataValue(b, dec)
		return b.Err()
	}))
	require.Equal(t, []string{
		"invoke-interface DataValueFactory.GetVarcharDataValue/1 -> StringDataValue",
	}, emit(func(b *codegen.Builder) error {
		typecomp.ForType(types.VarChar).GenerateDataValue(b, types.VarChar)
		return b.Err()
	}))

	b := codegen.NewBuilder()
	b.PushFactory()
	require.NoError(t, typecomp.Get(types.TimestampFamily).GenerateNull(b))
	require.Equal(t, 1, b.Depth())
	prog, err := b.Finish(types.Timestamp)
	require.NoError(t, err)
	require.Equal(t,
		"invoke-interface DataValueFactory.GetNullTimestamp/0 -> DateTimeDataValue",
		prog.Ops[1].String())

	require.Error(t, typecomp.Get(types.UnknownFamily).GenerateNull(codegen.NewBuilder()))
}
