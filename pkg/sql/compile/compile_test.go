// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package compile_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/sqlsema/sqlsema/pkg/sql/compile"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/eval"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/stretchr/testify/require"
)

func runCompile(t *testing.T, d *datadriven.TestData) string {
	doc, err := compile.ParseDocument(strings.NewReader(d.Input))
	if err != nil {
		return fmt.Sprintf("error %s: %s", pgerror.GetPGCode(err), err)
	}
	catalog, err := doc.Catalog()
	if err != nil {
		return fmt.Sprintf("error %s: %s", pgerror.GetPGCode(err), err)
	}
	expr, err := doc.Expr.ToExpr()
	if err != nil {
		return fmt.Sprintf("error %s: %s", pgerror.GetPGCode(err), err)
	}

	privs := &tree.RequiredPrivileges{}
	semaCtx := &tree.SemaContext{
		Columns:        catalog,
		Privileges:     privs,
		Factory:        eval.NewDataValueFactory(),
		DisableFolding: d.HasArg("no-fold"),
	}
	res, err := compile.Compile(context.Background(), expr, semaCtx,
		compile.Options{Unbox: d.HasArg("unbox")})
	if err != nil {
		return fmt.Sprintf("error %s: %s", pgerror.GetPGCode(err), err)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "bound: %s\n", res.Bound)
	for _, p := range privs.List() {
		fmt.Fprintf(&buf, "requires: %s\n", p)
	}
	buf.WriteString(res.Program.String())
	return buf.String()
}

func TestCompileDataDriven(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	datadriven.RunTest(t, "testdata/compile", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "compile":
			return runCompile(t, d)
		default:
			return fmt.Sprintf("unknown command %s", d.Cmd)
		}
	})
}

func TestCatalog(t *testing.T) {
	defer leaktest.AfterTest(t)()

	ctx := context.Background()
	c := &compile.Catalog{}
	require.NoError(t, c.AddColumn("orders", "id", types.BigInt))
	require.NoError(t, c.AddColumn("items", "id", types.Int))
	require.NoError(t, c.AddColumn("items", "price", types.MakeDecimal(7, 2, false)))

	err := c.AddColumn("items", "price", types.Int)
	require.Equal(t, pgcode.Syntax, pgerror.GetPGCode(err))

	col, err := c.ResolveColumn(ctx, tree.ColumnName{Table: "items", Column: "id"})
	require.NoError(t, err)
	require.Equal(t, 1, col.Ordinal)
	require.Equal(t, "INTEGER", col.Type.SQLString())

	col, err = c.ResolveColumn(ctx, tree.ColumnName{Column: "price"})
	require.NoError(t, err)
	require.Equal(t, 2, col.Ordinal)

	_, err = c.ResolveColumn(ctx, tree.ColumnName{Column: "id"})
	require.Equal(t, pgcode.AmbiguousColumn, pgerror.GetPGCode(err))

	_, err = c.ResolveColumn(ctx, tree.ColumnName{Table: "orders", Column: "price"})
	require.Equal(t, pgcode.UndefinedColumn, pgerror.GetPGCode(err))
}

func TestCompileWithoutSemaContext(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	// Without a factory nothing is folded; without columns any reference
	// fails.
	expr := tree.NewUnaryExpr(tree.UnaryMinus, tree.NewIntConstant(4))
	res, err := compile.Compile(context.Background(), expr, nil, compile.Options{})
	require.NoError(t, err)
	require.Equal(t, "-4", res.Bound.String())
	require.IsType(t, &tree.UnaryExpr{}, res.Bound)

	_, err = compile.Compile(context.Background(), tree.NewColumnItem("", "x"), nil, compile.Options{})
	require.Equal(t, pgcode.UndefinedColumn, pgerror.GetPGCode(err))
}

func TestParseDocumentRejectsUnknownFields(t *testing.T) {
	defer leaktest.AfterTest(t)()

	_, err := compile.ParseDocument(strings.NewReader("expr: {column: a, colour: red}\n"))
	require.Error(t, err)
	require.Equal(t, pgcode.Syntax, pgerror.GetPGCode(err))

	_, err = compile.ParseDocument(strings.NewReader("columns: []\n"))
	require.Error(t, err)
}

func TestParseDocumentNullLiteral(t *testing.T) {
	defer leaktest.AfterTest(t)()

	testCases := []struct {
		input string
		typ   string
	}{
		{"expr: {is_null: true}\n", "NULL"},
		{"expr: {is_null: true, type: \"DECIMAL(4,1)\"}\n", "DECIMAL(4,1)"},
	}
	for _, tc := range testCases {
		doc, err := compile.ParseDocument(strings.NewReader(tc.input))
		require.NoError(t, err, tc.input)
		require.True(t, doc.Expr.Null, tc.input)

		expr, err := doc.Expr.ToExpr()
		require.NoError(t, err)
		c, ok := expr.(*tree.Constant)
		require.True(t, ok, "%s parsed to %T", tc.input, expr)
		require.True(t, c.IsNull())
		require.Equal(t, tc.typ, c.ResolvedType().SQLString())
	}

	// A bare null key is not a NULL literal.
	doc, err := compile.ParseDocument(strings.NewReader("expr: {null: true}\n"))
	if err == nil {
		_, err = doc.Expr.ToExpr()
	}
	require.Equal(t, pgcode.Syntax, pgerror.GetPGCode(err))
}
