// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree_test

import (
	"testing"

	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
	"github.com/stretchr/testify/require"
)

// replaceColumn substitutes a constant for every reference to one column.
type replaceColumn struct {
	name string
	with tree.Expr
}

func (v replaceColumn) VisitPre(expr tree.Expr) (bool, tree.Expr) {
	if c, ok := expr.(*tree.ColumnItem); ok && c.Name.Column == v.name {
		return false, v.with
	}
	return true, expr
}

func (replaceColumn) VisitPost(expr tree.Expr) tree.Expr { return expr }

func TestWalkCopiesOnChange(t *testing.T) {
	defer leaktest.AfterTest(t)()

	untouched := tree.NewCastExpr(col("s"), types.Date)
	expr := tree.NewCoalesceExpr(
		tree.NewBinaryExpr(typecomp.Plus, col("i"), tree.NewUnaryExpr(tree.UnaryAbs, col("i"))),
		untouched,
	)
	before := expr.String()

	newExpr, changed := tree.WalkExpr(replaceColumn{name: "i", with: tree.NewIntConstant(7)}, expr)
	require.True(t, changed)
	require.Equal(t, "COALESCE((7 + ABS(7)), CAST(s AS DATE))", newExpr.String())
	require.Equal(t, before, expr.String())
	require.Same(t, untouched, newExpr.(*tree.CoalesceExpr).Exprs[1])

	same, changed := tree.WalkExpr(replaceColumn{name: "missing"}, expr)
	require.False(t, changed)
	require.Same(t, expr, same)
}

func TestContainsExpr(t *testing.T) {
	defer leaktest.AfterTest(t)()

	expr := tree.NewBinaryExpr(typecomp.Times,
		tree.NewDateTimestampFuncExpr(tree.DateFunc, col("s")), tree.NewIntConstant(2))
	isColumn := func(e tree.Expr) bool {
		_, ok := e.(*tree.ColumnItem)
		return ok
	}
	isCast := func(e tree.Expr) bool {
		_, ok := e.(*tree.CastExpr)
		return ok
	}
	require.True(t, tree.ContainsExpr(expr, isColumn))
	require.False(t, tree.ContainsExpr(expr, isCast))
}
