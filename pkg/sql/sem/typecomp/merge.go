// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import (
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// MergeTypes returns the type able to hold values of both left and right,
// as needed for the branches of a conditional expression. An untyped NULL
// adopts the other side's type. The result is nullable if either side is.
func MergeTypes(left, right *types.T) (*types.T, error) {
	nullable := left.Nullable() || right.Nullable()
	switch {
	case left.Family() == types.UnknownFamily:
		return right.WithNullability(true), nil
	case right.Family() == types.UnknownFamily:
		return left.WithNullability(true), nil
	case left.IsNumeric() && right.IsNumeric():
		return ForType(left).ResolveArithmetic(left, right, NoOp)
	case left.IsCharacter() && right.IsCharacter():
		fam := left.Family()
		if right.Family().Precedence() > fam.Precedence() {
			fam = right.Family()
		}
		width := max(left.MaxWidth(), right.MaxWidth())
		if fam == types.VarCharFamily {
			return types.MakeVarChar(width, nullable), nil
		}
		return types.MakeChar(width, nullable), nil
	case left.Family() == right.Family():
		return left.WithNullability(nullable), nil
	}
	return nil, pgerror.Newf(pgcode.DatatypeMismatch,
		"types '%s' and '%s' are not type compatible", left.Family(), right.Family())
}
