// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/log"
)

// Bind implements the Expr interface. Constants are immutable and already
// typed.
func (expr *Constant) Bind(_ context.Context, _ *SemaContext) (TypedExpr, error) {
	if expr.typ == nil {
		return nil, errors.AssertionFailedf("constant %s has no type", expr.Value)
	}
	return expr, nil
}

// Bind implements the Expr interface.
func (expr *ColumnItem) Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error) {
	if semaCtx.Columns == nil {
		return nil, pgerror.Newf(pgcode.UndefinedColumn,
			"column %q does not exist", expr.Name.String())
	}
	col, err := semaCtx.Columns.ResolveColumn(ctx, expr.Name)
	if err != nil {
		return nil, err
	}
	if col.Type == nil {
		return nil, errors.AssertionFailedf("column %q resolved without a type", expr.Name.String())
	}
	if semaCtx.Privileges != nil {
		semaCtx.Privileges.AddRequiredPrivilege(Privilege{Kind: SelectPrivilege, Column: expr.Name})
	}
	bound := *expr
	bound.ordinal = col.Ordinal
	bound.typ = col.Type
	return &bound, nil
}

// Bind implements the Expr interface. Unary plus is removed; minus and
// ABS of a constant are folded.
func (expr *UnaryExpr) Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error) {
	operand, err := expr.Expr.Bind(ctx, semaCtx)
	if err != nil {
		return nil, err
	}
	typ := operand.ResolvedType()
	if typ.Family() == types.UnknownFamily {
		return nil, pgerror.Newf(pgcode.AmbiguousNullOperand,
			"the unary '%s' operator cannot be applied to an untyped NULL", expr.Operator)
	}
	if !typ.IsNumeric() {
		return nil, pgerror.Newf(pgcode.UnaryOperatorNotAllowed,
			"the unary '%s' operator is not allowed on the '%s' type", expr.Operator, typ.Family())
	}

	if expr.Operator == UnaryPlus {
		return operand, nil
	}

	if c, ok := asConstant(operand); ok && semaCtx.foldingEnabled() {
		if c.IsNull() {
			return NewTypedNull(typ), nil
		}
		d, err := semaCtx.Factory.UnaryArithmetic(ctx, expr.Operator, c.Value, typ)
		if err != nil {
			return nil, err
		}
		log.VEventf(ctx, 3, "folded %s to %s", expr, d)
		return NewConstant(d, typ), nil
	}

	bound := *expr
	bound.Expr = operand
	bound.typ = typ
	return &bound, nil
}

// Bind implements the Expr interface. The result type is resolved by the
// type compiler of the left operand's family. An untyped NULL operand takes
// the type of the other operand.
func (expr *BinaryExpr) Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error) {
	if expr.Operator.MethodName() == "" {
		return nil, errors.AssertionFailedf("%s is not a binary arithmetic operator", expr.Operator)
	}
	left, err := expr.Left.Bind(ctx, semaCtx)
	if err != nil {
		return nil, err
	}
	right, err := expr.Right.Bind(ctx, semaCtx)
	if err != nil {
		return nil, err
	}

	leftType, rightType := left.ResolvedType(), right.ResolvedType()
	leftNull := leftType.Family() == types.UnknownFamily
	rightNull := rightType.Family() == types.UnknownFamily
	switch {
	case leftNull && rightNull:
		return nil, pgerror.Newf(pgcode.AmbiguousNullOperand,
			"both operands of the '%s' operator cannot be untyped NULLs", expr.Operator)
	case leftNull:
		leftType = rightType.WithNullability(true)
		left = retypeNull(left, leftType)
	case rightNull:
		rightType = leftType.WithNullability(true)
		right = retypeNull(right, rightType)
	}

	typ, err := typecomp.ForType(leftType).ResolveArithmetic(leftType, rightType, expr.Operator)
	if err != nil {
		return nil, err
	}

	if semaCtx.foldingEnabled() {
		lc, lok := asConstant(left)
		rc, rok := asConstant(right)
		if lok && rok {
			if lc.IsNull() || rc.IsNull() {
				return NewTypedNull(typ), nil
			}
			d, err := semaCtx.Factory.BinaryArithmetic(ctx, expr.Operator, lc.Value, rc.Value, typ)
			if err != nil {
				return nil, err
			}
			log.VEventf(ctx, 3, "folded %s to %s", expr, d)
			return NewConstant(d, typ), nil
		}
	}

	bound := *expr
	bound.Left, bound.Right = left, right
	bound.typ = typ
	return &bound, nil
}

// Bind implements the Expr interface.
//
// DATE accepts a day number of any numeric type but REAL, character
// strings, DATE, TIMESTAMP and NULL operands. TIMESTAMP accepts character strings,
// TIMESTAMP and NULL operands. A constant operand is converted right away;
// an operand that already has the target type is returned as is.
func (expr *DateTimestampFuncExpr) Bind(
	ctx context.Context, semaCtx *SemaContext,
) (TypedExpr, error) {
	operand, err := expr.Expr.Bind(ctx, semaCtx)
	if err != nil {
		return nil, err
	}
	operandType := operand.ResolvedType()
	target := expr.Func.family()

	identity := false
	switch fam := operandType.Family(); {
	case fam.IsNumeric() && fam != types.RealFamily:
		if expr.Func == TimestampFunc {
			return nil, invalidOperandTypeError(expr.Func, operandType)
		}
	case fam.IsCharacter(), fam == types.UnknownFamily:
	case fam == types.DateFamily:
		if expr.Func == TimestampFunc {
			return nil, invalidOperandTypeError(expr.Func, operandType)
		}
		identity = true
	case fam == types.TimestampFamily:
		identity = expr.Func == TimestampFunc
	default:
		return nil, invalidOperandTypeError(expr.Func, operandType)
	}

	// The conversion is always typed nullable, whatever the operand.
	typ := types.MakeScalar(target, true)

	if c, ok := asConstant(operand); ok && semaCtx.foldingEnabled() {
		if c.IsNull() {
			return NewTypedNull(typ), nil
		}
		var d Datum
		if expr.Func == DateFunc {
			d, err = semaCtx.Factory.GetDate(ctx, c.Value)
		} else {
			d, err = semaCtx.Factory.GetTimestamp(ctx, c.Value)
		}
		if err != nil {
			return nil, err
		}
		log.VEventf(ctx, 3, "folded %s to %s", expr, d)
		return NewConstant(d, types.MakeScalar(target, false)), nil
	}

	if identity {
		return operand, nil
	}

	bound := *expr
	bound.Expr = operand
	bound.typ = typ
	return &bound, nil
}

func invalidOperandTypeError(f DateTimestampFunc, typ *types.T) error {
	return pgerror.Newf(pgcode.InvalidOperandType,
		"the '%s' function is not allowed on the '%s' type", f, typ.Family())
}

// Bind implements the Expr interface. A cast to the operand's own type is
// removed; a cast of a constant is folded.
func (expr *CastExpr) Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error) {
	if expr.Type == nil {
		return nil, errors.AssertionFailedf("cast of %s has no target type", expr.Expr)
	}
	operand, err := expr.Expr.Bind(ctx, semaCtx)
	if err != nil {
		return nil, err
	}
	src := operand.ResolvedType()
	tc := typecomp.ForType(src)

	target := expr.Type
	if expr.InferWidth {
		switch target.Family() {
		case types.CharFamily:
			target = types.MakeChar(tc.CastToTextWidth(src), true)
		case types.VarCharFamily:
			target = types.MakeVarChar(tc.CastToTextWidth(src), true)
		}
	}
	if !tc.Convertible(target.Family(), false /* forDataTypeFunction */) {
		return nil, pgerror.Newf(pgcode.InvalidCast,
			"cannot convert types '%s' to '%s'", src.Family(), target.Family())
	}
	typ := target.WithNullability(src.Nullable())

	if src.Equivalent(typ) {
		return operand, nil
	}

	if c, ok := asConstant(operand); ok && semaCtx.foldingEnabled() {
		if c.IsNull() {
			return NewTypedNull(typ), nil
		}
		d, err := semaCtx.Factory.Cast(ctx, c.Value, typ)
		if err != nil {
			return nil, err
		}
		log.VEventf(ctx, 3, "folded %s to %s", expr, d)
		return NewConstant(d, typ), nil
	}

	bound := *expr
	bound.Expr = operand
	bound.Type = target
	bound.InferWidth = false
	bound.typ = typ
	return &bound, nil
}

// Bind implements the Expr interface. The result type merges the operand
// types and is nullable only when every operand is. Null constants are
// dropped; when a single operand remains, or the first remaining operand
// is a non-null constant, it replaces the COALESCE.
func (expr *CoalesceExpr) Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error) {
	if len(expr.Exprs) < 2 {
		return nil, pgerror.Newf(pgcode.WrongNumberOfArguments,
			"the number of arguments for function 'COALESCE' is incorrect")
	}
	operands := make([]TypedExpr, len(expr.Exprs))
	var typ *types.T
	allNullable := true
	for i, e := range expr.Exprs {
		operand, err := e.Bind(ctx, semaCtx)
		if err != nil {
			return nil, err
		}
		operands[i] = operand
		t := operand.ResolvedType()
		if t.Family() == types.UnknownFamily {
			continue
		}
		allNullable = allNullable && t.Nullable()
		if typ == nil {
			typ = t
			continue
		}
		if typ, err = typecomp.MergeTypes(typ, t); err != nil {
			return nil, err
		}
	}
	if typ == nil {
		return nil, pgerror.Newf(pgcode.AllNullArguments,
			"all arguments of 'COALESCE' are untyped NULLs")
	}
	typ = typ.WithNullability(allNullable)

	exprs := make(Exprs, 0, len(operands))
	for _, operand := range operands {
		operand = retypeNull(operand, typ)
		if c, ok := asConstant(operand); ok && semaCtx.foldingEnabled() {
			if c.IsNull() {
				continue
			}
			if len(exprs) == 0 && c.ResolvedType().Equivalent(typ) {
				return c, nil
			}
		}
		exprs = append(exprs, operand)
	}
	switch len(exprs) {
	case 0:
		return NewTypedNull(typ), nil
	case 1:
		if only := exprs[0].(TypedExpr); only.ResolvedType().Equivalent(typ) {
			return only, nil
		}
		// The operand must be widened to the result type, which COALESCE
		// does at run time. Keep a null to pair it with.
		exprs = append(exprs, NewTypedNull(typ))
	}

	bound := *expr
	bound.Exprs = exprs
	bound.typ = typ
	return &bound, nil
}
