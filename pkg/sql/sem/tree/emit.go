// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
)

// Emit implements the TypedExpr interface. A non-null constant is boxed by
// the factory; a typed null is produced by the factory's null method.
func (expr *Constant) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	tc := typecomp.ForType(expr.typ)
	b.PushFactory()
	if expr.IsNull() {
		return tc.GenerateNull(b)
	}
	b.LoadConstant(expr.Value)
	tc.GenerateDataValue(b, expr.typ)
	return b.Err()
}

// Emit implements the TypedExpr interface.
func (expr *ColumnItem) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	b.LoadColumn(expr.ordinal, expr.Name.String())
	return b.Err()
}

// Emit implements the TypedExpr interface. The operation writes into a
// typed null of the result type.
func (expr *UnaryExpr) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	var method string
	switch expr.Operator {
	case UnaryMinus:
		method = "Minus"
	case UnaryAbs:
		method = "AbsoluteValue"
	default:
		return errors.AssertionFailedf("unexpected unary operator %s after binding", expr.Operator)
	}
	if err := emitTyped(b, expr.Expr); err != nil {
		return err
	}
	tc := typecomp.ForType(expr.typ)
	if err := emitResultHolder(b, tc); err != nil {
		return err
	}
	b.CallMethod(codegen.InvokeInterface, typecomp.NumberDataValue, method, 1, tc.InterfaceName())
	return b.Err()
}

// Emit implements the TypedExpr interface. The left operand is the
// receiver; the right operand and a typed null of the result type are the
// arguments.
func (expr *BinaryExpr) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	if err := emitTyped(b, expr.Left); err != nil {
		return err
	}
	if err := emitTyped(b, expr.Right); err != nil {
		return err
	}
	tc := typecomp.ForType(expr.typ)
	if err := emitResultHolder(b, tc); err != nil {
		return err
	}
	b.CallMethod(codegen.InvokeInterface, typecomp.NumberDataValue,
		expr.Operator.MethodName(), 2, tc.InterfaceName())
	return b.Err()
}

// Emit implements the TypedExpr interface. The factory converts the
// operand, seen as a plain DataValueDescriptor.
func (expr *DateTimestampFuncExpr) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	b.PushFactory()
	if err := emitTyped(b, expr.Expr); err != nil {
		return err
	}
	b.Cast(codegen.DescriptorInterface)
	tc := typecomp.ForType(expr.typ)
	b.CallMethod(codegen.InvokeInterface, codegen.FactoryInterface,
		expr.Func.methodName(), 1, tc.InterfaceName())
	return b.Err()
}

// Emit implements the TypedExpr interface. The operand is stored into a
// typed null of the target type.
func (expr *CastExpr) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	tc := typecomp.ForType(expr.typ)
	if err := emitResultHolder(b, tc); err != nil {
		return err
	}
	if err := emitTyped(b, expr.Expr); err != nil {
		return err
	}
	b.Cast(codegen.DescriptorInterface)
	b.CallMethod(codegen.InvokeInterface, tc.InterfaceName(), "SetValue", 1, tc.InterfaceName())
	return b.Err()
}

// Emit implements the TypedExpr interface. The first non-null argument is
// copied into a typed null of the result type.
func (expr *CoalesceExpr) Emit(b *codegen.Builder) error {
	if err := expr.checkTyped(expr); err != nil {
		return err
	}
	tc := typecomp.ForType(expr.typ)
	if err := emitResultHolder(b, tc); err != nil {
		return err
	}
	for _, e := range expr.Exprs {
		if err := emitTyped(b, e); err != nil {
			return err
		}
	}
	b.CallMethod(codegen.InvokeInterface, tc.InterfaceName(), "Coalesce",
		len(expr.Exprs), tc.InterfaceName())
	return b.Err()
}

func emitTyped(b *codegen.Builder, e Expr) error {
	typed, ok := e.(TypedExpr)
	if !ok {
		return errors.AssertionFailedf("emitting unbound expression %T", e)
	}
	return typed.Emit(b)
}

// emitResultHolder pushes a typed null that receives an operation's result.
func emitResultHolder(b *codegen.Builder, tc typecomp.TypeCompiler) error {
	b.PushFactory()
	return tc.GenerateNull(b)
}
