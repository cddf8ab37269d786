// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// Expr represents an expression.
type Expr interface {
	fmt.Stringer
	NodeFormatter
	// Walk recursively walks all children using WalkExpr. If any children are
	// changed, it returns a copy of this node updated to point to the new
	// children. Otherwise the receiver is returned.
	Walk(Visitor) Expr
	// Bind resolves the types of the expression and its children, folds
	// constant operands and removes identity operations. It never modifies
	// the receiver: the result is a new node, a child of the receiver, or a
	// constant.
	Bind(ctx context.Context, semaCtx *SemaContext) (TypedExpr, error)
}

// TypedExpr represents a well-typed expression.
type TypedExpr interface {
	Expr
	// ResolvedType provides the type of the expression. It is only valid on
	// an expression returned by Bind.
	ResolvedType() *types.T
	// Emit appends the ops that evaluate the expression, leaving exactly one
	// value on the builder's stack.
	Emit(b *codegen.Builder) error
}

var _ TypedExpr = &Constant{}
var _ TypedExpr = &ColumnItem{}
var _ TypedExpr = &UnaryExpr{}
var _ TypedExpr = &BinaryExpr{}
var _ TypedExpr = &DateTimestampFuncExpr{}
var _ TypedExpr = &CastExpr{}
var _ TypedExpr = &CoalesceExpr{}

type typeAnnotation struct {
	typ *types.T
}

func (ta typeAnnotation) ResolvedType() *types.T {
	ta.assertTyped()
	return ta.typ
}

func (ta typeAnnotation) assertTyped() {
	if ta.typ == nil {
		panic(errors.AssertionFailedf(
			"ReturnType called on TypedExpr with empty typeAnnotation. " +
				"Was the underlying Expr bound before asserting a type of TypedExpr?"))
	}
}

func (ta typeAnnotation) checkTyped(node Expr) error {
	if ta.typ == nil {
		return errors.AssertionFailedf("emitting unbound expression %T", node)
	}
	return nil
}

// Constant is a literal or folded value together with its type. A
// Constant holding DNull is a typed null.
type Constant struct {
	typeAnnotation
	Value Datum
}

// IsNull returns true if the constant is a typed or untyped null.
func (expr *Constant) IsNull() bool { return expr.Value == DNull }

// ColumnName names a column of the row being evaluated.
type ColumnName struct {
	Table  string
	Column string
}

func (n ColumnName) String() string {
	if n.Table == "" {
		return n.Column
	}
	return n.Table + "." + n.Column
}

// ColumnItem is a reference to a column. Binding resolves the column's
// ordinal and type.
type ColumnItem struct {
	typeAnnotation
	Name    ColumnName
	ordinal int
}

// NewColumnItem returns an unbound reference to the named column.
func NewColumnItem(table, column string) *ColumnItem {
	return &ColumnItem{Name: ColumnName{Table: table, Column: column}}
}

// Ordinal returns the position of the column in the row. Only valid after
// binding.
func (expr *ColumnItem) Ordinal() int { return expr.ordinal }

// UnaryOperator represents a unary arithmetic operator.
type UnaryOperator int8

const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	UnaryAbs
)

func (o UnaryOperator) String() string {
	switch o {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryAbs:
		return "ABS"
	}
	return fmt.Sprintf("UnaryOperator(%d)", int8(o))
}

// SafeValue implements the redact.SafeValue interface.
func (UnaryOperator) SafeValue() {}

// UnaryExpr represents a unary arithmetic expression.
type UnaryExpr struct {
	typeAnnotation
	Operator UnaryOperator
	Expr     Expr
}

// NewUnaryExpr returns an unbound unary expression.
func NewUnaryExpr(op UnaryOperator, expr Expr) *UnaryExpr {
	return &UnaryExpr{Operator: op, Expr: expr}
}

// BinaryExpr represents a binary arithmetic expression. Operator is one of
// typecomp.Plus, Minus, Times, Divide or Mod.
type BinaryExpr struct {
	typeAnnotation
	Operator    typecomp.Operator
	Left, Right Expr
}

// NewBinaryExpr returns an unbound binary expression.
func NewBinaryExpr(op typecomp.Operator, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Operator: op, Left: left, Right: right}
}

// DateTimestampFunc selects the target of a DateTimestampFuncExpr.
type DateTimestampFunc int8

const (
	// DateFunc is the DATE(x) function.
	DateFunc DateTimestampFunc = iota
	// TimestampFunc is the TIMESTAMP(x) function.
	TimestampFunc
)

func (f DateTimestampFunc) String() string {
	if f == TimestampFunc {
		return "TIMESTAMP"
	}
	return "DATE"
}

// SafeValue implements the redact.SafeValue interface.
func (DateTimestampFunc) SafeValue() {}

// methodName is the factory method converting a value to the target.
func (f DateTimestampFunc) methodName() string {
	if f == TimestampFunc {
		return "GetTimestamp"
	}
	return "GetDate"
}

func (f DateTimestampFunc) family() types.Family {
	if f == TimestampFunc {
		return types.TimestampFamily
	}
	return types.DateFamily
}

// DateTimestampFuncExpr converts its operand to a DATE or a TIMESTAMP.
type DateTimestampFuncExpr struct {
	typeAnnotation
	Func DateTimestampFunc
	Expr Expr
}

// NewDateTimestampFuncExpr returns an unbound DATE(x) or TIMESTAMP(x).
func NewDateTimestampFuncExpr(f DateTimestampFunc, expr Expr) *DateTimestampFuncExpr {
	return &DateTimestampFuncExpr{Func: f, Expr: expr}
}

// CastExpr represents a CAST(expr AS type) expression.
type CastExpr struct {
	typeAnnotation
	Expr Expr
	Type *types.T
	// InferWidth is set when a character target was written without a
	// length. The length is then the text width of the operand's type.
	InferWidth bool
}

// NewCastExpr returns an unbound cast.
func NewCastExpr(expr Expr, typ *types.T) *CastExpr {
	return &CastExpr{Expr: expr, Type: typ}
}

// CoalesceExpr represents a COALESCE(a, b, ...) expression.
type CoalesceExpr struct {
	typeAnnotation
	Exprs Exprs
}

// NewCoalesceExpr returns an unbound COALESCE.
func NewCoalesceExpr(exprs ...Expr) *CoalesceExpr {
	return &CoalesceExpr{Exprs: exprs}
}

// Exprs represents a list of value expressions.
type Exprs []Expr

func (expr *Constant) String() string              { return AsString(expr) }
func (expr *ColumnItem) String() string            { return AsString(expr) }
func (expr *UnaryExpr) String() string             { return AsString(expr) }
func (expr *BinaryExpr) String() string            { return AsString(expr) }
func (expr *DateTimestampFuncExpr) String() string { return AsString(expr) }
func (expr *CastExpr) String() string              { return AsString(expr) }
func (expr *CoalesceExpr) String() string          { return AsString(expr) }
