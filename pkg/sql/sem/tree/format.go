// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"
)

// NodeFormatter is implemented by nodes that can be pretty-printed.
type NodeFormatter interface {
	// Format performs pretty-printing towards a bytes buffer.
	Format(ctx *FmtCtx)
}

// FmtCtx is suitable for passing to Format() methods.
type FmtCtx struct {
	strings.Builder
}

// NewFmtCtx creates a FmtCtx.
func NewFmtCtx() *FmtCtx {
	return &FmtCtx{}
}

// FormatNode recurses into a node for pretty-printing.
func (ctx *FmtCtx) FormatNode(n NodeFormatter) {
	n.Format(ctx)
}

// Printf calls fmt.Fprintf on the underlying buffer.
func (ctx *FmtCtx) Printf(f string, args ...interface{}) {
	fmt.Fprintf(&ctx.Builder, f, args...)
}

// AsString pretty prints a node to a string.
func AsString(n NodeFormatter) string {
	ctx := NewFmtCtx()
	ctx.FormatNode(n)
	return ctx.String()
}

// Format implements the NodeFormatter interface.
func (expr *Constant) Format(ctx *FmtCtx) {
	ctx.WriteString(expr.Value.String())
}

// Format implements the NodeFormatter interface.
func (expr *ColumnItem) Format(ctx *FmtCtx) {
	ctx.WriteString(expr.Name.String())
}

// Format implements the NodeFormatter interface.
func (expr *UnaryExpr) Format(ctx *FmtCtx) {
	if expr.Operator == UnaryAbs {
		ctx.WriteString("ABS(")
		ctx.FormatNode(expr.Expr)
		ctx.WriteByte(')')
		return
	}
	ctx.WriteString(expr.Operator.String())
	ctx.FormatNode(expr.Expr)
}

// Format implements the NodeFormatter interface.
func (expr *BinaryExpr) Format(ctx *FmtCtx) {
	ctx.WriteByte('(')
	ctx.FormatNode(expr.Left)
	ctx.Printf(" %s ", expr.Operator)
	ctx.FormatNode(expr.Right)
	ctx.WriteByte(')')
}

// Format implements the NodeFormatter interface.
func (expr *DateTimestampFuncExpr) Format(ctx *FmtCtx) {
	ctx.WriteString(expr.Func.String())
	ctx.WriteByte('(')
	ctx.FormatNode(expr.Expr)
	ctx.WriteByte(')')
}

// Format implements the NodeFormatter interface.
func (expr *CastExpr) Format(ctx *FmtCtx) {
	ctx.WriteString("CAST(")
	ctx.FormatNode(expr.Expr)
	ctx.WriteString(" AS ")
	if expr.InferWidth {
		ctx.WriteString(expr.Type.Family().Name())
	} else {
		ctx.WriteString(expr.Type.WithNullability(true).SQLString())
	}
	ctx.WriteByte(')')
}

// Format implements the NodeFormatter interface.
func (expr *CoalesceExpr) Format(ctx *FmtCtx) {
	ctx.WriteString("COALESCE(")
	ctx.FormatNode(&expr.Exprs)
	ctx.WriteByte(')')
}

// Format implements the NodeFormatter interface.
func (node *Exprs) Format(ctx *FmtCtx) {
	for i, n := range *node {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.FormatNode(n)
	}
}
