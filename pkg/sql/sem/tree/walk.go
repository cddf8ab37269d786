// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// Visitor defines methods that are called for nodes during an expression
// walk.
type Visitor interface {
	// VisitPre is called for each node before recursing into that subtree.
	// Upon return, if recurse is false, the visit will not recurse into the
	// subtree (and VisitPost will not be called for this node).
	//
	// The returned Expr replaces the visited expression and can be used for
	// rewriting expressions.
	VisitPre(expr Expr) (recurse bool, newExpr Expr)

	// VisitPost is called for each node after recursing into the subtree.
	// The returned Expr replaces the visited expression and can be used for
	// rewriting expressions.
	VisitPost(expr Expr) (newNode Expr)
}

// WalkExpr traverses the nodes in an expression.
//
// NOTE: Walk can modify the expression tree only by returning new nodes;
// nodes that have a modified child are copied.
func WalkExpr(v Visitor, expr Expr) (newExpr Expr, changed bool) {
	recurse, newExpr := v.VisitPre(expr)

	if recurse {
		newExpr = newExpr.Walk(v)
		newExpr = v.VisitPost(newExpr)
	}

	// All Expr implementations are pointers, so == compares identity.
	return newExpr, expr != newExpr
}

// Walk implements the Expr interface.
func (expr *Constant) Walk(_ Visitor) Expr { return expr }

// Walk implements the Expr interface.
func (expr *ColumnItem) Walk(_ Visitor) Expr { return expr }

// Walk implements the Expr interface.
func (expr *UnaryExpr) Walk(v Visitor) Expr {
	e, changed := WalkExpr(v, expr.Expr)
	if changed {
		exprCopy := *expr
		exprCopy.Expr = e
		return &exprCopy
	}
	return expr
}

// Walk implements the Expr interface.
func (expr *BinaryExpr) Walk(v Visitor) Expr {
	left, changedL := WalkExpr(v, expr.Left)
	right, changedR := WalkExpr(v, expr.Right)
	if changedL || changedR {
		exprCopy := *expr
		exprCopy.Left = left
		exprCopy.Right = right
		return &exprCopy
	}
	return expr
}

// Walk implements the Expr interface.
func (expr *DateTimestampFuncExpr) Walk(v Visitor) Expr {
	e, changed := WalkExpr(v, expr.Expr)
	if changed {
		exprCopy := *expr
		exprCopy.Expr = e
		return &exprCopy
	}
	return expr
}

// Walk implements the Expr interface.
func (expr *CastExpr) Walk(v Visitor) Expr {
	e, changed := WalkExpr(v, expr.Expr)
	if changed {
		exprCopy := *expr
		exprCopy.Expr = e
		return &exprCopy
	}
	return expr
}

// Walk implements the Expr interface.
func (expr *CoalesceExpr) Walk(v Visitor) Expr {
	exprs, changed := walkExprSlice(v, expr.Exprs)
	if changed {
		exprCopy := *expr
		exprCopy.Exprs = exprs
		return &exprCopy
	}
	return expr
}

func walkExprSlice(v Visitor, slice []Expr) ([]Expr, bool) {
	copied := false
	for i := range slice {
		e, changed := WalkExpr(v, slice[i])
		if changed {
			if !copied {
				slice = append([]Expr(nil), slice...)
				copied = true
			}
			slice[i] = e
		}
	}
	return slice, copied
}

// ContainsVisitor reports whether any node of a tree satisfies a predicate.
type ContainsVisitor struct {
	Pred  func(Expr) bool
	Found bool
}

var _ Visitor = &ContainsVisitor{}

// VisitPre implements the Visitor interface.
func (v *ContainsVisitor) VisitPre(expr Expr) (recurse bool, newExpr Expr) {
	if v.Found {
		return false, expr
	}
	if v.Pred(expr) {
		v.Found = true
		return false, expr
	}
	return true, expr
}

// VisitPost implements the Visitor interface.
func (*ContainsVisitor) VisitPost(expr Expr) Expr { return expr }

// ContainsExpr returns true if pred holds for expr or any of its
// descendants.
func ContainsExpr(expr Expr, pred func(Expr) bool) bool {
	v := ContainsVisitor{Pred: pred}
	WalkExpr(&v, expr)
	return v.Found
}
