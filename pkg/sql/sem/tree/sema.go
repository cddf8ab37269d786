// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"sort"

	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/log"
)

// SemaContext defines the context in which to bind an expression tree. A
// SemaContext belongs to a single compilation and is not safe for
// concurrent use.
type SemaContext struct {
	// Columns resolves column references.
	Columns ColumnResolver

	// Privileges records the privileges the expression requires. It may be
	// unset.
	Privileges PrivilegeCollector

	// Factory evaluates constant operands at bind time. Folding is skipped
	// when it is unset.
	Factory ValueFactory

	// DisableFolding turns constant folding off even when a Factory is set.
	DisableFolding bool
}

// ResolvedColumn is the result of resolving a column reference.
type ResolvedColumn struct {
	Ordinal int
	Type    *types.T
}

// ColumnResolver resolves column names to row positions.
type ColumnResolver interface {
	ResolveColumn(ctx context.Context, name ColumnName) (ResolvedColumn, error)
}

// PrivilegeKind is the kind of access a bound expression needs.
type PrivilegeKind int8

const (
	// SelectPrivilege is required to read a column.
	SelectPrivilege PrivilegeKind = iota
)

func (k PrivilegeKind) String() string {
	if k == SelectPrivilege {
		return "SELECT"
	}
	return "UNKNOWN"
}

// Privilege is a single required privilege.
type Privilege struct {
	Kind   PrivilegeKind
	Column ColumnName
}

func (p Privilege) String() string {
	return p.Kind.String() + " ON " + p.Column.String()
}

// PrivilegeCollector accumulates the privileges a statement requires.
type PrivilegeCollector interface {
	AddRequiredPrivilege(p Privilege)
}

// RequiredPrivileges is a PrivilegeCollector that records each privilege
// once.
type RequiredPrivileges struct {
	set map[Privilege]struct{}
}

var _ PrivilegeCollector = &RequiredPrivileges{}

// AddRequiredPrivilege implements the PrivilegeCollector interface.
func (r *RequiredPrivileges) AddRequiredPrivilege(p Privilege) {
	if r.set == nil {
		r.set = make(map[Privilege]struct{})
	}
	r.set[p] = struct{}{}
}

// List returns the recorded privileges in a stable order.
func (r *RequiredPrivileges) List() []Privilege {
	out := make([]Privilege, 0, len(r.set))
	for p := range r.set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Column.String() < out[j].Column.String()
	})
	return out
}

// ValueFactory constructs runtime values. Binding uses it to evaluate
// operations whose operands are all constants.
type ValueFactory interface {
	// GetDate converts d to a DATE.
	GetDate(ctx context.Context, d Datum) (Datum, error)
	// GetTimestamp converts d to a TIMESTAMP.
	GetTimestamp(ctx context.Context, d Datum) (Datum, error)
	// Cast converts d to the target type.
	Cast(ctx context.Context, d Datum, target *types.T) (Datum, error)
	// BinaryArithmetic evaluates left op right producing a value of type
	// result.
	BinaryArithmetic(
		ctx context.Context, op typecomp.Operator, left, right Datum, result *types.T,
	) (Datum, error)
	// UnaryArithmetic evaluates op d producing a value of type result.
	UnaryArithmetic(ctx context.Context, op UnaryOperator, d Datum, result *types.T) (Datum, error)
}

func (sc *SemaContext) foldingEnabled() bool {
	return sc != nil && sc.Factory != nil && !sc.DisableFolding
}

// Bind binds expr in the given context. The input tree is left untouched.
func Bind(ctx context.Context, expr Expr, semaCtx *SemaContext) (TypedExpr, error) {
	if semaCtx == nil {
		semaCtx = &SemaContext{}
	}
	typed, err := expr.Bind(ctx, semaCtx)
	if err != nil {
		log.VEventf(ctx, 2, "binding %s failed: %v", expr, err)
		return nil, err
	}
	if log.V(2) {
		log.Infof(ctx, "bound %s to %s of type %s", expr, typed, typed.ResolvedType())
	}
	return typed, nil
}
