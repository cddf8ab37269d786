// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package compile drives a scalar expression from its unbound tree to an
// evaluation program: bind, emit, and optionally unbox the result to its
// native kind.
package compile

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/log"
)

// Options controls compilation.
type Options struct {
	// Unbox appends a call to the result type's accessor so the program
	// yields a native value. Types without a native form are left boxed.
	Unbox bool
}

// Result is the outcome of a successful compilation.
type Result struct {
	// Bound is the bound, folded tree.
	Bound tree.TypedExpr
	// Program evaluates Bound.
	Program *codegen.Program
}

// Compile binds expr and emits its evaluation program.
func Compile(
	ctx context.Context, expr tree.Expr, semaCtx *tree.SemaContext, opts Options,
) (*Result, error) {
	ctx = logtags.AddTag(ctx, "compile", nil)
	typed, err := tree.Bind(ctx, expr, semaCtx)
	if err != nil {
		return nil, err
	}
	typ := typed.ResolvedType()
	if typ.Family() == types.UnknownFamily {
		return nil, pgerror.Newf(pgcode.AmbiguousNullOperand,
			"the type of the expression %s cannot be determined", expr)
	}

	b := codegen.NewBuilder()
	if err := typed.Emit(b); err != nil {
		return nil, errors.Wrapf(err, "emitting %s", typed)
	}

	var primitive string
	if opts.Unbox {
		tc := typecomp.ForType(typ)
		if kind, ok := tc.PrimitiveKind(); ok {
			accessor, err := tc.AccessorName()
			if err != nil {
				return nil, err
			}
			b.CallMethod(codegen.InvokeInterface, tc.InterfaceName(), accessor, 0, kind.String())
			primitive = kind.String()
		} else {
			log.VEventf(ctx, 2, "%s has no native form, result stays boxed", typ)
		}
	}

	prog, err := b.Finish(typ)
	if err != nil {
		return nil, errors.Wrapf(err, "finishing %s", typed)
	}
	prog.Primitive = primitive
	log.VEventf(ctx, 1, "compiled %s into %d ops of type %s", expr, len(prog.Ops), typ)
	return &Result{Bound: typed, Program: prog}, nil
}
