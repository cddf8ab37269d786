// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import (
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

type boolTypeCompiler struct {
	baseCompiler
}

var _ TypeCompiler = boolTypeCompiler{}

func (boolTypeCompiler) PrimitiveKind() (PrimitiveKind, bool) { return PrimitiveBool, true }

func (boolTypeCompiler) AccessorName() (string, error) { return "GetBoolean", nil }

func (boolTypeCompiler) NullAccessorName() (string, error) { return "GetNullBoolean", nil }

func (boolTypeCompiler) DataValueMethodName() string { return "GetDataValue" }

func (boolTypeCompiler) InterfaceName() string { return BooleanDataValue }

// CastToTextWidth implements the TypeCompiler interface. FALSE is the
// longer of the two renderings.
func (boolTypeCompiler) CastToTextWidth(_ *types.T) int32 { return 5 }

func (boolTypeCompiler) Convertible(other types.Family, _ bool) bool {
	return other == types.BoolFamily || other.IsCharacter() || other == types.UnknownFamily
}

func (boolTypeCompiler) Storable(other types.Family) bool {
	return other == types.BoolFamily || other.IsCharacter() || other == types.UnknownFamily
}

func (c boolTypeCompiler) GenerateDataValue(b *codegen.Builder, _ *types.T) {
	generateDataValue(b, c.DataValueMethodName(), c.InterfaceName())
}

func (c boolTypeCompiler) GenerateNull(b *codegen.Builder) error {
	return generateNull(b, c)
}
