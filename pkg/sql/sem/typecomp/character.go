// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import (
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// charTypeCompiler handles CHAR and VARCHAR.
type charTypeCompiler struct {
	baseCompiler
}

var _ TypeCompiler = charTypeCompiler{}

func (c charTypeCompiler) AccessorName() (string, error) { return "GetString", nil }

func (c charTypeCompiler) NullAccessorName() (string, error) {
	if c.fam == types.VarCharFamily {
		return "GetNullVarchar", nil
	}
	return "GetNullChar", nil
}

func (c charTypeCompiler) DataValueMethodName() string {
	if c.fam == types.VarCharFamily {
		return "GetVarcharDataValue"
	}
	return "GetCharDataValue"
}

func (charTypeCompiler) InterfaceName() string { return StringDataValue }

func (charTypeCompiler) CastToTextWidth(t *types.T) int32 { return t.MaxWidth() }

// Convertible implements the TypeCompiler interface. Strings are parsed
// into any other family.
func (charTypeCompiler) Convertible(other types.Family, _ bool) bool {
	return true
}

func (charTypeCompiler) Compatible(other types.Family) bool {
	return other.IsCharacter() || other.IsDateTime() || other == types.UnknownFamily
}

func (charTypeCompiler) Storable(other types.Family) bool {
	return other.IsCharacter() || other.IsDateTime() || other == types.BoolFamily ||
		other == types.UnknownFamily
}

func (c charTypeCompiler) GenerateDataValue(b *codegen.Builder, _ *types.T) {
	generateDataValue(b, c.DataValueMethodName(), c.InterfaceName())
}

func (c charTypeCompiler) GenerateNull(b *codegen.Builder) error {
	return generateNull(b, c)
}
