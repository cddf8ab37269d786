// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// dateTimeTypeCompiler handles DATE, TIME and TIMESTAMP.
type dateTimeTypeCompiler struct {
	baseCompiler
}

var _ TypeCompiler = dateTimeTypeCompiler{}

func (c dateTimeTypeCompiler) NullAccessorName() (string, error) {
	switch c.fam {
	case types.DateFamily:
		return "GetNullDate", nil
	case types.TimeFamily:
		return "GetNullTime", nil
	case types.TimestampFamily:
		return "GetNullTimestamp", nil
	}
	return "", errors.AssertionFailedf("unexpected datetime family %s", c.fam)
}

func (c dateTimeTypeCompiler) DataValueMethodName() string {
	switch c.fam {
	case types.DateFamily:
		return "GetDateDataValue"
	case types.TimeFamily:
		return "GetTimeDataValue"
	default:
		return "GetTimestampDataValue"
	}
}

func (dateTimeTypeCompiler) InterfaceName() string { return DateTimeDataValue }

func (c dateTimeTypeCompiler) CastToTextWidth(_ *types.T) int32 {
	switch c.fam {
	case types.DateFamily:
		return types.DateMaxWidth
	case types.TimeFamily:
		return types.TimeMaxWidth
	case types.TimestampFamily:
		return types.TimestampMaxWidth
	}
	panic(errors.AssertionFailedf("unexpected datetime family %s", c.fam))
}

// Convertible implements the TypeCompiler interface. A TIMESTAMP converts
// to either of its parts and both parts convert to TIMESTAMP.
func (c dateTimeTypeCompiler) Convertible(other types.Family, _ bool) bool {
	switch {
	case other == c.fam, other == types.UnknownFamily, other.IsCharacter():
		return true
	case c.fam == types.TimestampFamily:
		return other == types.DateFamily || other == types.TimeFamily
	default:
		return other == types.TimestampFamily
	}
}

func (c dateTimeTypeCompiler) Compatible(other types.Family) bool {
	return other == c.fam || other.IsCharacter() || other == types.UnknownFamily
}

func (c dateTimeTypeCompiler) Storable(other types.Family) bool {
	return other == c.fam || other.IsCharacter() || other == types.UnknownFamily
}

func (c dateTimeTypeCompiler) GenerateDataValue(b *codegen.Builder, _ *types.T) {
	generateDataValue(b, c.DataValueMethodName(), c.InterfaceName())
}

func (c dateTimeTypeCompiler) GenerateNull(b *codegen.Builder) error {
	return generateNull(b, c)
}
