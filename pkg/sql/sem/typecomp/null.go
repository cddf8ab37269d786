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

// nullTypeCompiler handles the type of an untyped NULL. Such a NULL takes
// the type of its context during binding, so it never reaches code
// generation on its own.
type nullTypeCompiler struct {
	baseCompiler
}

var _ TypeCompiler = nullTypeCompiler{}

func (nullTypeCompiler) NullAccessorName() (string, error) {
	return "", errors.AssertionFailedf("untyped NULL has no null accessor")
}

func (nullTypeCompiler) DataValueMethodName() string { return "GetDataValue" }

func (nullTypeCompiler) InterfaceName() string { return codegen.DescriptorInterface }

func (nullTypeCompiler) CastToTextWidth(_ *types.T) int32 { return 1 }

func (nullTypeCompiler) Convertible(types.Family, bool) bool { return true }

func (nullTypeCompiler) Compatible(types.Family) bool { return true }

func (nullTypeCompiler) Storable(types.Family) bool { return true }

func (nullTypeCompiler) GenerateDataValue(b *codegen.Builder, _ *types.T) {
	generateDataValue(b, "GetDataValue", codegen.DescriptorInterface)
}

func (c nullTypeCompiler) GenerateNull(b *codegen.Builder) error {
	return generateNull(b, c)
}
