// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package typecomp holds the per-family type compilers. A type compiler
// answers the compile-time questions about its family: which conversions
// are legal, what type an arithmetic operator produces, how wide the value
// renders as text, and which runtime routines construct and read values of
// the family. Compilers are stateless singletons looked up with Get.
package typecomp

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/codegen"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// PrimitiveKind is the native kind a value of a family unboxes to.
type PrimitiveKind int8

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveInt8
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveFloat32
	PrimitiveFloat64
	PrimitiveBool
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveInt8:
		return "int8"
	case PrimitiveInt16:
		return "int16"
	case PrimitiveInt32:
		return "int32"
	case PrimitiveInt64:
		return "int64"
	case PrimitiveFloat32:
		return "float32"
	case PrimitiveFloat64:
		return "float64"
	case PrimitiveBool:
		return "bool"
	default:
		return ""
	}
}

// Runtime interfaces implemented by values of each family group.
const (
	NumberDataValue   = "NumberDataValue"
	StringDataValue   = "StringDataValue"
	DateTimeDataValue = "DateTimeDataValue"
	BooleanDataValue  = "BooleanDataValue"
)

// TypeCompiler is the compile-time behavior of one type family.
type TypeCompiler interface {
	// Family is the family this compiler handles.
	Family() types.Family

	// PrimitiveKind returns the native kind values of the family unbox to.
	// The second return is false when the family has no native form.
	PrimitiveKind() (PrimitiveKind, bool)

	// AccessorName is the runtime method that unboxes a value of the
	// family to its native kind.
	AccessorName() (string, error)

	// NullAccessorName is the factory method producing a typed null of the
	// family.
	NullAccessorName() (string, error)

	// DataValueMethodName is the factory method that boxes a native value
	// into a runtime value of the family.
	DataValueMethodName() string

	// InterfaceName is the runtime interface implemented by values of the
	// family.
	InterfaceName() string

	// CastToTextWidth is the number of characters needed to render any
	// value of t as text.
	CastToTextWidth(t *types.T) int32

	// ResolveArithmetic computes the result type of left op right, where
	// left belongs to this compiler's family.
	ResolveArithmetic(left, right *types.T, op Operator) (*types.T, error)

	// Convertible reports whether values of this family can be converted to
	// the other family. forDataTypeFunction is set when the conversion is
	// requested through a data type function such as CHAR(x) rather than a
	// CAST.
	Convertible(other types.Family, forDataTypeFunction bool) bool

	// Compatible reports whether values of the two families can be compared
	// or combined without an explicit conversion.
	Compatible(other types.Family) bool

	// Storable reports whether a value of the other family can be stored
	// in a column of this family.
	Storable(other types.Family) bool

	// GenerateDataValue emits the ops that box the native value on top of
	// the stack. The factory must be below it on the stack.
	GenerateDataValue(b *codegen.Builder, t *types.T)

	// GenerateNull emits the ops that produce a typed null of the family.
	// The factory must be on top of the stack.
	GenerateNull(b *codegen.Builder) error
}

var registry [types.NumFamilies]TypeCompiler

func init() {
	for fam := types.Family(0); fam < types.NumFamilies; fam++ {
		switch {
		case fam == types.UnknownFamily:
			registry[fam] = nullTypeCompiler{baseCompiler{fam}}
		case fam.IsNumeric():
			registry[fam] = numericTypeCompiler{baseCompiler{fam}}
		case fam.IsCharacter():
			registry[fam] = charTypeCompiler{baseCompiler{fam}}
		case fam.IsDateTime():
			registry[fam] = dateTimeTypeCompiler{baseCompiler{fam}}
		case fam == types.BoolFamily:
			registry[fam] = boolTypeCompiler{baseCompiler{fam}}
		}
		if registry[fam] == nil {
			panic(errors.AssertionFailedf("no type compiler for family %s", fam))
		}
	}
}

// Get returns the compiler for the family. Every family has one; asking for
// a value outside the family enumeration is a programming error.
func Get(fam types.Family) TypeCompiler {
	if fam < 0 || fam >= types.NumFamilies {
		panic(errors.AssertionFailedf("unknown family %d", int32(fam)))
	}
	return registry[fam]
}

// ForType returns the compiler for t's family.
func ForType(t *types.T) TypeCompiler {
	return Get(t.Family())
}

// baseCompiler carries the defaults shared by all families. The family
// specific compilers embed it and override what differs.
type baseCompiler struct {
	fam types.Family
}

func (c baseCompiler) Family() types.Family { return c.fam }

func (baseCompiler) PrimitiveKind() (PrimitiveKind, bool) { return PrimitiveNone, false }

func (c baseCompiler) AccessorName() (string, error) {
	return "", errors.AssertionFailedf("family %s has no native accessor", c.fam)
}

func (c baseCompiler) ResolveArithmetic(left, right *types.T, op Operator) (*types.T, error) {
	return nil, unsupportedOperatorError(op, left, right)
}

func (c baseCompiler) Compatible(other types.Family) bool {
	return other == c.fam || other == types.UnknownFamily
}

// unsupportedOperatorError is the user-facing error for an operator applied
// to operand types it does not accept.
func unsupportedOperatorError(op Operator, left, right *types.T) error {
	return pgerror.Newf(pgcode.UnsupportedOperator,
		"the '%s' operator with a left operand type of '%s' and a right operand type of '%s' is not supported",
		op, left.Family(), right.Family())
}

// generateDataValue emits the factory call that boxes the value on top of
// the stack into a runtime value implementing iface.
func generateDataValue(b *codegen.Builder, method, iface string) {
	b.CallMethod(codegen.InvokeInterface, codegen.FactoryInterface, method, 1, iface)
}

func generateNull(b *codegen.Builder, tc TypeCompiler) error {
	method, err := tc.NullAccessorName()
	if err != nil {
		return err
	}
	b.CallMethod(codegen.InvokeInterface, codegen.FactoryInterface, method, 0, tc.InterfaceName())
	return nil
}
