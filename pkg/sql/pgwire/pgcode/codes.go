// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgcode

// Code is a wrapper around a string to ensure that pgcodes are used in
// different pgerror functions by avoiding accidental string input.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pgcode string.
func (c Code) String() string {
	return c.code
}

// SafeValue implements the redact.SafeValue interface.
func (c Code) SafeValue() {}

// Class 22 - Data Exception
var (
	DataException             = MakeCode("22000")
	StringDataRightTruncation = MakeCode("22001")
	NumericValueOutOfRange    = MakeCode("22003")
	InvalidDatetimeFormat     = MakeCode("22007")
	DatetimeFieldOverflow     = MakeCode("22008")
	DivisionByZero            = MakeCode("22012")
	InvalidCharacterValue     = MakeCode("22018")
)

// Class 42 - Syntax Error or Access Rule Violation
//
// The binding codes use the 42Xnn/42Ynn space so they stay stable for
// clients that match on the values the statement compiler has always
// reported.
var (
	Syntax                 = MakeCode("42601")
	WrongNumberOfArguments = MakeCode("42605")
	AllNullArguments       = MakeCode("42610")
	DatatypeMismatch       = MakeCode("42821")
	UndefinedObject        = MakeCode("42704")
	UndefinedColumn        = MakeCode("42703")
	AmbiguousColumn        = MakeCode("42702")
	// InvalidOperandType is reported when a function is applied to an operand
	// whose type is outside the function's accepted set.
	InvalidOperandType = MakeCode("42X25")
	// UnsupportedOperator is reported when an operator does not accept the
	// combination of operand types.
	UnsupportedOperator = MakeCode("42Y95")
	// UnaryOperatorNotAllowed is reported when a unary arithmetic operator is
	// applied to a non-numeric operand.
	UnaryOperatorNotAllowed = MakeCode("42X37")
	// AmbiguousNullOperand is reported when neither operand of a binary
	// operator carries a type.
	AmbiguousNullOperand = MakeCode("42X35")
	// InvalidCast is reported when a CAST target is not reachable from the
	// operand type.
	InvalidCast = MakeCode("42846")
)

// Class XX - Internal Error
var (
	Internal = MakeCode("XX000")
)

// Uncategorized is used for errors that flow out to a client
// when there's no code known yet.
var Uncategorized = MakeCode("XXUUU")
