// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/redact"
)

// Family specifies a group of types that are compatible with one another.
// Every resolved expression type belongs to exactly one Family, and the
// family determines which type compiler handles it.
type Family int32

// The set of families is closed. Adding a family requires extending every
// table below as well as the type compiler registry, which verifies at init
// time that it covers all of them.
const (
	// UnknownFamily is the family of the untyped NULL literal.
	UnknownFamily Family = iota
	BoolFamily
	TinyIntFamily
	SmallIntFamily
	IntFamily
	BigIntFamily
	RealFamily
	DoubleFamily
	DecimalFamily
	DateFamily
	TimeFamily
	TimestampFamily
	CharFamily
	VarCharFamily

	// NumFamilies is the number of families. It must remain last.
	NumFamilies
)

// Default widths, in bytes for fixed-width families and in characters for
// the character families.
const (
	TinyIntMaxWidth   = 1
	SmallIntMaxWidth  = 2
	IntMaxWidth       = 4
	BigIntMaxWidth    = 8
	RealMaxWidth      = 4
	DoubleMaxWidth    = 8
	BoolMaxWidth      = 1
	DateMaxWidth      = 10
	TimeMaxWidth      = 8
	TimestampMaxWidth = 29

	// MaxCharLength is the longest declared CHAR.
	MaxCharLength = 254
	// MaxVarCharLength is the longest declared VARCHAR.
	MaxVarCharLength = 32672

	// DefaultDecimalPrecision and DefaultDecimalScale apply to a bare DECIMAL.
	DefaultDecimalPrecision = 5
	DefaultDecimalScale     = 0

	// MaxWidthSentinel is the width reported when a derived width
	// overflows.
	MaxWidthSentinel = math.MaxInt32
)

type familyInfo struct {
	name       string
	precedence int
	precision  int32
	scale      int32
	maxWidth   int32
}

var families = [NumFamilies]familyInfo{
	UnknownFamily:   {name: "NULL", precedence: -1},
	CharFamily:      {name: "CHAR", precedence: 0, maxWidth: 1},
	VarCharFamily:   {name: "VARCHAR", precedence: 10, maxWidth: MaxVarCharLength},
	TinyIntFamily:   {name: "TINYINT", precedence: 30, precision: 3, maxWidth: TinyIntMaxWidth},
	SmallIntFamily:  {name: "SMALLINT", precedence: 40, precision: 5, maxWidth: SmallIntMaxWidth},
	IntFamily:       {name: "INTEGER", precedence: 50, precision: 10, maxWidth: IntMaxWidth},
	BigIntFamily:    {name: "BIGINT", precedence: 60, precision: 19, maxWidth: BigIntMaxWidth},
	DecimalFamily:   {name: "DECIMAL", precedence: 70, precision: DefaultDecimalPrecision},
	RealFamily:      {name: "REAL", precedence: 80, precision: 23, maxWidth: RealMaxWidth},
	DoubleFamily:    {name: "DOUBLE", precedence: 90, precision: 52, maxWidth: DoubleMaxWidth},
	DateFamily:      {name: "DATE", precedence: 100, precision: 10, maxWidth: DateMaxWidth},
	TimestampFamily: {name: "TIMESTAMP", precedence: 110, precision: 29, scale: 9, maxWidth: TimestampMaxWidth},
	TimeFamily:      {name: "TIME", precedence: 120, precision: 8, maxWidth: TimeMaxWidth},
	BoolFamily:      {name: "BOOLEAN", precedence: 130, precision: 1, maxWidth: BoolMaxWidth},
}

// Name returns the SQL name of the family.
func (f Family) Name() string {
	if f < 0 || f >= NumFamilies {
		return fmt.Sprintf("Family(%d)", int32(f))
	}
	return families[f].name
}

// String implements fmt.Stringer.
func (f Family) String() string { return f.Name() }

// SafeValue implements the redact.SafeValue interface.
func (Family) SafeValue() {}

// Precedence returns the type precedence of the family. When two operands
// of different families combine, the one with the higher precedence
// determines the result family.
func (f Family) Precedence() int { return families[f].precedence }

// IsNumeric returns true for the exact and approximate numeric families.
func (f Family) IsNumeric() bool {
	switch f {
	case TinyIntFamily, SmallIntFamily, IntFamily, BigIntFamily,
		RealFamily, DoubleFamily, DecimalFamily:
		return true
	}
	return false
}

// IsExactInteger returns true for TINYINT through BIGINT.
func (f Family) IsExactInteger() bool {
	switch f {
	case TinyIntFamily, SmallIntFamily, IntFamily, BigIntFamily:
		return true
	}
	return false
}

// IsCharacter returns true for CHAR and VARCHAR.
func (f Family) IsCharacter() bool {
	return f == CharFamily || f == VarCharFamily
}

// IsDateTime returns true for DATE, TIME and TIMESTAMP.
func (f Family) IsDateTime() bool {
	return f == DateFamily || f == TimeFamily || f == TimestampFamily
}

// T is an immutable descriptor of a resolved SQL type: its family plus the
// parameters that matter for that family. A T is never modified after
// construction; functions that need a variant (for example with different
// nullability) return a new one.
type T struct {
	family    Family
	precision int32
	scale     int32
	nullable  bool
	maxWidth  int32
}

// Family returns the type's family.
func (t *T) Family() Family { return t.family }

// Precision returns the precision. It is meaningful for DECIMAL; the other
// numeric families report their fixed precision.
func (t *T) Precision() int32 { return t.precision }

// Scale returns the scale.
func (t *T) Scale() int32 { return t.scale }

// Nullable returns whether values of this type may be NULL.
func (t *T) Nullable() bool { return t.nullable }

// MaxWidth returns the maximum width of a value. It is derived from the
// other parameters at construction.
func (t *T) MaxWidth() int32 { return t.maxWidth }

// Convenience predicates forwarded to the family.
func (t *T) IsNumeric() bool      { return t.family.IsNumeric() }
func (t *T) IsExactInteger() bool { return t.family.IsExactInteger() }
func (t *T) IsDecimal() bool      { return t.family == DecimalFamily }
func (t *T) IsCharacter() bool    { return t.family.IsCharacter() }
func (t *T) IsDateTime() bool     { return t.family.IsDateTime() }

// Nullable and non-nullable instances of the fixed families.
var (
	Unknown   = &T{family: UnknownFamily, nullable: true}
	Bool      = MakeScalar(BoolFamily, true)
	TinyInt   = MakeScalar(TinyIntFamily, true)
	SmallInt  = MakeScalar(SmallIntFamily, true)
	Int       = MakeScalar(IntFamily, true)
	BigInt    = MakeScalar(BigIntFamily, true)
	Real      = MakeScalar(RealFamily, true)
	Double    = MakeScalar(DoubleFamily, true)
	Decimal   = MakeScalar(DecimalFamily, true)
	Date      = MakeScalar(DateFamily, true)
	Time      = MakeScalar(TimeFamily, true)
	Timestamp = MakeScalar(TimestampFamily, true)
	Char      = MakeScalar(CharFamily, true)
	VarChar   = MakeScalar(VarCharFamily, true)
)

// MakeScalar returns a descriptor for the family with its default
// parameters.
func MakeScalar(fam Family, nullable bool) *T {
	switch fam {
	case UnknownFamily:
		return Unknown
	case DecimalFamily:
		return MakeDecimal(DefaultDecimalPrecision, DefaultDecimalScale, nullable)
	}
	info := families[fam]
	return &T{
		family:    fam,
		precision: info.precision,
		scale:     info.scale,
		nullable:  nullable,
		maxWidth:  info.maxWidth,
	}
}

// MakeDecimal returns a DECIMAL(precision, scale) descriptor. Precision and
// scale are clamped to [0, MaxDecimalPrecisionScale] and scale is clamped
// to the precision.
func MakeDecimal(precision, scale int32, nullable bool) *T {
	maxPrec := GetLimits().MaxDecimalPrecisionScale
	precision = clamp(precision, 0, maxPrec)
	scale = clamp(scale, 0, precision)
	return &T{
		family:    DecimalFamily,
		precision: precision,
		scale:     scale,
		nullable:  nullable,
		maxWidth:  DecimalMaxWidth(precision, scale),
	}
}

// MakeResolved builds a descriptor from already-computed parameters. It is
// used by type resolution, which computes a width that does not always
// follow the family default.
func MakeResolved(fam Family, precision, scale int32, nullable bool, maxWidth int32) *T {
	if fam == UnknownFamily {
		return Unknown
	}
	return &T{
		family:    fam,
		precision: precision,
		scale:     scale,
		nullable:  nullable,
		maxWidth:  maxWidth,
	}
}

// MakeChar returns a CHAR(width) descriptor.
func MakeChar(width int32, nullable bool) *T {
	return &T{family: CharFamily, nullable: nullable, maxWidth: clamp(width, 1, MaxCharLength)}
}

// MakeVarChar returns a VARCHAR(width) descriptor.
func MakeVarChar(width int32, nullable bool) *T {
	return &T{family: VarCharFamily, nullable: nullable, maxWidth: clamp(width, 1, MaxVarCharLength)}
}

// DecimalMaxWidth computes the display width of a DECIMAL(precision,
// scale): the digits plus room for a sign, and for a decimal point and a
// leading zero when there is a fractional part. It saturates at
// MaxWidthSentinel.
func DecimalMaxWidth(precision, scale int32) int32 {
	extra := int64(1)
	if scale > 0 {
		extra = 3
	}
	w := int64(precision) + extra
	if w > MaxWidthSentinel {
		return MaxWidthSentinel
	}
	return int32(w)
}

// WithNullability returns t if it already has the requested nullability,
// otherwise a copy that differs only in nullability.
func (t *T) WithNullability(nullable bool) *T {
	if t.nullable == nullable || t.family == UnknownFamily {
		return t
	}
	c := *t
	c.nullable = nullable
	return &c
}

// Identical returns true if both descriptors have the same family,
// parameters and nullability.
func (t *T) Identical(other *T) bool {
	return *t == *other
}

// Equivalent returns true if both descriptors describe the same type,
// ignoring nullability.
func (t *T) Equivalent(other *T) bool {
	return t.family == other.family &&
		t.precision == other.precision &&
		t.scale == other.scale &&
		t.maxWidth == other.maxWidth
}

// SQLString returns the SQL rendering of the type, for example
// "DECIMAL(8,3) NOT NULL".
func (t *T) SQLString() string {
	var sb strings.Builder
	sb.WriteString(t.family.Name())
	switch t.family {
	case DecimalFamily:
		fmt.Fprintf(&sb, "(%d,%d)", t.precision, t.scale)
	case CharFamily, VarCharFamily:
		fmt.Fprintf(&sb, "(%d)", t.maxWidth)
	}
	if !t.nullable && t.family != UnknownFamily {
		sb.WriteString(" NOT NULL")
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (t *T) String() string { return t.SQLString() }

// SafeFormat implements redact.SafeFormatter. Type names never contain user
// data.
func (t *T) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(t.SQLString()))
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
