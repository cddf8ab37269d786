// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package typecomp

import "fmt"

// Operator identifies the arithmetic operation whose result type is being
// resolved. NoOp is used when two types are merged without an operation,
// e.g. for the branches of a COALESCE.
type Operator int8

const (
	NoOp Operator = iota
	Plus
	Minus
	Times
	Divide
	Mod
	Sum
	Avg
)

var operatorSymbols = [...]string{
	NoOp:   "",
	Plus:   "+",
	Minus:  "-",
	Times:  "*",
	Divide: "/",
	Mod:    "mod",
	Sum:    "sum",
	Avg:    "avg",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return fmt.Sprintf("Operator(%d)", int8(o))
	}
	return operatorSymbols[o]
}

// SafeValue implements the redact.SafeValue interface.
func (Operator) SafeValue() {}

// MethodName is the runtime method implementing the operator on
// NumberDataValue.
func (o Operator) MethodName() string {
	switch o {
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Times:
		return "Times"
	case Divide:
		return "Divide"
	case Mod:
		return "Mod"
	}
	return ""
}
