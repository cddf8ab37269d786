// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package codegen

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// Op is a single instruction in the evaluation program built for a bound
// expression. The program runs against an operand stack: every op pushes,
// pops, or rewrites the top of that stack.
type Op interface {
	fmt.Stringer
	// stackDelta is the net change in stack depth after the op runs, and
	// pops is the number of values the op needs on the stack.
	stackDelta() (pops, delta int)
}

// InvokeKind distinguishes the dispatch used by an Invoke op.
type InvokeKind int8

const (
	// InvokeInterface dispatches through an interface method on the receiver.
	InvokeInterface InvokeKind = iota
	// InvokeVirtual dispatches through a concrete method on the receiver.
	InvokeVirtual
)

func (k InvokeKind) String() string {
	switch k {
	case InvokeInterface:
		return "interface"
	case InvokeVirtual:
		return "virtual"
	default:
		return fmt.Sprintf("InvokeKind(%d)", int8(k))
	}
}

// SafeValue implements the redact.SafeValue interface.
func (InvokeKind) SafeValue() {}

// FactoryInterface names the runtime value factory pushed by PushFactory.
const FactoryInterface = "DataValueFactory"

// DescriptorInterface is the common interface every runtime value
// implements.
const DescriptorInterface = "DataValueDescriptor"

// PushFactory pushes the runtime value factory.
type PushFactory struct{}

// LoadColumn pushes the value of a column of the current row.
type LoadColumn struct {
	Ordinal int
	Name    string
}

// LoadConstant pushes a literal value.
type LoadConstant struct {
	Value fmt.Stringer
}

// Cast reinterprets the top of the stack as the named interface.
type Cast struct {
	Interface string
}

// UpCast widens the top of the stack to the named primitive class before it
// is handed to a factory method, e.g. a decimal literal widened to Number.
type UpCast struct {
	Class string
}

// Invoke calls Method on a receiver that sits NumArgs slots below the top of
// the stack. The receiver and arguments are popped; when Returns is non-empty
// the result is pushed.
type Invoke struct {
	Kind     InvokeKind
	Receiver string
	Method   string
	NumArgs  int
	Returns  string
}

var _ Op = PushFactory{}
var _ Op = LoadColumn{}
var _ Op = LoadConstant{}
var _ Op = Cast{}
var _ Op = UpCast{}
var _ Op = Invoke{}

func (PushFactory) stackDelta() (int, int)  { return 0, 1 }
func (LoadColumn) stackDelta() (int, int)   { return 0, 1 }
func (LoadConstant) stackDelta() (int, int) { return 0, 1 }
func (Cast) stackDelta() (int, int)         { return 1, 0 }
func (UpCast) stackDelta() (int, int)       { return 1, 0 }

func (op Invoke) stackDelta() (int, int) {
	pops := op.NumArgs + 1
	if op.Returns == "" {
		return pops, -pops
	}
	return pops, 1 - pops
}

func (PushFactory) String() string { return "push-factory" }

func (op LoadColumn) String() string {
	if op.Name == "" {
		return fmt.Sprintf("load-column @%d", op.Ordinal)
	}
	return fmt.Sprintf("load-column @%d (%s)", op.Ordinal, op.Name)
}

func (op LoadConstant) String() string {
	return fmt.Sprintf("load-constant %s", op.Value)
}

func (op Cast) String() string { return "cast " + op.Interface }

func (op UpCast) String() string { return "upcast " + op.Class }

func (op Invoke) String() string {
	s := fmt.Sprintf("invoke-%s %s.%s/%d", op.Kind, op.Receiver, op.Method, op.NumArgs)
	if op.Returns != "" {
		s += " -> " + op.Returns
	}
	return s
}

// SafeFormat implements the redact.SafeFormatter interface. Constants are
// the only ops that can carry user data.
func (op LoadConstant) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("load-constant %v", op.Value)
}
