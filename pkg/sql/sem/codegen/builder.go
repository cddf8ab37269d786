// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package codegen accumulates the evaluation program for a bound expression
// tree. Nodes append ops to a Builder in post-order; the Builder tracks the
// operand stack depth so that malformed emission is caught as an internal
// error rather than at run time.
package codegen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// Builder accumulates ops. The zero value is ready to use.
type Builder struct {
	ops   []Op
	depth int
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(op Op) {
	if b.err != nil {
		return
	}
	pops, delta := op.stackDelta()
	if b.depth < pops {
		b.err = errors.AssertionFailedf(
			"op %q needs %d operands, stack holds %d", errors.Safe(op.String()), pops, b.depth)
		return
	}
	b.depth += delta
	b.ops = append(b.ops, op)
}

// PushFactory emits an op that pushes the runtime value factory.
func (b *Builder) PushFactory() { b.add(PushFactory{}) }

// LoadColumn emits an op that pushes the column at the given ordinal.
func (b *Builder) LoadColumn(ordinal int, name string) {
	b.add(LoadColumn{Ordinal: ordinal, Name: name})
}

// LoadConstant emits an op that pushes a literal.
func (b *Builder) LoadConstant(v fmt.Stringer) { b.add(LoadConstant{Value: v}) }

// Cast emits an op that reinterprets the top of the stack.
func (b *Builder) Cast(iface string) { b.add(Cast{Interface: iface}) }

// UpCast emits an op that widens the top of the stack to a primitive class.
func (b *Builder) UpCast(class string) { b.add(UpCast{Class: class}) }

// CallMethod emits an Invoke op.
func (b *Builder) CallMethod(
	kind InvokeKind, receiver, method string, numArgs int, returns string,
) {
	if numArgs < 0 {
		b.err = errors.AssertionFailedf("negative argument count %d for %s", numArgs, errors.Safe(method))
		return
	}
	b.add(Invoke{Kind: kind, Receiver: receiver, Method: method, NumArgs: numArgs, Returns: returns})
}

// Depth returns the current operand stack depth.
func (b *Builder) Depth() int { return b.depth }

// Len returns the number of ops emitted so far.
func (b *Builder) Len() int { return len(b.ops) }

// Err returns the first emission error, if any.
func (b *Builder) Err() error { return b.err }

// Finish validates that exactly one value is left on the stack and returns
// the program producing a value of type typ.
func (b *Builder) Finish(typ *types.T) (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	if typ == nil {
		return nil, errors.AssertionFailedf("program finished without a result type")
	}
	if b.depth != 1 {
		return nil, errors.AssertionFailedf(
			"program leaves %d values on the stack, expected 1", b.depth)
	}
	ops := make([]Op, len(b.ops))
	copy(ops, b.ops)
	return &Program{Ops: ops, Type: typ}, nil
}

// Program is a finished, stack-balanced op sequence.
type Program struct {
	Ops []Op
	// Type is the type of the value left on the stack.
	Type *types.T
	// Primitive, when set, is the name of the native kind the result was
	// unboxed to.
	Primitive string
}

func (p *Program) String() string {
	var buf strings.Builder
	for i, op := range p.Ops {
		fmt.Fprintf(&buf, "%2d: %s\n", i, op)
	}
	fmt.Fprintf(&buf, "=> %s", p.Type.SQLString())
	if p.Primitive != "" {
		fmt.Fprintf(&buf, " (%s)", p.Primitive)
	}
	return buf.String()
}
