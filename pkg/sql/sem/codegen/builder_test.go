// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package codegen

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
	"github.com/stretchr/testify/require"
)

type literal string

func (l literal) String() string { return string(l) }

func TestBuilderTracksDepth(t *testing.T) {
	defer leaktest.AfterTest(t)()

	b := NewBuilder()
	b.LoadColumn(0, "a")
	b.LoadColumn(1, "b")
	b.PushFactory()
	b.CallMethod(InvokeInterface, FactoryInterface, "GetNullDecimal", 0, "NumberDataValue")
	require.Equal(t, 3, b.Depth())
	b.CallMethod(InvokeInterface, "NumberDataValue", "Times", 2, "NumberDataValue")
	require.Equal(t, 1, b.Depth())
	require.Equal(t, 5, b.Len())

	prog, err := b.Finish(types.MakeDecimal(8, 3, true))
	require.NoError(t, err)
	require.Equal(t, ` 0: load-column @0 (a)
 1: load-column @1 (b)
 2: push-factory
 3: invoke-interface DataValueFactory.GetNullDecimal/0 -> NumberDataValue
 4: invoke-interface NumberDataValue.Times/2 -> NumberDataValue
=> DECIMAL(8,3)`, prog.String())

	// The program does not alias the builder's buffer.
	b.LoadColumn(2, "")
	require.Len(t, prog.Ops, 5)
}

func TestBuilderUnderflow(t *testing.T) {
	defer leaktest.AfterTest(t)()

	b := NewBuilder()
	b.Cast(DescriptorInterface)
	require.Error(t, b.Err())
	require.True(t, errors.IsAssertionFailure(b.Err()))

	// Later ops are ignored once an error is recorded.
	b.PushFactory()
	require.Equal(t, 0, b.Len())
	_, err := b.Finish(types.Int)
	require.Error(t, err)

	b = NewBuilder()
	b.PushFactory()
	b.CallMethod(InvokeVirtual, FactoryInterface, "GetDate", 1, "DateTimeDataValue")
	require.Error(t, b.Err())

	b = NewBuilder()
	b.CallMethod(InvokeInterface, FactoryInterface, "GetDate", -1, "")
	require.Error(t, b.Err())
}

func TestFinishRequiresSingleValue(t *testing.T) {
	defer leaktest.AfterTest(t)()

	b := NewBuilder()
	_, err := b.Finish(types.Int)
	require.Error(t, err)

	b.PushFactory()
	b.LoadConstant(literal("1"))
	_, err = b.Finish(types.Int)
	require.Error(t, err)

	b.CallMethod(InvokeInterface, FactoryInterface, "GetDataValue", 1, "NumberDataValue")
	_, err = b.Finish(nil)
	require.Error(t, err)

	b.UpCast("Number")
	prog, err := b.Finish(types.Int)
	require.NoError(t, err)
	prog.Primitive = "int32"
	require.Contains(t, prog.String(), "=> INTEGER (int32)")
}

func TestInvokeWithoutResult(t *testing.T) {
	defer leaktest.AfterTest(t)()

	op := Invoke{Kind: InvokeVirtual, Receiver: "NumberDataValue", Method: "Normalize", NumArgs: 1}
	pops, delta := op.stackDelta()
	require.Equal(t, 2, pops)
	require.Equal(t, -2, delta)
	require.Equal(t, "invoke-virtual NumberDataValue.Normalize/1", op.String())
}

func TestLoadConstantRedaction(t *testing.T) {
	defer leaktest.AfterTest(t)()

	op := LoadConstant{Value: literal("'secret'")}
	require.Equal(t, "load-constant ‹'secret'›", string(redact.Sprint(op)))
	require.Equal(t, "load-constant ‹×›", string(redact.Sprint(op).Redact()))
}
