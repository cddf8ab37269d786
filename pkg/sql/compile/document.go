// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package compile

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/timeutil/pgdate"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a compilation request:
//
//	columns:
//	  - {table: t, name: price, type: "DECIMAL(5,2) NOT NULL"}
//	expr:
//	  op: "*"
//	  args:
//	    - {column: price}
//	    - {const: "1.5", type: decimal}
type Document struct {
	Columns []ColumnSpec `yaml:"columns"`
	Expr    *ExprSpec    `yaml:"expr"`
}

// ColumnSpec declares one column of the row.
type ColumnSpec struct {
	Table string `yaml:"table"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
}

// ExprSpec is one node of an expression. Exactly one of Column, Const,
// Null and Op is set.
type ExprSpec struct {
	Column string `yaml:"column"`
	Table  string `yaml:"table"`

	// Const is a literal. Type selects how it is read: int, bigint,
	// decimal, double, string, bool, date, time or timestamp. Without a
	// Type, integers and decimals are recognized and everything else is a
	// string.
	Const *string `yaml:"const"`
	// Null is a NULL literal; with a Type it is a typed null of that SQL
	// type.
	Null bool   `yaml:"is_null"`
	Type string `yaml:"type"`

	// Op is one of + - * / mod, neg, pos, abs, date, timestamp, cast or
	// coalesce.
	Op   string      `yaml:"op"`
	Args []*ExprSpec `yaml:"args"`
	// To is the target type of a cast.
	To string `yaml:"to"`
}

// ParseDocument decodes a document. Unknown fields are rejected.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, pgerror.Wrap(err, pgcode.Syntax, "decoding document")
	}
	if doc.Expr == nil {
		return nil, pgerror.New(pgcode.Syntax, "document has no expr")
	}
	return &doc, nil
}

// Catalog builds the catalog declared by the document.
func (d *Document) Catalog() (*Catalog, error) {
	c := &Catalog{}
	for _, col := range d.Columns {
		typ, err := types.Parse(col.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", col.Name)
		}
		if err := c.AddColumn(col.Table, col.Name, typ); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var binaryOps = map[string]typecomp.Operator{
	"+":   typecomp.Plus,
	"-":   typecomp.Minus,
	"*":   typecomp.Times,
	"/":   typecomp.Divide,
	"mod": typecomp.Mod,
	"%":   typecomp.Mod,
}

var unaryOps = map[string]tree.UnaryOperator{
	"pos": tree.UnaryPlus,
	"neg": tree.UnaryMinus,
	"abs": tree.UnaryAbs,
}

// ToExpr converts the spec into an unbound expression tree.
func (s *ExprSpec) ToExpr() (tree.Expr, error) {
	switch {
	case s.Column != "":
		return tree.NewColumnItem(s.Table, s.Column), nil
	case s.Null:
		if s.Type == "" {
			return tree.NewNullConstant(), nil
		}
		typ, err := types.Parse(s.Type)
		if err != nil {
			return nil, err
		}
		return tree.NewTypedNull(typ), nil
	case s.Const != nil:
		return s.constant()
	case s.Op != "":
		return s.operation()
	}
	return nil, pgerror.New(pgcode.Syntax, "expression node needs one of column, const, is_null or op")
}

func (s *ExprSpec) args(n int) ([]tree.Expr, error) {
	if n >= 0 && len(s.Args) != n {
		return nil, pgerror.Newf(pgcode.WrongNumberOfArguments,
			"%s takes %d arguments, got %d", s.Op, n, len(s.Args))
	}
	out := make([]tree.Expr, len(s.Args))
	for i, a := range s.Args {
		if a == nil {
			return nil, pgerror.Newf(pgcode.Syntax, "argument %d of %s is empty", i+1, s.Op)
		}
		e, err := a.ToExpr()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (s *ExprSpec) operation() (tree.Expr, error) {
	op := strings.ToLower(s.Op)
	if bin, ok := binaryOps[op]; ok {
		args, err := s.args(2)
		if err != nil {
			return nil, err
		}
		return tree.NewBinaryExpr(bin, args[0], args[1]), nil
	}
	if un, ok := unaryOps[op]; ok {
		args, err := s.args(1)
		if err != nil {
			return nil, err
		}
		return tree.NewUnaryExpr(un, args[0]), nil
	}
	switch op {
	case "date", "timestamp":
		args, err := s.args(1)
		if err != nil {
			return nil, err
		}
		f := tree.DateFunc
		if op == "timestamp" {
			f = tree.TimestampFunc
		}
		return tree.NewDateTimestampFuncExpr(f, args[0]), nil
	case "cast":
		args, err := s.args(1)
		if err != nil {
			return nil, err
		}
		typ, err := types.Parse(s.To)
		if err != nil {
			return nil, err
		}
		cast := tree.NewCastExpr(args[0], typ)
		cast.InferWidth = typ.IsCharacter() && !strings.Contains(s.To, "(")
		return cast, nil
	case "coalesce":
		args, err := s.args(-1)
		if err != nil {
			return nil, err
		}
		return tree.NewCoalesceExpr(args...), nil
	}
	return nil, pgerror.Newf(pgcode.Syntax, "unknown operator %q", s.Op)
}

func (s *ExprSpec) constant() (tree.Expr, error) {
	v := *s.Const
	kind := strings.ToLower(s.Type)
	if kind == "" {
		switch {
		case isInteger(v):
			kind = "int"
		case isDecimal(v):
			kind = "decimal"
		default:
			kind = "string"
		}
	}
	switch kind {
	case "int", "integer", "bigint":
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.Syntax, "integer literal %q", v)
		}
		if kind == "bigint" {
			return tree.NewConstant(tree.DInt(i), types.BigInt), nil
		}
		return tree.NewIntConstant(i), nil
	case "decimal":
		return tree.NewDecimalConstant(v)
	case "double", "float":
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.Syntax, "floating point literal %q", v)
		}
		return tree.NewFloatConstant(f), nil
	case "string", "char":
		return tree.NewStringConstant(v), nil
	case "bool", "boolean":
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.Syntax, "boolean literal %q", v)
		}
		return tree.NewBoolConstant(b), nil
	case "date":
		t, err := pgdate.ParseDate(v)
		if err != nil {
			return nil, err
		}
		return tree.NewDateConstant(t), nil
	case "time":
		t, err := pgdate.ParseTime(v)
		if err != nil {
			return nil, err
		}
		return tree.NewTimeConstant(t), nil
	case "timestamp":
		t, err := pgdate.ParseTimestamp(v)
		if err != nil {
			return nil, err
		}
		return tree.NewTimestampConstant(t), nil
	}
	return nil, pgerror.Newf(pgcode.Syntax, "unknown literal type %q", s.Type)
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isDecimal(s string) bool {
	_, err := tree.ParseDDecimal(s)
	return err == nil && strings.ContainsAny(s, ".")
}
