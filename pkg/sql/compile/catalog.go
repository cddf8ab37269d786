// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package compile

import (
	"context"

	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
)

// Catalog is the row an expression is compiled against. Column ordinals
// follow the order in which columns are added.
type Catalog struct {
	cols   []catalogColumn
	byName map[tree.ColumnName]int
}

type catalogColumn struct {
	name tree.ColumnName
	typ  *types.T
}

var _ tree.ColumnResolver = &Catalog{}

// AddColumn appends a column to the row.
func (c *Catalog) AddColumn(table, column string, typ *types.T) error {
	name := tree.ColumnName{Table: table, Column: column}
	if c.byName == nil {
		c.byName = make(map[tree.ColumnName]int)
	}
	if _, ok := c.byName[name]; ok {
		return pgerror.Newf(pgcode.Syntax, "column %q is defined twice", name.String())
	}
	c.byName[name] = len(c.cols)
	c.cols = append(c.cols, catalogColumn{name: name, typ: typ})
	return nil
}

// ResolveColumn implements the tree.ColumnResolver interface. An
// unqualified name must match exactly one column.
func (c *Catalog) ResolveColumn(
	_ context.Context, name tree.ColumnName,
) (tree.ResolvedColumn, error) {
	if ord, ok := c.byName[name]; ok {
		return tree.ResolvedColumn{Ordinal: ord, Type: c.cols[ord].typ}, nil
	}
	if name.Table == "" {
		found := -1
		for i, col := range c.cols {
			if col.name.Column != name.Column {
				continue
			}
			if found >= 0 {
				return tree.ResolvedColumn{}, pgerror.Newf(pgcode.AmbiguousColumn,
					"column reference %q is ambiguous", name.Column)
			}
			found = i
		}
		if found >= 0 {
			return tree.ResolvedColumn{Ordinal: found, Type: c.cols[found].typ}, nil
		}
	}
	return tree.ResolvedColumn{}, pgerror.Newf(pgcode.UndefinedColumn,
		"column %q does not exist", name.String())
}
