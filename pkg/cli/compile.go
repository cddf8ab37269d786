// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/cli/clierror"
	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/sql/compile"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/eval"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/tree"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.yaml | ->",
	Short: "bind an expression and print its evaluation program",
	Long: `
Reads a YAML document declaring the columns of the row and an expression
tree, binds the expression, and prints the bound expression, the privileges
it requires and the generated program. Use - to read from standard input.
`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return clierror.NewError(err, exit.CommandLineFlagError())
		}
		defer f.Close()
		in = f
	}

	doc, err := compile.ParseDocument(in)
	if err != nil {
		return err
	}
	catalog, err := doc.Catalog()
	if err != nil {
		return err
	}
	expr, err := doc.Expr.ToExpr()
	if err != nil {
		return err
	}

	privs := &tree.RequiredPrivileges{}
	semaCtx := &tree.SemaContext{
		Columns:        catalog,
		Privileges:     privs,
		Factory:        eval.NewDataValueFactory(),
		DisableFolding: compileCtx.noFold,
	}
	res, err := compile.Compile(ctx, expr, semaCtx, compile.Options{Unbox: compileCtx.unbox})
	if err != nil {
		return err
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "expression: %s\n", expr)
	fmt.Fprintf(&buf, "bound:      %s\n", res.Bound)
	fmt.Fprintf(&buf, "type:       %s\n", res.Bound.ResolvedType())
	for _, p := range privs.List() {
		fmt.Fprintf(&buf, "requires:   %s\n", p)
	}
	buf.WriteString("program:\n")
	buf.WriteString(res.Program.String())
	buf.WriteByte('\n')
	if _, err := io.WriteString(cmd.OutOrStdout(), buf.String()); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}
