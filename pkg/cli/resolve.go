// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/cli/clierror"
	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/sql/sem/typecomp"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <left-type> <operator> <right-type>",
	Short: "resolve the result type of an arithmetic operator",
	Long: `
Prints the type produced by applying the operator to operands of the given
types. The operator is one of + - * / mod sum avg merge. Types are written
as in SQL, e.g. 'DECIMAL(5,2) NOT NULL'.
`,
	Example: `  sqlsema resolve 'DECIMAL(5,2)' '*' 'DECIMAL(3,1)'`,
	Args:    cobra.ExactArgs(3),
	RunE:    runResolve,
}

var operatorNames = map[string]typecomp.Operator{
	"+":     typecomp.Plus,
	"-":     typecomp.Minus,
	"*":     typecomp.Times,
	"/":     typecomp.Divide,
	"mod":   typecomp.Mod,
	"%":     typecomp.Mod,
	"sum":   typecomp.Sum,
	"avg":   typecomp.Avg,
	"merge": typecomp.NoOp,
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	left, err := types.Parse(args[0])
	if err != nil {
		return clierror.NewError(errors.Wrap(err, "left type"), exit.CommandLineFlagError())
	}
	op, ok := operatorNames[strings.ToLower(args[1])]
	if !ok {
		return clierror.NewError(
			errors.Newf("unknown operator %q", args[1]), exit.CommandLineFlagError())
	}
	right, err := types.Parse(args[2])
	if err != nil {
		return clierror.NewError(errors.Wrap(err, "right type"), exit.CommandLineFlagError())
	}

	log.VEventf(ctx, 1, "resolving %s %s %s", left, op, right)
	res, err := typecomp.ForType(left).ResolveArithmetic(left, right, op)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nmax width: %d\n", res.SQLString(), res.MaxWidth())
	return err
}
