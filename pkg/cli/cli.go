// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/logtags"
	"github.com/sqlsema/sqlsema/pkg/cli/clierror"
	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/spf13/cobra"
)

// Main is the entry point for the sqlsema command line tool.
func Main() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "help")
	}

	err := Run(os.Args[1:])
	errCode := doMain(err)
	exit.WithCode(errCode)
}

func doMain(err error) exit.Code {
	if err == nil {
		return exit.Success()
	}
	if log.V(1) {
		_ = clierror.CheckAndMaybeLog(err, log.Logf)
	}
	clierror.OutputError(stderr, err, true /*showSeverity*/, log.V(2) /*verbose*/)
	return clierror.ExitCode(err)
}

// Proxy to allow overrides in tests.
var stderr io.Writer = os.Stderr

var sqlsemaCmd = &cobra.Command{
	Use:   "sqlsema [command] (flags)",
	Short: "SQL expression binder and code generator",
	Long: `Binds scalar SQL expressions: resolves operand and result types,
folds constants, and emits the evaluation program.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.EnableCommandSorting = false

	sqlsemaCmd.AddCommand(
		resolveCmd,
		compileCmd,
		typesCmd,
	)
}

// Run runs the command with the given arguments.
func Run(args []string) error {
	sqlsemaCmd.SetArgs(args)
	ctx := logtags.AddTag(context.Background(), "sqlsema", nil)
	return sqlsemaCmd.ExecuteContext(ctx)
}
