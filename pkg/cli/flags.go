// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/cli/clierror"
	"github.com/sqlsema/sqlsema/pkg/cli/cliflags"
	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliContext holds the values of the flags shared by all commands.
var cliContext struct {
	limitsFile   string
	verbosity    int
	vmodule      string
	logThreshold string
}

// compileCtx holds the values of the compile command's flags.
var compileCtx struct {
	unbox  bool
	noFold bool
}

// setCLIDefaults resets the flag values. Tests call it between runs.
func setCLIDefaults() {
	cliContext.limitsFile = ""
	cliContext.verbosity = 0
	cliContext.vmodule = ""
	cliContext.logThreshold = log.Severity_INFO.String()
	compileCtx.unbox = false
	compileCtx.noFold = false
}

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be called
// at the beginning of 'fn'.
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	wrapped := cmd.PersistentPreRunE

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}
		return fn(cmd, args)
	}
}

func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		if value, set := os.LookupEnv(flagInfo.EnvVar); set {
			if err := f.Set(flagInfo.Name, value); err != nil {
				panic(err)
			}
		}
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func BoolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo, defaultVal bool) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

func init() {
	setCLIDefaults()

	{
		pf := sqlsemaCmd.PersistentFlags()
		StringFlag(pf, &cliContext.limitsFile, cliflags.Limits, cliContext.limitsFile)
		IntFlag(pf, &cliContext.verbosity, cliflags.Verbosity, cliContext.verbosity)
		StringFlag(pf, &cliContext.vmodule, cliflags.VModule, cliContext.vmodule)
		StringFlag(pf, &cliContext.logThreshold, cliflags.LogThreshold, cliContext.logThreshold)
	}
	{
		f := compileCmd.Flags()
		BoolFlag(f, &compileCtx.unbox, cliflags.Unbox, compileCtx.unbox)
		BoolFlag(f, &compileCtx.noFold, cliflags.NoFold, compileCtx.noFold)
	}

	AddPersistentPreRunE(sqlsemaCmd, func(cmd *cobra.Command, _ []string) error {
		return applySharedFlags(cmd.Context())
	})
}

// applySharedFlags installs the logging configuration and the limits.
func applySharedFlags(ctx context.Context) error {
	threshold, ok := log.SeverityByName(cliContext.logThreshold)
	if !ok {
		return clierror.NewError(
			errors.Newf("invalid --%s %q", cliflags.LogThreshold.Name, cliContext.logThreshold),
			exit.CommandLineFlagError())
	}
	log.SetThreshold(threshold)
	log.SetVerbosity(log.Level(cliContext.verbosity))
	if err := log.SetVModule(cliContext.vmodule); err != nil {
		return clierror.NewError(
			errors.Wrapf(err, "invalid --%s", cliflags.VModule.Name), exit.CommandLineFlagError())
	}

	types.ResetLimits()
	if cliContext.limitsFile == "" {
		return nil
	}
	f, err := os.Open(cliContext.limitsFile)
	if err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	defer f.Close()
	lim, err := types.LoadLimits(f)
	if err != nil {
		return clierror.NewError(
			errors.Wrapf(err, "loading %s", cliContext.limitsFile), exit.CommandLineFlagError())
	}
	if err := types.SetLimits(lim); err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	log.Infof(ctx, "using limits from %s: %+v", cliContext.limitsFile, lim)
	return nil
}
