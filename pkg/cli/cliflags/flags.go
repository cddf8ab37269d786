// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cliflags

import "strings"

// FlagInfo contains the static information for a CLI flag and helper
// to format the description.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable through which the flag
	// can also be set (optional).
	EnvVar string

	// Description of the flag.
	Description string
}

// Usage returns a formatted usage string for the flag, including:
// * line wrapping
// * indentation
// * env variable name (if set)
func (f FlagInfo) Usage() string {
	s := "\n" + wrapDescription(f.Description)
	if f.EnvVar != "" {
		s = s + "\nEnvironment variable: " + f.EnvVar
	}
	// pflag adds a space at the beginning of the description.
	return strings.ReplaceAll(s, "\n", "\n        ")
}

const wrapWidth = 79 - 8

func wrapDescription(s string) string {
	var out strings.Builder
	lineLen := 0
	for i, w := range strings.Fields(s) {
		if i > 0 {
			if lineLen+1+len(w) > wrapWidth {
				out.WriteByte('\n')
				lineLen = 0
			} else {
				out.WriteByte(' ')
				lineLen++
			}
		}
		out.WriteString(w)
		lineLen += len(w)
	}
	return out.String()
}

// Flags shared by all commands.
var (
	Limits = FlagInfo{
		Name:   "limits",
		EnvVar: "SQLSEMA_LIMITS",
		Description: `Path to a YAML file overriding the DECIMAL limits, with keys
max_decimal_precision_scale, db2_max_decimal_precision_scale and
min_decimal_divide_scale.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		Description: `Log verbosity level. Level 1 logs each compilation, level 2 each binding step.`,
	}

	LogThreshold = FlagInfo{
		Name:        "log-threshold",
		EnvVar:      "SQLSEMA_LOG_THRESHOLD",
		Description: `Minimum severity of log entries written to stderr: INFO, WARNING, ERROR or NONE.`,
	}

	VModule = FlagInfo{
		Name:        "vmodule",
		EnvVar:      "SQLSEMA_VMODULE",
		Description: `Comma-separated list of file=level pairs overriding --verbosity per file.`,
	}
)

// Flags for the compile command.
var (
	Unbox = FlagInfo{
		Name:        "unbox",
		Description: `Append the accessor that unboxes the result to its native kind, when it has one.`,
	}

	NoFold = FlagInfo{
		Name:        "no-fold",
		Description: `Disable constant folding.`,
	}
)
