// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package clierror

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgerror"
	"github.com/sqlsema/sqlsema/pkg/util/log"
)

// Error wraps another error to pass an exit code to the top level
// command.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

// NewError instantiates a new Error.
func NewError(cause error, exitCode exit.Code) error {
	return &Error{
		exitCode: exitCode,
		severity: log.Severity_ERROR,
		cause:    cause,
	}
}

// NewErrorWithSeverity instantiates a new Error with a severity.
func NewErrorWithSeverity(cause error, exitCode exit.Code, severity log.Severity) error {
	return &Error{
		exitCode: exitCode,
		severity: severity,
		cause:    cause,
	}
}

// GetExitCode retrieves the exit code.
func (e *Error) GetExitCode() exit.Code { return e.exitCode }

// GetSeverity retrieves the severity.
func (e *Error) GetSeverity() log.Severity { return e.severity }

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the go 1.13 wrapper interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %s", e.exitCode)
	}
	return e.cause
}

// ExitCode computes the exit code for an error returned by a command. An
// explicit Error decides; otherwise internal errors and compilation errors
// get their own codes.
func ExitCode(err error) exit.Code {
	if err == nil {
		return exit.Success()
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.exitCode
	}
	switch code := pgerror.GetPGCode(err); code {
	case pgcode.Internal:
		return exit.InternalError()
	case pgcode.Uncategorized:
		return exit.UnspecifiedError()
	default:
		return exit.CompilationFailed()
	}
}

// CheckAndMaybeLog reports the error, if non-nil, to the given
// logger. The error is returned unchanged.
func CheckAndMaybeLog(
	err error, logger func(context.Context, log.Severity, string, ...interface{}),
) error {
	if err == nil {
		return nil
	}
	severity := log.Severity_ERROR
	cause := err
	var ec *Error
	if errors.As(err, &ec) {
		severity = ec.severity
		cause = ec.cause
	}
	logger(context.Background(), severity, "%v", cause)
	return err
}

// OutputError prints the error to w in the form a SQL client shows it:
// the severity and message, then the code, details and hints.
func OutputError(w io.Writer, err error, showSeverity, verbose bool) {
	f := pgerror.Flatten(err)
	var buf strings.Builder
	if showSeverity {
		buf.WriteString("ERROR: ")
	}
	buf.WriteString(f.Message)
	buf.WriteString("\nSQLSTATE: " + f.Code)
	if f.Detail != "" {
		buf.WriteString("\nDETAIL: " + f.Detail)
	}
	if f.Hint != "" {
		buf.WriteString("\nHINT: " + f.Hint)
	}
	if verbose {
		fmt.Fprintf(&buf, "\n--\n%+v", err)
	}
	fmt.Fprintln(w, buf.String())
}
