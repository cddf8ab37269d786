// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlsema/sqlsema/pkg/cli/exit"
	"github.com/sqlsema/sqlsema/pkg/sql/types"
	"github.com/sqlsema/sqlsema/pkg/util/leaktest"
	"github.com/sqlsema/sqlsema/pkg/util/log"
	"github.com/stretchr/testify/require"
)

// runCLI runs the command line with fresh flag values and returns what the
// command printed, the error it returned, and what doMain wrote to stderr
// together with the exit code.
func runCLI(t *testing.T, args ...string) (out string, errOut string, code exit.Code) {
	t.Helper()
	setCLIDefaults()
	defer types.ResetLimits()

	var outBuf, errBuf bytes.Buffer
	sqlsemaCmd.SetOut(&outBuf)
	defer sqlsemaCmd.SetOut(nil)
	defer func(w io.Writer) { stderr = w }(stderr)
	stderr = &errBuf

	code = doMain(Run(args))
	return outBuf.String(), errBuf.String(), code
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestResolveCommand(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	out, errOut, code := runCLI(t, "resolve", "DECIMAL(5,2)", "*", "DECIMAL(3,1)")
	require.Equal(t, exit.Success(), code, errOut)
	require.Equal(t, "DECIMAL(8,3)\nmax width: 11\n", out)

	out, _, code = runCLI(t, "resolve", "DECIMAL(5,2) NOT NULL", "merge", "BIGINT")
	require.Equal(t, exit.Success(), code)
	require.True(t, strings.HasPrefix(out, "DECIMAL(21,2)"), out)
}

func TestResolveCommandErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	testCases := []struct {
		args    []string
		code    exit.Code
		errText string
	}{
		{[]string{"resolve", "REAL", "mod", "INTEGER"}, exit.CompilationFailed(), "SQLSTATE: 42Y95"},
		{[]string{"resolve", "INTEGER", "^", "INTEGER"}, exit.CommandLineFlagError(), `unknown operator "^"`},
		{[]string{"resolve", "WIDGET", "+", "INTEGER"}, exit.CommandLineFlagError(), "left type"},
		{[]string{"resolve", "INTEGER", "+"}, exit.UnspecifiedError(), "accepts 3 arg(s)"},
		{[]string{"--log-threshold=loud", "resolve", "INTEGER", "+", "INTEGER"},
			exit.CommandLineFlagError(), `invalid --log-threshold "loud"`},
		{[]string{"--vmodule=resolve", "resolve", "INTEGER", "+", "INTEGER"},
			exit.CommandLineFlagError(), "invalid --vmodule"},
	}

	for _, tc := range testCases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, errOut, code := runCLI(t, tc.args...)
			require.Empty(t, out)
			require.Equal(t, tc.code, code)
			require.True(t, strings.HasPrefix(errOut, "ERROR: "), errOut)
			require.Contains(t, errOut, tc.errText)
		})
	}
}

func TestLimitsFlag(t *testing.T) {
	defer leaktest.AfterTest(t)()
	sc := log.Scope(t)
	defer sc.Close(t)

	path := writeFile(t, "limits.yaml", `
max_decimal_precision_scale: 38
db2_max_decimal_precision_scale: 38
`)
	out, errOut, code := runCLI(t, "--limits", path, "resolve", "DECIMAL(31,0)", "+", "DECIMAL(31,0)")
	require.Equal(t, exit.Success(), code, errOut)
	require.Equal(t, "DECIMAL(32,0)\nmax width: 33\n", out)
	require.Contains(t, sc.Contents(), "using limits from "+path)

	// The limits do not outlive the invocation.
	out, _, code = runCLI(t, "resolve", "DECIMAL(31,0)", "+", "DECIMAL(31,0)")
	require.Equal(t, exit.Success(), code)
	require.Equal(t, "DECIMAL(31,0)\nmax width: 32\n", out)

	bad := writeFile(t, "bad.yaml", "db2_max_decimal_precision_scale: 40\n")
	_, errOut, code = runCLI(t, "--limits", bad, "resolve", "INTEGER", "+", "INTEGER")
	require.Equal(t, exit.CommandLineFlagError(), code)
	require.Contains(t, errOut, "db2_max_decimal_precision_scale must be in (0, 31], got 40")

	_, _, code = runCLI(t, "--limits", filepath.Join(t.TempDir(), "missing.yaml"),
		"resolve", "INTEGER", "+", "INTEGER")
	require.Equal(t, exit.CommandLineFlagError(), code)
}

func TestCompileCommand(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	path := writeFile(t, "expr.yaml", `
columns:
  - {table: t, name: qty, type: INTEGER}
expr:
  op: "+"
  args:
    - {column: qty}
    - {const: "1"}
`)

	out, errOut, code := runCLI(t, "compile", path)
	require.Equal(t, exit.Success(), code, errOut)
	require.Contains(t, out, "expression: (qty + 1)\n")
	require.Contains(t, out, "bound:      (qty + 1)\n")
	require.Contains(t, out, "requires:   SELECT ON qty\n")
	require.Contains(t, out, "program:\n 0: load-column @0 (qty)\n")
	require.NotContains(t, out, "GetInt")

	out, errOut, code = runCLI(t, "compile", "--unbox", path)
	require.Equal(t, exit.Success(), code, errOut)
	require.Contains(t, out, "invoke-interface NumberDataValue.GetInt/0 -> int32")

	folded := writeFile(t, "folded.yaml", `
expr:
  op: "+"
  args:
    - {const: "1"}
    - {const: "2"}
`)
	out, _, code = runCLI(t, "compile", folded)
	require.Equal(t, exit.Success(), code)
	require.Contains(t, out, "bound:      3\n")

	out, _, code = runCLI(t, "compile", "--no-fold", folded)
	require.Equal(t, exit.Success(), code)
	require.Contains(t, out, "bound:      (1 + 2)\n")
}

func TestCompileCommandErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	path := writeFile(t, "bad.yaml", `
columns:
  - {name: n, type: INTEGER}
expr:
  op: timestamp
  args:
    - {column: n}
`)
	out, errOut, code := runCLI(t, "compile", path)
	require.Empty(t, out)
	require.Equal(t, exit.CompilationFailed(), code)
	require.Equal(t,
		"ERROR: the 'TIMESTAMP' function is not allowed on the 'INTEGER' type\nSQLSTATE: 42X25\n",
		errOut)

	_, _, code = runCLI(t, "compile", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Equal(t, exit.CommandLineFlagError(), code)
}

func TestVerboseErrorOutput(t *testing.T) {
	defer leaktest.AfterTest(t)()
	sc := log.Scope(t)
	defer sc.Close(t)

	_, errOut, code := runCLI(t, "-v", "2", "resolve", "REAL", "mod", "INTEGER")
	require.Equal(t, exit.CompilationFailed(), code)
	require.Contains(t, errOut, "SQLSTATE: 42Y95\n--\n")
	require.Contains(t, sc.Contents(), "resolving REAL mod INTEGER")
	require.Contains(t, sc.Contents(), "the 'mod' operator with a left operand type of 'REAL'")
}

func TestTypesCommand(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)

	out, errOut, code := runCLI(t, "types")
	require.Equal(t, exit.Success(), code, errOut)
	require.True(t, strings.HasSuffix(out, "(14 rows)\n"), out)

	var decimalRow string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "| DECIMAL ") {
			decimalRow = line
		}
	}
	require.NotEmpty(t, decimalRow, out)
	fields := strings.Fields(strings.ReplaceAll(decimalRow, "|", " "))
	require.Equal(t, []string{"DECIMAL", "70", "NUMERIC", "6", "NumberDataValue", "-"}, fields)
}
