// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func resetLogging(t *testing.T) {
	t.Helper()
	SetThreshold(Severity_INFO)
	SetVerbosity(0)
	require.NoError(t, SetVModule(""))
}

func TestSeverityByName(t *testing.T) {
	for _, name := range []string{"info", "WARNING", "Error", "fatal", "none"} {
		s, ok := SeverityByName(name)
		require.True(t, ok, name)
		require.Equal(t, strings.ToUpper(name), s.String())
	}
	_, ok := SeverityByName("loud")
	require.False(t, ok)
	require.Equal(t, "7", Severity(7).String())
}

func TestLogfThreshold(t *testing.T) {
	sc := Scope(t)
	defer sc.Close(t)
	defer resetLogging(t)
	ctx := context.Background()

	Infof(ctx, "first %d", 1)
	SetThreshold(Severity_WARNING)
	Infof(ctx, "dropped")
	Logf(ctx, Severity_ERROR, "second %s", "entry")
	Logf(ctx, Severity_FATAL, "third")
	SetThreshold(Severity_NONE)
	Logf(ctx, Severity_FATAL, "silenced")

	lines := strings.Split(strings.TrimSpace(sc.Contents()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "I"), lines[0])
	require.True(t, strings.HasSuffix(lines[0], "log_test.go:43  first 1"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "E"), lines[1])
	require.True(t, strings.HasSuffix(lines[1], "  second entry"), lines[1])
	require.True(t, strings.HasPrefix(lines[2], "F"), lines[2])
}

func TestContextTags(t *testing.T) {
	sc := Scope(t)
	defer sc.Close(t)

	ctx := logtags.AddTag(context.Background(), "sqlsema", nil)
	ctx = logtags.AddTag(ctx, "op", "resolve")
	Infof(ctx, "hello %s", redact.Safe("world"))
	require.Contains(t, sc.Contents(), "[sqlsema,op=resolve] hello world\n")

	require.Equal(t, "no args %d", FormatWithContextTags(context.Background(), "no args %d"))
	require.Equal(t, "ab", FormatWithContextTags(context.Background(), "", "a", "b"))
}

func TestVerbosity(t *testing.T) {
	sc := Scope(t)
	defer sc.Close(t)
	defer resetLogging(t)
	ctx := context.Background()

	require.False(t, V(1))
	VEventf(ctx, 1, "hidden")
	require.Empty(t, sc.Contents())

	SetVerbosity(2)
	require.True(t, V(1))
	require.True(t, V(2))
	require.False(t, V(3))
	VEventf(ctx, 2, "shown")
	require.Contains(t, sc.Contents(), "shown")
}

func TestVModule(t *testing.T) {
	defer Scope(t).Close(t)
	defer resetLogging(t)

	require.NoError(t, SetVModule("log_test=2, other.go=5"))
	require.True(t, V(2))
	require.False(t, V(3))

	require.NoError(t, SetVModule("other=5"))
	require.False(t, V(1))

	require.ErrorContains(t, SetVModule("log_test"), `invalid vmodule entry "log_test"`)
	require.ErrorContains(t, SetVModule("log_test=x"), "invalid vmodule level")
}

type fakeT struct {
	failed bool
	logged []string
}

func (f *fakeT) Failed() bool { return f.failed }
func (f *fakeT) Helper()      {}
func (f *fakeT) Logf(format string, args ...interface{}) {
	f.logged = append(f.logged, fmt.Sprintf(format, args...))
}

func TestScopeReplaysOnFailure(t *testing.T) {
	ctx := context.Background()

	ft := &fakeT{}
	sc := Scope(ft)
	Infof(ctx, "quiet")
	sc.Close(ft)
	require.Empty(t, ft.logged)

	ft = &fakeT{failed: true}
	sc = Scope(ft)
	Infof(ctx, "loud")
	sc.Close(ft)
	require.Len(t, ft.logged, 1)
	require.Contains(t, ft.logged[0], "loud")
}
