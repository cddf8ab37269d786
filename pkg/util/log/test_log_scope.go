// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"sync"
)

// tShim is the subset of testing.TB used by TestLogScope.
type tShim interface {
	Failed() bool
	Helper()
	Logf(format string, args ...interface{})
}

// TestLogScope represents the lifetime of a logging output capture for a
// test. While the scope is open, log output is buffered; it is replayed
// through t.Logf on Close if the test failed and discarded otherwise.
type TestLogScope struct {
	restore func()
	mu      sync.Mutex
	buf     bytes.Buffer
}

// Scope creates a TestLogScope. Use with:
//
//	defer log.Scope(t).Close(t)
func Scope(t tShim) *TestLogScope {
	t.Helper()
	sc := &TestLogScope{}
	sc.restore = SetOutput(sc)
	return sc
}

// Write implements io.Writer.
func (sc *TestLogScope) Write(p []byte) (int, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.buf.Write(p)
}

// Contents returns what was logged so far.
func (sc *TestLogScope) Contents() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.buf.String()
}

// Close restores the previous log output.
func (sc *TestLogScope) Close(t tShim) {
	t.Helper()
	sc.restore()
	if t.Failed() {
		if c := sc.Contents(); c != "" {
			t.Logf("test logs:\n%s", c)
		}
	}
}
