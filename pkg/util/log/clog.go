// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// These constants identify the log levels in order of increasing Severity.
const (
	Severity_INFO Severity = iota
	Severity_WARNING
	Severity_ERROR
	Severity_FATAL
	Severity_NONE
)

const severityChar = "IWEF"

var severityName = []string{
	Severity_INFO:    "INFO",
	Severity_WARNING: "WARNING",
	Severity_ERROR:   "ERROR",
	Severity_FATAL:   "FATAL",
	Severity_NONE:    "NONE",
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	if i := int(s); i >= 0 && i < len(severityName) {
		return severityName[i]
	}
	return strconv.FormatInt(int64(s), 10)
}

// SeverityByName attempts to parse the passed in string into a severity
// (i.e. ERROR, INFO). If it succeeds, the returned bool is set to true.
func SeverityByName(s string) (Severity, bool) {
	s = strings.ToUpper(s)
	for i, name := range severityName {
		if name == s {
			return Severity(i), true
		}
	}
	return 0, false
}

// Level specifies a level of verbosity for V logs.
type Level int32

// loggingT collects all the global state of the logging setup.
type loggingT struct {
	mu struct {
		sync.Mutex
		out io.Writer
	}
	threshold atomic.Int32
	verbosity atomic.Int32
	// vmodule maps file base names (without .go) to a verbosity level.
	vmodule atomic.Pointer[map[string]Level]
}

var logging = func() *loggingT {
	l := &loggingT{}
	l.mu.out = os.Stderr
	l.threshold.Store(int32(Severity_INFO))
	return l
}()

// SetOutput redirects all log output to w and returns a function that
// restores the previous destination.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = prev
	}
}

// SetThreshold sets the minimum severity that is written out.
func SetThreshold(s Severity) {
	logging.threshold.Store(int32(s))
}

// SetVerbosity sets the global verbosity level used by V and VEventf.
func SetVerbosity(v Level) {
	logging.verbosity.Store(int32(v))
}

// SetVModule sets per-file verbosity from a spec of the form
// "file=level,file2=level2".
func SetVModule(spec string) error {
	m := make(map[string]Level)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, lvl, ok := strings.Cut(part, "=")
		if !ok {
			return errors.Newf("invalid vmodule entry %q", part)
		}
		v, err := strconv.Atoi(lvl)
		if err != nil {
			return errors.Wrapf(err, "invalid vmodule level in %q", part)
		}
		m[strings.TrimSuffix(name, ".go")] = Level(v)
	}
	logging.vmodule.Store(&m)
	return nil
}

// vDepth returns true if logging at the given verbosity level is enabled
// for the caller at the given stack depth.
func vDepth(l Level, depth int) bool {
	if Level(logging.verbosity.Load()) >= l {
		return true
	}
	m := logging.vmodule.Load()
	if m == nil || len(*m) == 0 {
		return false
	}
	_, file, _, ok := runtime.Caller(depth + 1)
	if !ok {
		return false
	}
	base := strings.TrimSuffix(filepath.Base(file), ".go")
	v, ok := (*m)[base]
	return ok && v >= l
}

// outputLogEntry writes one formatted entry.
func (l *loggingT) outputLogEntry(s Severity, file string, line int, msg string) {
	if int32(s) < l.threshold.Load() || s >= Severity_NONE {
		return
	}
	var sb strings.Builder
	now := time.Now()
	sb.WriteByte(severityChar[s])
	sb.WriteString(now.Format("060102 15:04:05.000000"))
	fmt.Fprintf(&sb, " %s:%d  ", filepath.Base(file), line)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteByte('\n')
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.mu.out, sb.String())
}
