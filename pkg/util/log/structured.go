// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, &buf)
	renderArgs(&buf, format, args...)
	return buf.String()
}

func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil || len(tags.Get()) == 0 {
		return
	}
	buf.WriteByte('[')
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.Value(); v != nil {
			buf.WriteByte('=')
			fmt.Fprint(buf, v)
		}
	}
	buf.WriteString("] ")
}

// renderArgs renders the message. Arguments go through redact so that
// values implementing redact.SafeFormatter print the same way they do in
// error messages; markers are stripped since the log is not redactable.
func renderArgs(buf *strings.Builder, format string, args ...interface{}) {
	if len(args) == 0 {
		buf.WriteString(format)
		return
	}
	var s redact.RedactableString
	if format == "" {
		s = redact.Sprint(args...)
	} else {
		s = redact.Sprintf(format, args...)
	}
	buf.WriteString(s.StripMarkers())
}

// addStructured creates a structured log entry to be written to the
// specified facility of the logger.
func addStructured(
	ctx context.Context, s Severity, depth int, format string, args []interface{},
) {
	if ctx == nil {
		panic("nil context")
	}
	_, file, line, _ := runtime.Caller(depth + 1)
	msg := FormatWithContextTags(ctx, format, args...)
	logging.outputLogEntry(s, file, line, msg)
}
