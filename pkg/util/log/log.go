// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "context"

// V returns true if the logging verbosity is set to the specified level or
// higher, globally or for the calling file.
func V(level Level) bool {
	return vDepth(level, 1)
}

// Infof logs to the INFO log.
// It extracts log tags from the context and logs them along with the given
// message. Arguments are handled in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, 1, format, args)
}

// Logf logs at the given severity. It has the signature of the logger
// callbacks accepted by the cli packages.
func Logf(ctx context.Context, sev Severity, format string, args ...interface{}) {
	addStructured(ctx, sev, 1, format, args)
}

// VEventf logs the message at the INFO severity if the verbosity level is at
// least the given level.
func VEventf(ctx context.Context, level Level, format string, args ...interface{}) {
	if vDepth(level, 1) {
		addStructured(ctx, Severity_INFO, 1, format, args)
	}
}
