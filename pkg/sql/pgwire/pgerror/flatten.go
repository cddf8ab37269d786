// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlsema/sqlsema/pkg/sql/pgwire/pgcode"
)

// InternalErrorPrefix is prepended on internal errors.
const InternalErrorPrefix = "internal error: "

// Error is the flattened, client-facing form of an error: a stable code,
// the message, and the reportable (PII-free) arguments that were used to
// build it. No localization happens here.
type Error struct {
	Code    string
	Message string
	Hint    string
	Detail  string
	// SafeArgs are the arguments that were marked safe for reporting, for
	// example operator text and SQL type names.
	SafeArgs []string
}

// Flatten turns any error into a pgerror with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:    GetPGCode(err).String(),
		Message: err.Error(),
		Hint:    errors.FlattenHints(err),
		Detail:  errors.FlattenDetails(err),
	}
	for _, payload := range errors.GetAllSafeDetails(err) {
		resErr.SafeArgs = append(resErr.SafeArgs, payload.SafeDetails...)
	}
	if resErr.Code == pgcode.Internal.String() {
		if !strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
			// The internal error prefix wasn't there already. Add it.
			resErr.Message = InternalErrorPrefix + resErr.Message
		}
	}
	return resErr
}

// Error implements the error interface.
func (pg *Error) Error() string { return pg.Message }
