// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// A Fault is the structured outcome of a protocol error: a well-formed
// HTTP response whose status code indicates failure.
//
// The status code and status text are always populated. Payload is
// populated on a best-effort basis: if the error response body could
// be deserialized as the call's expected response type it carries the
// decoded value, otherwise it is nil. The status code is preserved
// either way.
//
// Fault implements the error interface so it can travel through error
// returns and be recovered with errors.As.
type Fault struct {
	// StatusCode is the HTTP status code of the error response, for
	// example 404.
	StatusCode int

	// Status is the status description, for example "404 Not Found".
	Status string

	// Payload is the error response body decoded as the call's
	// expected response type, or nil if the body was empty or could
	// not be decoded.
	Payload interface{}
}

// New returns a Fault carrying the given status code and description
// and no payload.
func New(statusCode int, status string) *Fault {
	return &Fault{StatusCode: statusCode, Status: status}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("callx/fault: HTTP %s", f.Status)
}
