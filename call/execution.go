// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// An Execution is the mutable runtime state of a single in-flight
// Call. It is created when the call is started, updated as the
// exchange progresses through its phases, and becomes static once the
// call's outcome has been delivered.
//
// An Execution is exclusively owned by its call. Event handlers may
// inspect it but should treat the exported fields as read-only; the
// one sanctioned mutation point is the outgoing Request during the
// BeforeAttempt event.
//
// The only piece of Execution state shared between concurrently firing
// paths is the completion guard, reachable through Settle and Settled.
// Everything else is touched by at most one goroutine at a time.
type Execution struct {
	// Call is the call being executed. It is never nil.
	Call *Call

	// ID identifies this execution in logs. It is assigned when the
	// call is started and never changes.
	ID uuid.UUID

	// Start is the time the call was dispatched. It is assigned a
	// non-zero value when the exchange starts and is constant
	// thereafter.
	Start time.Time

	// End is the time the exchange reached its terminal state. It is
	// zero while the call is in flight.
	End time.Time

	// Attempt is the zero-based number of the current request attempt:
	// zero for the initial attempt, one after the single permitted
	// authentication retry. It never exceeds one.
	Attempt int

	// Request is the HTTP request sent in the current or most recent
	// attempt. It is reassigned when an authentication retry rebuilds
	// the request.
	Request *http.Request

	// Response is the HTTP response received in the most recent
	// attempt, or nil if the attempt ended in a transport error or is
	// still underway.
	Response *http.Response

	// Body accumulates the response body as the read loop appends
	// chunks to it. Once the exchange ends it holds the complete body
	// delivered by the transport.
	Body []byte

	// Err is the error the exchange terminated with, or nil for a
	// successful exchange. It is assigned at most once, immediately
	// before the error continuation is invoked.
	Err error

	// completed is the completion guard. It starts at zero and is
	// incremented by each path reaching a terminal event; only the
	// incrementer that observes the transition from zero owns the
	// shared teardown actions.
	completed int32

	// timer is the deadline timer. It is live only between Arm and
	// the first terminal event.
	timer *time.Timer
}

// NewExecution returns a fresh Execution for c with an assigned ID.
func NewExecution(c *Call) *Execution {
	return &Execution{Call: c, ID: uuid.New()}
}

// Settle attempts to move the execution to its terminal state. It
// returns true for exactly one caller across the execution's lifetime:
// the one that observed the transition. That caller owns the teardown
// actions that assume sole ownership (aborting the transport handle,
// suppressing a late success). All other callers must leave the shared
// resources alone.
//
// Settle is safe to call from the deadline timer goroutine and the
// exchange goroutine concurrently; it is the call's single atomic
// synchronization point.
func (e *Execution) Settle() bool {
	return atomic.AddInt32(&e.completed, 1) == 1
}

// Settled reports whether the execution has reached its terminal
// state.
func (e *Execution) Settled() bool {
	return atomic.LoadInt32(&e.completed) > 0
}

// Arm starts the execution's deadline timer. If the deadline elapses
// before any other path settles the execution, abort is invoked to
// cancel the in-flight transport operation; the active phase observes
// the cancellation as an ordinary transport failure. If another path
// settles first, expiry does nothing.
//
// Arm must be called at most once, at dispatch. The deadline is
// wall-clock from that point and is not reset by activity.
func (e *Execution) Arm(d time.Duration, abort func()) {
	e.timer = time.AfterFunc(d, func() {
		if e.Settle() {
			abort()
		}
	})
}

// Disarm stops the deadline timer, releasing it without firing. It is
// a no-op if the timer already fired or was never armed. Every exit
// path must disarm before the execution's resources are released.
func (e *Execution) Disarm() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

// StatusCode returns the status code of the HTTP response from the
// most recent request attempt, or 0 if no response was received.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// request attempt. If there is no HTTP response, the nil header is
// returned, which is safe for read-only use.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the exchange: zero before it
// starts, elapsed time while it is in flight, and End minus Start once
// it has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the exchange has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the exchange has ended. Once Ended returns
// true there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}
