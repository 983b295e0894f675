// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package callx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeCallStart identifies the event that occurs before the
	// exchange starts.
	//
	// When Client fires BeforeCallStart, the execution is non-nil but
	// the only fields that have been set are the call and the ID.
	BeforeCallStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// request attempt: once for the initial attempt and, if an
	// authentication retry is issued, once more for the retried
	// attempt.
	//
	// When Client fires BeforeAttempt, the execution's request field
	// is set to the HTTP request that WILL BE sent after all
	// BeforeAttempt handlers have finished. Handlers may modify the
	// request, for example to sign it.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after a request
	// attempt has resulted in an HTTP response (as opposed to an
	// error) but before the streaming read loop accumulates the
	// response body.
	//
	// BeforeReadBody never fires if the attempt ended in a transport
	// error, but always fires when a response is received, regardless
	// of its status code.
	BeforeReadBody
	// AfterAuthChallenge identifies the event that occurs after the
	// first response came back as an authentication challenge and the
	// client decided to retry with injected credentials. It fires at
	// most once per call, before the retried attempt's BeforeAttempt.
	AfterAuthChallenge
	// AfterTimeout identifies the event that occurs when the call's
	// deadline won the completion guard, so the outcome about to be
	// delivered is the timeout failure rather than whatever the
	// transport produced.
	AfterTimeout
	// AfterCallEnd identifies the event that occurs after the call's
	// single outcome has been delivered to a continuation. The
	// execution is final: its end time is set and no further changes
	// will be made to it.
	AfterCallEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeCallStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAuthChallenge",
	"AfterTimeout",
	"AfterCallEnd",
}

// Events returns a slice containing all events which can occur during
// a call started by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeCallStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAuthChallenge,
		AfterTimeout,
		AfterCallEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
