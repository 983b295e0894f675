// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package callx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gomava/callx/call"
	"github.com/gomava/callx/codec"
	"github.com/gomava/callx/fault"
	"github.com/gomava/callx/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method. If the underlying implementation does not support it,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

var emptyHandlers = HandlerGroup{}

// readChunkSize is the size of the fixed chunk buffer used by the
// streaming read loop.
const readChunkSize = 4096

// A Client is a non-blocking request/response engine for a remote
// service. Its zero value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, codec.JSON as the wire codec, codec.DefaultQueries as the
// query encoder, timeout.DefaultPolicy as the timeout policy, no
// credentials, and an empty handler group.
//
// Client's HTTPDoer typically has internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines;
// each started call owns its state exclusively.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for all details of sending the HTTP request and
// receiving the response (connection pooling, redirects, TLS), while
// Client builds on top of it:
//
// • Client never blocks the caller: Start launches the exchange and
// returns immediately, and the call's single outcome is delivered to
// the caller-supplied continuations;
//
// • Client serializes the payload through a pluggable codec, into the
// request body for body methods or the URL query string for no-body
// methods (GET, DELETE);
//
// • Client accumulates the streamed response body and deserializes it
// into the call's expected type;
//
// • Client arms a per-call deadline and guarantees that exactly one of
// the two continuations fires, exactly once, however the deadline
// races with completion;
//
// • Client answers an authentication challenge by retrying exactly
// once with injected Basic credentials; and
//
// • Client funnels every failure path through one classifier so the
// error continuation always receives a best-effort value and a
// categorized cause.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer

	// Codec is the wire-format serializer/deserializer pair for
	// payloads and response bodies.
	//
	// If Codec is nil, codec.JSON is used.
	Codec codec.Codec

	// Queries encodes the payload of a no-body method (GET, DELETE)
	// into the request URL's query string.
	//
	// If Queries is nil, codec.DefaultQueries is used.
	Queries codec.Queries

	// TimeoutPolicy specifies the deadline armed for each call at
	// dispatch.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// ContentType is the MIME type sent in the Accept header and, when
	// a body is transmitted, the Content-Type header.
	//
	// If ContentType is empty, the codec's content type is used.
	ContentType string

	// Username and Password are the credentials injected when an
	// authentication challenge (status 401) is answered with the one
	// permitted retry. If Username is empty, challenges are not
	// retried and are delivered as protocol faults.
	Username string
	Password string

	// RequestHook, if non-nil, is invoked with each constructed
	// request before transmission, for header or transport-level
	// customization shared across the client's calls. It is owned by
	// the client instance; there is no process-wide hook.
	RequestHook func(*http.Request)

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// Logger, if non-nil, receives debug-level events for call start,
	// authentication retry, timeout, and call end, correlated by the
	// execution ID.
	Logger *zerolog.Logger
}

// Start begins executing a call and returns without blocking.
//
// Start validates the call's structural preconditions synchronously
// and reports a violation as its error return; every later failure
// (query encoding, serialization, transport, deserialization, timeout)
// is delivered through the call's error continuation instead. After a
// nil error return, exactly one of the call's continuations will be
// invoked, exactly once.
//
// The returned execution may be inspected while the call is in flight;
// it becomes final when AfterCallEnd fires.
func (cl *Client) Start(c *call.Call) (*call.Execution, error) {
	if c == nil {
		return nil, errors.New("callx: nil call")
	}
	if c.Method == "" {
		return nil, errors.New("callx: empty method")
	}
	if c.URL == nil {
		return nil, errors.New("callx: nil URL")
	}
	if c.Target == nil {
		return nil, errors.New("callx: nil target factory")
	}
	if c.OnSuccess == nil || c.OnError == nil {
		return nil, errors.New("callx: nil continuation")
	}

	e := call.NewExecution(c)
	go cl.run(e)
	return e, nil
}

// run is the exchange goroutine: the single delivery point for the
// call's outcome. It sequences dispatch, body write, response
// initiation, the read loop, and outcome delivery, consulting the
// completion guard to arbitrate against the deadline timer.
func (cl *Client) run(e *call.Execution) {
	c := e.Call
	handlers := cl.handlers()
	logger := cl.logger()

	handlers.run(BeforeCallStart, e)
	e.Start = time.Now()

	ctx, cancel := context.WithCancel(c.Context())
	defer cancel()
	d := cl.timeoutPolicy().Timeout(c)
	e.Arm(d, cancel)

	logger.Debug().
		Stringer("call", e.ID).
		Str("method", c.Method).
		Stringer("url", c.URL).
		Dur("timeout", d).
		Msg("call started")

	err := cl.exchange(ctx, e)

	// First-writer-wins: if the deadline timer settled the execution
	// before we did, the timer owns the abort and we must not deliver
	// a success, even if the transport finished in a photo finish.
	won := e.Settle()
	e.Disarm()
	e.End = time.Now()

	if !won {
		logger.Debug().Stringer("call", e.ID).Dur("duration", e.Duration()).Msg("call deadline exceeded")
		handlers.run(AfterTimeout, e)
		if err == nil {
			err = urlErrorWrap(c, context.DeadlineExceeded)
		}
	}

	if err != nil {
		cl.fail(e, err, logger)
	} else {
		cl.succeed(e, logger)
	}

	handlers.run(AfterCallEnd, e)
}

// exchange runs the phases between dispatch and the end of the read
// loop. Any non-nil return funnels into the classifier in fail; a nil
// return means e.Body holds the complete response to a success status.
func (cl *Client) exchange(ctx context.Context, e *call.Execution) error {
	c := e.Call

	u := *c.URL
	var body []byte
	if c.NoBody() {
		if c.Payload != nil {
			q, err := cl.queries().Encode(c.Payload)
			if err != nil {
				return err
			}
			if q != "" {
				if u.RawQuery == "" {
					u.RawQuery = q
				} else {
					u.RawQuery += "&" + q
				}
			}
		}
	} else if c.Payload != nil {
		var err error
		body, err = cl.serialize(c.Payload)
		if err != nil {
			return err
		}
	}

	resp, err := cl.attempt(ctx, e, &u, body, false)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && e.Attempt == 0 && cl.Username != "" {
		// One-shot authentication retry. A second challenge falls
		// through to the protocol fault path below.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		e.Attempt++
		lg := cl.logger()
		lg.Debug().Stringer("call", e.ID).Msg("authentication challenge, retrying with credentials")
		cl.handlers().run(AfterAuthChallenge, e)
		resp, err = cl.attempt(ctx, e, &u, body, true)
		if err != nil {
			return err
		}
	}

	cl.handlers().run(BeforeReadBody, e)
	if err = readBody(e, resp.Body); err != nil {
		return urlErrorWrap(c, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cl.protocolFault(e)
	}
	return nil
}

// attempt constructs and transmits one request. With authRetry set it
// injects the client's Basic credentials, making this the retried
// attempt.
func (cl *Client) attempt(ctx context.Context, e *call.Execution, u *url.URL, body []byte, authRetry bool) (*http.Response, error) {
	c := e.Call
	req := c.ToRequest(ctx, u, body)
	ct := cl.contentType()
	req.Header.Set("Accept", ct+", */*")
	if len(body) > 0 {
		req.Header.Set("Content-Type", ct)
	}
	if authRetry {
		req.SetBasicAuth(cl.Username, cl.Password)
	}
	if hook := cl.RequestHook; hook != nil {
		hook(req)
	}
	e.Request = req
	cl.handlers().run(BeforeAttempt, e)
	resp, err := cl.doer().Do(e.Request)
	if err != nil {
		return nil, urlErrorWrap(c, err)
	}
	e.Response = resp
	return resp, nil
}

// readBody is the streaming read loop: fixed-size chunk reads appended
// to the execution's buffer until end of stream. The response stream
// is released in all cases.
func readBody(e *call.Execution, body io.ReadCloser) error {
	defer func() {
		_ = body.Close()
	}()
	chunk := make([]byte, readChunkSize)
	for {
		n, err := body.Read(chunk)
		if n > 0 {
			e.Body = append(e.Body, chunk[:n]...)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// protocolFault builds the structured fault for a non-2xx response,
// attempting to decode the error body as the call's expected type and
// degrading to a payload-free fault that still carries the status
// code.
func (cl *Client) protocolFault(e *call.Execution) error {
	resp := e.Response
	f := fault.New(resp.StatusCode, resp.Status)
	if len(e.Body) > 0 {
		v := e.Call.Target()
		if err := cl.codec().Decode(v, bytes.NewReader(e.Body)); err == nil {
			f.Payload = v
		}
	}
	return f
}

// fail is the error classifier: the single funnel through which every
// failure path converges. It invokes the error continuation exactly
// once with the best available partial information and never
// re-throws.
func (cl *Client) fail(e *call.Execution, err error, logger zerolog.Logger) {
	c := e.Call
	cat := fault.Categorize(err)
	if cat == fault.Auth {
		err = urlErrorWrap(c, err)
	}
	e.Err = err

	logger.Debug().
		Stringer("call", e.ID).
		Str("category", cat.String()).
		Int("status", e.StatusCode()).
		Dur("duration", e.Duration()).
		Err(err).
		Msg("call failed")

	var f *fault.Fault
	if errors.As(err, &f) {
		c.OnError(f.Payload, f)
		return
	}
	c.OnError(nil, err)
}

// succeed rewinds the accumulated body and hands it to the
// deserializer; a deserialization failure is delivered to the error
// continuation with a default value.
func (cl *Client) succeed(e *call.Execution, logger zerolog.Logger) {
	c := e.Call
	v := c.Target()
	if err := cl.codec().Decode(v, bytes.NewReader(e.Body)); err != nil {
		e.Err = err
		logger.Debug().
			Stringer("call", e.ID).
			Int("status", e.StatusCode()).
			Dur("duration", e.Duration()).
			Err(err).
			Msg("call response decode failed")
		c.OnError(nil, err)
		return
	}
	logger.Debug().
		Stringer("call", e.ID).
		Int("status", e.StatusCode()).
		Int("attempt", e.Attempt).
		Dur("duration", e.Duration()).
		Msg("call succeeded")
	c.OnSuccess(v)
}

// serialize converts the payload to request body bytes: raw byte-like
// payloads pass through untouched, everything else goes through the
// codec.
func (cl *Client) serialize(payload interface{}) ([]byte, error) {
	b, ok, err := call.PayloadBytes(payload)
	if ok {
		return b, err
	}
	var buf bytes.Buffer
	if err := cl.codec().Encode(payload, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (cl *Client) CloseIdleConnections() {
	doer := cl.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (cl *Client) doer() HTTPDoer {
	if cl.HTTPDoer == nil {
		return http.DefaultClient
	}

	return cl.HTTPDoer
}

func (cl *Client) codec() codec.Codec {
	if cl.Codec == nil {
		return codec.JSON
	}

	return cl.Codec
}

func (cl *Client) queries() codec.Queries {
	if cl.Queries == nil {
		return codec.DefaultQueries
	}

	return cl.Queries
}

func (cl *Client) timeoutPolicy() timeout.Policy {
	if cl.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return cl.TimeoutPolicy
}

func (cl *Client) handlers() *HandlerGroup {
	if cl.Handlers == nil {
		return &emptyHandlers
	}

	return cl.Handlers
}

func (cl *Client) contentType() string {
	if cl.ContentType != "" {
		return cl.ContentType
	}

	return cl.codec().ContentType()
}

func (cl *Client) logger() zerolog.Logger {
	if cl.Logger != nil {
		return *cl.Logger
	}

	return zerolog.Nop()
}

func urlErrorWrap(c *call.Call, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(c.Method),
		URL: c.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
