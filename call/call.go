// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const nilCtxMsg = "callx/call: nil context"

// A Call describes one logical request/response exchange to be started
// by a client.
//
// A Call carries the target, the payload, and the pair of continuations
// that will receive the exchange's single outcome. It does not carry
// any in-flight state; that lives in the Execution created when the
// call is started.
//
// The continuation fields are untyped. The generic helpers in the root
// callx package (Send, Get, Post, and friends) populate them with
// adapters around the caller's typed functions, so most users never
// touch them directly.
//
// Like an http.Request, a Call has a context bounding its whole
// lifetime. Change it by copying the Call with WithContext.
type Call struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). It may
	// not be empty.
	Method string

	// URL specifies the target to access. For a no-body method with a
	// non-nil payload, the client appends the payload's query-string
	// encoding to a copy of this URL; the field itself is never
	// mutated by the client.
	URL *urlpkg.URL

	// Header contains request header fields to send in addition to the
	// Accept and Content-Type headers the client manages itself. The
	// header is cloned into each outgoing request, so a retried
	// request cannot leak injected headers back into the Call.
	Header http.Header

	// Payload is the value to transmit with the call, or nil for none.
	//
	// For a body method (POST, PUT, ...) the payload is serialized
	// through the client's codec into the request body, except that a
	// []byte, string, io.Reader, or io.ReadCloser payload is sent raw
	// (see PayloadBytes). For a no-body method (GET, DELETE) the
	// payload is encoded into the URL's query string instead.
	Payload interface{}

	// Target allocates a fresh value for the deserializer to decode a
	// response body into. It is called once per decode attempt: for
	// the success body, and again for a best-effort decode of an error
	// body into the same expected type.
	Target func() interface{}

	// OnSuccess receives the decoded response value. Exactly one of
	// OnSuccess and OnError is invoked per call, exactly once.
	OnSuccess func(interface{})

	// OnError receives the call's failure outcome: a best-effort
	// decoded value (possibly nil) and the underlying cause. Exactly
	// one of OnSuccess and OnError is invoked per call, exactly once.
	OnError func(interface{}, error)

	// ctx bounds the whole exchange. It should only be modified by
	// copying the Call using WithContext.
	ctx context.Context
}

// New returns a new Call for the given method, URL, and optional
// payload, using the background context.
func New(method, url string, payload interface{}) (*Call, error) {
	return NewWithContext(context.Background(), method, url, payload)
}

// NewWithContext returns a new Call given a context, method, URL, and
// optional payload.
//
// Unlike http.NewRequest, an empty method is rejected rather than
// defaulted: the method chooses the transmission path (body versus
// query string), so it must be explicit.
func NewWithContext(ctx context.Context, method, url string, payload interface{}) (*Call, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		return nil, errors.New("callx/call: empty method")
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("callx/call: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	return &Call{
		ctx:     ctx,
		Method:  method,
		URL:     u,
		Header:  make(http.Header),
		Payload: payload,
	}, nil
}

// Context returns the call's context, which bounds the entire exchange
// including any authentication retry. The returned context is always
// non-nil; it defaults to the background context.
func (c *Call) Context() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of c with its context changed to
// ctx, which must be non-nil.
func (c *Call) WithContext(ctx context.Context) *Call {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	c2 := new(Call)
	*c2 = *c
	c2.ctx = ctx
	return c2
}

// NoBody reports whether the call's method transmits its payload in
// the URL query string rather than the request body.
func (c *Call) NoBody() bool {
	return c.Method == "GET" || c.Method == "DELETE"
}

// SetBasicAuth sets the call's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
//
// The client injects this header itself on an authentication retry;
// use SetBasicAuth only to authenticate proactively on the first
// attempt.
func (c *Call) SetBasicAuth(username, password string) {
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	c.Header.Set("Authorization", "Basic "+BasicAuth(username, password))
}

// ToRequest creates an HTTP request for the call bound to ctx, which
// may not be nil. The request targets u (the call's URL, possibly with
// an appended query string) and carries body as its content.
//
// The call's header is cloned into the request, so the request can be
// mutated (for example to inject an Authorization header on a retry)
// without side effects on the Call. A non-empty body is replayable via
// the request's GetBody.
func (c *Call) ToRequest(ctx context.Context, u *urlpkg.URL, body []byte) *http.Request {
	r := template.WithContext(ctx)
	r.Method = c.Method
	r.URL = u
	r.Host = u.Host
	r.Header = c.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(body) > 0 {
		r.Body = payloadReader(body)
		r.GetBody = func() (io.ReadCloser, error) {
			return payloadReader(body), nil
		}
		r.ContentLength = int64(len(body))
	}
	return r
}

// BasicAuth encodes a username and password as an HTTP Basic
// Authentication credential.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func BasicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func validMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>
	*/
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !isTokenRune(r)
}

// isTokenRune is lifted verbatim from x/net/http/httpguts/httplex.go
// (but converted to non-exported). It classifies a rune as being valid
// for a token as defined in https://tools.ietf.org/html/rfc7230#section-3.2.6
func isTokenRune(r rune) bool {
	i := int(r)
	return i < len(isTokenTable) && isTokenTable[i]
}

var isTokenTable = [127]bool{
	'!':  true,
	'#':  true,
	'$':  true,
	'%':  true,
	'&':  true,
	'\'': true,
	'*':  true,
	'+':  true,
	'-':  true,
	'.':  true,
	'0':  true,
	'1':  true,
	'2':  true,
	'3':  true,
	'4':  true,
	'5':  true,
	'6':  true,
	'7':  true,
	'8':  true,
	'9':  true,
	'A':  true,
	'B':  true,
	'C':  true,
	'D':  true,
	'E':  true,
	'F':  true,
	'G':  true,
	'H':  true,
	'I':  true,
	'J':  true,
	'K':  true,
	'L':  true,
	'M':  true,
	'N':  true,
	'O':  true,
	'P':  true,
	'Q':  true,
	'R':  true,
	'S':  true,
	'T':  true,
	'U':  true,
	'W':  true,
	'V':  true,
	'X':  true,
	'Y':  true,
	'Z':  true,
	'^':  true,
	'_':  true,
	'`':  true,
	'a':  true,
	'b':  true,
	'c':  true,
	'd':  true,
	'e':  true,
	'f':  true,
	'g':  true,
	'h':  true,
	'i':  true,
	'j':  true,
	'k':  true,
	'l':  true,
	'm':  true,
	'n':  true,
	'o':  true,
	'p':  true,
	'q':  true,
	'r':  true,
	's':  true,
	't':  true,
	'u':  true,
	'v':  true,
	'w':  true,
	'x':  true,
	'y':  true,
	'z':  true,
	'|':  true,
	'~':  true,
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
