// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package callx

import (
	"context"

	"github.com/gomava/callx/call"
)

// Starter is the interface that wraps the basic Start method.
//
// Start begins executing a call without blocking and returns its
// execution. Client implements the Starter interface, and any other
// Starter implementation must behave substantially the same as
// Client.Start: after a nil error return, exactly one of the call's
// continuations fires, exactly once.
type Starter interface {
	Start(c *call.Call) (*call.Execution, error)
}

// Send starts a call to the given method and URL on s, delivering the
// response decoded as T to onSuccess, or the classified failure to
// onError. It returns as soon as the call is dispatched.
//
// The payload may be nil. For a no-body method (GET, DELETE) a non-nil
// payload is encoded into the URL query string; for any other method
// it is serialized into the request body.
//
// The onError continuation receives the best-effort decoded value (the
// zero value of T when no value could be decoded) and the underlying
// cause: a *fault.Fault for a non-2xx response, or the raw transport,
// serialization, or deserialization error otherwise.
func Send[T any](s Starter, method, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	return SendContext[T](context.Background(), s, method, url, payload, onSuccess, onError)
}

// SendContext is Send with a caller-supplied context bounding the
// whole exchange.
func SendContext[T any](ctx context.Context, s Starter, method, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	c, err := call.NewWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	Bind[T](c, onSuccess, onError)
	return s.Start(c)
}

// Get starts a GET call to the specified URL, using the same policies
// followed by Send. A non-nil payload becomes the URL query string.
func Get[T any](s Starter, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	return Send[T](s, "GET", url, payload, onSuccess, onError)
}

// Post starts a POST call to the specified URL, using the same
// policies followed by Send. A non-nil payload becomes the request
// body.
func Post[T any](s Starter, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	return Send[T](s, "POST", url, payload, onSuccess, onError)
}

// Put starts a PUT call to the specified URL, using the same policies
// followed by Send. A non-nil payload becomes the request body.
func Put[T any](s Starter, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	return Send[T](s, "PUT", url, payload, onSuccess, onError)
}

// Delete starts a DELETE call to the specified URL, using the same
// policies followed by Send. A non-nil payload becomes the URL query
// string.
func Delete[T any](s Starter, url string, payload interface{}, onSuccess func(T), onError func(T, error)) (*call.Execution, error) {
	return Send[T](s, "DELETE", url, payload, onSuccess, onError)
}

// Bind populates c's decode-target factory and untyped continuations
// with adapters around the typed pair onSuccess/onError. Use Bind with
// call.New when constructing a Call by hand; the Send family calls it
// for you.
func Bind[T any](c *call.Call, onSuccess func(T), onError func(T, error)) {
	c.Target = func() interface{} {
		return new(T)
	}
	c.OnSuccess = func(v interface{}) {
		onSuccess(*(v.(*T)))
	}
	c.OnError = func(v interface{}, cause error) {
		var t T
		if p, ok := v.(*T); ok && p != nil {
			t = *p
		}
		onError(t, cause)
	}
}
