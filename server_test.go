// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package callx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gomava/callx/call"
)

// item is the response type most tests exchange with the test server.
type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// itemQuery is a typical no-body payload, encoded into the query
// string by the default query encoder.
type itemQuery struct {
	ID int `url:"id"`
}

// outcome is one delivery observed by a probe: either a success value
// or an error value plus its cause.
type outcome[T any] struct {
	value T
	err   error
}

// A probe supplies the continuation pair for a call under test and
// records every delivery, so tests can await the outcome and assert
// the exactly-once property.
type probe[T any] struct {
	ch    chan outcome[T]
	fires int32
}

func newProbe[T any]() *probe[T] {
	return &probe[T]{ch: make(chan outcome[T], 4)}
}

func (p *probe[T]) onSuccess(v T) {
	atomic.AddInt32(&p.fires, 1)
	p.ch <- outcome[T]{value: v}
}

func (p *probe[T]) onError(v T, err error) {
	atomic.AddInt32(&p.fires, 1)
	p.ch <- outcome[T]{value: v, err: err}
}

// await blocks until the call delivers an outcome, failing the test if
// none arrives within a generous deadline.
func (p *probe[T]) await(t *testing.T) outcome[T] {
	t.Helper()
	select {
	case o := <-p.ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome delivered")
		panic("unreachable")
	}
}

func (p *probe[T]) count() int32 {
	return atomic.LoadInt32(&p.fires)
}

// newServer starts an httptest server torn down with the test.
func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// endGate is a handler group whose AfterCallEnd chain signals a
// channel, letting tests wait until the execution is final before
// inspecting it.
func endGate(g *HandlerGroup) <-chan struct{} {
	done := make(chan struct{})
	g.PushBack(AfterCallEnd, HandlerFunc(func(Event, *call.Execution) {
		close(done)
	}))
	return done
}
