// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package callx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	events := Events()
	assert.Equal(t, BeforeCallStart, events[BeforeCallStart])
	assert.Equal(t, BeforeAttempt, events[BeforeAttempt])
	assert.Equal(t, BeforeReadBody, events[BeforeReadBody])
	assert.Equal(t, AfterAuthChallenge, events[AfterAuthChallenge])
	assert.Equal(t, AfterTimeout, events[AfterTimeout])
	assert.Equal(t, AfterCallEnd, events[AfterCallEnd])
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeCallStart", BeforeCallStart.Name())
	assert.Equal(t, "BeforeAttempt", BeforeAttempt.Name())
	assert.Equal(t, "BeforeReadBody", BeforeReadBody.Name())
	assert.Equal(t, "AfterAuthChallenge", AfterAuthChallenge.Name())
	assert.Equal(t, "AfterTimeout", AfterTimeout.Name())
	assert.Equal(t, "AfterCallEnd", AfterCallEnd.Name())
}
