// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecution(t *testing.T) {
	c, err := New("GET", "http://example.com", nil)
	require.NoError(t, err)
	e := NewExecution(c)
	assert.Same(t, c, e.Call)
	assert.NotEqual(t, e.ID.String(), NewExecution(c).ID.String())
	assert.False(t, e.Settled())
	assert.False(t, e.Started())
	assert.False(t, e.Ended())
}

func TestExecution_Settle(t *testing.T) {
	t.Run("first caller wins", func(t *testing.T) {
		e := &Execution{}
		assert.False(t, e.Settled())
		assert.True(t, e.Settle())
		assert.True(t, e.Settled())
		assert.False(t, e.Settle())
		assert.False(t, e.Settle())
	})
	t.Run("exactly one winner under contention", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			e := &Execution{}
			var wins int32
			var wg sync.WaitGroup
			start := make(chan struct{})
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					if e.Settle() {
						atomic.AddInt32(&wins, 1)
					}
				}()
			}
			close(start)
			wg.Wait()
			assert.EqualValues(t, 1, wins)
			assert.True(t, e.Settled())
		}
	})
}

func TestExecution_Arm(t *testing.T) {
	t.Run("expiry aborts if unsettled", func(t *testing.T) {
		e := &Execution{}
		aborted := make(chan struct{})
		e.Arm(time.Millisecond, func() { close(aborted) })
		select {
		case <-aborted:
		case <-time.After(5 * time.Second):
			t.Fatal("deadline never fired")
		}
		assert.True(t, e.Settled())
		assert.False(t, e.Settle())
	})
	t.Run("expiry is a no-op if already settled", func(t *testing.T) {
		e := &Execution{}
		require.True(t, e.Settle())
		var aborts int32
		e.Arm(time.Millisecond, func() { atomic.AddInt32(&aborts, 1) })
		time.Sleep(20 * time.Millisecond)
		assert.EqualValues(t, 0, aborts)
	})
	t.Run("disarm stops the timer", func(t *testing.T) {
		e := &Execution{}
		var aborts int32
		e.Arm(10*time.Millisecond, func() { atomic.AddInt32(&aborts, 1) })
		require.True(t, e.Settle())
		e.Disarm()
		time.Sleep(30 * time.Millisecond)
		assert.EqualValues(t, 0, aborts)
	})
	t.Run("disarm without arm", func(t *testing.T) {
		e := &Execution{}
		assert.NotPanics(t, e.Disarm)
	})
}

func TestExecution_StatusCode(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, 0, e.StatusCode())
	e.Response = &http.Response{StatusCode: 201}
	assert.Equal(t, 201, e.StatusCode())
}

func TestExecution_Header(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Header())
	assert.Empty(t, e.Header().Get("Content-Type"))
	e.Response = &http.Response{Header: http.Header{"Content-Type": {"application/json"}}}
	assert.Equal(t, "application/json", e.Header().Get("Content-Type"))
}

func TestExecution_Duration(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, time.Duration(0), e.Duration())
	e.Start = time.Now().Add(-time.Second)
	assert.True(t, e.Duration() >= time.Second)
	assert.True(t, e.Started())
	assert.False(t, e.Ended())
	e.End = e.Start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, e.Duration())
	assert.True(t, e.Ended())
}
