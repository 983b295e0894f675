// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gomava/callx/call"
)

// A Policy defines a timeout policy which may be plugged into the
// client (callx.Client) to direct how to set the deadline on each
// call. The deadline is armed once at dispatch and covers the whole
// exchange, including any authentication retry; it is not reset by
// activity.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Timeout returns the deadline to arm for the given call.
	Timeout(c *call.Call) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed
// deadline of 60 seconds on each call.
var DefaultPolicy Policy = Fixed(60 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that arms the same deadline for
// every call. The return value is a timeout policy that always
// returns the value d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *call.Call) time.Duration {
	return time.Duration(p)
}
