// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the per-call deadline
// armed by the client at dispatch. A generic interface for timeout
// policies is provided, Policy, along with the Fixed policy generating
// function and the built-in DefaultPolicy and Infinite policies.
package timeout
