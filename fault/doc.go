// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault classifies errors from request/response exchanges and
// defines Fault, the structured outcome of a protocol error. The
// classification funnel in the root callx package is built on
// Categorize; the categories are also handy for bucketing error
// metrics or logs.
//
// Package fault is extremely lightweight, as it depends only on the
// standard library packages "errors", "syscall", "fmt", and the crypto
// packages needed to recognize certificate negotiation failures, so it
// doesn't bring any significant dependencies when imported as a
// standalone package.
package fault
