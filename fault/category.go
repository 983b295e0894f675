// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"syscall"
)

// A Category is the failure category of a particular error, as
// reported by function Categorize().
//
// The classifier in the root callx package uses the category to choose
// how an error is delivered to the error continuation: Protocol faults
// carry their status code and best-effort payload, Auth failures are
// wrapped with a diagnostic naming the target URL, and every other
// category is delivered as-is.
type Category int

const (
	// Generic indicates any failure not covered by a more specific
	// category: connection failures, aborts (including deadline-induced
	// aborts observed as context cancellation), malformed responses,
	// and serialization errors.
	Generic Category = iota
	// Timeout indicates a client-side timeout. Function Categorize()
	// will return Timeout if the error or any of its wrapped causes
	// has a Timeout() function that reports true, or wraps
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// and corresponds to the POSIX error code ECONNREFUSED. It can
	// happen if the service on the remote host is in the process of
	// starting or restarting.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	ConnReset
	// Auth indicates a transport-level credential or certificate
	// negotiation failure: the TLS handshake could not verify the
	// peer, so no well-formed response exists.
	Auth
	// Protocol indicates a well-formed response with a non-success
	// status code, carried as a *Fault.
	Protocol
)

var categoryNames = []string{
	"Generic",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Auth",
	"Protocol",
}

// String returns the name of the category.
func (cat Category) String() string {
	return categoryNames[int(cat)]
}

// Categorize returns the failure category of the given error. A nil
// error produces Generic.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. The more specific categories win: a *Fault anywhere
// in the chain is Protocol, certificate verification failures are
// Auth, timeouts beat the connection-level errno categories. However,
// Categorize never checks if an error has a Temporary() function that
// returns true, as the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Generic
	}

	var f *Fault
	if errors.As(err, &f) {
		return Protocol
	}

	if isCertificateError(err) {
		return Auth
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Generic
}

func isCertificateError(err error) bool {
	var verification *tls.CertificateVerificationError
	if errors.As(err, &verification) {
		return true
	}
	var record tls.RecordHeaderError
	if errors.As(err, &record) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return true
	}
	var invalid x509.CertificateInvalidError
	return errors.As(err, &invalid)
}

type hasTimeout interface {
	Timeout() bool
}
