// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"bytes"
	"io"
)

// PayloadBytes converts a payload to a raw byte slice, bypassing the
// wire-format serializer, for payload types that already represent
// wire bytes.
//
// The conversion logic is:
//
// • If payload is a []byte, the slice itself is returned.
//
// • If payload is a string, its byte conversion is returned.
//
// • If payload is an io.Reader or io.ReadCloser, the reader is read to
// the end (and closed, if it implements Closer) and its contents are
// returned.
//
// • For any other payload type, ok is false and the payload should be
// handed to the serializer instead.
func PayloadBytes(payload interface{}) (b []byte, ok bool, err error) {
	switch x := payload.(type) {
	case []byte:
		return x, true, nil
	case string:
		return []byte(x), true, nil
	case io.ReadCloser:
		b, err = io.ReadAll(x)
		if err != nil {
			return nil, true, err
		}
		err = x.Close()
		if err != nil {
			return nil, true, err
		}
		return b, true, nil
	case io.Reader:
		return PayloadBytes(io.NopCloser(x))
	default:
		return nil, false, nil
	}
}

func payloadReader(b []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b))
}
