// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/json"
	"io"
)

// A Codec is the pluggable wire-format serializer/deserializer pair
// used by the client for request payloads and response bodies.
//
// Implementations of Codec must be safe for concurrent use by multiple
// goroutines.
type Codec interface {
	// Encode writes the wire representation of v to w.
	Encode(v interface{}, w io.Writer) error
	// Decode reads a wire representation from r into v, which must be
	// a non-nil pointer. It fails with a deserialization error if the
	// input cannot be decoded as v's type.
	Decode(v interface{}, r io.Reader) error
	// ContentType returns the MIME type of the codec's wire format,
	// used for the Accept and Content-Type headers when the client has
	// no explicit content type configured.
	ContentType() string
}

// JSON is the default codec. It encodes and decodes using the
// encoding/json package.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Encode(v interface{}, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

func (jsonCodec) Decode(v interface{}, r io.Reader) error {
	return json.NewDecoder(r).Decode(v)
}

func (jsonCodec) ContentType() string {
	return "application/json"
}
