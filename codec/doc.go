// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package codec defines the pluggable serializer/deserializer contract
// used by the client for payloads and response bodies (Codec, with the
// built-in JSON codec) and the query-string encoding contract for
// no-body methods (Queries, with the built-in DefaultQueries encoder).
package codec
