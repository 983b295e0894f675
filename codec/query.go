// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	urlpkg "net/url"

	"github.com/google/go-querystring/query"
)

// A Queries encodes a payload into a URL query string for no-body
// methods (GET, DELETE). The returned string must not include a
// leading "?".
//
// Implementations of Queries must be safe for concurrent use by
// multiple goroutines.
type Queries interface {
	Encode(payload interface{}) (string, error)
}

// The QueriesFunc type is an adapter to allow the use of ordinary
// functions as query encoders.
type QueriesFunc func(payload interface{}) (string, error)

// Encode calls f(payload).
func (f QueriesFunc) Encode(payload interface{}) (string, error) {
	return f(payload)
}

// DefaultQueries is the default query encoder. A url.Values payload is
// encoded directly, a map[string]string payload field by field, and
// any other payload through its `url` struct tags via the
// go-querystring package.
var DefaultQueries Queries = QueriesFunc(defaultQueries)

func defaultQueries(payload interface{}) (string, error) {
	switch x := payload.(type) {
	case urlpkg.Values:
		return x.Encode(), nil
	case map[string]string:
		vs := make(urlpkg.Values, len(x))
		for k, v := range x {
			vs.Set(k, v)
		}
		return vs.Encode(), nil
	default:
		vs, err := query.Values(payload)
		if err != nil {
			return "", err
		}
		return vs.Encode(), nil
	}
}
