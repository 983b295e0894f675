// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package codec

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQueries(t *testing.T) {
	t.Run("url.Values", func(t *testing.T) {
		q, err := DefaultQueries.Encode(url.Values{"ham": {"eggs", "spam"}})
		require.NoError(t, err)
		assert.Equal(t, "ham=eggs&ham=spam", q)
	})
	t.Run("map", func(t *testing.T) {
		q, err := DefaultQueries.Encode(map[string]string{"id": "7", "name": "x"})
		require.NoError(t, err)
		assert.Equal(t, "id=7&name=x", q)
	})
	t.Run("struct", func(t *testing.T) {
		v := struct {
			ID   int    `url:"id"`
			Name string `url:"name,omitempty"`
		}{ID: 7}
		q, err := DefaultQueries.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, "id=7", q)
	})
	t.Run("unsupported", func(t *testing.T) {
		_, err := DefaultQueries.Encode(42)
		assert.Error(t, err)
	})
}

func TestQueriesFunc(t *testing.T) {
	var got interface{}
	f := QueriesFunc(func(payload interface{}) (string, error) {
		got = payload
		return "a=b", nil
	})
	q, err := f.Encode(7)
	require.NoError(t, err)
	assert.Equal(t, "a=b", q)
	assert.Equal(t, 7, got)
}
