// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package call contains the core types Call (describes one logical
request/response exchange) and Execution (the mutable runtime state of
a started Call). These two types are fundamental to delivering exactly
one outcome per exchange.

The first core type is Call, which describes what to exchange: method,
URL, payload, extra headers, and the pair of continuations that will
receive the outcome. For those familiar with the Go standard HTTP
library, net/http, a Call looks like a stripped-down client-side
http.Request whose body has been replaced by an arbitrary payload
value, serialized later by the client's codec. Call fields are named
consistently with http.Request wherever possible.

Create a call directly when the typed helpers in the root callx
package are not flexible enough:

	c, err := call.New("GET", "https://example.com/items", query)
	...
	e, err := client.Start(c)
	...

A call may be assigned a context to bound the entire exchange,
including any authentication retry:

	c, err := call.NewWithContext(ctx, "POST", "https://example.com/items", item)
	...

The second core type is Execution. It holds everything that changes
while the call is in flight: the accumulated response body, the
current request and response handles, the attempt counter, and the
completion guard that arbitrates between the deadline timer and the
exchange goroutine. Execution is the input type for event handlers and
timeout policies. You will typically not allocate Execution instances
yourself, but will instead work with the ones handed out by the
client.
*/
package call
