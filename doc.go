// Copyright 2026 The callx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package callx provides a non-blocking request/response engine for
remote-service clients: given a method, URL, and payload, it transmits
a request over an existing transport, receives the response, and
delivers exactly one outcome — success with a deserialized value, or
failure with a classified error — to caller-supplied continuations,
without blocking the calling goroutine.

Create a Client and start typed calls with the Send family:

	client := &callx.Client{}
	_, err := callx.Get[Item](client, "https://api.example.com/items",
		ItemQuery{ID: 7},
		func(item Item) { ... },
		func(_ Item, err error) { ... })
	...
	_, err := callx.Post[Item](client, "https://api.example.com/items",
		Item{Name: "x"},
		func(item Item) { ... },
		func(_ Item, err error) { ... })

For a no-body method (GET, DELETE) the payload is encoded into the URL
query string; for any other method it is serialized into the request
body through the client's codec.

For control over how requests are sent and responses received, use a
custom HTTPDoer. For example, use a GoLang standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &callx.Client{
		HTTPDoer: doer,
	}

For control over the wire format, plug in a codec:

	client := &callx.Client{
		Codec: myProtobufCodec,
	}

For control over the per-call deadline, set a timeout policy from
package timeout:

	client := &callx.Client{
		TimeoutPolicy: timeout.Fixed(10 * time.Second),
	}

To answer authentication challenges, configure credentials; the client
retries a challenged call exactly once with an injected Basic
Authorization header:

	client := &callx.Client{
		Username: "user",
		Password: "secret",
	}

To hook into the fine-grained details of the exchange, install a
handler into the appropriate handler chain:

	handlers := &callx.HandlerGroup{}
	handlers.PushBack(callx.BeforeAttempt, callx.HandlerFunc(
		func(_ callx.Event, e *call.Execution) {
			log.Printf("attempt %d to %s", e.Attempt, e.Request.URL.String())
		}),
	)
	client := &callx.Client{
		Handlers: handlers,
	}

Every failure — transport error, deadline expiry, authentication or
certificate negotiation failure, non-2xx response, or a body that
cannot be decoded — is delivered through the error continuation, never
thrown across the asynchronous boundary. A non-2xx response arrives as
a *fault.Fault carrying the status code and, when the error body could
be decoded as the call's expected type, a typed payload.
*/
package callx
