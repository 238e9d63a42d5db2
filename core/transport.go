package core

import (
	"context"
	"net/http"
)

// Transport performs a single HTTP exchange against the service. Exactly one
// implementation is selected at build time: [HTTPTransport] on native targets
// and [FetchTransport] on js/wasm, where networking is restricted to the
// host's fetch primitive.
//
// A Transport is stateless per request: each call receives a fully built
// [PreparedRequest] and must not retain the returned [RawResponse] once its
// body has been drained. Implementations own the mapping of their channel's
// failures into [TransportError]; the dispatcher never sees
// implementation-specific error types.
type Transport interface {
	// Send performs the round trip. It blocks until the exchange completes
	// or fails, honoring ctx cancellation.
	Send(ctx context.Context, req *PreparedRequest) (RawResponse, error)
}

// RawResponse is the transport-level view of a response: a status code and a
// body that can be drained to text exactly once.
type RawResponse interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// BodyText drains the response body and returns it as a string. It
	// blocks until the body is fully read, honoring ctx cancellation.
	BodyText(ctx context.Context) (string, error)
}

// PreparedRequest is a fully built description of one HTTP exchange: verb,
// URL (query string already appended), headers, and an optional body. It is
// built by the dispatcher and consumed by a [Transport].
type PreparedRequest struct {
	url    string
	verb   string
	header http.Header
	body   []byte
}

// newPreparedRequest starts building a request against url. The url must
// already carry its encoded query string, if any.
func newPreparedRequest(url string) *PreparedRequest {
	return &PreparedRequest{
		url:    url,
		verb:   http.MethodGet,
		header: make(http.Header),
	}
}

// withMethod sets the HTTP verb.
func (r *PreparedRequest) withMethod(verb string) *PreparedRequest {
	r.verb = verb
	return r
}

// withAuthorizationHeader sets the Authorization header to the given bearer
// value.
func (r *PreparedRequest) withAuthorizationHeader(value string) *PreparedRequest {
	r.header.Set("Authorization", value)
	return r
}

// withUserAgentHeader sets the User-Agent header.
func (r *PreparedRequest) withUserAgentHeader(value string) *PreparedRequest {
	r.header.Set("User-Agent", value)
	return r
}

// addBody attaches a payload and its content type. Only POST, PUT and PATCH
// requests carry one.
func (r *PreparedRequest) addBody(body []byte, contentType string) *PreparedRequest {
	r.body = body
	r.header.Set("Content-Type", contentType)
	return r
}

// URL returns the request URL.
func (r *PreparedRequest) URL() string { return r.url }

// Verb returns the HTTP verb.
func (r *PreparedRequest) Verb() string { return r.verb }

// Header returns the request headers.
func (r *PreparedRequest) Header() http.Header { return r.header }

// Body returns the request payload, nil when the verb carries none.
func (r *PreparedRequest) Body() []byte { return r.body }
