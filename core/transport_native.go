//go:build !js

package core

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// HTTPTransport sends requests over net/http. It is the default transport on
// native targets. The zero value is not usable; construct with
// [NewHTTPTransport].
//
// HTTPTransport is safe for concurrent use.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport backed by the given HTTP client.
// A nil client means http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Send implements [Transport].
func (t *HTTPTransport) Send(ctx context.Context, req *PreparedRequest) (RawResponse, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.verb, req.url, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for key, values := range req.header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return &httpResponse{resp: resp}, nil
}

type httpResponse struct {
	resp *http.Response
}

func (r *httpResponse) StatusCode() int {
	return r.resp.StatusCode
}

func (r *httpResponse) BodyText(ctx context.Context) (string, error) {
	defer r.resp.Body.Close()

	text, err := io.ReadAll(r.resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	return string(text), nil
}

// defaultTransport returns the build target's transport implementation.
func defaultTransport() Transport {
	return NewHTTPTransport(nil)
}

// WithHTTPClient sets the underlying *http.Client used by the default
// transport. It is a convenience over WithTransport(NewHTTPTransport(c)).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.transport = NewHTTPTransport(client)
	}
}
