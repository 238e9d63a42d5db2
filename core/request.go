package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log/level"
	"github.com/goccy/go-json"
	"github.com/google/go-querystring/query"
)

const contentTypeJSON = "application/json"

// methodKind tags a wire method with its HTTP verb. The tag fully determines
// whether a body is attached: only POST, PUT and PATCH carry one.
type methodKind int

const (
	methodKindGet methodKind = iota
	methodKindPost
	methodKindPut
	methodKindPatch
	methodKindDelete
)

// method describes one HTTP call: verb, query parameters, and an optional
// body. Values are built through the constructors below, so callers cannot
// pair a body with a verb that does not carry one.
type method struct {
	kind  methodKind
	query any
	body  any
}

func methodGet(query any) method {
	return method{kind: methodKindGet, query: query}
}

func methodPost(query, body any) method {
	return method{kind: methodKindPost, query: query, body: body}
}

func methodPut(query, body any) method {
	return method{kind: methodKindPut, query: query, body: body}
}

func methodPatch(query, body any) method {
	return method{kind: methodKindPatch, query: query, body: body}
}

func methodDelete(query any) method {
	return method{kind: methodKindDelete, query: query}
}

func (m method) verb() string {
	switch m.kind {
	case methodKindPost:
		return http.MethodPost
	case methodKindPut:
		return http.MethodPut
	case methodKindPatch:
		return http.MethodPatch
	case methodKindDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

func (m method) hasBody() bool {
	switch m.kind {
	case methodKindPost, methodKindPut, methodKindPatch:
		return true
	default:
		return false
	}
}

// qualifiedVersion is the fixed User-Agent value identifying this SDK.
func qualifiedVersion() string {
	return fmt.Sprintf("Loupe Go (v%s)", Version)
}

// addQueryParameters URL-encodes q and appends it to rawURL. An empty query
// yields rawURL unchanged, without a trailing "?". Optional fields tagged
// omitempty are left out entirely.
func addQueryParameters(rawURL string, q any) (string, error) {
	if q == nil {
		return rawURL, nil
	}
	values, err := query.Values(q)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	encoded := values.Encode()
	if encoded == "" {
		return rawURL, nil
	}
	return rawURL + "?" + encoded, nil
}

// executeRequest is the single dispatch point for every call the SDK makes:
// it serializes the method's query and body, attaches the user agent and the
// bearer credential, sends the request through the client's transport, and
// classifies the outcome. expectedStatus is the one status code that signals
// success for this call (200 for reads, 202 for accepted async jobs).
//
// No retries happen here; the task poller is the only place repetition
// occurs, and only for polling.
func executeRequest[O any](ctx context.Context, c *Client, url string, m method, expectedStatus int) (O, error) {
	var zero O

	start := time.Now()
	c.telemetry.OnRequestStart(RequestStartEvent{
		Verb:  m.verb(),
		URL:   url,
		Start: start,
	})

	out, status, err := roundTrip[O](ctx, c, url, m, expectedStatus)

	c.telemetry.OnRequestEnd(RequestEndEvent{
		Verb:   m.verb(),
		URL:    url,
		Status: status,
		Start:  start,
		End:    time.Now(),
		Err:    err,
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

func roundTrip[O any](ctx context.Context, c *Client, url string, m method, expectedStatus int) (O, int, error) {
	var zero O

	fullURL, err := addQueryParameters(url, m.query)
	if err != nil {
		return zero, 0, err
	}

	req := newPreparedRequest(fullURL).
		withMethod(m.verb()).
		withUserAgentHeader(qualifiedVersion())
	if !c.apiKey.IsEmpty() {
		req = req.withAuthorizationHeader("Bearer " + c.apiKey.Expose())
	}
	if m.hasBody() {
		payload, err := json.Marshal(m.body)
		if err != nil {
			return zero, 0, &ParseError{Err: err}
		}
		req = req.addBody(payload, contentTypeJSON)
	}

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return zero, 0, err
	}
	status := resp.StatusCode()
	text, err := resp.BodyText(ctx)
	if err != nil {
		return zero, status, err
	}

	out, err := parseResponse[O](c, status, expectedStatus, text, url)
	return out, status, err
}

// parseResponse classifies one response. An empty body is treated as the JSON
// literal null so void successes decode cleanly. On the expected status the
// body must decode into O; on any other status the body is first tried as a
// structured service error, then degraded to a CommunicationError for error
// statuses. A non-error status that matches neither shape is anomalous and
// surfaces as a ParseError rather than being swallowed.
func parseResponse[O any](c *Client, status, expectedStatus int, body, url string) (O, error) {
	var zero O
	if body == "" {
		body = "null"
	}

	if status == expectedStatus {
		var out O
		if err := json.Unmarshal([]byte(body), &out); err != nil {
			level.Error(c.logger).Log("msg", "request succeeded but response did not decode", "url", url, "err", err)
			return zero, &ParseError{Err: err}
		}
		level.Debug(c.logger).Log("msg", "request succeeded", "url", url, "status", status)
		return out, nil
	}

	level.Warn(c.logger).Log("msg", "unexpected status", "url", url, "status", status, "expected", expectedStatus)

	var svcErr ServiceError
	if err := json.Unmarshal([]byte(body), &svcErr); err == nil && svcErr.Code != "" {
		return zero, &svcErr
	}
	if status >= 400 {
		return zero, &CommunicationError{StatusCode: status, URL: url}
	}
	return zero, &ParseError{Err: fmt.Errorf("status %d carried an unrecognizable body", status)}
}
