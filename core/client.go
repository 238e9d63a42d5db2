package core

import (
	"context"
	"strings"

	"github.com/go-kit/log"
)

// Client is the entry point for talking to a Loupe service. It holds the host
// URL, the optional API key, and the transport every call goes through.
//
// Client is safe for concurrent use. It keeps no per-call state: concurrent
// operations, including multiple task waits with different cadences, never
// interfere with each other.
type Client struct {
	host      string
	apiKey    Secret
	transport Transport
	logger    log.Logger
	telemetry TelemetryHook

	retryPolicy RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// New creates a Client for the service at host. The API key may be empty, in
// which case no Authorization header is sent. No request is performed, so
// construction cannot fail.
func New(host, apiKey string, opts ...Option) *Client {
	c := &Client{
		host:      strings.TrimSuffix(host, "/"),
		apiKey:    NewSecret(apiKey),
		transport: defaultTransport(),
		logger:    log.NewNopLogger(),
		telemetry: NoopTelemetryHook{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retryPolicy != nil {
		c.transport = NewRetryTransport(c.transport, c.retryPolicy)
	}
	return c
}

// WithTransport sets the transport used for every call.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithRetryPolicy wraps the transport so transient failures (network
// errors, 429, 5xx) are retried per the policy. The default is no retries.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retryPolicy = p
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTelemetry sets the telemetry hook for the client.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// Host returns the configured host URL, without a trailing slash.
func (c *Client) Host() string {
	return c.host
}

// Health reports whether the service answers its health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	return executeRequest[*HealthStatus](ctx, c, c.host+"/health", methodGet(nil), 200)
}

// HealthStatus is the service's answer to the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// VersionInfo describes the running service build.
type VersionInfo struct {
	CommitSha  string `json:"commitSha"`
	CommitDate string `json:"commitDate"`
	PkgVersion string `json:"pkgVersion"`
}

// ServiceVersion returns the version of the running service.
func (c *Client) ServiceVersion(ctx context.Context) (*VersionInfo, error) {
	return executeRequest[*VersionInfo](ctx, c, c.host+"/version", methodGet(nil), 200)
}
