package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// # Security Considerations
//
// Event types are designed to NEVER include sensitive data:
//   - API keys are NEVER included (stored separately as core.Secret)
//   - Document content is NEVER included
//   - Only operational metadata is exposed (verb, path, status, timing)
//
// If extending this interface, maintain these security properties. Never add
// fields that could contain API keys, request bodies, or response bodies.
type TelemetryHook interface {
	// OnRequestStart is called when a request to the service begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a request to the service completes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Verb  string    // HTTP verb used for the call
	URL   string    // Request URL without query parameters
	Start time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
//
// The Err field carries the SDK's typed error values, never raw response
// bodies.
type RequestEndEvent struct {
	Verb   string    // HTTP verb used for the call
	URL    string    // Request URL without query parameters
	Status int       // HTTP status code, 0 if the call never got a response
	Start  time.Time // When the request started
	End    time.Time // When the request completed
	Err    error     // Error if the request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}
