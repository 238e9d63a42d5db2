package core

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable code attached to a [ServiceError].
// The service guarantees these values are stable, so callers can branch on
// them programmatically.
type ErrorCode string

// Known error codes returned by the service.
const (
	ErrCodeIndexCreationFailed  ErrorCode = "index_creation_failed"
	ErrCodeIndexAlreadyExists   ErrorCode = "index_already_exists"
	ErrCodeIndexNotFound        ErrorCode = "index_not_found"
	ErrCodeInvalidIndexUID      ErrorCode = "invalid_index_uid"
	ErrCodeDocumentNotFound     ErrorCode = "document_not_found"
	ErrCodeMissingDocumentID    ErrorCode = "missing_document_id"
	ErrCodeInvalidDocumentID    ErrorCode = "invalid_document_id"
	ErrCodePrimaryKeyInference  ErrorCode = "index_primary_key_no_candidate_found"
	ErrCodeInvalidFilter        ErrorCode = "invalid_search_filter"
	ErrCodeBadParameter         ErrorCode = "bad_parameter"
	ErrCodeTaskNotFound         ErrorCode = "task_not_found"
	ErrCodeInternal             ErrorCode = "internal"
	ErrCodeInvalidAPIKey        ErrorCode = "invalid_api_key"
	ErrCodeMissingAuthorization ErrorCode = "missing_authorization_header"
	ErrCodePayloadTooLarge      ErrorCode = "payload_too_large"
	ErrCodeInvalidContentType   ErrorCode = "invalid_content_type"
)

// ServiceError is a structured rejection returned by the service. It carries
// a stable machine-readable code and a human message, plus a link to the
// relevant documentation.
type ServiceError struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
	Type    string    `json:"type"`
	Link    string    `json:"link"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("loupe: %s (code=%s, type=%s, link=%s)",
		e.Message, e.Code, e.Type, e.Link)
}

// CommunicationError reports a response whose status did not match the
// expected one and whose body was not a recognizable service error. It
// typically indicates infrastructure trouble between the client and the
// service: proxies, malformed gateways.
type CommunicationError struct {
	StatusCode int
	URL        string
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("loupe: unrecognized response with status %d from %s",
		e.StatusCode, e.URL)
}

// ParseError reports a response body that did not decode into the expected
// shape. It is programmer-facing and usually indicates schema drift between
// the SDK and the service.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loupe: decoding response: %v", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransportError reports a call that never got a response: DNS failure, TLS
// failure, connection refused, or request construction failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("loupe: transport: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrTimeout is returned by the task poller when a task does not reach a
// terminal status within the allotted wall-clock budget.
var ErrTimeout = errors.New("loupe: task did not complete before the poll deadline")

// UnsuccessfulTaskError is returned when a terminal task that was expected to
// succeed ended in [TaskFailed] or [TaskCanceled]. The task itself is carried
// for inspection.
type UnsuccessfulTaskError struct {
	Task *Task
}

func (e *UnsuccessfulTaskError) Error() string {
	if e.Task != nil && e.Task.Error != nil {
		return fmt.Sprintf("loupe: task %d ended with status %q: %s",
			e.Task.UID, e.Task.Status, e.Task.Error.Message)
	}
	if e.Task != nil {
		return fmt.Sprintf("loupe: task %d ended with status %q", e.Task.UID, e.Task.Status)
	}
	return "loupe: task did not succeed"
}
