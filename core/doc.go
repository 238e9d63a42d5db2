// Package core provides the Loupe SDK client and types for interacting with a
// Loupe search service.
//
// Loupe is a document-search engine that executes every mutating operation
// (index creation, document writes, settings changes) asynchronously as
// background tasks. The core package defines the client, the typed error
// model, and the task-completion wait primitive that the rest of the SDK is
// built on.
//
// # Client
//
// The primary entry point is [Client], created from a host URL and an optional
// API key:
//
//	client := core.New("http://localhost:7700", "masterKey")
//
//	info, err := client.CreateIndex(ctx, "movies", "movie_id")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	task, err := info.WaitForCompletion(ctx, client)
//
// # Tasks
//
// Mutating calls return a [TaskInfo] describing the enqueued task. The task is
// only ever advanced by the service; [Client.WaitForTask] polls it until it
// reaches a terminal status or a deadline elapses. A task that ends in
// [TaskFailed] or [TaskCanceled] is returned as a value, not an error: a
// failed task is an informative outcome the caller inspects explicitly.
//
// # Errors
//
// Failures surface as typed errors: [ServiceError] when the service rejected
// the request, [CommunicationError] when the status and body combination is
// unrecognized, [ParseError] when a response did not decode into the expected
// shape, and [TransportError] when the call never got a response. All support
// errors.Is and errors.As.
package core

// Version is the SDK version reported in the User-Agent header.
const Version = "0.3.0"
