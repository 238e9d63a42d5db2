package core

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// TaskStatus is the lifecycle state of an asynchronous task. Tasks move
// Enqueued → Processing → one of the three terminal states, and only the
// service ever advances them; the client observes status by re-fetching.
type TaskStatus string

const (
	// TaskEnqueued is the initial status of every submitted task.
	TaskEnqueued TaskStatus = "enqueued"
	// TaskProcessing means the service has started executing the task.
	TaskProcessing TaskStatus = "processing"
	// TaskSucceeded is terminal: the task completed.
	TaskSucceeded TaskStatus = "succeeded"
	// TaskFailed is terminal: the task ran and failed.
	TaskFailed TaskStatus = "failed"
	// TaskCanceled is terminal: the task was canceled before completion.
	TaskCanceled TaskStatus = "canceled"
)

// IsTerminal reports whether the status will never change again.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskSucceeded, TaskFailed, TaskCanceled:
		return true
	default:
		return false
	}
}

// TaskInfo is the handle returned by every mutating call: the identifier of
// the enqueued task plus the little the service knows at submission time.
type TaskInfo struct {
	TaskUID    int64      `json:"taskUid"`
	IndexUID   string     `json:"indexUid"`
	Status     TaskStatus `json:"status"`
	Type       string     `json:"type"`
	EnqueuedAt time.Time  `json:"enqueuedAt"`
}

// Task is the full task resource as returned by polling. Details carries the
// operation-specific payload on success; Error is set when Status is
// [TaskFailed].
type Task struct {
	UID        int64           `json:"uid"`
	IndexUID   string          `json:"indexUid"`
	Status     TaskStatus      `json:"status"`
	Type       string          `json:"type"`
	Details    json.RawMessage `json:"details,omitempty"`
	Error      *ServiceError   `json:"error,omitempty"`
	Duration   string          `json:"duration,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
}

// Default poll cadence. These are deliberately named constants passed as
// per-call defaults, never mutable process-wide state, so tests and
// concurrent callers can override them independently.
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultPollTimeout  = 5 * time.Second
)

type waitConfig struct {
	interval time.Duration
	timeout  time.Duration
}

// WaitOption tunes one wait call.
type WaitOption func(*waitConfig)

// WithPollInterval sets the pause between two polls.
func WithPollInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithPollTimeout sets the overall deadline, measured from the start of the
// wait call.
func WithPollTimeout(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// GetTask fetches the current state of a task by its uid.
func (c *Client) GetTask(ctx context.Context, taskUID int64) (*Task, error) {
	url := fmt.Sprintf("%s/tasks/%d", c.host, taskUID)
	return executeRequest[*Task](ctx, c, url, methodGet(nil), 200)
}

// TasksQuery narrows a task listing.
type TasksQuery struct {
	Limit    int64    `url:"limit,omitempty"`
	From     int64    `url:"from,omitempty"`
	IndexUID []string `url:"indexUids,omitempty,comma"`
	Statuses []string `url:"statuses,omitempty,comma"`
	Types    []string `url:"types,omitempty,comma"`
}

// TasksResults is one page of a task listing.
type TasksResults struct {
	Results []Task `json:"results"`
	Limit   int64  `json:"limit"`
	From    int64  `json:"from"`
	Next    int64  `json:"next"`
	Total   int64  `json:"total"`
}

// ListTasks lists tasks, most recent first. A nil query uses service
// defaults.
func (c *Client) ListTasks(ctx context.Context, q *TasksQuery) (*TasksResults, error) {
	return executeRequest[*TasksResults](ctx, c, c.host+"/tasks", methodGet(q), 200)
}

// WaitForTask polls the task until it reaches a terminal status, the poll
// timeout elapses, or ctx is canceled. A terminal task is always returned as
// a value, even when its status is [TaskFailed] or [TaskCanceled]: deciding
// whether a non-success is fatal belongs to the caller.
//
// The loop lives entirely inside this call; no background goroutine or timer
// outlives it. Polling stops on the first terminal observation, and a timeout
// surfaces as [ErrTimeout].
func (c *Client) WaitForTask(ctx context.Context, taskUID int64, opts ...WaitOption) (*Task, error) {
	cfg := waitConfig{
		interval: DefaultPollInterval,
		timeout:  DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	for {
		task, err := c.GetTask(ctx, taskUID)
		if err != nil {
			return nil, err
		}
		if task.Status.IsTerminal() {
			return task, nil
		}
		if time.Since(start) > cfg.timeout {
			return nil, ErrTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.interval):
		}
	}
}

// WaitForCompletion polls the submitted task until it terminates. See
// [Client.WaitForTask].
func (t *TaskInfo) WaitForCompletion(ctx context.Context, c *Client, opts ...WaitOption) (*Task, error) {
	return c.WaitForTask(ctx, t.TaskUID, opts...)
}

// TryMakeIndex converts a succeeded index-creation task into a live [Index]
// handle. It is a pure local transformation of already-fetched data and
// performs no network call. A task that is not a succeeded index creation
// yields an [UnsuccessfulTaskError].
func (t *Task) TryMakeIndex(c *Client) (*Index, error) {
	if t.Status == TaskSucceeded && t.IndexUID != "" {
		return c.Index(t.IndexUID), nil
	}
	return nil, &UnsuccessfulTaskError{Task: t}
}
