package commands

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/petal-labs/loupe/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitService    = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// handleServiceError prints a service failure and wraps it with the exit
// code matching its class.
func (a *App) handleServiceError(err error) error {
	var svcErr *core.ServiceError
	if errors.As(err, &svcErr) {
		if a.jsonOutput {
			a.outputErrorJSON(string(svcErr.Code), svcErr.Message)
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", svcErr.Message)
			if svcErr.Link != "" {
				fmt.Fprintf(a.stderr, "  See: %s\n", svcErr.Link)
			}
		}
		return exitWithCode(ExitService, err)
	}

	var commErr *core.CommunicationError
	var transErr *core.TransportError
	if errors.As(err, &commErr) || errors.As(err, &transErr) || errors.Is(err, core.ErrTimeout) {
		if a.jsonOutput {
			a.outputErrorJSON("network_error", err.Error())
		} else {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
		return exitWithCode(ExitNetwork, err)
	}

	if a.jsonOutput {
		a.outputErrorJSON("error", err.Error())
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitService, err)
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) outputErrorJSON(errType, message string) {
	output := map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": message,
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// printTask reports an accepted operation; callers follow up with
// 'loupe task <uid> --wait' to see it through.
func (a *App) printTask(info *core.TaskInfo) error {
	if a.jsonOutput {
		return a.outputJSON(info)
	}
	fmt.Fprintf(a.stdout, "Task %d enqueued (%s).\n", info.TaskUID, info.Type)
	return nil
}
