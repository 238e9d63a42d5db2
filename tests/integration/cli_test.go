//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestCLI_Version(t *testing.T) {
	result := runCLI(t, "version")

	if result.ExitCode != 0 {
		t.Errorf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "loupe") {
		t.Errorf("Stdout = %q, should name the binary", result.Stdout)
	}
}

func TestCLI_Version_JSON(t *testing.T) {
	result := runCLI(t, "version", "--json")

	if result.ExitCode != 0 {
		t.Errorf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(result.Stdout), &output); err != nil {
		t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, result.Stdout)
	}
	if output["version"] == "" {
		t.Error("version field is empty")
	}
}

func TestCLI_Health(t *testing.T) {
	skipIfNoService(t)

	result := runCLI(t, "--host", serviceURL(), "health")

	if result.ExitCode != 0 {
		t.Errorf("Exit code = %d, want 0\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if result.Stdout == "" {
		t.Error("Stdout is empty")
	}
}

func TestCLI_IndexAndDocumentsRoundTrip(t *testing.T) {
	client := newTestClient(t)
	uid := uniqueIndexUID(t, client)

	result := runCLI(t, "--host", serviceURL(), "index", "create", uid, "--primary-key", "id", "--json")
	if result.ExitCode != 0 {
		t.Fatalf("index create exit = %d\nStderr: %s", result.ExitCode, result.Stderr)
	}

	var info struct {
		TaskUID int64 `json:"taskUid"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		t.Fatalf("index create output not JSON: %v\n%s", err, result.Stdout)
	}

	result = runCLI(t, "--host", serviceURL(),
		"task", fmt.Sprint(info.TaskUID), "--wait", "--timeout", "20s")
	if result.ExitCode != 0 {
		t.Fatalf("task --wait exit = %d\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "succeeded") {
		t.Fatalf("task output = %q", result.Stdout)
	}

	documents := `[{"id":1,"title":"Shazam!"},{"id":2,"title":"The Ring"}]`
	result = runCLIWithStdin(t, documents, "--host", serviceURL(), "documents", "add", uid, "--json")
	if result.ExitCode != 0 {
		t.Fatalf("documents add exit = %d\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		t.Fatalf("documents add output not JSON: %v\n%s", err, result.Stdout)
	}

	result = runCLI(t, "--host", serviceURL(),
		"task", fmt.Sprint(info.TaskUID), "--wait", "--timeout", "20s")
	if result.ExitCode != 0 {
		t.Fatalf("task --wait exit = %d\nStderr: %s", result.ExitCode, result.Stderr)
	}

	// Indexing is declared done by the task, but give the service a
	// beat before searching.
	time.Sleep(100 * time.Millisecond)

	result = runCLI(t, "--host", serviceURL(), "search", uid, "shazam")
	if result.ExitCode != 0 {
		t.Fatalf("search exit = %d\nStderr: %s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "Shazam!") {
		t.Errorf("search output = %q", result.Stdout)
	}
}

func TestCLI_UnknownHostAlias(t *testing.T) {
	result := runCLI(t, "--host", "no-such-alias", "health")

	if result.ExitCode != 1 {
		t.Errorf("Exit code = %d, want 1 for validation error", result.ExitCode)
	}
}
