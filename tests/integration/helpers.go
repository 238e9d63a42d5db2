//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/petal-labs/loupe/core"
)

// serviceURL returns the URL of the service under test.
func serviceURL() string {
	return os.Getenv("LOUPE_TEST_URL")
}

// skipIfNoService skips the test when no live service is configured.
// In CI, it fails unless LOUPE_SKIP_INTEGRATION is set.
func skipIfNoService(t *testing.T) {
	t.Helper()
	if serviceURL() != "" {
		return
	}
	if os.Getenv("CI") != "" && os.Getenv("LOUPE_SKIP_INTEGRATION") == "" {
		t.Fatal("LOUPE_TEST_URL not set in CI (set LOUPE_SKIP_INTEGRATION to skip)")
	}
	t.Skip("LOUPE_TEST_URL not set")
}

// newTestClient creates a client against the live service.
func newTestClient(t *testing.T) *core.Client {
	t.Helper()
	skipIfNoService(t)
	return core.New(serviceURL(), os.Getenv("LOUPE_TEST_API_KEY"))
}

// uniqueIndexUID returns an index UID unique to this test run, and
// schedules its deletion.
func uniqueIndexUID(t *testing.T, client *core.Client) string {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	uid := fmt.Sprintf("it_%s_%d", name, time.Now().UnixNano())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := client.Index(uid).Delete(ctx)
		if err != nil {
			return
		}
		info.WaitForCompletion(ctx, client)
	})

	return uid
}

// waitCtx returns a context bounded to the usual indexing latency.
func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// cliResult holds the result of running a CLI command.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI executes the loupe CLI with the given arguments.
// It uses the pre-built binary from TestMain for efficiency.
func runCLI(t *testing.T, args ...string) cliResult {
	return runCLIWithStdin(t, "", args...)
}

// runCLIWithStdin executes the loupe CLI with stdin input.
func runCLIWithStdin(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	binaryPath := getCliBinary()
	if binaryPath == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}

	cmd := exec.Command(binaryPath, args...)
	cmd.Stdin = bytes.NewBufferString(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return cliResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
