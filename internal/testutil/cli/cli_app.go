package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/testutil"
)

// TestUser owns the rows created through ExecuteCLICommand
const TestUser = "u1"

// Result is the captured outcome of one command run
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExitCode returns the exit code the process would end with
func (r Result) ExitCode() int {
	if r.Err == nil {
		return cli.ExitSuccess
	}
	_, code := cli.Classify(r.Err)
	return code
}

// ExecuteCLICommand executes a CLI command as TestUser against a test app
// instance. The app is injected through the context so commands never open
// their own database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) Result {
	t.Helper()
	return ExecuteCLICommandAs(t, testApp, TestUser, cmd, args)
}

// ExecuteCLICommandAs executes a CLI command as userID
func ExecuteCLICommandAs(t *testing.T, testApp *app.App, userID string, cmd *cobra.Command, args []string) Result {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := cli.WithCLI(context.Background(), cli.New(testApp, testutil.Session(userID)))

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
