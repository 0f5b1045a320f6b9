package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/cli"
	"github.com/thenoetrevino/rolodex/internal/testutil"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "database:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "rolodex.db") + "\n" +
		"log:\n  file: " + filepath.Join(dir, "rolodex.log") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_HasCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"contact", "deal", "activity", "match", "dashboard", "board", "serve"} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRoot_RunsAgainstConfiguredDatabase(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, "--config", path, "contact", "create", "--name", "Ada", "--quiet")
	require.NoError(t, err)
	require.NotEmpty(t, out)

	out, err = run(t, "--config", path, "contact", "list", "--json")
	require.NoError(t, err)
	data := testutil.ParseJSON(t, out)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"], "the second run should see the first run's contact")
}

func TestRoot_FlagErrorsAreUsageErrors(t *testing.T) {
	path := writeConfig(t)

	_, err := run(t, "--config", path, "dashboard", "--no-such-flag")
	require.Error(t, err)
	_, code := cli.Classify(err)
	assert.Equal(t, cli.ExitUsage, code)
}
