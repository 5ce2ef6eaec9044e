package packages

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/perms"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

func decodeResult[T any](t *testing.T, out string) T {
	t.Helper()

	var payload output.ResultPayload[T]
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	return payload.Result
}

func TestNewCmd_SubCommands(t *testing.T) {
	t.Parallel()

	c, err := NewCmd(testBaseCmd())
	require.NoError(t, err)
	require.Equal(t, "package", c.Name())

	names := make([]string, 0, len(c.Commands()))
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	require.ElementsMatch(t, []string{"create", "delete", "list", "script", "show", "stats"}, names)
}

func TestCreateCmd(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()

	out, err := run(t, st, NewCreateCmd,
		"--entry", "3", "--entry", "1,3", "--name", " Team Tools ", "--description", "Chat and code", "--format", "json")
	require.NoError(t, err)

	pkg := decodeResult[pkgs.Package](t, out)
	require.NotEqual(t, pkgs.CurrentID, pkg.ID)
	require.Equal(t, "Team Tools", pkg.Name)
	require.Equal(t, "Chat and code", pkg.Description)
	// Adding an entry again moves it to the end.
	require.Equal(t, []int{1, 3}, pkg.EntryIDs())
	require.False(t, pkg.CreatedAt.IsZero())

	// The package survives into the next invocation.
	out, err = run(t, st, NewListCmd, "--format", "json")
	require.NoError(t, err)

	var list output.ResultsPayload[pkgs.Package]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Results, 1)
	require.Equal(t, pkg.ID, list.Results[0].ID)
}

func TestCreateCmd_Text(t *testing.T) {
	t.Parallel()

	out, err := run(t, store.NewMemoryStore(), NewCreateCmd, "--entry", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "🏷️ Name: My MCP Package")
	assert.Contains(t, out, "📦 MCPs: 1")
	assert.Contains(t, out, "    • PostgreSQL Connector (2)")
}

func TestCreateCmd_Script(t *testing.T) {
	t.Parallel()

	out, err := run(t, store.NewMemoryStore(), NewCreateCmd, "--entry", "1", "--name", "Dev", "--script")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "#!/bin/bash\n"))
	require.Contains(t, out, "# Package: Dev")
	require.Contains(t, out, "npm install -g github-integration-mcp")
}

func TestCreateCmd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		st      store.Store
		args    []string
		wantIs  error
		wantMsg string
	}{
		{name: "entry flag is required", st: store.NewMemoryStore(), args: []string{}, wantMsg: `required flag(s) "entry" not set`},
		{name: "unknown entry", st: store.NewMemoryStore(), args: []string{"--entry", "9"}, wantIs: errors.ErrEntryNotFound},
		{name: "empty name", st: store.NewMemoryStore(), args: []string{"--entry", "1", "--name", "  "}, wantIs: errors.ErrBadRequest},
		{name: "persistence failure", st: failingStore{}, args: []string{"--entry", "1"}, wantIs: errors.ErrPersistenceFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, tc.st, NewCreateCmd, tc.args...)
			require.Error(t, err)
			if tc.wantIs != nil {
				require.ErrorIs(t, err, tc.wantIs)
			}
			if tc.wantMsg != "" {
				require.ErrorContains(t, err, tc.wantMsg)
			}
		})
	}
}

func TestListCmd_Text(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()

	out, err := run(t, st, NewListCmd)
	require.NoError(t, err)
	require.Equal(t, "No items found\n", out)

	createPackage(t, st, "First", "1")
	createPackage(t, st, "Second", "2", "3")

	out, err = run(t, st, NewListCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "💾 Saved packages...")
	assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"))
	assert.Contains(t, out, "📦 Found 2 packages")
	assert.NotContains(t, out, "• Slack Bot")
}

func TestShowCmd(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	id := createPackage(t, st, "Dev", "1", "2")

	out, err := run(t, st, NewShowCmd, id, "--format", "json")
	require.NoError(t, err)
	pkg := decodeResult[pkgs.Package](t, out)
	require.Equal(t, id, pkg.ID)
	require.Equal(t, []int{1, 2}, pkg.EntryIDs())

	_, err = run(t, st, NewShowCmd, "missing")
	require.ErrorIs(t, err, errors.ErrPackageNotFound)
}

func TestDeleteCmd(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	id := createPackage(t, st, "Dev", "1")

	out, err := run(t, st, NewDeleteCmd, id)
	require.NoError(t, err)
	require.Equal(t, "✓ Deleted package 'Dev' ("+id+")\n", out)

	_, err = run(t, st, NewDeleteCmd, id)
	require.ErrorIs(t, err, errors.ErrPackageNotFound)

	out, err = run(t, st, NewListCmd, "--format", "json")
	require.NoError(t, err)
	require.JSONEq(t, `{"results": []}`, out)
}

func TestScriptCmd(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	id := createPackage(t, st, "Team", "2", "3")

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, st, NewScriptCmd, id)
		require.NoError(t, err)
		require.Contains(t, out, "# Package: Team")
		require.Contains(t, out, "pip install postgresql-connector-mcp")
		require.Contains(t, out, "curl -sSL https://install.slackbot.com | bash")
		require.Contains(t, out, `echo "All 2 MCPs have been installed successfully."`)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "install.sh")
		out, err := run(t, st, NewScriptCmd, id, "--output", path)
		require.NoError(t, err)
		require.Contains(t, out, "Install script written to "+path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.True(t, perms.WithinLimit(info.Mode(), perms.ExecutableFile))
		require.NotZero(t, info.Mode().Perm()&0o100)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), "#!/bin/bash\n"))
	})

	t.Run("unknown package", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, st, NewScriptCmd, "missing")
		require.ErrorIs(t, err, errors.ErrPackageNotFound)
	})
}

func TestStatsCmd(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	id := createPackage(t, st, "Team", "1", "2", "3")

	out, err := run(t, st, NewStatsCmd, id, "--format", "json")
	require.NoError(t, err)
	stats := decodeResult[pkgs.Stats](t, out)
	require.Equal(t, 3, stats.Entries)
	require.Equal(t, 2, stats.EstimatedInstallMinutes)
	require.True(t, stats.Ready)

	out, err = run(t, st, NewStatsCmd, id)
	require.NoError(t, err)
	require.Contains(t, out, "📦 MCPs: 3")
	require.Contains(t, out, "✅ Ready")

	_, err = run(t, st, NewStatsCmd, "missing")
	require.ErrorIs(t, err, errors.ErrPackageNotFound)
}
