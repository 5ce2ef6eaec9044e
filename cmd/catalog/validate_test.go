package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/errors"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runValidate(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())

	c, err := NewCmd(base)
	require.NoError(t, err)

	o := new(bytes.Buffer)
	e := new(bytes.Buffer)
	c.SetOut(o)
	c.SetErr(e)
	c.SetArgs(append([]string{"validate"}, args...))

	err = c.Execute()
	return o.String(), e.String(), err
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		wantOut    string
		wantStderr []string
	}{
		{
			name: "valid document",
			content: `[
  {"id": 1, "name": "Alpha", "description": "First", "rating": 4.5, "downloads": "1k",
   "category": "Development", "tags": ["a"], "verified": true, "author": "A", "lastUpdated": "2024-01-01"}
]`,
			wantOut: "✓ Catalog is valid (1 entry)\n",
		},
		{
			name:    "empty catalog",
			content: `[]`,
			wantOut: "✓ Catalog is valid (0 entries)\n",
		},
		{
			name: "duplicate ids",
			content: `[
  {"id": 1, "name": "Alpha", "description": "First", "rating": 4.5, "downloads": "1k",
   "category": "Development", "tags": [], "verified": true, "author": "A", "lastUpdated": "2024-01-01"},
  {"id": 1, "name": "Beta", "description": "Second", "rating": 4.0, "downloads": "2k",
   "category": "Database", "tags": [], "verified": false, "author": "B", "lastUpdated": "2024-01-02"}
]`,
			wantStderr: []string{"✗ Catalog validation failed (1 problem):", "duplicate"},
		},
		{
			name:       "not json",
			content:    `{not json`,
			wantStderr: []string{"✗ Catalog validation failed"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, stderr, err := runValidate(t, writeCatalog(t, tc.content))
			if len(tc.wantStderr) > 0 {
				require.ErrorIs(t, err, errors.ErrCatalogInvalid)
				for _, s := range tc.wantStderr {
					require.Contains(t, stderr, s)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantOut, out)
		})
	}
}

func TestValidateCmd_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := runValidate(t, filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "failed to read catalog file")
}
