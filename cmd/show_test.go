package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/errors"
)

func TestShowCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  string
	}{
		{
			name:     "by id",
			args:     []string{"2"},
			contains: []string{"🏷️ Name: PostgreSQL Connector", "👤 Author: Community", "💾 Size: 1 MB"},
		},
		{
			name:     "by name ignores case and spaces",
			args:     []string{"  slack BOT "},
			contains: []string{"🆔 3", "🔖 Tags: chat"},
		},
		{
			name:    "unknown id",
			args:    []string{"42"},
			wantErr: "catalog entry not found: 42",
		},
		{
			name:    "unknown name suggests close names",
			args:    []string{"GitHub"},
			wantErr: "did you mean: GitHub Integration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			o := new(bytes.Buffer)
			c, err := NewShowCmd(testBaseCmd(), testOptions(t)...)
			require.NoError(t, err)

			c.SetOut(o)
			c.SetArgs(tc.args)
			err = c.Execute()

			if tc.wantErr != "" {
				require.ErrorIs(t, err, errors.ErrEntryNotFound)
				require.ErrorContains(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			for _, s := range tc.contains {
				require.Contains(t, o.String(), s)
			}
			require.NotContains(t, o.String(), "Catalog results")
		})
	}
}

func TestShowCmd_JSONFormat(t *testing.T) {
	t.Parallel()

	o := new(bytes.Buffer)
	c, err := NewShowCmd(testBaseCmd(), testOptions(t)...)
	require.NoError(t, err)

	c.SetOut(o)
	c.SetArgs([]string{"1", "--format", "json"})
	require.NoError(t, c.Execute())

	var result output.ResultPayload[catalog.Entry]
	require.NoError(t, json.Unmarshal(o.Bytes(), &result))
	require.Equal(t, "GitHub Integration", result.Result.Name)
	require.True(t, result.Result.Verified)
}
