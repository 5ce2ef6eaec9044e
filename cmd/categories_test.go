package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
)

func TestCategoriesCmd(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		o := new(bytes.Buffer)
		c, err := NewCategoriesCmd(testBaseCmd(), testOptions(t)...)
		require.NoError(t, err)

		c.SetOut(o)
		require.NoError(t, c.Execute())
		require.Contains(t, o.String(), "📂 Categories:")
		require.Contains(t, o.String(), "  • development\n")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		o := new(bytes.Buffer)
		c, err := NewCategoriesCmd(testBaseCmd(), testOptions(t)...)
		require.NoError(t, err)

		c.SetOut(o)
		c.SetArgs([]string{"--format", "json"})
		require.NoError(t, c.Execute())

		var result output.ResultsPayload[string]
		require.NoError(t, json.Unmarshal(o.Bytes(), &result))
		require.Equal(t, []string{"all", "development", "database", "communication"}, result.Results)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()

		c, err := NewCategoriesCmd(testBaseCmd(), testOptions(t)...)
		require.NoError(t, err)

		c.SetOut(new(bytes.Buffer))
		c.SetErr(new(bytes.Buffer))
		c.SetArgs([]string{"extra"})
		require.Error(t, c.Execute())
	})
}
