package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/errors"
)

func TestParse_Embedded(t *testing.T) {
	t.Parallel()

	data, err := embeddedData.ReadFile(embeddedCatalogPath)
	require.NoError(t, err)

	entries, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 12)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantErr     bool
		wantProblem string
	}{
		{name: "empty array", input: `[]`},
		{name: "valid", input: smallCatalog},
		{name: "not json", input: `{`, wantErr: true},
		{name: "object instead of array", input: `{"id": 1}`, wantErr: true},
		{name: "missing fields", input: `[{"id": 1, "name": "x"}]`, wantErr: true, wantProblem: "required"},
		{
			name: "rating out of range",
			input: `[{"id": 1, "name": "x", "description": "", "rating": 9, "downloads": "1", "category": "c",
				"tags": [], "verified": true, "author": "a", "lastUpdated": "2024-01-01"}]`,
			wantErr:     true,
			wantProblem: "rating",
		},
		{
			name: "unknown field",
			input: `[{"id": 1, "name": "x", "description": "", "rating": 1, "downloads": "1", "category": "c",
				"tags": [], "verified": true, "author": "a", "lastUpdated": "2024-01-01", "price": 3}]`,
			wantErr: true,
		},
		{
			name: "duplicate ids",
			input: `[
				{"id": 1, "name": "x", "description": "", "rating": 1, "downloads": "1", "category": "c",
				 "tags": [], "verified": true, "author": "a", "lastUpdated": "2024-01-01"},
				{"id": 1, "name": "y", "description": "", "rating": 1, "downloads": "1", "category": "c",
				 "tags": [], "verified": true, "author": "a", "lastUpdated": "2024-01-01"}
			]`,
			wantErr:     true,
			wantProblem: "duplicate id 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			entries, err := Parse([]byte(tc.input))
			if !tc.wantErr {
				require.NoError(t, err)
				require.NotNil(t, entries)
				return
			}

			require.ErrorIs(t, err, errors.ErrCatalogInvalid)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Problems)
			if tc.wantProblem != "" {
				require.Contains(t, err.Error(), tc.wantProblem)
			}
		})
	}
}
