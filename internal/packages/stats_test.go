package packages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
)

func TestEstimatedInstallMinutes(t *testing.T) {
	t.Parallel()

	tests := map[int]int{0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 12: 6}
	for entries, want := range tests {
		require.Equal(t, want, EstimatedInstallMinutes(entries), "entries=%d", entries)
	}
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  uint64
	}{
		{input: "2 MB", want: 2_000_000},
		{input: "512 kB", want: 512_000},
		{input: "1MiB", want: 1 << 20},
		{input: " 3 MB ", want: 3_000_000},
		{input: "", want: 0},
		{input: "unknown", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ParseSize(tc.input))
		})
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	empty := ComputeStats(newPackage(epoch))
	require.Equal(t, Stats{
		Entries:                 0,
		TotalSizeBytes:          0,
		TotalSize:               "0 B",
		EstimatedInstallMinutes: 1,
		Ready:                   false,
	}, empty)

	pkg := newPackage(epoch)
	pkg.Entries = []catalog.Entry{
		{ID: 1, Size: "2 MB"},
		{ID: 2, Size: "1 MB"},
		{ID: 3},
		{ID: 4, Size: "garbage"},
	}

	got := ComputeStats(pkg)
	require.Equal(t, 4, got.Entries)
	require.Equal(t, uint64(3_000_000), got.TotalSizeBytes)
	require.Equal(t, "3.0 MB", got.TotalSize)
	require.Equal(t, 2, got.EstimatedInstallMinutes)
	require.True(t, got.Ready)
}
