package perms

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		perm     os.FileMode
		expected os.FileMode
	}{
		{name: "RegularFile", perm: RegularFile, expected: 0o644},
		{name: "ExecutableFile", perm: ExecutableFile, expected: 0o755},
		{name: "SecureFile", perm: SecureFile, expected: 0o600},
		{name: "RegularDir", perm: RegularDir, expected: 0o755},
		{name: "SecureDir", perm: SecureDir, expected: 0o700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, tc.perm)
		})
	}
}

func TestWithinLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		actual os.FileMode
		limit  os.FileMode
		want   bool
	}{
		{name: "equal", actual: 0o700, limit: SecureDir, want: true},
		{name: "more restrictive", actual: 0o600, limit: SecureDir, want: true},
		{name: "group read on secure dir", actual: 0o740, limit: SecureDir, want: false},
		{name: "world writable on regular file", actual: 0o646, limit: RegularFile, want: false},
		{name: "directory bit ignored", actual: os.ModeDir | 0o755, limit: RegularDir, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, WithinLimit(tc.actual, tc.limit))
		})
	}
}
