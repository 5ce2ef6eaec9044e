// Package perms provides centralized file and directory permission constants
// for consistent security practices across the mcpdir codebase.
package perms

import "os"

// File permission constants for different security contexts.
const (
	// RegularFile permissions for standard files (configuration, logs, cached catalogs).
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// ExecutableFile permissions for generated install scripts.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	ExecutableFile os.FileMode = 0o755

	// SecureFile permissions for user data (saved packages, key/value store files).
	// Mode 0600: owner read/write only, no group or other access.
	SecureFile os.FileMode = 0o600
)

// Directory permission constants for different security contexts.
const (
	// RegularDir permissions for standard directories (configuration, catalog data).
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755

	// SecureDir permissions for directories holding user data.
	// Mode 0700: owner read/write/execute only, no group or other access.
	SecureDir os.FileMode = 0o700
)

// WithinLimit reports whether actual grants no permission bit that limit does not also grant.
// Equal or more restrictive permissions are within the limit.
func WithinLimit(actual os.FileMode, limit os.FileMode) bool {
	return (actual.Perm() & ^limit.Perm()) == 0
}
