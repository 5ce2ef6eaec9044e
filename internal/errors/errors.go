// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/server/api_server.go)
// 2. Add a test case to TestMapError (internal/server/api_server_test.go)
// 3. Consider if existing handler tests need updates
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrEntryNotFound indicates that no catalog entry exists for the requested ID or name.
	// Recommended to map to HTTP 404 Not Found.
	ErrEntryNotFound = errors.New("catalog entry not found")

	// ErrPackageNotFound indicates that no saved package exists for the requested ID.
	// Only read operations return this, load and delete treat stale IDs as a no-op.
	// Recommended to map to HTTP 404 Not Found.
	ErrPackageNotFound = errors.New("package not found")

	// ErrEmptyPackage indicates an attempt to save a package that has no entries.
	// The package manager itself allows this, callers facing users are expected to refuse it.
	// Recommended to map to HTTP 400 Bad Request.
	ErrEmptyPackage = errors.New("cannot save empty package")

	// ErrCatalogInvalid indicates that a catalog document failed schema or consistency validation.
	// Recommended to map to HTTP 500 Internal Server Error, since the catalog is not user input at the API.
	ErrCatalogInvalid = errors.New("catalog is invalid")

	// ErrPersistenceFailed indicates that the durable store could not be written.
	// The in-memory change that triggered the write has already been applied.
	// Recommended to map to HTTP 500 Internal Server Error.
	ErrPersistenceFailed = errors.New("failed to persist saved packages")
)
