package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpdir/internal/contracts"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// RegisterRoutes registers all API routes on the provided Huma router.
// This is the single source of truth for the API route structure.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(
	router huma.API,
	reader contracts.CatalogReader,
	manager contracts.PackageManager,
) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if reader == nil || reflect.ValueOf(reader).IsNil() {
		return "", fmt.Errorf("catalog cannot be nil")
	}
	if manager == nil || reflect.ValueOf(manager).IsNil() {
		return "", fmt.Errorf("package manager cannot be nil")
	}

	// Safe way to ensure /api/{version}.
	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	// Group all routes under the /api/{version} prefix.
	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterHealthRoutes(versionedGroup, reader, "/health")
	RegisterCatalogRoutes(versionedGroup, reader, "/catalog")
	RegisterPackageRoutes(versionedGroup, reader, manager, "/package")
	RegisterSavedPackageRoutes(versionedGroup, manager, "/packages")

	return apiPathPrefix, nil
}
