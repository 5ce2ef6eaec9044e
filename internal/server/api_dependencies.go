package server

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/contracts"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Catalog provides the entries that can be browsed and added to packages.
	Catalog contracts.CatalogReader

	// Packages manages the current package and the saved packages.
	Packages contracts.PackageManager

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	reader contracts.CatalogReader,
	manager contracts.PackageManager,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:     addr,
		Catalog:  reader,
		Packages: manager,
		Logger:   logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Catalog == nil || reflect.ValueOf(d.Catalog).IsNil() {
		return fmt.Errorf("catalog cannot be nil")
	}
	if d.Packages == nil || reflect.ValueOf(d.Packages).IsNil() {
		return fmt.Errorf("package manager cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
