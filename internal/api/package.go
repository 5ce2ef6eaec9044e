package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/contracts"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

// PackageResponse represents the wrapped API response for a single package.
type PackageResponse struct {
	Body packages.Package
}

// UpdatePackageRequest represents the incoming API request to rename the current package.
type UpdatePackageRequest struct {
	Body struct {
		Name        string `doc:"Package name"        example:"Dev Tools"             json:"name"`
		Description string `doc:"Package description" example:"Everything for coding" json:"description"`
	}
}

// AddEntryRequest represents the incoming API request to add a catalog entry to the current package.
type AddEntryRequest struct {
	Body struct {
		ID int `doc:"Catalog entry ID" example:"1" json:"id"`
	}
}

// AddEntryResponse represents the wrapped API response after adding an entry.
type AddEntryResponse struct {
	Body struct {
		Entry            catalog.Entry    `doc:"The catalog entry"                                     json:"entry"`
		AlreadyInPackage bool             `doc:"True when the entry was already in the package"        json:"alreadyInPackage"`
		Package          packages.Package `doc:"The current package after the request was processed"   json:"package"`
	}
}

// PackageEntryRequest identifies an entry of the current package.
type PackageEntryRequest struct {
	ID int `doc:"Catalog entry ID" example:"1" path:"id"`
}

// ContainsEntryResponse represents the wrapped API response for an entry membership check.
type ContainsEntryResponse struct {
	Body struct {
		ID        int  `doc:"Catalog entry ID"                        json:"id"`
		InPackage bool `doc:"Whether the current package contains it" json:"inPackage"`
	}
}

// ScriptResponse is the install script for the current package.
type ScriptResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// StatsResponse represents the wrapped API response for package statistics.
type StatsResponse struct {
	Body packages.Stats
}

// RegisterPackageRoutes sets up endpoints operating on the current package.
func RegisterPackageRoutes(
	routerAPI huma.API,
	reader contracts.CatalogReader,
	manager contracts.PackageManager,
	apiPathPrefix string,
) {
	packageAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Package"}

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "getCurrentPackage",
			Method:      http.MethodGet,
			Summary:     "Get the current package",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*PackageResponse, error) {
			return &PackageResponse{Body: manager.Current()}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "updateCurrentPackage",
			Method:      http.MethodPut,
			Summary:     "Update the current package name and description",
			Tags:        tags,
		},
		func(ctx context.Context, input *UpdatePackageRequest) (*PackageResponse, error) {
			manager.UpdateInfo(input.Body.Name, input.Body.Description)
			return &PackageResponse{Body: manager.Current()}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "clearCurrentPackage",
			Method:      http.MethodDelete,
			Summary:     "Reset the current package",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*PackageResponse, error) {
			manager.Clear()
			return &PackageResponse{Body: manager.Current()}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "addPackageEntry",
			Method:      http.MethodPost,
			Path:        "/entries",
			Summary:     "Add a catalog entry to the current package",
			Tags:        tags,
		},
		func(ctx context.Context, input *AddEntryRequest) (*AddEntryResponse, error) {
			return handleAddEntry(reader, manager, input.Body.ID)
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "containsPackageEntry",
			Method:      http.MethodGet,
			Path:        "/entries/{id}",
			Summary:     "Check whether the current package contains an entry",
			Tags:        tags,
		},
		func(ctx context.Context, input *PackageEntryRequest) (*ContainsEntryResponse, error) {
			resp := &ContainsEntryResponse{}
			resp.Body.ID = input.ID
			resp.Body.InPackage = manager.Contains(input.ID)
			return resp, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "removePackageEntry",
			Method:      http.MethodDelete,
			Path:        "/entries/{id}",
			Summary:     "Remove an entry from the current package",
			Tags:        tags,
		},
		func(ctx context.Context, input *PackageEntryRequest) (*PackageResponse, error) {
			manager.RemoveEntry(input.ID)
			return &PackageResponse{Body: manager.Current()}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "getPackageScript",
			Method:      http.MethodGet,
			Path:        "/script",
			Summary:     "Generate the install script for the current package",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ScriptResponse, error) {
			return &ScriptResponse{
				ContentType: packages.ScriptContentType,
				Body:        []byte(manager.GenerateScript()),
			}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID: "getPackageStats",
			Method:      http.MethodGet,
			Path:        "/stats",
			Summary:     "Get size and install estimates for the current package",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*StatsResponse, error) {
			return &StatsResponse{Body: manager.Stats()}, nil
		},
	)

	huma.Register(
		packageAPI,
		huma.Operation{
			OperationID:   "saveCurrentPackage",
			Method:        http.MethodPost,
			Path:          "/save",
			Summary:       "Save a copy of the current package",
			Tags:          tags,
			DefaultStatus: http.StatusCreated,
		},
		func(ctx context.Context, _ *struct{}) (*PackageResponse, error) {
			return handleSavePackage(manager)
		},
	)
}

// handleAddEntry adds the catalog entry to the current package.
// An entry already in the package is reported rather than re-added.
func handleAddEntry(
	reader contracts.CatalogReader,
	manager contracts.PackageManager,
	id int,
) (*AddEntryResponse, error) {
	entry, err := lookupEntry(reader, id)
	if err != nil {
		return nil, err
	}

	resp := &AddEntryResponse{}
	resp.Body.Entry = entry
	resp.Body.AlreadyInPackage = !manager.AddEntryIfAbsent(entry)
	resp.Body.Package = manager.Current()

	return resp, nil
}

// handleSavePackage saves the current package, refusing to save one without entries.
func handleSavePackage(manager contracts.PackageManager) (*PackageResponse, error) {
	saved, err := manager.SaveNonEmpty()
	if err != nil {
		return nil, err
	}

	return &PackageResponse{Body: saved}, nil
}
