package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpdir/internal/contracts"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

// SavedPackagesResponse represents the wrapped API response for the saved package list.
type SavedPackagesResponse struct {
	Body []packages.Package
}

// SavedPackageRequest identifies a saved package.
type SavedPackageRequest struct {
	ID string `doc:"Saved package ID" example:"0190c3b2-7c4e-7b8a-9d2f-3a1b2c3d4e5f" path:"id"`
}

// LoadPackageResponse represents the wrapped API response after loading a saved package.
type LoadPackageResponse struct {
	Body struct {
		Loaded  bool             `doc:"False when no saved package has the ID" json:"loaded"`
		Package packages.Package `doc:"The current package"                    json:"package"`
	}
}

// DeletePackageResponse represents the wrapped API response after deleting a saved package.
type DeletePackageResponse struct {
	Body struct {
		Deleted bool `doc:"False when no saved package has the ID" json:"deleted"`
	}
}

// RegisterSavedPackageRoutes sets up endpoints operating on saved packages.
func RegisterSavedPackageRoutes(routerAPI huma.API, manager contracts.PackageManager, apiPathPrefix string) {
	savedAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Saved packages"}

	huma.Register(
		savedAPI,
		huma.Operation{
			OperationID: "listSavedPackages",
			Method:      http.MethodGet,
			Summary:     "List saved packages",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*SavedPackagesResponse, error) {
			return &SavedPackagesResponse{Body: manager.Saved()}, nil
		},
	)

	huma.Register(
		savedAPI,
		huma.Operation{
			OperationID: "getSavedPackage",
			Method:      http.MethodGet,
			Path:        "/{id}",
			Summary:     "Get a saved package",
			Tags:        tags,
		},
		func(ctx context.Context, input *SavedPackageRequest) (*PackageResponse, error) {
			return handleSavedPackage(manager, input.ID)
		},
	)

	huma.Register(
		savedAPI,
		huma.Operation{
			OperationID: "loadSavedPackage",
			Method:      http.MethodPost,
			Path:        "/{id}/load",
			Summary:     "Replace the current package with a copy of a saved package",
			Tags:        tags,
		},
		func(ctx context.Context, input *SavedPackageRequest) (*LoadPackageResponse, error) {
			resp := &LoadPackageResponse{}
			resp.Body.Loaded = manager.Load(input.ID)
			resp.Body.Package = manager.Current()
			return resp, nil
		},
	)

	huma.Register(
		savedAPI,
		huma.Operation{
			OperationID: "deleteSavedPackage",
			Method:      http.MethodDelete,
			Path:        "/{id}",
			Summary:     "Delete a saved package",
			Tags:        tags,
		},
		func(ctx context.Context, input *SavedPackageRequest) (*DeletePackageResponse, error) {
			deleted, err := manager.Delete(input.ID)
			if err != nil {
				return nil, err
			}
			resp := &DeletePackageResponse{}
			resp.Body.Deleted = deleted
			return resp, nil
		},
	)
}

func handleSavedPackage(manager contracts.PackageManager, id string) (*PackageResponse, error) {
	pkg, ok := manager.SavedPackage(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrPackageNotFound, id)
	}
	return &PackageResponse{Body: pkg}, nil
}
