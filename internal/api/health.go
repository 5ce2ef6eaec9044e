package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpdir/internal/contracts"
)

// HealthStatusOK is reported while the catalog is loaded.
const HealthStatusOK = "ok"

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body struct {
		Status  string `doc:"Service status"                   example:"ok"       json:"status"`
		Entries int    `doc:"Number of entries in the catalog" example:"12"       json:"entries"`
		Source  string `doc:"Where the catalog was loaded from" example:"embedded" json:"source"`
	}
}

// RegisterHealthRoutes sets up the health endpoint.
func RegisterHealthRoutes(routerAPI huma.API, reader contracts.CatalogReader, apiPathPrefix string) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Path:        apiPathPrefix,
			Summary:     "Get service health",
			Tags:        []string{"Health"},
		},
		func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
			return handleHealth(reader)
		},
	)
}

func handleHealth(reader contracts.CatalogReader) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = HealthStatusOK
	resp.Body.Entries = reader.Len()
	resp.Body.Source = reader.Source()

	return resp, nil
}
