package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/contracts"
	"github.com/mozilla-ai/mcpdir/internal/errors"
)

// CatalogSearchRequest represents the incoming API request for searching the catalog.
type CatalogSearchRequest struct {
	Query    string `doc:"Case-insensitive text matched against name, description, tags and author" example:"github"      query:"q"`
	Category string `doc:"Category to filter by, 'all' or empty for every category"                  example:"development" query:"category"`
	Sort     string `doc:"Sort order: popular (default), rating, recent or name"                     example:"rating"      query:"sort"`
}

// CatalogSearchResponse represents the wrapped API response for a catalog search.
type CatalogSearchResponse struct {
	Body catalog.Result
}

// CategoriesResponse represents the wrapped API response for the category list.
type CategoriesResponse struct {
	Body []string
}

// CatalogEntryRequest represents the incoming API request for a single catalog entry.
type CatalogEntryRequest struct {
	ID int `doc:"Catalog entry ID" example:"1" path:"id"`
}

// CatalogEntryResponse represents the wrapped API response for a single catalog entry.
type CatalogEntryResponse struct {
	Body catalog.Entry
}

// RegisterCatalogRoutes sets up catalog browsing endpoints.
func RegisterCatalogRoutes(routerAPI huma.API, reader contracts.CatalogReader, apiPathPrefix string) {
	catalogAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Catalog"}

	huma.Register(
		catalogAPI,
		huma.Operation{
			OperationID: "searchCatalog",
			Method:      http.MethodGet,
			Summary:     "Search and sort catalog entries",
			Tags:        tags,
		},
		func(ctx context.Context, input *CatalogSearchRequest) (*CatalogSearchResponse, error) {
			return handleCatalogSearch(reader, input)
		},
	)

	huma.Register(
		catalogAPI,
		huma.Operation{
			OperationID: "listCategories",
			Method:      http.MethodGet,
			Path:        "/categories",
			Summary:     "List catalog categories",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*CategoriesResponse, error) {
			return &CategoriesResponse{Body: reader.Categories()}, nil
		},
	)

	huma.Register(
		catalogAPI,
		huma.Operation{
			OperationID: "getCatalogEntry",
			Method:      http.MethodGet,
			Path:        "/{id}",
			Summary:     "Get a catalog entry",
			Tags:        tags,
		},
		func(ctx context.Context, input *CatalogEntryRequest) (*CatalogEntryResponse, error) {
			return handleCatalogEntry(reader, input.ID)
		},
	)
}

func handleCatalogSearch(reader contracts.CatalogReader, input *CatalogSearchRequest) (*CatalogSearchResponse, error) {
	res, err := reader.Search(catalog.Query{
		Search:   input.Query,
		Category: input.Category,
		Sort:     catalog.SortKey(input.Sort),
	})
	if err != nil {
		return nil, err
	}

	return &CatalogSearchResponse{Body: res}, nil
}

func handleCatalogEntry(reader contracts.CatalogReader, id int) (*CatalogEntryResponse, error) {
	entry, err := lookupEntry(reader, id)
	if err != nil {
		return nil, err
	}

	return &CatalogEntryResponse{Body: entry}, nil
}

func lookupEntry(reader contracts.CatalogReader, id int) (catalog.Entry, error) {
	entry, ok := reader.Get(id)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("%w: %d", errors.ErrEntryNotFound, id)
	}
	return entry, nil
}
