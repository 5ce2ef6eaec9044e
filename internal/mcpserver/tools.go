package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

const (
	toolSearchCatalog         = "search_catalog"
	toolGetCatalogEntry       = "get_catalog_entry"
	toolGenerateInstallScript = "generate_install_script"
	toolListSavedPackages     = "list_saved_packages"
)

func sortKeyNames() []string {
	keys := catalog.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(toolSearchCatalog,
			mcp.WithDescription("Search the MCP catalog. Matches name, description, tags and author."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("query", mcp.Description("Case-insensitive text to search for")),
			mcp.WithString("category", mcp.Description("Category to filter by, 'all' matches everything")),
			mcp.WithString("sort", mcp.Description("Result order"), mcp.Enum(sortKeyNames()...)),
		),
		s.handleSearchCatalog,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(toolGetCatalogEntry,
			mcp.WithDescription("Get a single catalog entry by its ID."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Catalog entry ID")),
		),
		s.handleGetCatalogEntry,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(toolGenerateInstallScript,
			mcp.WithDescription("Generate a bash script that installs the given catalog entries."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithArray("ids",
				mcp.Required(),
				mcp.Description("Catalog entry IDs in install order"),
				mcp.Items(map[string]any{"type": "number"}),
			),
			mcp.WithString("name", mcp.Description("Package name shown in the script header")),
			mcp.WithString("description", mcp.Description("Package description shown in the script header")),
		),
		s.handleGenerateInstallScript,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(toolListSavedPackages,
			mcp.WithDescription("List saved packages with their entries."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListSavedPackages,
	)
}

func (s *Server) handleSearchCatalog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.catalog.Search(catalog.Query{
		Search:   request.GetString("query", ""),
		Category: request.GetString("category", ""),
		Sort:     catalog.SortKey(request.GetString("sort", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func (s *Server) handleGetCatalogEntry(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := intArg(request.GetArguments(), "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, ok := s.catalog.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("catalog entry not found: %d", id)), nil
	}

	return jsonResult(entry)
}

func (s *Server) handleGenerateInstallScript(
	_ context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	ids, err := intSliceArg(request.GetArguments(), "ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(ids) == 0 {
		return mcp.NewToolResultError("at least one catalog entry ID is required"), nil
	}

	entries, err := s.catalog.GetMany(ids)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	now := s.now()
	pkg := packages.Package{
		ID:           packages.CurrentID,
		Name:         request.GetString("name", packages.DefaultName),
		Description:  request.GetString("description", packages.DefaultDescription),
		Entries:      dedupe(entries),
		CreatedAt:    now,
		LastModified: now,
	}
	if strings.TrimSpace(pkg.Name) == "" {
		pkg.Name = packages.DefaultName
	}

	s.logger.Debug("Generating install script", "entries", len(pkg.Entries))
	return mcp.NewToolResultText(packages.GenerateScript(pkg, now)), nil
}

func (s *Server) handleListSavedPackages(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.packages.Saved())
}

// dedupe keeps the first occurrence of each entry ID.
func dedupe(entries []catalog.Entry) []catalog.Entry {
	seen := make(map[int]struct{}, len(entries))
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument '%s'", key)
	}
	return toInt(key, v)
}

func intSliceArg(args map[string]any, key string) ([]int, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing required argument '%s'", key)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument '%s' must be an array of numbers", key)
	}

	out := make([]int, len(items))
	for i, item := range items {
		n, err := toInt(key, item)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// toInt accepts JSON numbers that hold whole values.
func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument '%s' must be a whole number, got %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument '%s' must be a whole number: %w", key, err)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("argument '%s' must be a number", key)
	}
}
