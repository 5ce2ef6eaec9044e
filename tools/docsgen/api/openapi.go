//go:build docsgen_api
// +build docsgen_api

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/api"
	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/perms"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

// outputPath is the OpenAPI document location, relative to the repository root.
const outputPath = "./docs/api/openapi.yaml"

// main generates the OpenAPI specification for the mcpdir API.
// Route registration only needs real types, so the embedded catalog and an in-memory store back it.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mcpdir.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	cat, err := catalog.New(logger)
	if err != nil {
		logger.Error("failed to load embedded catalog", "error", err)
		os.Exit(1)
	}

	mgr, err := packages.NewManager(logger, store.NewMemoryStore())
	if err != nil {
		logger.Error("failed to create package manager", "error", err)
		os.Exit(1)
	}

	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	router := humachi.New(mux, huma.DefaultConfig(fmt.Sprintf("%s docs", cmd.AppName()), api.APIVersion))

	apiPathPrefix, err := api.RegisterRoutes(router, cat, mgr)
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}
	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, perms.RegularDir); err != nil {
		logger.Error("failed to create docs directory", "path", docsDir, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}
