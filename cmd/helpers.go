package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/config"
)

// newOutputHandler returns the handler for format writing to the command's output.
func newOutputHandler[T any](format cmd.OutputFormat, c *cobra.Command, p output.Printer[T]) (output.Handler[T], error) {
	return cmd.NewOutputHandler(format, c.OutOrStdout(), p)
}

// commandContext returns the command's context, or a background context when run outside of Execute.
func commandContext(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadCatalog loads the configuration and builds the catalog it names.
func loadCatalog(
	c *cobra.Command,
	base *cmd.BaseCmd,
	loader config.Loader,
	builder cmd.CatalogBuilder,
) (*catalog.Catalog, *config.Config, error) {
	cfg, err := base.LoadConfig(loader)
	if err != nil {
		return nil, nil, err
	}

	cat, err := builder.BuildCatalog(commandContext(c), cfg)
	if err != nil {
		return nil, nil, err
	}

	return cat, cfg, nil
}
