package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// CategoriesCmd represents the 'categories' command.
type CategoriesCmd struct {
	*cmd.BaseCmd
	Format         cmd.OutputFormat
	cfgLoader      config.Loader
	catalogBuilder cmd.CatalogBuilder
}

// NewCategoriesCmd creates a newly configured (Cobra) command.
func NewCategoriesCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CategoriesCmd{
		BaseCmd:        baseCmd,
		Format:         cmd.FormatText,
		cfgLoader:      opts.ConfigLoader,
		catalogBuilder: opts.CatalogBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "categories",
		Short: "Lists the catalog categories that can be used with 'browse --category'",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", cmd.AllowedOutputFormats().String()),
	)

	return cobraCommand, nil
}

func (c *CategoriesCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := newOutputHandler(c.Format, cmd, printer.NewCategoryPrinter())
	if err != nil {
		return err
	}

	cat, _, err := loadCatalog(cmd, c.BaseCmd, c.cfgLoader, c.catalogBuilder)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(cat.Categories()...)
}
