package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// BrowseCmd represents the 'browse' command.
type BrowseCmd struct {
	*cmd.BaseCmd
	Category       string
	Sort           string
	Format         cmd.OutputFormat
	cfgLoader      config.Loader
	catalogBuilder cmd.CatalogBuilder
}

// NewBrowseCmd creates a newly configured (Cobra) command.
func NewBrowseCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &BrowseCmd{
		BaseCmd:        baseCmd,
		Format:         cmd.FormatText,
		cfgLoader:      opts.ConfigLoader,
		catalogBuilder: opts.CatalogBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "browse [query]",
		Short: "Lists catalog entries, optionally filtered and sorted",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.MaximumNArgs(1),
	}

	cobraCommand.Flags().StringVar(
		&c.Category,
		"category",
		catalog.AllCategories,
		"Only list entries in this category (case-insensitive)",
	)

	cobraCommand.Flags().StringVar(
		&c.Sort,
		"sort",
		string(catalog.SortPopular),
		fmt.Sprintf("Sort order, one of: %s", sortKeyList()),
	)

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", cmd.AllowedOutputFormats().String()),
	)

	return cobraCommand, nil
}

func (c *BrowseCmd) longDescription() string {
	return "Lists catalog entries. The optional query is matched case-insensitively against " +
		"entry names, descriptions, tags and authors."
}

func (c *BrowseCmd) run(cmd *cobra.Command, args []string) error {
	entryPrinter, err := printer.NewEntryPrinter(printer.WithSeparator(true), printer.WithDetails(false))
	if err != nil {
		return err
	}

	handler, err := newOutputHandler(c.Format, cmd, entryPrinter)
	if err != nil {
		return err
	}

	var query string
	if len(args) > 0 {
		query = strings.TrimSpace(args[0])
	}

	cat, _, err := loadCatalog(cmd, c.BaseCmd, c.cfgLoader, c.catalogBuilder)
	if err != nil {
		return handler.HandleError(err)
	}

	result, err := cat.Search(catalog.Query{
		Search:   query,
		Category: c.Category,
		Sort:     catalog.SortKey(c.Sort),
	})
	if err != nil {
		return handler.HandleError(err)
	}

	entryPrinter.SetFooter(printer.ShowingFooter(result.Total))

	return handler.HandleResults(result.Entries...)
}

func sortKeyList() string {
	keys := catalog.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return strings.Join(out, ", ")
}
