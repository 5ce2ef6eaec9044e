package cmd

import (
	stdErrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// ShowCmd represents the 'show' command.
type ShowCmd struct {
	*cmd.BaseCmd
	Format         cmd.OutputFormat
	cfgLoader      config.Loader
	catalogBuilder cmd.CatalogBuilder
}

// NewShowCmd creates a newly configured (Cobra) command.
func NewShowCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShowCmd{
		BaseCmd:        baseCmd,
		Format:         cmd.FormatText,
		cfgLoader:      opts.ConfigLoader,
		catalogBuilder: opts.CatalogBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Shows a single catalog entry",
		Long: "Shows a single catalog entry, looked up by its numeric ID or by its name (case-insensitive). " +
			"Unknown names list the closest matching entry names.",
		RunE: c.run,
		Args: cobra.ExactArgs(1),
	}

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", cmd.AllowedOutputFormats().String()),
	)

	return cobraCommand, nil
}

func (c *ShowCmd) run(cmd *cobra.Command, args []string) error {
	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return fmt.Errorf("id or name is required and cannot be empty")
	}

	entryPrinter, err := printer.NewEntryPrinter()
	if err != nil {
		return err
	}

	handler, err := newOutputHandler(c.Format, cmd, entryPrinter)
	if err != nil {
		return err
	}

	cat, _, err := loadCatalog(cmd, c.BaseCmd, c.cfgLoader, c.catalogBuilder)
	if err != nil {
		return handler.HandleError(err)
	}

	entry, err := c.lookup(cat, ref)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(entry)
}

// lookup resolves ref as an ID first, then as a name.
func (c *ShowCmd) lookup(cat *catalog.Catalog, ref string) (catalog.Entry, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if e, ok := cat.Get(id); ok {
			return e, nil
		}
		return catalog.Entry{}, fmt.Errorf("%w: %d", errors.ErrEntryNotFound, id)
	}

	e, suggestions, err := cat.FindByName(ref)
	if err == nil {
		return e, nil
	}
	if stdErrors.Is(err, errors.ErrEntryNotFound) && len(suggestions) > 0 {
		return catalog.Entry{}, fmt.Errorf("%w (did you mean: %s?)", err, strings.Join(suggestions, ", "))
	}

	return catalog.Entry{}, err
}
