package packages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// CreateCmd represents the 'package create' command.
type CreateCmd struct {
	managerCmd
	EntryIDs       []int
	Name           string
	Description    string
	Script         bool
	Format         cmd.OutputFormat
	catalogBuilder cmd.CatalogBuilder
}

// NewCreateCmd creates a newly configured (Cobra) command.
func NewCreateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CreateCmd{
		managerCmd:     newManagerCmd(baseCmd, opts),
		Format:         cmd.FormatText,
		catalogBuilder: opts.CatalogBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "create --entry <id> [--entry <id>...] [--name] [--description] [--script]",
		Short: "Creates and saves a package from catalog entries",
		Long: "Creates a package holding the given catalog entries, in the order given, and saves it. " +
			"An ID given more than once is added once, at its last position.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCmd.Flags().IntSliceVar(
		&c.EntryIDs,
		"entry",
		nil,
		"Catalog entry ID to include (can be repeated or comma separated)",
	)

	cobraCmd.Flags().StringVar(
		&c.Name,
		"name",
		pkgs.DefaultName,
		"Package name",
	)

	cobraCmd.Flags().StringVar(
		&c.Description,
		"description",
		pkgs.DefaultDescription,
		"Package description",
	)

	cobraCmd.Flags().BoolVar(
		&c.Script,
		"script",
		false,
		"Print the install script of the saved package instead of the package",
	)

	cobraCmd.Flags().Var(&c.Format, "format", formatUsage())

	_ = cobraCmd.MarkFlagRequired("entry")

	return cobraCmd, nil
}

func (c *CreateCmd) run(cobraCmd *cobra.Command, _ []string) error {
	pkgPrinter, err := printer.NewPackagePrinter()
	if err != nil {
		return err
	}

	handler, err := newOutputHandler(c.Format, cobraCmd, pkgPrinter)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return handler.HandleError(fmt.Errorf("%w: package name cannot be empty", errors.ErrBadRequest))
	}

	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return c.withManager(func(cfg *config.Config, mgr *pkgs.Manager) error {
		cat, err := c.catalogBuilder.BuildCatalog(ctx, cfg)
		if err != nil {
			return handler.HandleError(err)
		}

		entries, err := cat.GetMany(c.EntryIDs)
		if err != nil {
			return handler.HandleError(err)
		}

		mgr.Clear()
		mgr.UpdateInfo(name, strings.TrimSpace(c.Description))
		for _, e := range entries {
			mgr.AddEntry(e)
		}

		saved, err := mgr.SaveNonEmpty()
		if err != nil {
			return handler.HandleError(err)
		}

		if c.Script {
			_, err := io.WriteString(cobraCmd.OutOrStdout(), mgr.GenerateScript())
			return err
		}

		return handler.HandleResult(saved)
	})
}
