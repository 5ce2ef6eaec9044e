package packages

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// ListCmd represents the 'package list' command.
type ListCmd struct {
	managerCmd
	Format cmd.OutputFormat
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		managerCmd: newManagerCmd(baseCmd, opts),
		Format:     cmd.FormatText,
	}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists saved packages",
		Long:  "Lists saved packages in the order they were saved",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatUsage())

	return cobraCmd, nil
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	pkgPrinter, err := printer.NewPackagePrinter(printer.WithSeparator(true), printer.WithDetails(false))
	if err != nil {
		return err
	}

	handler, err := newOutputHandler(c.Format, cobraCmd, pkgPrinter)
	if err != nil {
		return err
	}

	return c.withManager(func(_ *config.Config, mgr *pkgs.Manager) error {
		return handler.HandleResults(mgr.Saved()...)
	})
}
