package packages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

// ShowCmd represents the 'package show' command.
type ShowCmd struct {
	managerCmd
	Format cmd.OutputFormat
}

// NewShowCmd creates a newly configured (Cobra) command.
func NewShowCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShowCmd{
		managerCmd: newManagerCmd(baseCmd, opts),
		Format:     cmd.FormatText,
	}

	cobraCmd := &cobra.Command{
		Use:   "show <package-id>",
		Short: "Shows a saved package and its entries",
		RunE:  c.run,
		Args:  cobra.ExactArgs(1),
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatUsage())

	return cobraCmd, nil
}

func (c *ShowCmd) run(cobraCmd *cobra.Command, args []string) error {
	pkgPrinter, err := printer.NewPackagePrinter()
	if err != nil {
		return err
	}

	handler, err := newOutputHandler(c.Format, cobraCmd, pkgPrinter)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(args[0])

	return c.withManager(func(_ *config.Config, mgr *pkgs.Manager) error {
		pkg, ok := mgr.SavedPackage(id)
		if !ok {
			return handler.HandleError(fmt.Errorf("%w: %s", errors.ErrPackageNotFound, id))
		}
		return handler.HandleResult(pkg)
	})
}
