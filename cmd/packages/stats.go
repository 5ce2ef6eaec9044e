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

// StatsCmd represents the 'package stats' command.
type StatsCmd struct {
	managerCmd
	Format cmd.OutputFormat
}

// NewStatsCmd creates a newly configured (Cobra) command.
func NewStatsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &StatsCmd{
		managerCmd: newManagerCmd(baseCmd, opts),
		Format:     cmd.FormatText,
	}

	cobraCmd := &cobra.Command{
		Use:   "stats <package-id>",
		Short: "Shows the size and estimated install time of a saved package",
		RunE:  c.run,
		Args:  cobra.ExactArgs(1),
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatUsage())

	return cobraCmd, nil
}

func (c *StatsCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := newOutputHandler[pkgs.Stats](c.Format, cobraCmd, &printer.StatsPrinter{})
	if err != nil {
		return err
	}

	id := strings.TrimSpace(args[0])

	return c.withManager(func(_ *config.Config, mgr *pkgs.Manager) error {
		if !mgr.Load(id) {
			return handler.HandleError(fmt.Errorf("%w: %s", errors.ErrPackageNotFound, id))
		}
		return handler.HandleResult(mgr.Stats())
	})
}
