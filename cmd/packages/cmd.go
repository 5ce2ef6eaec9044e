package packages

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/config"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

// NewCmd creates the parent package command.
func NewCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"packages", "pkg"},
		Short:   "Create and manage saved packages",
		Long: "Create packages from catalog entries, then list, inspect, delete and generate install scripts " +
			"for the saved packages",
	}

	// Sub-commands for: mcpdir package.
	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewCreateCmd, // create
		NewDeleteCmd, // delete
		NewListCmd,   // list
		NewScriptCmd, // script
		NewShowCmd,   // show
		NewStatsCmd,  // stats
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}

// managerCmd holds what every package sub-command needs to reach the saved packages.
type managerCmd struct {
	*cmd.BaseCmd
	cfgLoader      config.Loader
	managerBuilder cmd.ManagerBuilder
}

func newManagerCmd(baseCmd *cmd.BaseCmd, opts cmdopts.CmdOptions) managerCmd {
	return managerCmd{
		BaseCmd:        baseCmd,
		cfgLoader:      opts.ConfigLoader,
		managerBuilder: opts.ManagerBuilder,
	}
}

// withManager loads the configuration, opens the store and calls fn with the resulting manager.
// The store is closed once fn returns.
func (c managerCmd) withManager(fn func(cfg *config.Config, mgr *pkgs.Manager) error) error {
	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return err
	}

	mgr, st, err := c.managerBuilder.BuildManager(cfg)
	if err != nil {
		return err
	}
	defer closeStore(c.BaseCmd, st)

	return fn(cfg, mgr)
}

func closeStore(base *cmd.BaseCmd, st store.Store) {
	if err := st.Close(); err != nil {
		base.Logger().Warn("Failed to close store", "error", err)
	}
}

func formatUsage() string {
	return fmt.Sprintf("Specify the output format (one of: %s)", cmd.AllowedOutputFormats().String())
}

func newOutputHandler[T any](format cmd.OutputFormat, c *cobra.Command, p output.Printer[T]) (output.Handler[T], error) {
	return cmd.NewOutputHandler(format, c.OutOrStdout(), p)
}
