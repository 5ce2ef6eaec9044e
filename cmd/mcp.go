package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/mcpserver"
)

// MCPCmd represents the 'mcp' command.
type MCPCmd struct {
	*cmd.BaseCmd
	cfgLoader      config.Loader
	catalogBuilder cmd.CatalogBuilder
	managerBuilder cmd.ManagerBuilder
}

// NewMCPCmd creates a newly configured (Cobra) command.
func NewMCPCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &MCPCmd{
		BaseCmd:        baseCmd,
		cfgLoader:      opts.ConfigLoader,
		catalogBuilder: opts.CatalogBuilder,
		managerBuilder: opts.ManagerBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Runs an MCP server on stdio exposing the catalog to agents",
		Long: "Runs a Model Context Protocol server that reads JSON-RPC requests from stdin and writes " +
			"responses to stdout. Use --log-path to capture logs, nothing else is written to stdout.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	return cobraCommand, nil
}

func (c *MCPCmd) run(cmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	cat, cfg, err := loadCatalog(cmd, c.BaseCmd, c.cfgLoader, c.catalogBuilder)
	if err != nil {
		return err
	}

	mgr, st, err := c.managerBuilder.BuildManager(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	s, err := mcpserver.NewServer(logger, cat, mgr)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := s.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
