package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/flags"
	"github.com/mozilla-ai/mcpdir/internal/server"
)

// devAddr is the address used in --dev mode.
const devAddr = "localhost:8090"

// ServeCmd represents the 'serve' command.
type ServeCmd struct {
	*cmd.BaseCmd
	Dev            bool
	Addr           string
	cfgLoader      config.Loader
	catalogBuilder cmd.CatalogBuilder
	managerBuilder cmd.ManagerBuilder
}

// NewServeCmd creates a newly configured (Cobra) command.
func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ServeCmd{
		BaseCmd:        baseCmd,
		cfgLoader:      opts.ConfigLoader,
		catalogBuilder: opts.CatalogBuilder,
		managerBuilder: opts.ManagerBuilder,
	}

	cobraCommand := &cobra.Command{
		Use:   "serve [--dev] [--addr]",
		Short: "Serves the catalog and package HTTP API",
		Long: "Serves the catalog and package HTTP API under /api/v1, with OpenAPI documentation at /docs. " +
			"When [catalog] watch is enabled, a local catalog file is reloaded whenever it changes.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCommand.Flags().BoolVar(
		&c.Dev,
		"dev",
		false,
		fmt.Sprintf("Run in development-focused mode, binding %s and printing a banner", devAddr),
	)

	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		"",
		fmt.Sprintf("Address for the API server to bind (default from config, else %s)", config.DefaultAddr),
	)

	cobraCommand.MarkFlagsMutuallyExclusive("dev", "addr")

	return cobraCommand, nil
}

// addr returns the address to bind, in order of precedence: --dev, --addr, then the config file.
func (c *ServeCmd) addr(cfg *config.Config) string {
	if c.Dev {
		return devAddr
	}
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		return addr
	}
	return cfg.ServerAddr()
}

// run is configured (via NewServeCmd) to be called by the Cobra framework when the command is executed.
func (c *ServeCmd) run(cmd *cobra.Command, _ []string) error {
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

	addr := c.addr(cfg)
	deps, err := server.NewAPIDependencies(logger, cat, mgr, addr)
	if err != nil {
		return err
	}

	apiServer, err := server.NewAPIServer(
		deps,
		server.WithCORS(cfg.CORS()),
		server.WithShutdownTimeout(cfg.ShutdownTimeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	// Create the signal handling context for the application.
	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := apiServer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if cfg.CatalogWatch() {
		if cat.Watchable() {
			g.Go(func() error {
				return cat.Watch(gctx, catalog.DefaultReloadDebounce)
			})
		} else {
			logger.Warn("Catalog watch is enabled but the source is not a local file", "source", cat.Source())
		}
	}

	if c.Dev {
		logger.Info("Launching API server in dev mode", "addr", addr)
		if err := writeBanner(cmd.OutOrStdout(), addr, c.ConfigPath(), cat.Source()); err != nil {
			return err
		}
	}

	return g.Wait()
}

func writeBanner(w io.Writer, addr string, configPath string, source string) error {
	banner := fmt.Sprintf("mcpdir API running in 'dev' mode.\n\n"+
		"  Local API:\thttp://%s/api/v1\n"+
		"  OpenAPI UI:\thttp://%s/docs\n"+
		"  Config file:\t%s\n"+
		"  Catalog:\t%s\n",
		addr, addr, configPath, source)

	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
	}

	banner += "\nPress Ctrl+C to stop.\n\n"

	_, err := io.WriteString(w, banner)
	return err
}
