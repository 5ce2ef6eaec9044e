package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/cache"
	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/files"
	"github.com/mozilla-ai/mcpdir/internal/flags"
	"github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/perms"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

var (
	_ CatalogBuilder = (*BaseCmd)(nil)
	_ ManagerBuilder = (*BaseCmd)(nil)
)

// CatalogBuilder creates the catalog a command operates on.
type CatalogBuilder interface {
	BuildCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error)
}

// ManagerBuilder creates the package manager a command operates on.
// The returned store must be closed by the caller once the manager is no longer used.
type ManagerBuilder interface {
	BuildManager(cfg *config.Config) (*packages.Manager, store.Store, error)
}

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "mcpdir",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// userConfigFile is the name of the per-user config file inside the XDG config directory.
const userConfigFile = "config.toml"

// ConfigPath returns the configuration file to load.
// An explicit --config-file is used as given. Otherwise a .mcpdir.toml in the working directory wins,
// then the per-user file in the XDG config directory (~/.config/mcpdir/config.toml), if it exists.
func (c *BaseCmd) ConfigPath() string {
	path := strings.TrimSpace(flags.ConfigFile)
	if path == "" {
		path = flags.DefaultConfigFile
	}
	if path != flags.DefaultConfigFile {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		c.Logger().Debug("No user config directory", "error", err)
		return path
	}

	userPath := filepath.Join(dir, userConfigFile)
	if _, err := os.Stat(userPath); err != nil {
		return path
	}

	return userPath
}

// LoadConfig loads the configuration file chosen by ConfigPath.
func (c *BaseCmd) LoadConfig(loader config.Loader) (*config.Config, error) {
	if loader == nil {
		return nil, fmt.Errorf("config loader cannot be nil")
	}

	path := c.ConfigPath()

	cfg, err := loader.Load(path)
	if err != nil {
		c.Logger().Error("Failed to load config", "path", path, "error", err)
		return nil, err
	}

	return cfg, nil
}

// CatalogSource returns the catalog source named by the --catalog flag, falling back to the config file.
func (c *BaseCmd) CatalogSource(cfg *config.Config) string {
	if src := strings.TrimSpace(flags.Catalog); src != "" {
		return src
	}
	if cfg == nil {
		return ""
	}
	return cfg.CatalogSource()
}

// BuildCatalog loads the catalog from the configured source.
// Remote sources are resolved through the local catalog cache first.
func (c *BaseCmd) BuildCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	logger := c.Logger()
	source := c.CatalogSource(cfg)

	if cfg != nil && isRemote(source) {
		cc, err := cache.NewCache(
			logger,
			cache.WithCaching(cfg.CatalogCache()),
			cache.WithTTL(cfg.CatalogCacheTTL()),
			cache.WithRefreshCache(flags.RefreshCatalog),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog cache: %w", err)
		}
		source = cc.Resolve(ctx, source)
	}

	return catalog.New(logger, catalog.WithSource(source))
}

// BuildManager opens the configured store and creates a package manager backed by it.
func (c *BaseCmd) BuildManager(cfg *config.Config) (*packages.Manager, store.Store, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}

	path, err := cfg.StorePath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve store path: %w", err)
	}

	st, err := store.Open(cfg.StoreBackend(), path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend(), err)
	}

	mgr, err := packages.NewManager(c.Logger(), st)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return mgr, st, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
