package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile = "MCPDIR_CONFIG_FILE"
	EnvVarLogPath    = "MCPDIR_LOG_PATH"
	EnvVarLogLevel   = "MCPDIR_LOG_LEVEL"
	EnvVarCatalog    = "MCPDIR_CATALOG"

	// Defaults
	DefaultConfigFile = ".mcpdir.toml"
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"
	DefaultCatalog    = ""

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
	FlagNameCatalog    = "catalog"

	FlagNameRefreshCatalog = "refresh-catalog"
)

var (
	ConfigFile string
	LogPath    string
	LogLevel   string
	Catalog    string

	// RefreshCatalog forces a cached remote catalog to be downloaded again.
	RefreshCatalog bool
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initLogger(fs)
	initCatalog(fs)
	initRefreshCatalog(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		ConfigFile = envOrDefault(EnvVarConfigFile, DefaultConfigFile)
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to config file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		LogPath = envOrDefault(EnvVarLogPath, DefaultLogPath)
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		LogLevel = strings.ToLower(envOrDefault(EnvVarLogLevel, DefaultLogLevel))
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcpdir logs (trace, debug, info, warn, error, off)")
}

func initCatalog(fs *pflag.FlagSet) {
	if Catalog == "" {
		Catalog = envOrDefault(EnvVarCatalog, DefaultCatalog)
	}
	fs.StringVar(
		&Catalog,
		FlagNameCatalog,
		Catalog,
		"catalog source (file path, file:// or http(s):// URL), overrides the config file, defaults to the built-in catalog",
	)
}

func initRefreshCatalog(fs *pflag.FlagSet) {
	fs.BoolVar(
		&RefreshCatalog,
		FlagNameRefreshCatalog,
		false,
		"download a remote catalog again even when the cached copy has not expired",
	)
}

func envOrDefault(envVar string, defaultValue string) string {
	if env := strings.TrimSpace(os.Getenv(envVar)); env != "" {
		return env
	}
	return defaultValue
}
