package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mozilla-ai/mcpdir/internal/cache"
	"github.com/mozilla-ai/mcpdir/internal/files"
	"github.com/mozilla-ai/mcpdir/internal/perms"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

const (
	// DefaultAddr is the address the API server binds when none is configured.
	DefaultAddr = "0.0.0.0:8090"

	// DefaultShutdownTimeout bounds graceful API server shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultSQLiteFile is the database file name used by the SQLite store inside the data directory.
	DefaultSQLiteFile = "mcpdir.db"
)

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .mcpdir.toml file structure.
// Every setting is optional, accessor methods supply defaults for unset values.
type Config struct {
	Server  *ServerSection  `json:"server,omitempty"  toml:"server,omitempty"  yaml:"server,omitempty"`
	Store   *StoreSection   `json:"store,omitempty"   toml:"store,omitempty"   yaml:"store,omitempty"`
	Catalog *CatalogSection `json:"catalog,omitempty" toml:"catalog,omitempty" yaml:"catalog,omitempty"`

	configFilePath string
}

// ServerSection contains API server configuration settings.
type ServerSection struct {
	// Address to bind the API server (e.g., "0.0.0.0:8090")
	// Maps to CLI flag --addr
	Addr *string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`

	// Shutdown timeout for graceful API server shutdown
	ShutdownTimeout *Duration `json:"shutdownTimeout,omitempty" toml:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`

	// Nested CORS configuration for cross-origin requests
	CORS *CORSSection `json:"cors,omitempty" toml:"cors,omitempty" yaml:"cors,omitempty"`
}

// CORSSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSSection struct {
	Enable        *bool     `json:"enable,omitempty"           toml:"enable,omitempty"            yaml:"enable,omitempty"`
	Origins       []string  `json:"allowOrigins,omitempty"     toml:"allow_origins,omitempty"     yaml:"allow_origins,omitempty"`
	Methods       []string  `json:"allowMethods,omitempty"     toml:"allow_methods,omitempty"     yaml:"allow_methods,omitempty"`
	Headers       []string  `json:"allowHeaders,omitempty"     toml:"allow_headers,omitempty"     yaml:"allow_headers,omitempty"`
	ExposeHeaders []string  `json:"exposeHeaders,omitempty"    toml:"expose_headers,omitempty"    yaml:"expose_headers,omitempty"`
	Credentials   *bool     `json:"allowCredentials,omitempty" toml:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`
	MaxAge        *Duration `json:"maxAge,omitempty"           toml:"max_age,omitempty"           yaml:"max_age,omitempty"`
}

// StoreSection configures where saved packages are kept.
type StoreSection struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend *string `json:"backend,omitempty" toml:"backend,omitempty" yaml:"backend,omitempty"`

	// Path is the directory (file backend) or database file (sqlite backend).
	// Defaults to the user data directory.
	Path *string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
}

// CatalogSection configures where the catalog is read from.
type CatalogSection struct {
	// Source is a file path, file:// URL or http(s):// URL. Empty uses the built-in catalog.
	Source *string `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`

	// Watch reloads a local catalog file when it changes (serve only).
	Watch *bool `json:"watch,omitempty" toml:"watch,omitempty" yaml:"watch,omitempty"`

	// Cache keeps a local copy of remote catalogs.
	Cache *bool `json:"cache,omitempty" toml:"cache,omitempty" yaml:"cache,omitempty"`

	// CacheTTL is how long a cached remote catalog is used before it is downloaded again.
	CacheTTL *Duration `json:"cacheTTL,omitempty" toml:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

const defaultContent = `# mcpdir configuration

[server]
addr = "0.0.0.0:8090"
shutdown_timeout = "5s"

[server.cors]
enable = false

[store]
backend = "file"

[catalog]
watch = false
cache = true
cache_ttl = "24h"
`

// Init creates the default configuration file.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(defaultContent), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads and validates the configuration file at path.
// A missing file is not an error: an empty Config is returned and every setting takes its default.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{configFilePath: path}, nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.configFilePath = path

	return &cfg, nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.configFilePath
}

// Validate checks every configured value.
func (c *Config) Validate() error {
	var validationErrors []error

	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("server configuration error: %w", err))
		}
	}
	if c.Store != nil {
		if err := c.Store.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("store configuration error: %w", err))
		}
	}
	if c.Catalog != nil {
		if err := c.Catalog.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("catalog configuration error: %w", err))
		}
	}

	return errors.Join(validationErrors...)
}

// Validate checks the server section.
func (s *ServerSection) Validate() error {
	var validationErrors []error

	if s.Addr != nil && !isValidAddr(*s.Addr) {
		validationErrors = append(validationErrors, NewErrInvalidValue("server.addr", *s.Addr))
	}

	if s.ShutdownTimeout != nil && *s.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, NewErrInvalidValue("server.shutdown_timeout", s.ShutdownTimeout.String()))
	}

	if s.CORS != nil {
		if err := s.CORS.Validate(); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("CORS configuration error: %w", err))
		}
	}

	return errors.Join(validationErrors...)
}

// Validate checks the CORS section.
func (c *CORSSection) Validate() error {
	var validationErrors []error

	for _, origin := range c.Origins {
		// Wildcard origin check.
		// See: https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Headers/Access-Control-Allow-Origin#sect
		if origin == "*" {
			continue
		}
		if !isValidOrigin(origin) {
			validationErrors = append(validationErrors, NewErrInvalidValue("server.cors.allow_origins", origin))
		}
	}

	validMethods := ValidHTTPRequestMethods()
	for _, method := range c.Methods {
		if method == "*" {
			continue
		}
		if _, ok := validMethods[method]; !ok {
			validationErrors = append(validationErrors, NewErrInvalidValue("server.cors.allow_methods", method))
		}
	}

	if c.MaxAge != nil && *c.MaxAge <= 0 {
		validationErrors = append(validationErrors, NewErrInvalidValue("server.cors.max_age", c.MaxAge.String()))
	}

	return errors.Join(validationErrors...)
}

// Validate checks the store section.
func (s *StoreSection) Validate() error {
	var validationErrors []error

	if s.Backend != nil {
		if _, err := store.ParseBackend(*s.Backend); err != nil {
			validationErrors = append(validationErrors, NewErrInvalidValue("store.backend", *s.Backend))
		}
	}

	if s.Path != nil && strings.TrimSpace(*s.Path) == "" {
		validationErrors = append(validationErrors, NewErrInvalidValue("store.path", *s.Path))
	}

	return errors.Join(validationErrors...)
}

// Validate checks the catalog section.
func (c *CatalogSection) Validate() error {
	var validationErrors []error

	if c.Source != nil && *c.Source != "" {
		if u, err := url.Parse(*c.Source); err != nil {
			validationErrors = append(validationErrors, NewErrInvalidValue("catalog.source", *c.Source))
		} else if u.Scheme != "" && u.Scheme != "file" && u.Scheme != "http" && u.Scheme != "https" {
			validationErrors = append(validationErrors, NewErrInvalidValue("catalog.source", *c.Source))
		}
	}

	if c.CacheTTL != nil && *c.CacheTTL <= 0 {
		validationErrors = append(validationErrors, NewErrInvalidValue("catalog.cache_ttl", c.CacheTTL.String()))
	}

	return errors.Join(validationErrors...)
}

// ServerAddr returns the configured API address or DefaultAddr.
func (c *Config) ServerAddr() string {
	if c.Server != nil && c.Server.Addr != nil {
		return *c.Server.Addr
	}
	return DefaultAddr
}

// ShutdownTimeout returns the configured graceful shutdown timeout or DefaultShutdownTimeout.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.Server != nil && c.Server.ShutdownTimeout != nil {
		return time.Duration(*c.Server.ShutdownTimeout)
	}
	return DefaultShutdownTimeout
}

// CORS returns the configured CORS section, which may be nil.
func (c *Config) CORS() *CORSSection {
	if c.Server == nil {
		return nil
	}
	return c.Server.CORS
}

// StoreBackend returns the configured store backend, defaulting to store.BackendFile.
func (c *Config) StoreBackend() store.Backend {
	var raw string
	if c.Store != nil && c.Store.Backend != nil {
		raw = *c.Store.Backend
	}
	b, err := store.ParseBackend(raw)
	if err != nil {
		// Load validates the backend, so only hand built configs reach here.
		return store.BackendFile
	}
	return b
}

// StorePath returns the configured store path, or the default location for the backend inside the user data directory.
func (c *Config) StorePath() (string, error) {
	if c.Store != nil && c.Store.Path != nil {
		return strings.TrimSpace(*c.Store.Path), nil
	}

	dataDir, err := files.UserSpecificDataDir()
	if err != nil {
		return "", err
	}

	if c.StoreBackend() == store.BackendSQLite {
		if err := files.EnsureAtLeastSecureDir(dataDir); err != nil {
			return "", err
		}
		return filepath.Join(dataDir, DefaultSQLiteFile), nil
	}

	return dataDir, nil
}

// CatalogSource returns the configured catalog source, empty for the built-in catalog.
func (c *Config) CatalogSource() string {
	if c.Catalog != nil && c.Catalog.Source != nil {
		return strings.TrimSpace(*c.Catalog.Source)
	}
	return ""
}

// CatalogWatch reports whether a local catalog file should be watched for changes.
func (c *Config) CatalogWatch() bool {
	return c.Catalog != nil && c.Catalog.Watch != nil && *c.Catalog.Watch
}

// CatalogCache reports whether remote catalogs are cached locally. Defaults to true.
func (c *Config) CatalogCache() bool {
	if c.Catalog != nil && c.Catalog.Cache != nil {
		return *c.Catalog.Cache
	}
	return true
}

// CatalogCacheTTL returns the remote catalog cache TTL or cache.DefaultTTL.
func (c *Config) CatalogCacheTTL() time.Duration {
	if c.Catalog != nil && c.Catalog.CacheTTL != nil {
		return time.Duration(*c.Catalog.CacheTTL)
	}
	return cache.DefaultTTL
}

// ValidHTTPRequestMethods returns a map of all valid HTTP request methods.
// See: https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Methods
func ValidHTTPRequestMethods() map[string]struct{} {
	return map[string]struct{}{
		http.MethodGet:     {},
		http.MethodHead:    {},
		http.MethodPost:    {},
		http.MethodPut:     {},
		http.MethodDelete:  {},
		http.MethodConnect: {},
		http.MethodOptions: {},
		http.MethodTrace:   {},
		http.MethodPatch:   {},
	}
}

// isValidAddr performs basic validation for host:port format.
func isValidAddr(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}

	if port == "" {
		return false
	}

	if host != "" && (strings.ContainsAny(host, " \t\n\r") || len(host) > 253) {
		return false
	}

	return true
}

// isValidOrigin accepts scheme://host[:port] origins.
func isValidOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && (u.Path == "" || u.Path == "/")
}
