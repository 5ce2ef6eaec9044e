package cache

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mozilla-ai/mcpdir/internal/files"
)

const (
	// DefaultTTL is how long a cached remote catalog is used before it is downloaded again.
	DefaultTTL = 24 * time.Hour

	defaultTimeout = 15 * time.Second
)

// Option defines a functional option for configuring Cache.
type Option func(*Options) error

// Options contains optional configuration for the cache.
type Options struct {
	// dir is the directory where cache files are stored.
	dir string

	// ttl is the time-to-live for cached documents.
	ttl time.Duration

	// enabled determines if caching is enabled.
	enabled bool

	// refreshCache forces cache refresh when true.
	refreshCache bool

	// timeout bounds each download.
	timeout time.Duration
}

// DefaultDir returns the default cache directory for remote catalogs.
func DefaultDir() (string, error) {
	dir, err := files.UserSpecificCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalogs"), nil
}

func NewOptions(opts ...Option) (Options, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Options{}, err
	}

	// Default options.
	o := Options{
		dir:          dir,
		ttl:          DefaultTTL,
		enabled:      true,
		refreshCache: false,
		timeout:      defaultTimeout,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithDirectory sets the cache directory.
func WithDirectory(dir string) Option {
	return func(o *Options) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		o.dir = dir
		return nil
	}
}

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("TTL must be positive, got %v", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithCaching configures whether caching is enabled.
func WithCaching(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}

// WithRefreshCache forces cache refresh.
func WithRefreshCache(refreshCache bool) Option {
	return func(o *Options) error {
		o.refreshCache = refreshCache
		return nil
	}
}

// WithTimeout bounds how long a single download may take.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		o.timeout = timeout
		return nil
	}
}
