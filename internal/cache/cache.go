package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/files"
	"github.com/mozilla-ai/mcpdir/internal/perms"
)

// Cache keeps local copies of remote catalog documents.
// NewCache should be used to create instances of Cache.
type Cache struct {
	// dir is the directory where cache files are stored.
	dir string

	// ttl is the time-to-live for cached documents.
	ttl time.Duration

	// enabled determines if caching is enabled.
	enabled bool

	// refresh forces a download even when a fresh copy exists.
	refresh bool

	client *http.Client

	logger hclog.Logger
}

// NewCache creates a new cache for remote catalog documents.
func NewCache(logger hclog.Logger, opts ...Option) (*Cache, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Only create cache directory if caching is enabled.
	if options.enabled {
		if err := files.EnsureAtLeastRegularDir(options.dir); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &Cache{
		dir:     options.dir,
		ttl:     options.ttl,
		enabled: options.enabled,
		refresh: options.refreshCache,
		client:  &http.Client{Timeout: options.timeout},
		logger:  logger.Named("cache"),
	}, nil
}

// Resolve returns the source that should be loaded for the given catalog source.
// Local sources are returned unchanged. Remote sources resolve to a file:// URL of a cached copy
// when one is available, otherwise to the original URL.
func (c *Cache) Resolve(ctx context.Context, source string) string {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return source
	}

	if !c.enabled {
		c.logger.Debug("Cache disabled, using remote catalog", "url", source)
		return source
	}

	cachePath := c.path(source)

	switch {
	case c.refresh:
		c.logger.Debug("Cache refresh requested", "url", source)
		if err := c.download(ctx, source, cachePath); err != nil {
			c.logger.Warn("Failed to refresh cached catalog", "url", source, "path", cachePath, "error", err)
		}
	case c.isExpired(cachePath):
		c.logger.Debug("Cached catalog expired or missing", "url", source, "path", cachePath)
		if err := c.download(ctx, source, cachePath); err != nil {
			c.logger.Warn("Failed to update cached catalog", "url", source, "path", cachePath, "error", err)
		}
	}

	// A stale copy is still preferred over an unreachable remote.
	if _, err := os.Stat(cachePath); err == nil {
		fileURL := "file://" + cachePath
		c.logger.Debug("Using cached catalog", "url", fileURL, "remote", source)
		return fileURL
	}

	c.logger.Debug("No cached catalog, using remote URL", "url", source)
	return source
}

func (c *Cache) path(source string) string {
	hash := sha256.Sum256([]byte(source))
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", hash))
}

// download fetches the catalog document and stores it only if it validates.
func (c *Cache) download(ctx context.Context, source string, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for '%s': %w", source, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch URL '%s': %w", source, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK HTTP status from URL '%s': %d", source, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from '%s': %w", source, err)
	}

	if _, err := catalog.Parse(data); err != nil {
		return fmt.Errorf("refusing to cache catalog from '%s': %w", source, err)
	}

	if err := files.WriteFileAtomic(cachePath, data, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	c.logger.Debug("Cached catalog", "url", source, "path", cachePath)
	return nil
}

// isExpired checks if a cache file is expired based on modification time.
func (c *Cache) isExpired(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true // Treat missing as expired.
	}
	return time.Since(info.ModTime()) > c.ttl
}
