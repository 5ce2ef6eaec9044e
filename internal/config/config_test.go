package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/cache"
	"github.com/mozilla-ai/mcpdir/internal/files"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mcpdir.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mcpdir.toml")
	loader := &DefaultLoader{}

	require.NoError(t, loader.Init(path))

	err := loader.Init(path)
	require.Error(t, err)
	require.ErrorContains(t, err, "already exists")

	// The generated file is loadable and matches the defaults.
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultAddr, cfg.ServerAddr())
	require.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout())
	require.Equal(t, store.BackendFile, cfg.StoreBackend())
	require.False(t, cfg.CatalogWatch())
	require.True(t, cfg.CatalogCache())
	require.Equal(t, 24*time.Hour, cfg.CatalogCacheTTL())
	require.Equal(t, path, cfg.Path())
}

func TestDefaultLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := (&DefaultLoader{}).Load(path)
	require.NoError(t, err)

	require.Equal(t, DefaultAddr, cfg.ServerAddr())
	require.Nil(t, cfg.CORS())
	require.Equal(t, "", cfg.CatalogSource())
	require.Equal(t, cache.DefaultTTL, cfg.CatalogCacheTTL())
}

func TestDefaultLoader_Load_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := (&DefaultLoader{}).Load("  ")
	require.ErrorIs(t, err, ErrConfigLoadFailed)
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"
shutdown_timeout = "30s"

[server.cors]
enable = true
allow_origins = ["http://localhost:3000", "*"]
allow_methods = ["GET", "POST"]
max_age = "10m"

[store]
backend = "sqlite"
path = "/var/lib/mcpdir/packages.db"

[catalog]
source = "https://example.com/catalog.json"
watch = true
cache = false
cache_ttl = "1h"
`)

	cfg, err := (&DefaultLoader{}).Load(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.ServerAddr())
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout())

	cors := cfg.CORS()
	require.NotNil(t, cors)
	require.True(t, *cors.Enable)
	require.Equal(t, []string{"http://localhost:3000", "*"}, cors.Origins)
	require.Equal(t, Duration(10*time.Minute), *cors.MaxAge)

	require.Equal(t, store.BackendSQLite, cfg.StoreBackend())
	storePath, err := cfg.StorePath()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/mcpdir/packages.db", storePath)

	require.Equal(t, "https://example.com/catalog.json", cfg.CatalogSource())
	require.True(t, cfg.CatalogWatch())
	require.False(t, cfg.CatalogCache())
	require.Equal(t, time.Hour, cfg.CatalogCacheTTL())
}

func TestDefaultLoader_Load_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "not toml", content: `[server`, wantMsg: "failed to decode"},
		{name: "bad duration", content: "[server]\nshutdown_timeout = \"soon\"", wantMsg: "failed to decode"},
		{name: "bad addr", content: "[server]\naddr = \"nope\"", wantMsg: "server.addr"},
		{name: "negative timeout", content: "[server]\nshutdown_timeout = \"-1s\"", wantMsg: "server.shutdown_timeout"},
		{name: "bad origin", content: "[server.cors]\nallow_origins = [\"localhost\"]", wantMsg: "allow_origins"},
		{name: "bad method", content: "[server.cors]\nallow_methods = [\"FETCH\"]", wantMsg: "allow_methods"},
		{name: "bad backend", content: "[store]\nbackend = \"redis\"", wantMsg: "store.backend"},
		{name: "empty store path", content: "[store]\npath = \" \"", wantMsg: "store.path"},
		{name: "bad source scheme", content: "[catalog]\nsource = \"ftp://x/c.json\"", wantMsg: "catalog.source"},
		{name: "zero ttl", content: "[catalog]\ncache_ttl = \"0s\"", wantMsg: "catalog.cache_ttl"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := (&DefaultLoader{}).Load(writeConfig(t, tc.content))
			require.ErrorIs(t, err, ErrConfigLoadFailed)
			require.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestConfig_StorePath_Defaults(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv(files.EnvVarXDGDataHome, dataHome)

	cfg := &Config{}
	path, err := cfg.StorePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataHome, files.AppDirName()), path)

	backend := string(store.BackendSQLite)
	cfg = &Config{Store: &StoreSection{Backend: &backend}}
	path, err = cfg.StorePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataHome, files.AppDirName(), DefaultSQLiteFile), path)
}

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "5s", want: "5s"},
		{input: "90s", want: "90s"},
		{input: "1h0m0s", want: "1h"},
		{input: "1500ms", want: "1500ms"},
		{input: "0s", want: "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			var d Duration
			require.NoError(t, d.UnmarshalText([]byte(tc.input)))
			require.Equal(t, tc.want, d.String())

			b, err := d.MarshalText()
			require.NoError(t, err)
			require.Equal(t, tc.want, string(b))
		})
	}

	var d Duration
	require.Error(t, d.UnmarshalText([]byte("later")))
}
