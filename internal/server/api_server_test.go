package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

func testDeps(t *testing.T, addr string) APIDependencies {
	t.Helper()

	cat, err := catalog.New(hclog.NewNullLogger(), catalog.WithEntries([]catalog.Entry{
		{ID: 1, Name: "GitHub Integration", Category: "Development", Downloads: "1k", LastUpdated: "2024-01-01"},
	}))
	require.NoError(t, err)

	mgr, err := packages.NewManager(hclog.NewNullLogger(), store.NewMemoryStore())
	require.NoError(t, err)

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), cat, mgr, addr)
	require.NoError(t, err)
	return deps
}

func TestNewAPIDependencies_Validation(t *testing.T) {
	t.Parallel()

	valid := testDeps(t, "localhost:8090")

	tests := []struct {
		name   string
		mutate func(d *APIDependencies)
		want   string
	}{
		{name: "bad address", mutate: func(d *APIDependencies) { d.Addr = "nope" }, want: "invalid API address 'nope'"},
		{name: "nil catalog", mutate: func(d *APIDependencies) { d.Catalog = nil }, want: "catalog cannot be nil"},
		{name: "typed nil catalog", mutate: func(d *APIDependencies) { d.Catalog = (*catalog.Catalog)(nil) }, want: "catalog cannot be nil"},
		{name: "nil manager", mutate: func(d *APIDependencies) { d.Packages = nil }, want: "package manager cannot be nil"},
		{name: "nil logger", mutate: func(d *APIDependencies) { d.Logger = nil }, want: "logger cannot be nil"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := valid
			tc.mutate(&d)
			err := d.Validate()
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestNewAPIServer_AppliesDefaults(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, "localhost:8090")

	server, err := NewAPIServer(deps)
	require.NoError(t, err)
	require.Equal(t, DefaultAPIShutdownTimeout(), server.shutdownTimeout)
	require.False(t, server.cors.Enabled)

	server, err = NewAPIServer(deps, nil, WithShutdownTimeout(3*time.Second), WithCORSEnabled(true))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, server.shutdownTimeout)
	require.True(t, server.cors.Enabled)

	_, err = NewAPIServer(APIDependencies{})
	require.ErrorContains(t, err, "invalid dependencies for API server")
}

func TestAPIServer_CORSOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		cors            CORSConfig
		wantOrigins     []string
		wantCredentials bool
	}{
		{
			name:            "origins are trimmed",
			cors:            CORSConfig{AllowOrigins: []string{"  http://localhost:3000 ", "\thttps://example.com\n"}, AllowCredentials: true},
			wantOrigins:     []string{"http://localhost:3000", "https://example.com"},
			wantCredentials: true,
		},
		{
			name:            "wildcard replaces origins and disables credentials",
			cors:            CORSConfig{AllowOrigins: []string{"http://localhost:3000", " * ", "https://example.com"}, AllowCredentials: true},
			wantOrigins:     []string{"*"},
			wantCredentials: false,
		},
		{
			name:        "no origins",
			cors:        CORSConfig{},
			wantOrigins: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := &APIServer{logger: hclog.NewNullLogger(), cors: tc.cors}
			opts := a.corsOptions()
			require.Equal(t, tc.wantOrigins, opts.AllowedOrigins)
			require.Equal(t, tc.wantCredentials, opts.AllowCredentials)
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "ErrBadRequest maps to 400", err: errors.ErrBadRequest, expectedStatus: 400},
		{name: "ErrEmptyPackage maps to 400", err: errors.ErrEmptyPackage, expectedStatus: 400},
		{name: "ErrEntryNotFound maps to 404", err: errors.ErrEntryNotFound, expectedStatus: 404},
		{name: "ErrPackageNotFound maps to 404", err: errors.ErrPackageNotFound, expectedStatus: 404},
		{name: "ErrCatalogInvalid maps to 500", err: errors.ErrCatalogInvalid, expectedStatus: 500},
		{name: "ErrPersistenceFailed maps to 500", err: errors.ErrPersistenceFailed, expectedStatus: 500},
		{name: "wrapped error keeps mapping", err: fmt.Errorf("%w: 42", errors.ErrEntryNotFound), expectedStatus: 404},
		{name: "Unknown error maps to 500", err: fmt.Errorf("unknown error"), expectedStatus: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			statusErr := mapError(logger, tc.err)
			require.Equal(t, tc.expectedStatus, statusErr.GetStatus())
		})
	}
}

// The handler tests below are not parallel: building a handler sets huma's global error constructor.

func TestAPIServer_Handler_ErrorMapping(t *testing.T) {
	server, err := NewAPIServer(testDeps(t, "localhost:8090"))
	require.NoError(t, err)

	handler, prefix, err := server.Handler()
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK},
		{name: "trailing slash stripped", method: http.MethodGet, path: "/health/", status: http.StatusOK},
		{name: "unknown entry", method: http.MethodGet, path: "/catalog/99", status: http.StatusNotFound},
		{name: "unknown sort", method: http.MethodGet, path: "/catalog?sort=stars", status: http.StatusBadRequest},
		{name: "add unknown entry", method: http.MethodPost, path: "/package/entries", body: `{"id": 99}`, status: http.StatusNotFound},
		{name: "save empty package", method: http.MethodPost, path: "/package/save", status: http.StatusBadRequest},
		{name: "unknown saved package", method: http.MethodGet, path: "/packages/missing", status: http.StatusNotFound},
		{name: "invalid id type", method: http.MethodGet, path: "/catalog/abc", status: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, prefix+tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestAPIServer_Handler_CORS(t *testing.T) {
	server, err := NewAPIServer(
		testDeps(t, "localhost:8090"),
		WithCORSEnabled(true),
		WithCORSAllowOrigins([]string{"http://localhost:3000"}),
	)
	require.NoError(t, err)

	handler, prefix, err := server.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, prefix+"/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, prefix+"/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIServer_Start_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	server, err := NewAPIServer(testDeps(t, addr), WithShutdownTimeout(time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var body struct {
			Status  string `json:"status"`
			Entries int    `json:"entries"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false
		}
		return resp.StatusCode == http.StatusOK && body.Status == "ok" && body.Entries == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestAPIServer_Start_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	server, err := NewAPIServer(testDeps(t, ln.Addr().String()))
	require.NoError(t, err)

	err = server.Start(context.Background())
	require.ErrorContains(t, err, "failed to listen")
}
