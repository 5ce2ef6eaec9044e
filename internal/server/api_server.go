package server

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/api"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/contracts"
	"github.com/mozilla-ai/mcpdir/internal/errors"
)

// APIServer serves the catalog and package API over HTTP.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	// Logger for API server operations.
	logger hclog.Logger

	// catalog provides the browsable entries.
	catalog contracts.CatalogReader

	// packages manages the current and saved packages.
	packages contracts.PackageManager

	// Addr specifies the network address to bind.
	addr string

	// CORS configuration for cross-origin requests.
	cors CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	shutdownTimeout time.Duration
}

// NewAPIServer creates a new API server with the provided dependencies and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewAPIServer(deps APIDependencies, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		catalog:         deps.Catalog,
		packages:        deps.Packages,
		addr:            deps.Addr,
		cors:            apiOpts.CORS,
		shutdownTimeout: apiOpts.ShutdownTimeout,
	}, nil
}

// Handler builds the router with every API route registered under the versioned prefix.
// OpenAPI documentation is served at /docs.
func (a *APIServer) Handler() (http.Handler, string, error) {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if a.cors.Enabled {
		a.applyCORS(mux)
	}

	router := humachi.New(mux, huma.DefaultConfig(fmt.Sprintf("%s docs", cmd.AppName()), api.APIVersion))

	// Configure the error handling wrapping.
	huma.NewErrorWithContext = errorHandler(a.logger)

	prefix, err := api.RegisterRoutes(router, a.catalog, a.packages)
	if err != nil {
		return nil, "", err
	}

	return mux, prefix, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, prefix, err := a.Handler()
	if err != nil {
		return err
	}

	// Bind before serving so address errors are reported to the caller.
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting API server", "address", ln.Addr().String(), "prefix", prefix, "version", cmd.Version())
		if err := srv.Serve(ln); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down API server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("API server shutdown did not complete cleanly", "error", err)
		}
		a.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// corsOptions converts the CORS configuration into go-chi/cors options.
// A wildcard origin replaces any other origins and disables credentials.
func (a *APIServer) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedMethods:   a.cors.AllowMethods,
		AllowedHeaders:   a.cors.AllowedHeaders,
		ExposedHeaders:   a.cors.ExposedHeaders,
		AllowCredentials: a.cors.AllowCredentials,
		MaxAge:           int(a.cors.MaxAge.Seconds()),
	}

	origins := make([]string, 0, len(a.cors.AllowOrigins))
	for _, origin := range a.cors.AllowOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			origins = []string{"*"}
			opts.AllowCredentials = false
			break
		}
		origins = append(origins, origin)
	}
	opts.AllowedOrigins = origins

	return opts
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (a *APIServer) applyCORS(mux *chi.Mux) {
	opts := a.corsOptions()
	a.logger.Info("Enabling CORS", "origins", opts.AllowedOrigins, "credentials", opts.AllowCredentials)
	mux.Use(cors.Handler(opts))
}

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which returns HTTP 500.
//
// Mapping guidelines:
//   - 400: Client errors (bad input, invalid requests)
//   - 404: Resource not found errors
//   - 500: Unexpected internal errors (default case)
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrEmptyPackage):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrEntryNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrPackageNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrCatalogInvalid):
		logger.Error("Catalog is invalid", "error", err)
		return huma.Error500InternalServerError("Catalog is invalid", err)
	case stdErrors.Is(err, errors.ErrPersistenceFailed):
		logger.Error("Saved packages could not be persisted", "error", err)
		return huma.Error500InternalServerError("Failed to persist saved packages", err)
	default:
		logger.Error("Unexpected error handling API request", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// Errors returned by handlers reach huma with a 500 status and are resolved through mapError.
// Errors huma raises itself (e.g. request validation) keep their status and details.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status != http.StatusInternalServerError {
			return huma.NewError(status, msg, errs...)
		}

		switch len(errs) {
		case 0:
			return huma.NewError(status, msg)
		case 1:
			return mapError(logger, errs[0])
		default:
			return mapError(logger, stdErrors.Join(errs...))
		}
	}
}
