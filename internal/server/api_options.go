package server

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mozilla-ai/mcpdir/internal/config"
)

// APIOptions contains optional configuration for the API server.
// NewAPIOptions should be used to create instances of APIOptions.
type APIOptions struct {
	// CORS configuration for cross-origin requests.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	ShutdownTimeout time.Duration
}

// CORSConfig defines Cross-Origin Resource Sharing settings for the API server.
type CORSConfig struct {
	// Enabled determines whether CORS headers are added to responses.
	Enabled bool

	// AllowCredentials indicates whether the request can include credentials.
	// Must be false when AllowOrigins contains "*"
	AllowCredentials bool

	// AllowedHeaders specifies which headers the client can include in requests.
	AllowedHeaders []string

	// AllowMethods specifies which HTTP methods are permitted.
	// Using strings to match the go-chi/cors library API.
	AllowMethods []string

	// AllowOrigins specifies which origins can access the API.
	// Use ["*"] to allow all origins.
	AllowOrigins []string

	// ExposedHeaders specifies which response headers are accessible to the client.
	ExposedHeaders []string

	// MaxAge specifies how long browsers can cache preflight responses.
	MaxAge time.Duration
}

// APIOption defines a functional option for configuring APIOptions.
// Options are applied in order, with later options overriding earlier ones.
type APIOption func(*APIOptions) error

// NewAPIOptions creates APIOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewAPIOptions(opts ...APIOption) (APIOptions, error) {
	options := APIOptions{
		CORS: CORSConfig{
			// Explicitly setting some values for clarity.
			Enabled:          false,
			AllowOrigins:     nil,
			AllowMethods:     DefaultCORSAllowMethods(),
			AllowedHeaders:   DefaultCORSAllowHeaders(),
			AllowCredentials: DefaultCORSAllowCredentials(),
			ExposedHeaders:   nil,
			MaxAge:           DefaultCORSMaxAge(),
		},
		ShutdownTimeout: DefaultAPIShutdownTimeout(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return APIOptions{}, err
		}
	}

	return options, nil
}

// WithCORSEnabled turns the CORS middleware on or off.
func WithCORSEnabled(enabled bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.Enabled = enabled
		return nil
	}
}

// WithCORSAllowHeaders replaces the request headers browsers may send cross-origin.
// CORS-safelisted request headers are always allowed and need not be listed.
func WithCORSAllowHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowedHeaders = slices.Clone(headers)
		return nil
	}
}

// WithCORSAllowOrigins replaces the origins allowed to call the API, "*" allows any.
func WithCORSAllowOrigins(origins []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowOrigins = slices.Clone(origins)
		return nil
	}
}

// WithCORSAllowMethods replaces the HTTP methods allowed cross-origin.
// Methods are upper-cased; unknown methods are rejected.
func WithCORSAllowMethods(methods []string) APIOption {
	return func(o *APIOptions) error {
		valid := config.ValidHTTPRequestMethods()
		normalized := make([]string, 0, len(methods))
		for _, m := range methods {
			m = strings.ToUpper(strings.TrimSpace(m))
			if _, ok := valid[m]; !ok {
				return fmt.Errorf("invalid CORS method: %q", m)
			}
			normalized = append(normalized, m)
		}
		o.CORS.AllowMethods = normalized
		return nil
	}
}

// WithCORSAllowCredentials controls whether cookies and auth headers may accompany cross-origin requests.
func WithCORSAllowCredentials(allowed bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithCORSExposeHeaders replaces the response headers scripts may read cross-origin.
func WithCORSExposeHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.ExposedHeaders = slices.Clone(headers)
		return nil
	}
}

// WithCORSMaxAge sets how long a preflight response may be cached. Zero disables caching.
func WithCORSMaxAge(maxAge time.Duration) APIOption {
	return func(o *APIOptions) error {
		if maxAge < 0 {
			return fmt.Errorf("CORS max age cannot be negative, got %v", maxAge)
		}
		o.CORS.MaxAge = maxAge
		return nil
	}
}

// WithCORS applies a [server.cors] config section on top of the defaults.
// Only the settings present in the section are applied, each through its WithCORS* option.
// A nil section leaves CORS disabled.
func WithCORS(section *config.CORSSection) APIOption {
	return func(o *APIOptions) error {
		for _, opt := range corsSectionOptions(section) {
			if err := opt(o); err != nil {
				return fmt.Errorf("invalid [server.cors] settings: %w", err)
			}
		}
		return nil
	}
}

// corsSectionOptions translates the settings present in section into options.
func corsSectionOptions(section *config.CORSSection) []APIOption {
	if section == nil {
		return nil
	}

	var opts []APIOption
	if section.Enable != nil {
		opts = append(opts, WithCORSEnabled(*section.Enable))
	}
	if len(section.Origins) > 0 {
		opts = append(opts, WithCORSAllowOrigins(section.Origins))
	}
	if len(section.Methods) > 0 {
		opts = append(opts, WithCORSAllowMethods(section.Methods))
	}
	if len(section.Headers) > 0 {
		opts = append(opts, WithCORSAllowHeaders(section.Headers))
	}
	if len(section.ExposeHeaders) > 0 {
		opts = append(opts, WithCORSExposeHeaders(section.ExposeHeaders))
	}
	if section.Credentials != nil {
		opts = append(opts, WithCORSAllowCredentials(*section.Credentials))
	}
	if section.MaxAge != nil {
		opts = append(opts, WithCORSMaxAge(time.Duration(*section.MaxAge)))
	}

	return opts
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) APIOption {
	return func(o *APIOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// DefaultCORSAllowHeaders returns standard headers required for API interaction.
func DefaultCORSAllowHeaders() []string {
	// Headers that are safe-listed regardless of configuration.
	return []string{
		"Accept",
		"Accept-Language",
		"Content-Language",
		"Content-Type",
		"Range",
	}
}

// DefaultCORSAllowMethods returns standard HTTP methods for CORS.
func DefaultCORSAllowMethods() []string {
	return []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
}

// DefaultCORSAllowCredentials returns the default CORS 'allow credentials' setting.
func DefaultCORSAllowCredentials() bool {
	return false
}

// DefaultCORSMaxAge returns the default CORS max age duration.
// Max age is the default time browsers can cache preflight responses.
func DefaultCORSMaxAge() time.Duration {
	return 5 * time.Minute
}

// DefaultAPIShutdownTimeout is the default time allowed for API server graceful shutdown.
func DefaultAPIShutdownTimeout() time.Duration {
	return config.DefaultShutdownTimeout
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	return nil
}
