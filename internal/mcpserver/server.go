package mcpserver

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	"github.com/mozilla-ai/mcpdir/internal/contracts"
)

// Server wraps an MCP server whose tools read from the catalog and the saved packages.
// NewServer should be used to create instances of Server.
type Server struct {
	logger    hclog.Logger
	catalog   contracts.CatalogReader
	packages  contracts.PackageManager
	now       func() time.Time
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server) error

// WithClock sets the clock used to stamp generated scripts.
func WithClock(now func() time.Time) Option {
	return func(s *Server) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		s.now = now
		return nil
	}
}

// NewServer creates an MCP server with every catalog tool registered.
func NewServer(
	logger hclog.Logger,
	reader contracts.CatalogReader,
	manager contracts.PackageManager,
	opt ...Option,
) (*Server, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if reader == nil || reflect.ValueOf(reader).IsNil() {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if manager == nil || reflect.ValueOf(manager).IsNil() {
		return nil, fmt.Errorf("package manager cannot be nil")
	}

	s := &Server{
		logger:   logger.Named("mcp"),
		catalog:  reader,
		packages: manager,
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(s); err != nil {
			return nil, err
		}
	}

	s.mcpServer = server.NewMCPServer(
		cmd.AppName(),
		cmd.Version(),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve reads requests from in and writes responses to out until ctx is canceled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	s.logger.Info("Starting MCP server", "entries", s.catalog.Len(), "source", s.catalog.Source())
	err := stdio.Listen(ctx, in, out)
	s.logger.Info("MCP server stopped")

	return err
}
