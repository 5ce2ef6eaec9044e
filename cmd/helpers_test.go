package cmd

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

type fakeLoader struct {
	cfg *config.Config
	err error
}

func (f *fakeLoader) Load(string) (*config.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg == nil {
		return &config.Config{}, nil
	}
	return f.cfg, nil
}

type fakeCatalogBuilder struct {
	entries []catalog.Entry
	err     error
}

func (f *fakeCatalogBuilder) BuildCatalog(context.Context, *config.Config) (*catalog.Catalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return catalog.New(hclog.NewNullLogger(), catalog.WithEntries(f.entries))
}

// fakeManagerBuilder creates a fresh manager over the same store on every call, like separate CLI invocations.
type fakeManagerBuilder struct {
	st *store.MemoryStore
}

func (f *fakeManagerBuilder) BuildManager(*config.Config) (*packages.Manager, store.Store, error) {
	mgr, err := packages.NewManager(hclog.NewNullLogger(), f.st)
	if err != nil {
		return nil, nil, err
	}
	return mgr, f.st, nil
}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			ID: 1, Name: "GitHub Integration", Description: "Connect to GitHub repositories", Rating: 4.8,
			Downloads: "12.5k", Category: "Development", Tags: []string{"git", "vcs"}, Verified: true,
			Author: "GitHub", LastUpdated: "2024-01-15", Size: "2 MB",
		},
		{
			ID: 2, Name: "PostgreSQL Connector", Description: "Query PostgreSQL databases", Rating: 4.6,
			Downloads: "8.2k", Category: "Database", Tags: []string{"sql"}, Author: "Community",
			LastUpdated: "2024-01-10", Size: "1 MB",
		},
		{
			ID: 3, Name: "Slack Bot", Description: "Send messages to Slack", Rating: 4.9,
			Downloads: "1.2M", Category: "Communication", Tags: []string{"chat"}, Verified: true,
			Author: "Slack", LastUpdated: "2024-01-20",
		},
	}
}

func testOptions(t *testing.T) []cmdopts.CmdOption {
	t.Helper()

	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(&fakeLoader{}),
		cmdopts.WithCatalogBuilder(&fakeCatalogBuilder{entries: testEntries()}),
		cmdopts.WithManagerBuilder(&fakeManagerBuilder{st: store.NewMemoryStore()}),
	}
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}
