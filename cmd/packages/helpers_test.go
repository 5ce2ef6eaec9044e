package packages

import (
	"bytes"
	"context"
	stdErrors "errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

type fakeLoader struct{}

func (f *fakeLoader) Load(string) (*config.Config, error) {
	return &config.Config{}, nil
}

type fakeCatalogBuilder struct{}

func (f *fakeCatalogBuilder) BuildCatalog(context.Context, *config.Config) (*catalog.Catalog, error) {
	return catalog.New(hclog.NewNullLogger(), catalog.WithEntries(testEntries()))
}

// fakeManagerBuilder creates a fresh manager over the same store on every call, like separate CLI invocations.
type fakeManagerBuilder struct {
	st store.Store
}

func (f *fakeManagerBuilder) BuildManager(*config.Config) (*pkgs.Manager, store.Store, error) {
	mgr, err := pkgs.NewManager(hclog.NewNullLogger(), f.st)
	if err != nil {
		return nil, nil, err
	}
	return mgr, f.st, nil
}

var errDiskFull = stdErrors.New("disk full")

// failingStore reads as empty and fails every write.
type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (failingStore) Set(string, []byte) error         { return errDiskFull }
func (failingStore) Close() error                     { return nil }

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			ID: 1, Name: "GitHub Integration", Description: "Connect to GitHub repositories", Rating: 4.8,
			Downloads: "12.5k", Category: "Development", Tags: []string{"git"}, Verified: true,
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

func testOptions(st store.Store) []cmdopts.CmdOption {
	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(&fakeLoader{}),
		cmdopts.WithCatalogBuilder(&fakeCatalogBuilder{}),
		cmdopts.WithManagerBuilder(&fakeManagerBuilder{st: st}),
	}
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

// run executes the command created by newCmd with args and returns its output.
func run(
	t *testing.T,
	st store.Store,
	newCmd func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error),
	args ...string,
) (string, error) {
	t.Helper()

	c, err := newCmd(testBaseCmd(), testOptions(st)...)
	require.NoError(t, err)

	o := new(bytes.Buffer)
	c.SetOut(o)
	c.SetErr(new(bytes.Buffer))
	c.SetArgs(args)

	err = c.Execute()
	return o.String(), err
}

// createPackage saves a package holding ids and returns its ID.
func createPackage(t *testing.T, st store.Store, name string, ids ...string) string {
	t.Helper()

	args := []string{"--name", name, "--format", "json"}
	for _, id := range ids {
		args = append(args, "--entry", id)
	}

	out, err := run(t, st, NewCreateCmd, args...)
	require.NoError(t, err)

	return decodeResult[pkgs.Package](t, out).ID
}
