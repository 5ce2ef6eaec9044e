package api

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			ID: 1, Name: "GitHub Integration", Description: "Repositories and issues", Rating: 4.8,
			Downloads: "12.5k", Category: "Development", Tags: []string{"git"}, Author: "Dev Tools Inc",
			LastUpdated: "2024-01-15", Size: "2 MB",
		},
		{
			ID: 2, Name: "PostgreSQL Connector", Description: "Query databases", Rating: 4.6,
			Downloads: "8.2k", Category: "Database", Tags: []string{"sql"}, Author: "DB Labs",
			LastUpdated: "2024-01-10", Size: "1 MB",
		},
		{
			ID: 3, Name: "Slack Bot", Description: "Post messages", Rating: 4.9,
			Downloads: "1.2M", Category: "Communication", Tags: []string{"chat"}, Author: "Chat Co",
			LastUpdated: "2024-01-20",
		},
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(hclog.NewNullLogger(), catalog.WithEntries(testEntries()))
	require.NoError(t, err)
	return c
}

func testManager(t *testing.T, st store.Store) *packages.Manager {
	t.Helper()

	if st == nil {
		st = store.NewMemoryStore()
	}
	m, err := packages.NewManager(hclog.NewNullLogger(), st)
	require.NoError(t, err)
	return m
}

// failingStore reads as empty and fails every write.
type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, nil }

func (failingStore) Set(string, []byte) error { return errors.New("disk full") }

func (failingStore) Close() error { return nil }
