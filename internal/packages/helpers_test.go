package packages

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// tickingClock advances by one second on every read.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTickingClock() *tickingClock {
	return &tickingClock{t: epoch}
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(time.Second)
	return c.t
}

// sequentialIDs returns pkg-1, pkg-2, ...
func sequentialIDs() func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("pkg-%d", n), nil
	}
}

type failingStore struct {
	store.Store
	getErr error
	setErr error
}

func (s *failingStore) Get(key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.Store.Get(key)
}

func (s *failingStore) Set(key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Store.Set(key, value)
}

func newTestManager(t *testing.T, st store.Store, opts ...Option) *Manager {
	t.Helper()

	if st == nil {
		st = store.NewMemoryStore()
	}

	defaults := []Option{
		WithClock(newTickingClock().Now),
		WithIDGenerator(sequentialIDs()),
	}

	m, err := NewManager(hclog.NewNullLogger(), st, append(defaults, opts...)...)
	require.NoError(t, err)
	return m
}

func testEntry(id int, name string, category string) catalog.Entry {
	return catalog.Entry{
		ID:          id,
		Name:        name,
		Description: name + " integration",
		Rating:      4.5,
		Downloads:   "1k",
		Category:    category,
		Tags:        []string{"test"},
		Verified:    true,
		Author:      "tests",
		LastUpdated: "2024-01-01",
		Size:        "1 MB",
	}
}
