package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"github.com/sahilm/fuzzy"

	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/filter"
)

// AllCategories is the category value that matches every entry.
const AllCategories = "all"

const maxSuggestions = 3

// Catalog is a read-only list of entries.
// The active entries can be swapped atomically by Reload, readers always see a consistent snapshot.
type Catalog struct {
	logger   hclog.Logger
	source   string
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	entries []Entry
	byID    map[int]int
}

func newSnapshot(entries []Entry) *snapshot {
	byID := make(map[int]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &snapshot{entries: entries, byID: byID}
}

// New creates a Catalog, loading and validating entries from the configured source.
func New(logger hclog.Logger, opt ...Option) (*Catalog, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Catalog{
		logger: logger.Named("catalog"),
		source: opts.Source,
	}

	if opts.Entries != nil {
		c.snapshot.Store(newSnapshot(CloneEntries(opts.Entries)))
		return c, nil
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}

	return c, nil
}

// Source returns the configured catalog source, EmbeddedSource when the built-in catalog is used.
func (c *Catalog) Source() string {
	if c.source == "" {
		return EmbeddedSource
	}
	return c.source
}

// Reload reads and validates the catalog source, replacing the active entries on success.
// On failure the previously loaded entries stay active.
func (c *Catalog) Reload() error {
	data, err := readSource(c.source)
	if err != nil {
		return err
	}

	entries, err := Parse(data)
	if err != nil {
		return fmt.Errorf("catalog source '%s': %w", c.Source(), err)
	}

	c.snapshot.Store(newSnapshot(entries))
	c.logger.Debug("Catalog loaded", "source", c.Source(), "entries", len(entries))

	return nil
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.snapshot.Load().entries)
}

// All returns a copy of every entry in catalog order.
func (c *Catalog) All() []Entry {
	return CloneEntries(c.snapshot.Load().entries)
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id int) (Entry, bool) {
	s := c.snapshot.Load()
	i, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i].Clone(), true
}

// GetMany resolves the given IDs to entries, preserving the order of ids.
// The first unknown ID is reported as errors.ErrEntryNotFound.
func (c *Catalog) GetMany(ids []int) ([]Entry, error) {
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, ok := c.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", errors.ErrEntryNotFound, id)
		}
		out = append(out, e)
	}
	return out, nil
}

// FindByName returns the entry whose name matches (case-insensitive, trimmed).
// When there is no exact match the error wraps errors.ErrEntryNotFound
// and the returned suggestions hold the closest entry names.
func (c *Catalog) FindByName(name string) (Entry, []string, error) {
	entries := c.snapshot.Load().entries
	want := filter.NormalizeString(name)

	for _, e := range entries {
		if filter.NormalizeString(e.Name) == want {
			return e.Clone(), nil, nil
		}
	}

	return Entry{}, suggest(entries, name), fmt.Errorf("%w: %s", errors.ErrEntryNotFound, name)
}

// Categories returns AllCategories followed by the unique lowercased categories in catalog order.
func (c *Catalog) Categories() []string {
	entries := c.snapshot.Load().entries

	out := []string{AllCategories}
	for _, e := range entries {
		cat := strings.ToLower(e.Category)
		if !slices.Contains(out, cat) {
			out = append(out, cat)
		}
	}

	return out
}

type entryNames []Entry

func (n entryNames) String(i int) string { return n[i].Name }
func (n entryNames) Len() int            { return len(n) }

func suggest(entries []Entry, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	matches := fuzzy.FindFrom(name, entryNames(entries))
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, entries[m.Index].Name)
	}

	return out
}
