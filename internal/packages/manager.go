package packages

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/store"
)

// Manager holds the current package and the collection of saved packages.
// Changes to the saved collection are written through to the store.
// NewManager should be used to create instances of Manager.
type Manager struct {
	logger hclog.Logger
	store  store.Store
	opts   Options

	mu      sync.RWMutex
	current Package
	saved   []Package
}

// NewManager creates a Manager with an empty current package and the saved packages read from st.
// A missing or malformed saved collection results in no saved packages.
// A store that cannot be read is an error, so that a later save cannot overwrite data that was never loaded.
func NewManager(logger hclog.Logger, st store.Store, opt ...Option) (*Manager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		logger: logger.Named("packages"),
		store:  st,
		opts:   opts,
	}
	m.current = newPackage(m.now())

	saved, err := m.restore()
	if err != nil {
		return nil, err
	}
	m.saved = saved

	return m, nil
}

// AddEntry adds entry to the current package.
// An entry already present (by ID) is removed first, so the new copy is appended at the end.
// Returns true when an existing entry was replaced.
func (m *Manager) AddEntry(entry catalog.Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced := m.removeEntry(entry.ID)
	m.current.Entries = append(m.current.Entries, entry.Clone())
	m.current.LastModified = m.now()

	m.logger.Debug("Added entry", "id", entry.ID, "name", entry.Name, "replaced", replaced)

	return replaced
}

// AddEntryIfAbsent adds entry to the end of the current package unless an entry with the same ID is present.
// Returns true when the entry was added.
func (m *Manager) AddEntryIfAbsent(entry catalog.Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Contains(entry.ID) {
		return false
	}

	m.current.Entries = append(m.current.Entries, entry.Clone())
	m.current.LastModified = m.now()

	m.logger.Debug("Added entry", "id", entry.ID, "name", entry.Name)

	return true
}

// RemoveEntry removes the entry with the given ID from the current package.
// Removing an absent ID changes nothing except the modification time.
func (m *Manager) RemoveEntry(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := m.removeEntry(id)
	m.current.LastModified = m.now()

	m.logger.Debug("Removed entry", "id", id, "found", removed)
}

// UpdateInfo overwrites the current package name and description. Values are not validated.
func (m *Manager) UpdateInfo(name string, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.Name = name
	m.current.Description = description
	m.current.LastModified = m.now()
}

// Save appends an independent copy of the current package to the saved collection,
// with a new ID and fresh timestamps, and persists the collection.
// The current package is unchanged. Empty packages are saved too.
//
// The returned package is valid even when the error wraps errors.ErrPersistenceFailed:
// the in-memory collection has already been updated.
func (m *Manager) Save() (Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.save()
}

// SaveNonEmpty saves the current package like Save, but refuses with errors.ErrEmptyPackage when it has no entries.
// The check and the save happen under one lock, so a concurrent Clear cannot slip in between.
func (m *Manager) SaveNonEmpty() (Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.IsEmpty() {
		return Package{}, errors.ErrEmptyPackage
	}

	return m.save()
}

// save appends a copy of the current package to the saved collection. Callers must hold mu.
func (m *Manager) save() (Package, error) {
	id, err := m.opts.newID()
	if err != nil {
		return Package{}, err
	}
	if id == CurrentID {
		return Package{}, fmt.Errorf("generated package ID collides with '%s'", CurrentID)
	}

	now := m.now()
	pkg := m.current.Clone()
	pkg.ID = id
	pkg.CreatedAt = now
	pkg.LastModified = now

	m.saved = append(m.saved, pkg)
	m.logger.Info("Saved package", "id", pkg.ID, "name", pkg.Name, "entries", pkg.Len())

	return pkg.Clone(), m.persist()
}

// Load replaces the current package with a copy of the saved package with the given ID.
// The copy takes CurrentID and a fresh modification time. Returns false, changing nothing, if no such package exists.
func (m *Manager) Load(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.savedIndex(id)
	if i < 0 {
		m.logger.Debug("Load ignored, no saved package", "id", id)
		return false
	}

	pkg := m.saved[i].Clone()
	pkg.ID = CurrentID
	pkg.LastModified = m.now()
	m.current = pkg

	m.logger.Info("Loaded package", "id", id, "name", pkg.Name)

	return true
}

// Delete removes the saved package with the given ID and persists the collection.
// Returns false, without writing to the store, if no such package exists.
func (m *Manager) Delete(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.savedIndex(id)
	if i < 0 {
		m.logger.Debug("Delete ignored, no saved package", "id", id)
		return false, nil
	}

	m.saved = slices.Delete(m.saved, i, i+1)
	m.logger.Info("Deleted package", "id", id)

	return true, m.persist()
}

// Clear resets the current package to an empty package with default metadata.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = newPackage(m.now())
}

// Contains reports whether the current package holds an entry with the given ID.
func (m *Manager) Contains(id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current.Contains(id)
}

// Current returns a copy of the current package.
func (m *Manager) Current() Package {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current.Clone()
}

// Saved returns copies of the saved packages in the order they were saved.
func (m *Manager) Saved() []Package {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Package, len(m.saved))
	for i, p := range m.saved {
		out[i] = p.Clone()
	}
	return out
}

// SavedPackage returns a copy of the saved package with the given ID.
func (m *Manager) SavedPackage(id string) (Package, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.savedIndex(id)
	if i < 0 {
		return Package{}, false
	}
	return m.saved[i].Clone(), true
}

// GenerateScript returns the install script for the current package, stamped with the manager clock.
func (m *Manager) GenerateScript() string {
	m.mu.RLock()
	pkg := m.current.Clone()
	m.mu.RUnlock()

	return GenerateScript(pkg, m.now())
}

// Stats summarizes the current package.
func (m *Manager) Stats() Stats {
	return ComputeStats(m.Current())
}

// removeEntry deletes the entry with the given ID from the current package. Callers must hold mu.
func (m *Manager) removeEntry(id int) bool {
	n := len(m.current.Entries)
	m.current.Entries = slices.DeleteFunc(m.current.Entries, func(e catalog.Entry) bool {
		return e.ID == id
	})
	return len(m.current.Entries) != n
}

func (m *Manager) savedIndex(id string) int {
	return slices.IndexFunc(m.saved, func(p Package) bool {
		return p.ID == id
	})
}

// now returns the clock time in UTC at millisecond precision, so timestamps survive a JSON round trip unchanged.
func (m *Manager) now() time.Time {
	return m.opts.clock().UTC().Truncate(time.Millisecond)
}

// persist writes the saved collection to the store. Callers must hold mu.
func (m *Manager) persist() error {
	data, err := json.Marshal(m.saved)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrPersistenceFailed, err)
	}

	if err := m.store.Set(m.opts.storageKey, data); err != nil {
		m.logger.Error("Failed to persist saved packages", "key", m.opts.storageKey, "error", err)
		return fmt.Errorf("%w: %w", errors.ErrPersistenceFailed, err)
	}

	return nil
}

// restore reads the saved collection from the store.
func (m *Manager) restore() ([]Package, error) {
	data, ok, err := m.store.Get(m.opts.storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved packages: %w", err)
	}
	if !ok {
		m.logger.Debug("No saved packages found", "key", m.opts.storageKey)
		return []Package{}, nil
	}

	var saved []Package
	if err := json.Unmarshal(data, &saved); err != nil {
		m.logger.Warn("Ignoring malformed saved packages", "key", m.opts.storageKey, "error", err)
		return []Package{}, nil
	}

	out := make([]Package, 0, len(saved))
	for _, p := range saved {
		out = append(out, p.Clone())
	}

	m.logger.Debug("Restored saved packages", "count", len(out))

	return out, nil
}
