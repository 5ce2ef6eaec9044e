package packages

import (
	"slices"
	"time"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
)

const (
	// CurrentID identifies the single in-progress package.
	CurrentID = "current"

	// DefaultName is the name given to a new or cleared current package.
	DefaultName = "My MCP Package"

	// DefaultDescription is the description given to a new or cleared current package.
	DefaultDescription = "Custom MCP bundle"
)

// Package is a named, ordered selection of catalog entries.
type Package struct {
	ID           string          `json:"id"           yaml:"id"`
	Name         string          `json:"name"         yaml:"name"`
	Description  string          `json:"description"  yaml:"description"`
	Entries      []catalog.Entry `json:"mcps"         yaml:"mcps"`
	CreatedAt    time.Time       `json:"createdAt"    yaml:"createdAt"`
	LastModified time.Time       `json:"lastModified" yaml:"lastModified"`
}

// newPackage returns an empty current package with default metadata.
func newPackage(now time.Time) Package {
	return Package{
		ID:           CurrentID,
		Name:         DefaultName,
		Description:  DefaultDescription,
		Entries:      []catalog.Entry{},
		CreatedAt:    now,
		LastModified: now,
	}
}

// Clone returns a deep copy of the package.
func (p Package) Clone() Package {
	p.Entries = catalog.CloneEntries(p.Entries)
	if p.Entries == nil {
		p.Entries = []catalog.Entry{}
	}
	return p
}

// Contains reports whether an entry with the given catalog ID is in the package.
func (p Package) Contains(id int) bool {
	return p.index(id) >= 0
}

// Len returns the number of entries in the package.
func (p Package) Len() int {
	return len(p.Entries)
}

// IsEmpty reports whether the package has no entries.
func (p Package) IsEmpty() bool {
	return len(p.Entries) == 0
}

// EntryIDs returns the catalog IDs of the package entries in order.
func (p Package) EntryIDs() []int {
	ids := make([]int, len(p.Entries))
	for i, e := range p.Entries {
		ids[i] = e.ID
	}
	return ids
}

func (p Package) index(id int) int {
	return slices.IndexFunc(p.Entries, func(e catalog.Entry) bool {
		return e.ID == id
	})
}
