// Package contracts declares the interfaces the presentation surfaces (HTTP API, MCP server) depend on.
package contracts

import (
	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

var (
	_ CatalogReader  = (*catalog.Catalog)(nil)
	_ PackageManager = (*packages.Manager)(nil)
)

// CatalogReader provides read access to the catalog.
type CatalogReader interface {
	// Source names where the catalog was loaded from.
	Source() string

	// Len returns the number of entries in the catalog.
	Len() int

	// Get returns the entry with the given ID.
	// It returns a boolean to indicate whether the entry was found.
	Get(id int) (catalog.Entry, bool)

	// GetMany returns the entries for the given IDs in order, or an error naming the first unknown ID.
	GetMany(ids []int) ([]catalog.Entry, error)

	// Search filters and sorts the catalog.
	Search(q catalog.Query) (catalog.Result, error)

	// Categories returns the category filter values, starting with catalog.AllCategories.
	Categories() []string
}

// PackageManager provides access to the current package and the saved packages.
type PackageManager interface {
	AddEntry(entry catalog.Entry) bool
	AddEntryIfAbsent(entry catalog.Entry) bool
	RemoveEntry(id int)
	UpdateInfo(name string, description string)
	Save() (packages.Package, error)
	SaveNonEmpty() (packages.Package, error)
	Load(id string) bool
	Delete(id string) (bool, error)
	Clear()
	Contains(id int) bool
	Current() packages.Package
	Saved() []packages.Package
	SavedPackage(id string) (packages.Package, bool)
	GenerateScript() string
	Stats() packages.Stats
}
