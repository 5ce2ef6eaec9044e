package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mozilla-ai/mcpdir/internal/errors"
	"github.com/mozilla-ai/mcpdir/internal/filter"
)

// SortKey selects the ordering of query results.
type SortKey string

const (
	// SortPopular orders by parsed download count, most downloaded first.
	SortPopular SortKey = "popular"

	// SortRating orders by rating, highest first.
	SortRating SortKey = "rating"

	// SortRecent orders by last update date, newest first.
	SortRecent SortKey = "recent"

	// SortName orders alphabetically by name.
	SortName SortKey = "name"
)

const (
	filterKeySearch   = "search"
	filterKeyCategory = "category"
)

// SortKeys returns every supported sort key, default first.
func SortKeys() []SortKey {
	return []SortKey{SortPopular, SortRating, SortRecent, SortName}
}

// ParseSortKey converts a user supplied value into a SortKey.
// An empty value selects SortPopular.
func ParseSortKey(s string) (SortKey, error) {
	v := SortKey(filter.NormalizeString(s))
	if v == "" {
		return SortPopular, nil
	}
	if !slices.Contains(SortKeys(), v) {
		return "", fmt.Errorf("%w: unknown sort key '%s'", errors.ErrBadRequest, s)
	}
	return v, nil
}

// Query describes a catalog search.
type Query struct {
	// Search is matched as a case-insensitive substring of name, description, tags or author.
	Search string

	// Category is matched case-insensitively, empty or AllCategories match everything.
	Category string

	// Sort defaults to SortPopular when empty.
	Sort SortKey
}

// Result holds the entries matching a Query together with the size of the catalog searched.
type Result struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Count   int     `json:"count"   yaml:"count"`
	Total   int     `json:"total"   yaml:"total"`
}

// Search runs the query against the current catalog snapshot.
func (c *Catalog) Search(q Query) (Result, error) {
	entries := c.snapshot.Load().entries

	matched, err := Apply(entries, q)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Entries: matched,
		Count:   len(matched),
		Total:   len(entries),
	}, nil
}

// Apply filters and sorts entries according to the query.
// The input is not modified, the returned entries are copies.
func Apply(entries []Entry, q Query) ([]Entry, error) {
	sortKey, err := ParseSortKey(string(q.Sort))
	if err != nil {
		return nil, err
	}

	filters := map[string]string{
		filterKeySearch:   q.Search,
		filterKeyCategory: q.Category,
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		ok, err := filter.Match(e, filters, matchOptions()...)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e.Clone())
		}
	}

	sortEntries(out, sortKey)

	return out, nil
}

func matchOptions() []filter.Option[Entry] {
	return []filter.Option[Entry]{
		filter.WithMatchers(map[string]filter.Predicate[Entry]{
			filterKeySearch: filter.AnyOf(
				filter.Contains(func(e Entry) string { return e.Name }),
				filter.Contains(func(e Entry) string { return e.Description }),
				filter.ContainsAny(func(e Entry) []string { return e.Tags }),
				filter.Contains(func(e Entry) string { return e.Author }),
			),
			filterKeyCategory: filter.Equals(func(e Entry) string { return e.Category }),
		}),
		filter.WithWildcards[Entry](filterKeyCategory, AllCategories, ""),
	}
}

// sortEntries orders entries in place, ties keep their existing relative order.
func sortEntries(entries []Entry, key SortKey) {
	switch key {
	case SortRating:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortRecent:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return updatedAtOrZero(b).Compare(updatedAtOrZero(a))
		})
	case SortName:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.English)
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return col.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Compare(b.DownloadCount(), a.DownloadCount())
		})
	}
}

func updatedAtOrZero(e Entry) time.Time {
	t, _ := e.UpdatedAt()
	return t
}

