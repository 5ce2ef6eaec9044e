package catalog

import (
	"slices"
	"strings"
	"time"
)

// Entry is a single integration configuration ("MCP") listed in the catalog.
// Entries are read-only once loaded, the catalog only ever hands out copies.
type Entry struct {
	ID             int      `json:"id"                       yaml:"id"`
	Name           string   `json:"name"                     yaml:"name"`
	Description    string   `json:"description"              yaml:"description"`
	Rating         float64  `json:"rating"                   yaml:"rating"`
	Downloads      string   `json:"downloads"                yaml:"downloads"`
	Category       string   `json:"category"                 yaml:"category"`
	Tags           []string `json:"tags"                     yaml:"tags"`
	Verified       bool     `json:"verified"                 yaml:"verified"`
	Author         string   `json:"author"                   yaml:"author"`
	LastUpdated    string   `json:"lastUpdated"              yaml:"lastUpdated"`
	Size           string   `json:"size,omitempty"           yaml:"size,omitempty"`
	InstallCommand string   `json:"installCommand,omitempty" yaml:"installCommand,omitempty"`
}

// Clone returns a copy of the entry that shares no mutable state with the original.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	return e
}

// DownloadCount returns the numeric download count parsed from the display string.
// See ParseDownloads.
func (e Entry) DownloadCount() float64 {
	return ParseDownloads(e.Downloads)
}

// UpdatedAt parses LastUpdated, accepting a plain date or an RFC 3339 timestamp.
// The boolean result is false when the value cannot be parsed.
func (e Entry) UpdatedAt() (time.Time, bool) {
	v := strings.TrimSpace(e.LastUpdated)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CloneEntries deep copies a slice of entries, preserving nil.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
