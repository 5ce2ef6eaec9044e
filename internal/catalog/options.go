package catalog

import (
	"fmt"
	"strings"
)

// Options configures a Catalog.
type Options struct {
	// Source is an optional file path, file:// URL, or http(s):// URL of a catalog document.
	// Empty selects the embedded catalog.
	Source string

	// Entries, when non-nil, are used directly instead of reading a source.
	Entries []Entry
}

// Option configures catalog Options.
type Option func(*Options) error

func defaultOptions() Options {
	return Options{}
}

// NewOptions creates Options with defaults and applies the given options.
func NewOptions(opt ...Option) (Options, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}

// WithSource sets the catalog source.
func WithSource(source string) Option {
	return func(o *Options) error {
		source = strings.TrimSpace(source)
		if strings.HasPrefix(source, "file://") && len(source) == len("file://") {
			return fmt.Errorf("catalog source file URL has no path")
		}
		o.Source = source
		return nil
	}
}

// WithEntries uses the supplied entries instead of loading a source.
// Entry IDs must be unique.
func WithEntries(entries []Entry) Option {
	return func(o *Options) error {
		if entries == nil {
			entries = []Entry{}
		}
		if err := checkUniqueIDs(entries); err != nil {
			return err
		}
		o.Entries = CloneEntries(entries)
		return nil
	}
}
