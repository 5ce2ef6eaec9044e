package filter

import (
	"fmt"
	"strings"
)

// Predicate defines a function that returns true if the given item matches a condition.
type Predicate[T any] func(item T, filterValue string) bool

// Options holds configuration for filtering behavior.
type Options[T any] struct {
	matchers  map[string]Predicate[T]
	wildcards map[string]map[string]struct{}
	logFunc   func(key string, val string)
}

// Option configures filter Options.
type Option[T any] func(*Options[T]) error

// defaultOptions returns the default filter Options.
func defaultOptions[T any]() Options[T] {
	return Options[T]{
		matchers:  make(map[string]Predicate[T]),
		wildcards: make(map[string]map[string]struct{}),
		logFunc:   func(key, val string) {}, // no-op
	}
}

// NormalizeString can be used to normalize a string value for filtering/comparison.
// The value is made lowercase and has any leading and/or trailing whitespace removed.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewOptions creates filter Options with defaults and applies given options.
func NewOptions[T any](opt ...Option[T]) (Options[T], error) {
	opts := defaultOptions[T]()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options[T]{}, err
		}
	}
	return opts, nil
}

// Provider is a generic function type that encapsulates the logic for extracting
// a value of type V from an item of type T.
type Provider[T any, V any] func(T) V

// StringValueProvider extracts a single string value from an item of type T.
type StringValueProvider[T any] Provider[T, string]

// StringValuesProvider extracts a slice of string values from an item of type T.
type StringValuesProvider[T any] Provider[T, []string]

// Equals returns a Predicate that checks if the value extracted by the provider
// exactly matches the filter value (case-insensitive, normalized).
//
// Example:
//
// predicate := Equals(categoryProvider),
// result := predicate(entry, "Database") // true if entry.Category is "database" in any case
func Equals[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return NormalizeString(provider(item)) == NormalizeString(val)
	}
}

// Contains returns a Predicate that checks if the value extracted by the provider
// contains the filter value as a substring (case-insensitive).
// The filter value is lowercased but not trimmed, so surrounding spaces are significant.
// An empty filter value matches every item.
func Contains[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return strings.Contains(strings.ToLower(provider(item)), strings.ToLower(val))
	}
}

// ContainsAny returns a Predicate that checks if *ANY* of the values extracted by the provider
// contains the filter value as a substring (case-insensitive).
//
// Example:
//
// predicate := ContainsAny(tagsProvider),
// result := predicate(entry, "sql") // true if any tag contains "sql", e.g. "postgresql"
func ContainsAny[T any](provider StringValuesProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		q := strings.ToLower(val)
		for _, v := range provider(item) {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
		return false
	}
}

// AnyOf returns a Predicate that is satisfied when at least one of the supplied predicates is satisfied.
func AnyOf[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(item T, val string) bool {
		for _, p := range predicates {
			if p(item, val) {
				return true
			}
		}
		return false
	}
}

// WithMatcher adds or overrides a matcher.
func WithMatcher[T any](key string, value Predicate[T]) Option[T] {
	return func(o *Options[T]) error {
		o.matchers[NormalizeString(key)] = value
		return nil
	}
}

// WithMatchers adds or overrides matchers.
func WithMatchers[T any](m map[string]Predicate[T]) Option[T] {
	return func(o *Options[T]) error {
		for k, v := range m {
			o.matchers[NormalizeString(k)] = v
		}
		return nil
	}
}

// WithWildcards marks filter values for the given key that match every item (e.g. category "all").
func WithWildcards[T any](key string, values ...string) Option[T] {
	return func(o *Options[T]) error {
		k := NormalizeString(key)
		if k == "" {
			return fmt.Errorf("wildcard key cannot be empty")
		}
		if o.wildcards[k] == nil {
			o.wildcards[k] = make(map[string]struct{}, len(values))
		}
		for _, v := range values {
			o.wildcards[k][NormalizeString(v)] = struct{}{}
		}
		return nil
	}
}

// WithLogFunc sets a log function which will be used to log info if filter keys without a matcher are encountered.
func WithLogFunc[T any](logFunc func(key string, val string)) Option[T] {
	return func(o *Options[T]) error {
		if logFunc != nil {
			o.logFunc = logFunc
		}
		return nil
	}
}

// Match applies the provided filters to an item of type T using any configured Option matchers.
// Keys without a matcher are logged and ignored; wildcard values always match.
func Match[T any](item T, filters map[string]string, opts ...Option[T]) (bool, error) {
	if filters == nil {
		return true, nil
	}

	filterOpts, err := NewOptions(opts...)
	if err != nil {
		return false, err
	}

	for key, val := range filters {
		k := NormalizeString(key)
		if k == "" {
			continue
		}

		if _, wildcard := filterOpts.wildcards[k][NormalizeString(val)]; wildcard {
			continue
		}

		matcher, ok := filterOpts.matchers[k]
		if !ok {
			filterOpts.logFunc(k, val)
			continue
		}
		if !matcher(item, val) {
			return false, nil
		}
	}
	return true, nil
}
