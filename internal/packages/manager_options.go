package packages

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultStorageKey is the store key holding the saved package collection.
const DefaultStorageKey = "mcp-saved-packages"

// Option configures a Manager.
type Option func(*Options) error

// Options contains optional configuration for the Manager.
type Options struct {
	clock      func() time.Time
	newID      func() (string, error)
	storageKey string
}

func defaultOptions() Options {
	return Options{
		clock:      time.Now,
		newID:      newTimeOrderedID,
		storageKey: DefaultStorageKey,
	}
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

// WithClock sets the time source used for package timestamps and generated scripts.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.clock = clock
		return nil
	}
}

// WithIDGenerator sets the function used to create saved package IDs.
// Generated IDs must be unique and must never equal CurrentID.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(o *Options) error {
		if newID == nil {
			return fmt.Errorf("ID generator cannot be nil")
		}
		o.newID = newID
		return nil
	}
}

// WithStorageKey sets the store key used for the saved package collection.
func WithStorageKey(key string) Option {
	return func(o *Options) error {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("storage key cannot be empty")
		}
		o.storageKey = key
		return nil
	}
}

// newTimeOrderedID returns a UUIDv7 string, so saved IDs sort by creation time.
func newTimeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate package ID: %w", err)
	}
	return id.String(), nil
}
