package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mozilla-ai/mcpdir/internal/files"
	"github.com/mozilla-ai/mcpdir/internal/perms"
)

const fileExt = ".json"

// FileStore stores each key as a file in a directory.
// Files are replaced atomically so a crash never leaves a partially written value.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir, creating the directory with secure permissions if needed.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("store directory cannot be empty")
	}

	if err := files.EnsureAtLeastSecureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to prepare store directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the stored files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get implements Store.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key '%s': %w", key, err)
	}

	return data, true, nil
}

// Set implements Store.
func (s *FileStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := files.WriteFileAtomic(s.path(key), value, perms.SecureFile); err != nil {
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}

	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}
