package fetcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// CacheStore resolves deterministic cache keys to local paths. Existence of
// the path is the sole cache-hit signal; no metadata is kept alongside.
type CacheStore interface {
	Has(key string) bool
	Path(key string) string
}

// DirStore is a CacheStore rooted at a single directory.
type DirStore struct {
	root string
}

var _ CacheStore = (*DirStore)(nil)

func NewDirStore(dir string) (*DirStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", dir, err)
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", root, err)
	}
	return &DirStore{root: root}, nil
}

func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) Path(key string) string {
	return filepath.Join(s.root, key)
}

func (s *DirStore) Has(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}
