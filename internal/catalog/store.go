package catalog

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/modular-tools/cli/internal/apperr"
)

// Store reads and writes the on-disk dynamic catalog cache. The filesystem
// is injected so tests can substitute an in-memory one.
type Store struct {
	fs        afero.Fs
	cachePath string
}

// NewStore creates a Store backed by the given filesystem and cache path.
func NewStore(fs afero.Fs, cachePath string) *Store {
	return &Store{fs: fs, cachePath: cachePath}
}

// Load returns the unified catalog: the bundled root catalog merged with the
// dynamic cache when one exists. A broken bundled catalog is an internal
// error (broken installation); a corrupt dynamic cache asks the user to log
// in again.
func (s *Store) Load() (*Catalog, error) {
	root, err := Parse(rootCatalogJSON)
	if err != nil {
		return nil, apperr.New(apperr.Internal,
			"bundled command catalog is unreadable (%v), please reinstall or contact support", err)
	}

	exists, err := afero.Exists(s.fs, s.cachePath)
	if err != nil {
		return nil, apperr.New(apperr.Internal, "check catalog cache: %v", err)
	}
	if !exists {
		return root, nil
	}

	data, err := afero.ReadFile(s.fs, s.cachePath)
	if err != nil {
		return nil, apperr.New(apperr.Internal, "read catalog cache: %v", err)
	}

	dynamic, err := Parse(data)
	if err != nil {
		return nil, apperr.New(apperr.BadRequest,
			"error while loading the command catalog, please perform login again")
	}

	return Merge(root, dynamic), nil
}

// SaveDynamic replaces the dynamic catalog cache wholesale. The document is
// validated first, then written to a temporary file and renamed into place
// so a concurrent reader never observes a torn write.
func (s *Store) SaveDynamic(data []byte) error {
	if _, err := Parse(data); err != nil {
		return apperr.New(apperr.BadRequest, "refusing to cache malformed catalog: %v", err)
	}

	dir := filepath.Dir(s.cachePath)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return apperr.New(apperr.Internal, "create catalog cache directory: %v", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".catalog.tmp.*")
	if err != nil {
		return apperr.New(apperr.Internal, "create catalog cache temp file: %v", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return apperr.New(apperr.Internal, "write catalog cache: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.New(apperr.Internal, "close catalog cache temp file: %v", err)
	}
	if err := s.fs.Rename(tmpPath, s.cachePath); err != nil {
		return apperr.New(apperr.Internal, "replace catalog cache: %v", err)
	}
	if err := s.fs.Chmod(s.cachePath, 0o600); err != nil {
		return apperr.New(apperr.Internal, "set catalog cache permissions: %v", err)
	}

	success = true
	return nil
}

// RemoveDynamic deletes the dynamic catalog cache. Removing an absent cache
// is not an error.
func (s *Store) RemoveDynamic() error {
	if err := s.fs.Remove(s.cachePath); err != nil && !os.IsNotExist(err) {
		return apperr.New(apperr.Internal, "remove catalog cache: %v", err)
	}
	return nil
}

// CachePath returns the location of the dynamic catalog cache.
func (s *Store) CachePath() string {
	return s.cachePath
}
