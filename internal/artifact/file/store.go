// Package file implements the artifact store on the local filesystem.
// Writes go through a temp file plus rename, so readers never observe a
// half-written artifact even if the process dies mid-save.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
)

// Compile-time check: Store implements artifact.Store.
var _ artifact.Store = (*Store)(nil)

// Config holds the storage root for a file store.
type Config struct {
	Dir string
}

// Store implements artifact.Store on a single directory. Keys map to
// file names inside it.
type Store struct {
	dir string
}

// NewStore creates a file store, creating the directory when absent.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{dir: cfg.Dir}, nil
}

// Put atomically writes a blob.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return &artifact.Error{Op: artifact.OpPut, Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return &artifact.Error{Op: artifact.OpPut, Key: key, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &artifact.Error{Op: artifact.OpPut, Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &artifact.Error{Op: artifact.OpPut, Key: key, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &artifact.Error{Op: artifact.OpPut, Key: key, Err: err}
	}
	return nil
}

// Get reads a blob, returning ErrNotFound for absent keys.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, &artifact.Error{Op: artifact.OpGet, Key: key, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, artifact.ErrNotFound
		}
		return nil, &artifact.Error{Op: artifact.OpGet, Key: key, Err: err}
	}
	return data, nil
}

// Delete removes a blob. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return &artifact.Error{Op: artifact.OpDelete, Key: key, Err: err}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &artifact.Error{Op: artifact.OpDelete, Key: key, Err: err}
	}
	return nil
}

// Exists reports whether a blob is present.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, &artifact.Error{Op: artifact.OpExists, Key: key, Err: err}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &artifact.Error{Op: artifact.OpExists, Key: key, Err: err}
	}
	return true, nil
}

// Ping verifies the storage root is still a directory.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return &artifact.Error{Op: artifact.OpPing, Key: s.dir, Err: err}
	}
	if !info.IsDir() {
		return &artifact.Error{Op: artifact.OpPing, Key: s.dir, Err: fmt.Errorf("not a directory")}
	}
	return nil
}

// WaitForReady checks the storage root once; local disks do not warm up.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close is a no-op for the file driver.
func (s *Store) Close() {}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
