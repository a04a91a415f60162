package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/architect/pkg/blueprint"
)

// FileStore keeps the blueprint slot in a single JSON file.
// Writes go to a temporary file in the same directory and are renamed into place,
// so readers never observe a partially written blueprint.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file and its
// directory are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the blueprint file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the blueprint file. A missing file yields the default blueprint.
func (s *FileStore) Load(ctx context.Context) (blueprint.Blueprint, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return blueprint.Default(), nil
	}
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("failed to read blueprint file: %w", err)
	}

	bp, err := blueprint.Parse(data)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("stored blueprint %s is corrupt: %w", s.path, err)
	}
	return bp, nil
}

// Save validates and atomically replaces the blueprint file.
func (s *FileStore) Save(ctx context.Context, bp blueprint.Blueprint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("invalid blueprint: %w", err)
	}

	data, err := blueprint.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to serialize blueprint: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".blueprint-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write blueprint file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write blueprint file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set blueprint file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace blueprint file: %w", err)
	}
	return nil
}

// Reset overwrites the file with the default blueprint.
func (s *FileStore) Reset(ctx context.Context) (blueprint.Blueprint, error) {
	bp := blueprint.Default()
	if err := s.Save(ctx, bp); err != nil {
		return blueprint.Blueprint{}, err
	}
	return bp, nil
}

// Revision returns a value derived from the file's modification time and an
// FNV-64a hash of its content, or 0 when the file does not exist. Two saves of
// different content inside one timestamp tick still yield different revisions.
func (s *FileStore) Revision(ctx context.Context) (int64, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open blueprint file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat blueprint file: %w", err)
	}
	h := fnv.New64a()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("failed to read blueprint file: %w", err)
	}

	rev := int64((h.Sum64() ^ uint64(info.ModTime().UnixNano())) &^ (1 << 63))
	if rev == 0 {
		rev = 1
	}
	return rev, nil
}

// Ping checks that the blueprint location is usable: the file, when present,
// must be a regular file.
func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat blueprint file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("blueprint path %s is not a regular file", s.path)
	}
	return nil
}

// Close is a no-op for files.
func (s *FileStore) Close() error {
	return nil
}
