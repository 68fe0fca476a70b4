package mosaic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SignatureCache persists a catalog's signature table between runs.
type SignatureCache interface {
	// HasData reports whether a snapshot has been persisted.
	HasData() bool
	// WriteAll persists snap, replacing any existing snapshot.
	WriteAll(snap Snapshot) error
	// ReadAll restores the persisted snapshot. Malformed data yields ErrCacheCorrupt.
	ReadAll() (Snapshot, error)
}

// JSONCache is a SignatureCache backed by a single JSON file holding an
// object of identifier -> [r, g, b].
type JSONCache struct {
	Path string
}

// NewJSONCache returns a cache stored at path.
func NewJSONCache(path string) *JSONCache {
	return &JSONCache{Path: path}
}

// HasData reports whether the cache file exists and is a regular file.
func (c *JSONCache) HasData() bool {
	info, err := os.Stat(c.Path)
	return err == nil && info.Mode().IsRegular()
}

// WriteAll writes the snapshot to a temporary file next to Path and renames
// it into place. The file is left readable by everyone (0644).
func (c *JSONCache) WriteAll(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.Path), ".signature-cache-*.json")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set cache file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// ReadAll loads the snapshot from Path.
func (c *JSONCache) ReadAll() (Snapshot, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no snapshot at %s: %w", c.Path, err)
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if errors.Is(err, ErrCacheCorrupt) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrCacheCorrupt)
	}
	return snap, nil
}

// LoadOrBuild returns a catalog for sources, restoring it from cache when a
// snapshot exists and otherwise sampling every source and persisting the
// result. fromCache reports which path was taken. A nil cache always builds.
func LoadOrBuild(sources []Source, cache SignatureCache) (cat *Catalog, fromCache bool, err error) {
	if cache != nil && cache.HasData() {
		snap, err := cache.ReadAll()
		if err != nil {
			return nil, false, err
		}
		cat, err := FromSnapshot(snap, sources)
		if err != nil {
			return nil, false, err
		}
		return cat, true, nil
	}

	cat, err = Build(sources)
	if err != nil {
		return nil, false, err
	}
	if cache != nil {
		if err := cache.WriteAll(cat.Snapshot()); err != nil {
			return nil, false, err
		}
	}
	return cat, false, nil
}
