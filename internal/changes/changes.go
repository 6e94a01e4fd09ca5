// Package changes gates resource generation on file modification times.
//
// A Snapshot maps every regular file under an asset root to its modification
// time in seconds. The snapshot of the previous successful run is cached next
// to the generated output; a run whose snapshot matches the cache does nothing.
package changes

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

// Snapshot maps absolute file paths to modification times in fractional seconds.
type Snapshot map[string]float64

// TakeSnapshot walks root recursively and records every regular file.
func TakeSnapshot(root string) (Snapshot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", errs.ErrIO, root, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: asset root %s", errs.ErrMissingInput, root)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", errs.ErrIO, root, err)
	}

	snap := make(Snapshot)
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		snap[path] = float64(info.ModTime().UnixNano()) / 1e9
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %v", errs.ErrIO, root, err)
	}
	return snap, nil
}

// Load reads a cached snapshot. ok is false when the cache is missing or cannot be decoded.
func Load(cachePath string) (snap Snapshot, ok bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return snap, true
}

// Save writes snap as indented JSON. encoding/json sorts map keys.
func Save(cachePath string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode cache: %v", errs.ErrIO, err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("%w: write cache %s: %v", errs.ErrIO, cachePath, err)
	}
	return nil
}

// Changed reports whether root differs from the snapshot cached at cachePath.
// When it does, the fresh snapshot replaces the cache before Changed returns.
func Changed(root, cachePath string) (bool, error) {
	snap, err := TakeSnapshot(root)
	if err != nil {
		return false, err
	}
	if old, ok := Load(cachePath); ok && maps.Equal(old, snap) {
		return false, nil
	}
	if err := Save(cachePath, snap); err != nil {
		return true, err
	}
	return true, nil
}

// Invalidate drops the cache so the next run regenerates unconditionally.
func Invalidate(cachePath string) error {
	if err := os.Remove(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove cache %s: %v", errs.ErrIO, cachePath, err)
	}
	return nil
}
