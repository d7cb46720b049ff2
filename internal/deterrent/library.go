// Package deterrent manages the predator sound library and at-most-one
// looped playback of deterrent sounds.
package deterrent

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/strikewarn/strikewarn-go/internal/errors"
)

// defaultAssetDuration is assumed for assets whose real duration the loader
// cannot determine; it paces the playback loop between repeats.
const defaultAssetDuration = 3 * time.Second

// Asset is one playable deterrent sound.
type Asset struct {
	ID       string
	Path     string
	Duration time.Duration
}

// Library supplies deterrent sound assets. Implementations must be safe for
// concurrent reads.
type Library interface {
	// ListIDs returns all loaded sound IDs in stable order.
	ListIDs() []string
	// Get returns the asset for the given ID.
	Get(id string) (Asset, bool)
}

// DirLibrary is a file-backed library scanning a directory for sound assets.
// File stems become sound IDs, matching the asset naming convention
// (hawk_screech.mp3 -> hawk_screech).
type DirLibrary struct {
	assets map[string]Asset
	ids    []string
}

// LoadDirLibrary scans dir for mp3 and wav files. A missing or empty
// directory yields an empty library, which is valid: selection then fails
// with a deterministic error instead of a crash.
func LoadDirLibrary(dir string) (*DirLibrary, error) {
	lib := &DirLibrary{assets: make(map[string]Asset)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, errors.New(err).
			Component("deterrent").
			Category(errors.CategoryFileIO).
			Context("dir", dir).
			Build()
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		lib.assets[id] = Asset{
			ID:       id,
			Path:     filepath.Join(dir, entry.Name()),
			Duration: defaultAssetDuration,
		}
	}

	lib.ids = make([]string, 0, len(lib.assets))
	for id := range lib.assets {
		lib.ids = append(lib.ids, id)
	}
	sort.Strings(lib.ids)

	return lib, nil
}

// ListIDs returns all loaded sound IDs in sorted order.
func (l *DirLibrary) ListIDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Get returns the asset for the given ID.
func (l *DirLibrary) Get(id string) (Asset, bool) {
	a, ok := l.assets[id]
	return a, ok
}

// MemoryLibrary is an in-memory library used in tests and as a stand-in when
// no sounds directory is configured.
type MemoryLibrary struct {
	assets map[string]Asset
}

// NewMemoryLibrary builds a library from the given assets.
func NewMemoryLibrary(assets ...Asset) *MemoryLibrary {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		if a.Duration <= 0 {
			a.Duration = defaultAssetDuration
		}
		m[a.ID] = a
	}
	return &MemoryLibrary{assets: m}
}

// ListIDs returns all sound IDs in sorted order.
func (l *MemoryLibrary) ListIDs() []string {
	ids := make([]string, 0, len(l.assets))
	for id := range l.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the asset for the given ID.
func (l *MemoryLibrary) Get(id string) (Asset, bool) {
	a, ok := l.assets[id]
	return a, ok
}
