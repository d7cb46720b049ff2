package deterrent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirLibrary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"hawk_screech.mp3", "owl_hoot.wav", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	lib, err := LoadDirLibrary(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"hawk_screech", "owl_hoot"}, lib.ListIDs())

	a, ok := lib.Get("hawk_screech")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "hawk_screech.mp3"), a.Path)
	assert.Equal(t, defaultAssetDuration, a.Duration)

	_, ok = lib.Get("notes")
	assert.False(t, ok, "non-audio files must not be loaded")
}

func TestLoadDirLibraryMissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	lib, err := LoadDirLibrary(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, lib.ListIDs())
}

func TestMemoryLibraryDefaultsDuration(t *testing.T) {
	t.Parallel()

	lib := NewMemoryLibrary(Asset{ID: "a"}, Asset{ID: "b", Duration: defaultAssetDuration * 2})

	a, ok := lib.Get("a")
	require.True(t, ok)
	assert.Equal(t, defaultAssetDuration, a.Duration)

	b, ok := lib.Get("b")
	require.True(t, ok)
	assert.Equal(t, defaultAssetDuration*2, b.Duration)
}
