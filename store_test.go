package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushEmptyStoreWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	store := NewResultStore(path)

	require.NoError(t, store.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "basin,seed_x,seed_y\n", string(data))
}

func TestFlushWritesOneRowPerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	store := NewResultStore(path)
	store.Append(SelectionRecord{Basin: "alpha", Seed: Point{X: 1.5, Y: -2}})
	store.Append(SelectionRecord{Basin: "beta", Seed: Point{X: 300000, Y: -1250000.25}})

	require.NoError(t, store.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "basin,seed_x,seed_y", lines[0])
	assert.Equal(t, "alpha,1.5,-2", lines[1])
	assert.Equal(t, "beta,300000,-1250000.25", lines[2])
}

func TestFlushUnwritablePath(t *testing.T) {
	store := NewResultStore(filepath.Join(t.TempDir(), "missing", "dir", "seeds.csv"))
	store.Append(SelectionRecord{Basin: "alpha", Seed: Point{X: 1, Y: 2}})

	err := store.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write results")
}

func TestLoadSavedSeedsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	store := NewResultStore(path)
	store.Append(SelectionRecord{Basin: "alpha", Seed: Point{X: 12.5, Y: -3}})
	store.Append(SelectionRecord{Basin: "beta", Seed: Point{X: 0, Y: 99}})
	require.NoError(t, store.Flush())

	seeds, err := LoadSavedSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]Point{
		"alpha": {X: 12.5, Y: -3},
		"beta":  {X: 0, Y: 99},
	}, seeds)
}

func TestLoadSavedSeedsMissingFile(t *testing.T) {
	seeds, err := LoadSavedSeeds(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestLoadSavedSeedsSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	content := "basin,seed_x,seed_y\nalpha,1,2\nbroken,not-a-number,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	seeds, err := LoadSavedSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]Point{"alpha": {X: 1, Y: 2}}, seeds)
}
