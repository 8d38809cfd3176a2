//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggleAndList(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("/search?q=nike"))
	require.True(t, tf.Ready())
	require.True(t, tf.OutputContainsPlain(`2 results for "nike"`, 3*time.Second))

	require.NoError(t, tf.SendKeys(KeyFavorite))
	require.True(t, tf.WaitForStatusMessage("Added Trail Runner 2 to favorites", 2*time.Second))

	require.NoError(t, tf.SendKeys("3"))
	require.True(t, tf.OutputContainsPlain("Trail Runner 2", 2*time.Second))

	// The set is written through to the file store
	blob, err := os.ReadFile(filepath.Join(tf.workspace, "data", "favoriteProducts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"101"`)
}

func TestFavoritesPersistAcrossRuns(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	dataDir := filepath.Join(workspace, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "favoriteProducts.json"),
		[]byte(`[{"id":"104","title":"Marathon Pro","storeName":"Nike","price":"$210.00"}]`), 0o644))

	require.NoError(t, tf.StartApp("/favorites"))
	require.True(t, tf.Ready())
	assert.True(t, tf.OutputContainsPlain("Marathon Pro", 3*time.Second))
}

func TestCorruptFavoritesStartEmpty(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	dataDir := filepath.Join(workspace, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "favoriteProducts.json"), []byte("{not json"), 0o644))

	require.NoError(t, tf.StartApp("/favorites"))
	require.True(t, tf.Ready())
	assert.True(t, tf.OutputContainsPlain("No favorites yet", 3*time.Second))
}
