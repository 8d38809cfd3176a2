//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveSearchShowsQuickResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("QuickFind"))

	require.NoError(t, tf.SendKeys(KeySearch))
	require.NoError(t, tf.SendKeys("nike"))

	require.True(t, tf.OutputContainsPlain("Quick results", 3*time.Second), "Suggestions should appear after the quiet period")
	require.True(t, tf.OutputContainsPlain("Trail Runner 2", 2*time.Second))
	assert.True(t, tf.OutputContainsPlain(`View all results for "nike"`, time.Second))

	// Typing quickly collapses into a single lookup
	assert.Equal(t, []string{"nike"}, tf.api.Queries())

	require.NoError(t, tf.SendEnter())
	require.True(t, tf.OutputContainsPlain(`2 results for "nike"`, 3*time.Second), "Enter should open the results page")
	assert.True(t, tf.SeePlain("Marathon Pro"))
}

func TestShortInputShowsPopular(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeySearch))
	require.NoError(t, tf.SendKeys("n"))
	time.Sleep(600 * time.Millisecond)

	assert.True(t, tf.SeePlain("Popular searches"))
	assert.Empty(t, tf.api.Queries(), "A single character should not hit the catalog")
}

func TestSearchFromCommandLine(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("shoes"))
	require.True(t, tf.Ready())
	require.True(t, tf.OutputContainsPlain(`6 results for "shoes"`, 3*time.Second))
}

func TestSortResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("/search?q=nike"))
	require.True(t, tf.Ready())
	require.True(t, tf.OutputContainsPlain(`2 results for "nike"`, 3*time.Second))

	require.NoError(t, tf.SendKeys(KeySort))
	require.True(t, tf.OutputContainsPlain("Sort by:", time.Second))

	// relevance -> price ascending -> price descending
	require.NoError(t, tf.SendKeys(KeySort))
	require.NoError(t, tf.SendKeys(KeySort))
	require.NoError(t, tf.SendEnter())
	require.True(t, tf.OutputContainsPlain("Sort: Price: High to Low", 2*time.Second))

	screen := tf.SnapshotPlain()
	trail := strings.LastIndex(screen, "Trail Runner 2")
	marathon := strings.LastIndex(screen, "Marathon Pro")
	require.True(t, trail >= 0 && marathon >= 0, "Both products should be listed")
	assert.Less(t, marathon, trail, "Pricier product should come first")
}

func TestSearchFailureIsReported(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.api = NewCatalogServer(t)
	tf.api.SetFailing(true)

	require.NoError(t, tf.StartApp("shoes"))
	require.True(t, tf.Ready())
	require.True(t, tf.OutputContainsPlain("Search failed", 3*time.Second))

	tf.api.SetFailing(false)
	require.NoError(t, tf.SendKeys("R"))
	assert.True(t, tf.OutputContainsPlain(`6 results for "shoes"`, 3*time.Second))
}
