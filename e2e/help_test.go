//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpOpensInPagerAndReturns(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("QuickFind"))

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.OutputContainsPlain("Choose sort order", 3*time.Second), "Help text should be shown")

	// Leave the pager; the app must take keys again
	require.NoError(t, tf.SendKeys("q"))
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tf.SendKeys("4"))
	require.True(t, tf.OutputContainsPlain("About QuickFind", 3*time.Second), "About view should be reachable after the pager closes")
}
