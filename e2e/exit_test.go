//go:build e2e && unix

package main

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitExit(t *testing.T, tf *TUITestFramework, send func() error) {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, send())

	select {
	case exitErr := <-done:
		if exitErr != nil {
			t.Logf("Process exited with: %v", exitErr)
		}
	case <-time.After(3 * time.Second):
		tf.DumpTailOnFail(t, "exit", 2000)
		t.Fatal("Application did not exit")
	}
}

func TestQuitWithQ(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("QuickFind"), "Should show the QuickFind title")

	tf.Snapshot()
	waitExit(t, tf, tf.Quit)
}

func TestQuitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Popular searches"), "Home should list popular searches")

	waitExit(t, tf, tf.SendCtrlC)
}

func TestHelpFlag(t *testing.T) {
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "--help should exit cleanly: %s", out)
	require.Contains(t, string(out), "Usage: quickfind")
	require.Contains(t, string(out), "--api-url")
}

func TestVersionFlag(t *testing.T) {
	out, err := exec.Command(binPath, "--version").CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(out), "quickfind dev")
}
