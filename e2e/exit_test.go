//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startMoviegrip(t *testing.T) (*TUITestFramework, *FakeCatalog) {
	t.Helper()
	tf := NewTUITest(t)

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	catalog := tf.StartCatalog()

	return tf, catalog
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf, _ := startMoviegrip(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")

	// Wait for TUI to initialize and render
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Press / to search movies"), "Should show the empty search prompt")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending 'q' to quit application...")
	tf.Quit()

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly with 'q'")
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}

func TestApplicationExitWithCtrlCFromSearch(t *testing.T) {
	t.Parallel()
	tf, _ := startMoviegrip(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// q is text while the search input is focused, ctrl+c still quits
	tf.SendKeys(KeySearch)
	tf.SendKeys("q")
	require.True(t, tf.SeePlain("Search movies: q"), "q should be typed into the input")
	tf.SendCtrlC()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after ctrl+c")
	}
}
