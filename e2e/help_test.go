//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// help exits right away, no PTY needed
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "directory")
	require.Contains(t, output, "serve")
	require.Contains(t, output, "--config")
}

func TestServeHelpCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "serve", "--help").CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(out), "--local")
}
