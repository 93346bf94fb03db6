package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the barycentre binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "barycentre"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// runBinary runs the CLI with a clean config environment.
func runBinary(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinaryPath(t), args...)
	cmd.Env = append(os.Environ(), "BARYCENTRE_CONFIG=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}
