// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that prints output and exits 0.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string, output string) string {
	t.Helper()
	return WriteStubWithExit(t, dir, name, output, 0)
}

// WriteStubWithExit writes an executable shell stub that prints output and
// exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, output string, exitCode int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\nprintf '%%s' %q\nexit %d\n", output, exitCode))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteFile writes an ordinary file, failing the test on error.
func WriteFile(t *testing.T, dir string, name string, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}
