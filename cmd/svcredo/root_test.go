package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"svcredo/internal/installer"
	"svcredo/internal/messages"
	"svcredo/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	err := execute(append([]string{"svcredo"}, args...), out, out)
	return out.String(), err
}

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.Equal(t, defaultInstallUtilDir, cmd.Flags().Lookup("installutil-dir").DefValue)
	require.Equal(t, "true", cmd.Flags().Lookup("start-after-install").DefValue)
	require.Equal(t, "5", cmd.Flags().Lookup("wait").DefValue)
	require.Equal(t, "", cmd.Flags().Lookup("service-name").DefValue)
}

func TestMissingServiceExeFailsPreflight(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, installer.ExeName, "MZ")
	missing := filepath.Join(dir, "not-built.exe")

	out, err := runCLI(t, "--installutil-dir", dir, missing)
	require.Error(t, err)
	require.EqualError(t, err, messages.PreflightFailed)
	require.Contains(t, out, missing)
}

func TestMissingInstallUtilDirFailsPreflight(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteFile(t, dir, "Worker.exe", "MZ")

	out, err := runCLI(t, "--installutil-dir", filepath.Join(dir, "absent"), exe)
	require.Error(t, err)
	require.Contains(t, out, "absent")
}

func TestNegativeWaitRejected(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteFile(t, dir, "Worker.exe", "MZ")

	_, err := runCLI(t, "--wait", "-1", exe)
	require.Error(t, err)
	require.ErrorContains(t, err, "--wait")
}

func TestCheckCommandReportsOnly(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteFile(t, dir, "Worker.exe", "MZ")

	out, err := runCLI(t, "check", "--installutil-dir", filepath.Join(dir, "absent"), exe)
	require.Error(t, err)
	require.Contains(t, out, messages.PreflightCheckNameInstallUtilDir)
}

func TestRequiresExactlyOneArg(t *testing.T) {
	_, err := runCLI(t)
	require.Error(t, err)

	_, err = runCLI(t, "a.exe", "b.exe")
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("/plain/path.exe")
	require.NoError(t, err)
	require.Equal(t, "/plain/path.exe", got)

	got, err = expandPath("~/bin/svc.exe")
	require.NoError(t, err)
	require.NotContains(t, got, "~")
}
