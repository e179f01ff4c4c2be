package privilege

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setproxy/internal/core/sysproxy"
	apperrors "setproxy/pkg/errors"
)

func TestHelperUsable(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, HelperUsable(filepath.Join(dir, "missing")))
	assert.False(t, HelperUsable(dir), "directories are not usable helpers")

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o644))
	assert.False(t, HelperUsable(plain), "non-executable file")

	exe := filepath.Join(dir, "exe")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	assert.True(t, HelperUsable(exe))
}

func TestSelectWithoutHelper(t *testing.T) {
	executor := Select(filepath.Join(t.TempDir(), "missing"))

	assert.IsType(t, &Osascript{}, executor)
	assert.Equal(t, "osascript", executor.Name())
}

func TestSelectWithHelper(t *testing.T) {
	helper := filepath.Join(t.TempDir(), "helper")
	require.NoError(t, os.WriteFile(helper, []byte("#!/bin/sh\n"), 0o755))

	executor := Select(helper)

	direct, ok := executor.(*Direct)
	require.True(t, ok)
	assert.Equal(t, helper, direct.HelperPath)
	assert.Equal(t, "helper", executor.Name())
}

func TestDirectRun(t *testing.T) {
	d := &Direct{HelperPath: "/bin/echo"}

	cmds := []sysproxy.Command{
		{Args: []string{"-setwebproxystate", "Wi-Fi", "on"}},
		{Args: []string{"-setwebproxy", "Wi-Fi", "127.0.0.1", "7890"}},
	}
	assert.NoError(t, d.Run(context.Background(), cmds))
}

func TestDirectRunFailure(t *testing.T) {
	d := &Direct{HelperPath: "/bin/false"}

	err := d.Run(context.Background(), []sysproxy.Command{
		{Args: []string{"-setwebproxystate", "Wi-Fi", "on"}},
	})

	var cmdErr *apperrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, []string{"-setwebproxystate", "Wi-Fi", "on"}, cmdErr.Args)
}

func TestUninstallHelperMissing(t *testing.T) {
	err := UninstallHelper(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, apperrors.ErrHelperMissing)
}

func TestUninstallHelperNonExecutable(t *testing.T) {
	restore := osascriptBin
	defer func() { osascriptBin = restore }()
	osascriptBin = "/bin/echo"

	// A helper left without execute bits by a botched install must still be
	// removable.
	helper := filepath.Join(t.TempDir(), "helper")
	require.NoError(t, os.WriteFile(helper, []byte("#!/bin/sh\n"), 0o644))

	assert.NoError(t, UninstallHelper(context.Background(), helper))
}
