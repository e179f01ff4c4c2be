// Package privilege runs networksetup command batches with the minimum
// necessary elevation. The Direct executor invokes a pre-authorized helper
// binary per command; the Osascript executor batches everything into one
// interactive elevated shell invocation.
package privilege

import (
	"context"
	"os"

	"setproxy/internal/core/sysproxy"
)

// Executor runs an ordered batch of networksetup commands.
type Executor interface {
	// Name identifies the execution path ("helper" or "osascript").
	Name() string
	// Run executes the batch, reporting aggregate success or the first
	// failure. Partial application is possible on the Direct path and is
	// not rolled back.
	Run(ctx context.Context, cmds []sysproxy.Command) error
}

// Select picks the execution path for this batch. The helper file is probed
// fresh on every call — cached install state can be stale when the helper
// was removed outside this program.
func Select(helperPath string) Executor {
	if HelperUsable(helperPath) {
		return &Direct{HelperPath: helperPath}
	}
	return &Osascript{}
}

// HelperUsable reports whether the helper exists at path, is a regular file
// and is executable by the current user.
func HelperUsable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return canExecute(path)
}
