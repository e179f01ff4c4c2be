package privilege

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "setproxy/pkg/errors"
)

// helperScript is the fixed forwarding script installed at the well-known
// helper path. The setuid bit set at install time is what makes repeated
// invocations prompt-free.
const helperScript = "#!/bin/sh\nexec /usr/sbin/networksetup \"$@\"\n"

// InstallHelper writes the helper script to path, owned by root with mode
// 4755, behind a single interactive elevated authorization request.
func InstallHelper(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	script := strings.Join([]string{
		fmt.Sprintf("mkdir -p %s", shellWord(dir)),
		fmt.Sprintf("printf '%%s' %s > %s", shellWord(helperScript), shellWord(path)),
		fmt.Sprintf("chown root:wheel %s", shellWord(path)),
		fmt.Sprintf("chmod 4755 %s", shellWord(path)),
	}, " && ")

	elevated := &Osascript{Prompt: "setproxy wants to install its helper tool."}
	return elevated.RunScript(ctx, script)
}

// UninstallHelper removes the helper file, also behind one elevated request.
// A helper that is not installed reports ErrHelperMissing without prompting.
// The gate is existence, not usability: a file that lost its execute bits
// must still be removable.
func UninstallHelper(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperrors.ErrHelperMissing
	}
	elevated := &Osascript{Prompt: "setproxy wants to remove its helper tool."}
	return elevated.RunScript(ctx, fmt.Sprintf("rm -f %s", shellWord(path)))
}

// shellWord single-quotes s for the shell. The helper script body contains
// newlines and double quotes but no single quotes, so this stays simple.
func shellWord(s string) string {
	if strings.IndexByte(s, '\'') >= 0 {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return "'" + s + "'"
}
