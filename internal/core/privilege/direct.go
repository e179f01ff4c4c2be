package privilege

import (
	"context"
	"os/exec"
	"strings"

	"setproxy/internal/core/sysproxy"
	apperrors "setproxy/pkg/errors"
)

// Direct runs each command individually through the helper binary, which
// forwards its argument list verbatim to networksetup without prompting.
type Direct struct {
	HelperPath string
}

func (d *Direct) Name() string { return "helper" }

// Run executes commands one at a time and stops at the first failure.
// Commands already applied stay applied.
func (d *Direct) Run(ctx context.Context, cmds []sysproxy.Command) error {
	for _, cmd := range cmds {
		out, err := exec.CommandContext(ctx, d.HelperPath, cmd.Args...).CombinedOutput()
		if err != nil {
			return &apperrors.CommandError{
				Args:   cmd.Args,
				Output: strings.TrimSpace(string(out)),
				Err:    err,
			}
		}
	}
	return nil
}
