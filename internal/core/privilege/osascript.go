package privilege

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"setproxy/internal/core/sysproxy"
	apperrors "setproxy/pkg/errors"
)

// osascriptBin is the interactive authorization mechanism. Overridable in
// tests.
var osascriptBin = "/usr/bin/osascript"

// AppleScript error codes surfaced by "do shell script … with administrator
// privileges".
const (
	codeUserCancelled = -128
	codeAuthDenied    = -60005
	codeAuthCancelled = -60006
)

var errCodeRe = regexp.MustCompile(`\((-\d+)\)`)

// Osascript executes the whole batch through one elevated
// "do shell script" invocation, prompting for credentials once.
type Osascript struct {
	// Prompt is shown in the authorization dialog. Empty uses the system
	// default.
	Prompt string
}

func (o *Osascript) Name() string { return "osascript" }

func (o *Osascript) Run(ctx context.Context, cmds []sysproxy.Command) error {
	return o.RunScript(ctx, sysproxy.JoinShell(cmds))
}

// RunScript executes an arbitrary shell string with administrator
// privileges.
func (o *Osascript) RunScript(ctx context.Context, script string) error {
	stmt := fmt.Sprintf(`do shell script "%s" with administrator privileges`, EscapeAppleScript(script))
	if o.Prompt != "" {
		stmt += fmt.Sprintf(` with prompt "%s"`, EscapeAppleScript(o.Prompt))
	}

	out, err := exec.CommandContext(ctx, osascriptBin, "-e", stmt).CombinedOutput()
	if err != nil {
		return classify(strings.TrimSpace(string(out)), err)
	}
	return nil
}

// EscapeAppleScript escapes a shell string for embedding in an AppleScript
// double-quoted literal. Backslash and double quote are escaped; newlines
// become \n so the literal stays on one line. Single quotes are inert inside
// the literal and pass through unchanged.
func EscapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// classify maps an osascript failure to the error taxonomy: user-cancelled,
// authorization denied, or a generic failure carrying code and message.
func classify(output string, err error) error {
	code, ok := extractCode(output)
	if ok {
		switch code {
		case codeUserCancelled:
			return fmt.Errorf("%w: %s", apperrors.ErrUserCancelled, output)
		case codeAuthDenied, codeAuthCancelled:
			return fmt.Errorf("%w (%d): %s", apperrors.ErrAuthDenied, code, output)
		}
		return &apperrors.AuthError{Code: code, Message: output, Err: err}
	}
	return &apperrors.CommandError{Args: []string{"osascript"}, Output: output, Err: err}
}

// extractCode pulls the trailing numeric error code out of osascript
// output such as "execution error: User canceled. (-128)".
func extractCode(output string) (int, bool) {
	m := errCodeRe.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}
