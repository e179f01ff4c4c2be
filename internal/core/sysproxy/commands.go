package sysproxy

import (
	"strings"

	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
)

// Tool is the absolute path of the macOS network configuration tool.
const Tool = "/usr/sbin/networksetup"

// Command is a single networksetup invocation, excluding the tool path
// itself. The same argument vector is either forwarded to the helper binary
// or joined into an elevated shell batch.
type Command struct {
	Args []string
}

// setVerb returns the networksetup subcommand that sets server and port for
// the given protocol.
func setVerb(proto types.Protocol) string {
	switch proto {
	case types.ProtocolHTTP:
		return "-setwebproxy"
	case types.ProtocolHTTPS:
		return "-setsecurewebproxy"
	case types.ProtocolSOCKS5:
		return "-setsocksfirewallproxy"
	}
	return ""
}

// stateVerb returns the networksetup subcommand that toggles the protocol's
// enabled state.
func stateVerb(proto types.Protocol) string {
	switch proto {
	case types.ProtocolHTTP:
		return "-setwebproxystate"
	case types.ProtocolHTTPS:
		return "-setsecurewebproxystate"
	case types.ProtocolSOCKS5:
		return "-setsocksfirewallproxystate"
	}
	return ""
}

// getVerb returns the networksetup subcommand that reads the protocol's
// current configuration.
func getVerb(proto types.Protocol) string {
	switch proto {
	case types.ProtocolHTTP:
		return "-getwebproxy"
	case types.ProtocolHTTPS:
		return "-getsecurewebproxy"
	case types.ProtocolSOCKS5:
		return "-getsocksfirewallproxy"
	}
	return ""
}

// BuildEnable constructs the ordered command batch that applies the profile.
// For each enabled protocol, in HTTP → HTTPS → SOCKS5 order, a set-server
// command is followed by a state-on command. When HTTP is enabled and the
// bypass list is non-empty, the bypass-domain command follows HTTP's pair.
func BuildEnable(profile *models.Profile) []Command {
	var cmds []Command
	for _, proto := range types.All() {
		if !profile.HasProtocol(proto) {
			continue
		}
		cmds = append(cmds,
			Command{Args: []string{setVerb(proto), profile.Service, profile.Host, profile.PortFor(proto)}},
			Command{Args: []string{stateVerb(proto), profile.Service, "on"}},
		)
		if proto == types.ProtocolHTTP {
			if bypass := profile.BypassList(); len(bypass) > 0 {
				args := append([]string{"-setproxybypassdomains", profile.Service}, bypass...)
				cmds = append(cmds, Command{Args: args})
			}
		}
	}
	return cmds
}

// BuildDisable constructs the batch that turns every protocol off,
// unconditionally, one state-off command per protocol in the same order.
func BuildDisable(service string) []Command {
	cmds := make([]Command, 0, len(types.All()))
	for _, proto := range types.All() {
		cmds = append(cmds, Command{Args: []string{stateVerb(proto), service, "off"}})
	}
	return cmds
}

// ShellString renders the command as a shell statement invoking the tool,
// quoting arguments that need it.
func (c Command) ShellString() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, Tool)
	for _, arg := range c.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// JoinShell joins a batch into a single shell string with statement
// separators, suitable for one elevated invocation.
func JoinShell(cmds []Command) string {
	parts := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		parts = append(parts, cmd.ShellString())
	}
	return strings.Join(parts, " ; ")
}

// shellQuote quotes a single shell word. Single quotes are escaped the POSIX
// way, closing and reopening the quoted region.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexByte(s, '\'') >= 0 {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	if strings.ContainsAny(s, " \t\n\\\"$`&;()<>|*?[]#~") {
		return "'" + s + "'"
	}
	return s
}
