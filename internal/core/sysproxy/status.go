package sysproxy

import (
	"context"
	"fmt"
	"strings"

	"setproxy/internal/core/types"
	apperrors "setproxy/pkg/errors"
)

// QueryStatus reads the current per-protocol proxy state of a network
// service. It is read-only and needs no elevation.
func QueryStatus(ctx context.Context, service string) ([]types.ProtocolStatus, error) {
	statuses := make([]types.ProtocolStatus, 0, len(types.All()))
	for _, proto := range types.All() {
		out, err := runTool(ctx, getVerb(proto), service)
		if err != nil {
			return nil, &apperrors.CommandError{
				Args:   []string{getVerb(proto), service},
				Output: strings.TrimSpace(out),
				Err:    err,
			}
		}
		status := parseProxyOutput(out)
		status.Protocol = proto
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// parseProxyOutput parses -getwebproxy style output:
//
//	Enabled: Yes
//	Server: 127.0.0.1
//	Port: 7890
//	Authenticated Proxy Enabled: 0
func parseProxyOutput(out string) types.ProtocolStatus {
	var status types.ProtocolStatus
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Enabled:"):
			// "Authenticated Proxy Enabled" has its own prefix and never
			// matches here.
			status.Enabled = strings.Contains(line, "Yes")
		case strings.HasPrefix(line, "Server:"):
			status.Server = strings.TrimSpace(strings.TrimPrefix(line, "Server:"))
		case strings.HasPrefix(line, "Port:"):
			status.Port = strings.TrimSpace(strings.TrimPrefix(line, "Port:"))
		}
	}
	return status
}

// Summary aggregates statuses into a one-line human readable report such as
// "HTTP:7890 SOCKS5:7891".
func Summary(statuses []types.ProtocolStatus) string {
	var parts []string
	for _, st := range statuses {
		if st.Enabled {
			parts = append(parts, fmt.Sprintf("%s:%s", st.Protocol.Label(), st.Port))
		}
	}
	if len(parts) == 0 {
		return "no proxy enabled"
	}
	return strings.Join(parts, " ")
}

// AnyEnabled reports whether at least one protocol is enabled.
func AnyEnabled(statuses []types.ProtocolStatus) bool {
	for _, st := range statuses {
		if st.Enabled {
			return true
		}
	}
	return false
}
