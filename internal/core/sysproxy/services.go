package sysproxy

import (
	"context"
	"os/exec"
	"strings"

	apperrors "setproxy/pkg/errors"
)

// runTool executes networksetup and returns its combined output. Overridable
// in tests.
var runTool = func(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, Tool, args...).CombinedOutput()
	return string(out), err
}

// ListServices enumerates the configurable network services in order.
func ListServices(ctx context.Context) ([]string, error) {
	out, err := runTool(ctx, "-listallnetworkservices")
	if err != nil {
		return nil, &apperrors.CommandError{
			Args:   []string{"-listallnetworkservices"},
			Output: strings.TrimSpace(out),
			Err:    err,
		}
	}

	services := ParseServices(out)
	if len(services) == 0 {
		return nil, apperrors.ErrNoServices
	}
	return services, nil
}

// ParseServices extracts service names from -listallnetworkservices output,
// dropping the informational header line and services disabled with a "*"
// marker.
func ParseServices(out string) []string {
	var services []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "An asterisk") || strings.HasPrefix(line, "*") {
			continue
		}
		services = append(services, line)
	}
	return services
}

// PickService returns configured when it is present in services, otherwise
// the first available service. The second return reports whether a fallback
// happened.
func PickService(configured string, services []string) (string, bool) {
	for _, svc := range services {
		if svc == configured {
			return configured, false
		}
	}
	if len(services) > 0 {
		return services[0], true
	}
	return configured, false
}
