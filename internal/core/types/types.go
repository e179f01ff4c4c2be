package types

// Protocol identifies one of the independently configurable macOS proxy
// protocols.
type Protocol string

const (
	ProtocolHTTP   Protocol = "http"
	ProtocolHTTPS  Protocol = "https"
	ProtocolSOCKS5 Protocol = "socks5"
)

// All returns the protocols in the fixed command-construction order
// HTTP → HTTPS → SOCKS5.
func All() []Protocol {
	return []Protocol{ProtocolHTTP, ProtocolHTTPS, ProtocolSOCKS5}
}

// Label returns the display name used in status summaries.
func (p Protocol) Label() string {
	switch p {
	case ProtocolHTTP:
		return "HTTP"
	case ProtocolHTTPS:
		return "HTTPS"
	case ProtocolSOCKS5:
		return "SOCKS5"
	}
	return string(p)
}

// Valid reports whether p is one of the known protocols.
func (p Protocol) Valid() bool {
	switch p {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolSOCKS5:
		return true
	}
	return false
}

// ProtocolStatus is the parsed state of a single protocol on a network
// service, as reported by the OS configuration tool.
type ProtocolStatus struct {
	Protocol Protocol
	Enabled  bool
	Server   string
	Port     string
}
