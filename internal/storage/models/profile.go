package models

import (
	"strings"
	"time"

	"setproxy/internal/core/types"
)

// Profile is the single proxy configuration record. It is persisted on every
// mutation and reloaded at startup. Enabled mirrors the last applied state
// and is not authoritative — the OS state can diverge when changed outside
// this program.
type Profile struct {
	ID   int64  `json:"id"`
	Host string `json:"host"`

	// String-encoded ports, one per protocol.
	HTTPPort  string `json:"http_port"`
	HTTPSPort string `json:"https_port"`
	SOCKSPort string `json:"socks_port"`

	Enabled   bool             `json:"enabled"`
	Protocols []types.Protocol `json:"protocols"`

	// Service is the OS-level network service name (e.g. "Wi-Fi").
	Service string `json:"service"`

	// BypassDomains is a comma-separated list of addresses, CIDR ranges and
	// wildcards excluded from proxying.
	BypassDomains string `json:"bypass_domains"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default returns the hardcoded profile used when nothing has been persisted
// yet or the stored record cannot be decoded.
func Default() *Profile {
	return &Profile{
		ID:            1,
		Host:          "127.0.0.1",
		HTTPPort:      "7890",
		HTTPSPort:     "7890",
		SOCKSPort:     "7891",
		Protocols:     []types.Protocol{types.ProtocolHTTP},
		Service:       "Wi-Fi",
		BypassDomains: "127.0.0.1, localhost",
	}
}

// HasProtocol reports whether proto is in the enabled set.
func (p *Profile) HasProtocol(proto types.Protocol) bool {
	for _, enabled := range p.Protocols {
		if enabled == proto {
			return true
		}
	}
	return false
}

// PortFor returns the configured port for the given protocol.
func (p *Profile) PortFor(proto types.Protocol) string {
	switch proto {
	case types.ProtocolHTTP:
		return p.HTTPPort
	case types.ProtocolHTTPS:
		return p.HTTPSPort
	case types.ProtocolSOCKS5:
		return p.SOCKSPort
	}
	return ""
}

// SetPort sets the port for the given protocol.
func (p *Profile) SetPort(proto types.Protocol, port string) {
	switch proto {
	case types.ProtocolHTTP:
		p.HTTPPort = port
	case types.ProtocolHTTPS:
		p.HTTPSPort = port
	case types.ProtocolSOCKS5:
		p.SOCKSPort = port
	}
}

// BypassList splits BypassDomains on commas, trims whitespace from each
// entry and drops empty entries, preserving order.
func (p *Profile) BypassList() []string {
	if strings.TrimSpace(p.BypassDomains) == "" {
		return nil
	}
	parts := strings.Split(p.BypassDomains, ",")
	domains := make([]string, 0, len(parts))
	for _, part := range parts {
		if d := strings.TrimSpace(part); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// ProtocolsString returns the enabled set as a comma-joined string for
// storage.
func (p *Profile) ProtocolsString() string {
	parts := make([]string, 0, len(p.Protocols))
	for _, proto := range p.Protocols {
		parts = append(parts, string(proto))
	}
	return strings.Join(parts, ",")
}

// ParseProtocols parses a comma-separated protocol list, ignoring unknown
// and empty entries.
func ParseProtocols(s string) []types.Protocol {
	var protocols []types.Protocol
	for _, part := range strings.Split(s, ",") {
		proto := types.Protocol(strings.TrimSpace(strings.ToLower(part)))
		if proto.Valid() {
			protocols = append(protocols, proto)
		}
	}
	return protocols
}
