package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"setproxy/internal/core/types"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "127.0.0.1", p.Host)
	assert.Equal(t, "7890", p.HTTPPort)
	assert.Equal(t, "7891", p.SOCKSPort)
	assert.Equal(t, []types.Protocol{types.ProtocolHTTP}, p.Protocols)
	assert.Equal(t, "Wi-Fi", p.Service)
	assert.False(t, p.Enabled)
}

func TestHasProtocol(t *testing.T) {
	p := Default()

	assert.True(t, p.HasProtocol(types.ProtocolHTTP))
	assert.False(t, p.HasProtocol(types.ProtocolSOCKS5))
}

func TestPortFor(t *testing.T) {
	p := Default()

	assert.Equal(t, "7890", p.PortFor(types.ProtocolHTTP))
	assert.Equal(t, "7891", p.PortFor(types.ProtocolSOCKS5))

	p.SetPort(types.ProtocolSOCKS5, "1080")
	assert.Equal(t, "1080", p.PortFor(types.ProtocolSOCKS5))
}

func TestBypassList(t *testing.T) {
	p := &Profile{BypassDomains: " 127.0.0.1, localhost , *.local ,,"}

	assert.Equal(t, []string{"127.0.0.1", "localhost", "*.local"}, p.BypassList())
}

func TestBypassListEmpty(t *testing.T) {
	assert.Nil(t, (&Profile{}).BypassList())
	assert.Nil(t, (&Profile{BypassDomains: "  "}).BypassList())
}

func TestParseProtocols(t *testing.T) {
	protocols := ParseProtocols("HTTP, socks5, bogus, ,https")

	assert.Equal(t, []types.Protocol{
		types.ProtocolHTTP, types.ProtocolSOCKS5, types.ProtocolHTTPS,
	}, protocols)
}

func TestProtocolsRoundTrip(t *testing.T) {
	p := &Profile{Protocols: []types.Protocol{types.ProtocolHTTP, types.ProtocolSOCKS5}}

	assert.Equal(t, "http,socks5", p.ProtocolsString())
	assert.Equal(t, p.Protocols, ParseProtocols(p.ProtocolsString()))
}
