package sysproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
)

func testProfile() *models.Profile {
	return &models.Profile{
		Host:      "127.0.0.1",
		HTTPPort:  "7890",
		HTTPSPort: "7890",
		SOCKSPort: "7891",
		Protocols: []types.Protocol{types.ProtocolHTTP},
		Service:   "Wi-Fi",
	}
}

func TestBuildEnableHTTPOnly(t *testing.T) {
	profile := testProfile()

	cmds := BuildEnable(profile)

	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"-setwebproxy", "Wi-Fi", "127.0.0.1", "7890"}, cmds[0].Args)
	assert.Equal(t, []string{"-setwebproxystate", "Wi-Fi", "on"}, cmds[1].Args)
}

func TestBuildEnableWithBypass(t *testing.T) {
	profile := testProfile()
	profile.BypassDomains = "127.0.0.1, localhost , *.local"

	cmds := BuildEnable(profile)

	require.Len(t, cmds, 3)
	assert.Equal(t,
		[]string{"-setproxybypassdomains", "Wi-Fi", "127.0.0.1", "localhost", "*.local"},
		cmds[2].Args)
}

func TestBuildEnableAllProtocols(t *testing.T) {
	profile := testProfile()
	profile.Protocols = types.All()
	profile.BypassDomains = "localhost"

	cmds := BuildEnable(profile)

	require.Len(t, cmds, 7)
	verbs := make([]string, len(cmds))
	for i, cmd := range cmds {
		verbs[i] = cmd.Args[0]
	}
	assert.Equal(t, []string{
		"-setwebproxy", "-setwebproxystate", "-setproxybypassdomains",
		"-setsecurewebproxy", "-setsecurewebproxystate",
		"-setsocksfirewallproxy", "-setsocksfirewallproxystate",
	}, verbs)

	assert.Equal(t, []string{"-setsocksfirewallproxy", "Wi-Fi", "127.0.0.1", "7891"}, cmds[5].Args)
}

func TestBuildEnableSkipsDisabledProtocols(t *testing.T) {
	profile := testProfile()
	profile.Protocols = []types.Protocol{types.ProtocolSOCKS5}
	profile.BypassDomains = "localhost"

	cmds := BuildEnable(profile)

	// The bypass command is tied to HTTP and must not appear here.
	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"-setsocksfirewallproxy", "Wi-Fi", "127.0.0.1", "7891"}, cmds[0].Args)
	assert.Equal(t, []string{"-setsocksfirewallproxystate", "Wi-Fi", "on"}, cmds[1].Args)
}

func TestBuildDisable(t *testing.T) {
	cmds := BuildDisable("Wi-Fi")

	require.Len(t, cmds, 3)
	assert.Equal(t, []string{"-setwebproxystate", "Wi-Fi", "off"}, cmds[0].Args)
	assert.Equal(t, []string{"-setsecurewebproxystate", "Wi-Fi", "off"}, cmds[1].Args)
	assert.Equal(t, []string{"-setsocksfirewallproxystate", "Wi-Fi", "off"}, cmds[2].Args)
}

func TestShellString(t *testing.T) {
	cmd := Command{Args: []string{"-setwebproxystate", "Thunderbolt Bridge", "on"}}

	assert.Equal(t,
		`/usr/sbin/networksetup -setwebproxystate 'Thunderbolt Bridge' on`,
		cmd.ShellString())
}

func TestShellStringSingleQuote(t *testing.T) {
	cmd := Command{Args: []string{"-setwebproxystate", "O'Brien's iPhone", "on"}}

	assert.Equal(t,
		`/usr/sbin/networksetup -setwebproxystate 'O'\''Brien'\''s iPhone' on`,
		cmd.ShellString())
}

func TestJoinShell(t *testing.T) {
	cmds := BuildDisable("Wi-Fi")

	joined := JoinShell(cmds)

	assert.Equal(t,
		"/usr/sbin/networksetup -setwebproxystate Wi-Fi off ; "+
			"/usr/sbin/networksetup -setsecurewebproxystate Wi-Fi off ; "+
			"/usr/sbin/networksetup -setsocksfirewallproxystate Wi-Fi off",
		joined)
}
