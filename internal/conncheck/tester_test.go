package conncheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

func TestProxyURLPrefersHTTP(t *testing.T) {
	profile := models.Default()
	profile.Protocols = []types.Protocol{types.ProtocolHTTP, types.ProtocolSOCKS5}

	proxyURL, proto, err := ProxyURL(profile)
	require.NoError(t, err)
	assert.Equal(t, types.ProtocolHTTP, proto)
	assert.Equal(t, "http://127.0.0.1:7890", proxyURL.String())
}

func TestProxyURLSOCKSOnly(t *testing.T) {
	profile := models.Default()
	profile.Protocols = []types.Protocol{types.ProtocolSOCKS5}

	proxyURL, proto, err := ProxyURL(profile)
	require.NoError(t, err)
	assert.Equal(t, types.ProtocolSOCKS5, proto)
	assert.Equal(t, "socks5://127.0.0.1:7891", proxyURL.String())
}

func TestProxyURLNoProtocols(t *testing.T) {
	profile := models.Default()
	profile.Protocols = nil

	_, _, err := ProxyURL(profile)
	assert.ErrorIs(t, err, apperrors.ErrNoProxyURL)
}

func TestNewTesterDefaults(t *testing.T) {
	tester := NewTester(TesterConfig{})

	assert.Equal(t, int64(3), tester.config.Workers)
	assert.Equal(t, 10*time.Second, tester.config.Timeout)
	assert.Equal(t, DefaultTestURL, tester.config.TestURL)
}

// fakeProxy answers any proxied request with 204, recording the request URI.
func fakeProxy(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var lastURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastURI = r.RequestURI
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastURI
}

func TestTestProfile(t *testing.T) {
	srv, lastURI := fakeProxy(t)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	profile := models.Default()
	profile.Host = u.Hostname()
	profile.HTTPPort = u.Port()

	tester := NewTester(TesterConfig{Timeout: 5 * time.Second})
	result := tester.TestProfile(context.Background(), profile)

	require.NoError(t, result.Err)
	assert.Equal(t, types.ProtocolHTTP, result.Protocol)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	assert.Equal(t, DefaultTestURL, *lastURI)
	assert.Greater(t, result.Latency, time.Duration(0))
}

func TestTestProfileUnreachable(t *testing.T) {
	profile := models.Default()
	profile.HTTPPort = "1" // nothing listens here

	tester := NewTester(TesterConfig{Timeout: time.Second})
	result := tester.TestProfile(context.Background(), profile)

	assert.Error(t, result.Err)
	assert.Contains(t, result.Summary(), "HTTP:")
}

func TestTestAll(t *testing.T) {
	srv, _ := fakeProxy(t)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	profile := models.Default()
	profile.Host = u.Hostname()
	profile.HTTPPort = u.Port()
	profile.HTTPSPort = u.Port()
	profile.Protocols = []types.Protocol{types.ProtocolHTTP, types.ProtocolHTTPS}

	tester := NewTester(TesterConfig{Timeout: 5 * time.Second})
	results := tester.TestAll(context.Background(), profile)

	require.Len(t, results, 2)
	assert.Equal(t, types.ProtocolHTTP, results[0].Protocol)
	assert.Equal(t, types.ProtocolHTTPS, results[1].Protocol)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, http.StatusNoContent, r.StatusCode)
	}
}

func TestResultSummary(t *testing.T) {
	r := Result{Protocol: types.ProtocolHTTP, StatusCode: 204, Latency: 1500 * time.Millisecond}
	assert.Equal(t, "HTTP: HTTP 204 in 1500 ms", r.Summary())
}
