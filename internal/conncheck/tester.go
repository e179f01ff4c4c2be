package conncheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

// DefaultTestURL returns 204 with no body, making it a cheap reachability
// probe.
const DefaultTestURL = "http://www.gstatic.com/generate_204"

// Result holds the outcome of a single connectivity test.
type Result struct {
	Protocol   types.Protocol
	ProxyURL   string
	StatusCode int
	Latency    time.Duration
	Err        error
}

// Summary renders the result as a one-line status string.
func (r Result) Summary() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Protocol.Label(), r.Err)
	}
	return fmt.Sprintf("%s: HTTP %d in %d ms", r.Protocol.Label(), r.StatusCode, r.Latency.Milliseconds())
}

// TesterConfig holds configuration for the Tester.
type TesterConfig struct {
	Workers int64
	Timeout time.Duration
	TestURL string
}

// Tester issues outbound requests through the configured proxy.
type Tester struct {
	config TesterConfig
}

// NewTester creates a new Tester.
func NewTester(cfg TesterConfig) *Tester {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TestURL == "" {
		cfg.TestURL = DefaultTestURL
	}
	return &Tester{config: cfg}
}

// ProxyURL derives the proxy URL from the first enabled protocol, HTTP
// preferred over SOCKS5.
func ProxyURL(profile *models.Profile) (*url.URL, types.Protocol, error) {
	for _, proto := range types.All() {
		if profile.HasProtocol(proto) {
			return protoURL(profile, proto), proto, nil
		}
	}
	return nil, "", apperrors.ErrNoProxyURL
}

func protoURL(profile *models.Profile, proto types.Protocol) *url.URL {
	scheme := "http"
	if proto == types.ProtocolSOCKS5 {
		scheme = "socks5"
	}
	return &url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%s", profile.Host, profile.PortFor(proto)),
	}
}

// TestProfile runs a single request through the profile's preferred proxy.
func (t *Tester) TestProfile(ctx context.Context, profile *models.Profile) Result {
	proxyURL, proto, err := ProxyURL(profile)
	if err != nil {
		return Result{Err: err}
	}
	return t.testVia(ctx, proto, proxyURL)
}

// TestAll tests every enabled protocol concurrently under a semaphore
// worker cap and returns results in protocol order.
func (t *Tester) TestAll(ctx context.Context, profile *models.Profile) []Result {
	var enabled []types.Protocol
	for _, proto := range types.All() {
		if profile.HasProtocol(proto) {
			enabled = append(enabled, proto)
		}
	}

	results := make([]Result, len(enabled))
	sem := semaphore.NewWeighted(t.config.Workers)
	var wg sync.WaitGroup

	for i, proto := range enabled {
		wg.Add(1)
		go func(idx int, proto types.Protocol) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = Result{Protocol: proto, Err: err}
				return
			}
			defer sem.Release(1)

			results[idx] = t.testVia(ctx, proto, protoURL(profile, proto))
		}(i, proto)
	}

	wg.Wait()
	return results
}

func (t *Tester) testVia(ctx context.Context, proto types.Protocol, proxyURL *url.URL) Result {
	result := Result{Protocol: proto, ProxyURL: proxyURL.String()}

	transport := &http.Transport{
		Proxy:             http.ProxyURL(proxyURL),
		DisableKeepAlives: true,
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   t.config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.config.TestURL, nil)
	if err != nil {
		result.Err = err
		return result
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		// Transport errors are surfaced verbatim in the status string.
		result.Err = err
		return result
	}
	resp.Body.Close()

	result.Latency = time.Since(start)
	result.StatusCode = resp.StatusCode
	return result
}
