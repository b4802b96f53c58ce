package httpclient

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Safari/605.1.15",
}

// Options configures the outbound HTTP client.
type Options struct {
	// MinDelay is the minimum spacing between two requests to the same host.
	// Zero disables pacing.
	MinDelay time.Duration
	Timeout  time.Duration
}

// Client wraps http.Client with browser-like headers and per-host pacing.
// It never retries: callers decide what a failed request means.
type Client struct {
	inner    *http.Client
	minDelay time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}
	return &Client{
		inner:    &http.Client{Transport: transport, Timeout: opts.Timeout},
		minDelay: opts.MinDelay,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Do executes the request after setting default headers and waiting for the
// host's pacing slot. Headers already present on req are kept.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)

	if err := c.limiter(PacingKey(req.URL.Host)).Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("httpclient: waiting for %s: %w", req.URL.Host, err)
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) limiter(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[host]
	if !ok {
		limit := rate.Inf
		if c.minDelay > 0 {
			limit = rate.Every(c.minDelay)
		}
		l = rate.NewLimiter(limit, 1)
		c.limiters[host] = l
	}
	return l
}

// PacingKey groups hosts by registrable domain, so in.linkedin.com and
// www.linkedin.com share one limiter. IPs and localhost keep host:port.
func PacingKey(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return hostport
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return hostport
	}
	return domain
}

func (c *Client) setHeaders(req *http.Request) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
}
