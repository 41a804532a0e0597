package dac

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the root of the 2021 undergraduate catalog.
	DefaultBaseURL = "https://www.dac.unicamp.br/sistemas/catalogos/grad/catalogo2021/"

	// DefaultRequestsPerSecond caps the sustained fetch rate against
	// the catalog host.
	DefaultRequestsPerSecond = 8.0

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	userAgent = "gradsearch (+https://github.com/arara-labs/gradsearch)"
)

// Client fetches and parses catalog pages. A token-bucket limiter
// shared by all requests keeps concurrent page fetches within the
// configured rate.
type Client struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
}

// NewClient creates a catalog client for the given base URL. An empty
// baseURL selects DefaultBaseURL; rps <= 0 selects
// DefaultRequestsPerSecond.
func NewClient(baseURL string, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		base:    strings.TrimSuffix(baseURL, "/") + "/",
		limiter: rate.NewLimiter(rate.Limit(rps), burstFor(rps)),
	}
}

// BaseURL returns the catalog root this client fetches from.
func (c *Client) BaseURL() string {
	return c.base
}

// get fetches one page relative to the catalog root and parses it.
func (c *Client) get(ctx context.Context, page string) (*html.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target := c.base + page
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return doc, nil
}

// burstFor sizes the limiter burst to roughly one second of requests.
func burstFor(rps float64) int {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return burst
}
