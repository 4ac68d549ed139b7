// Package fetch provides the HTTP page fetcher used by board discovery.
// The contract is deliberately narrow: given a URL and a timeout, return
// a parsed HTML document or a distinguishable error. Non-HTML responses
// and HTTP error statuses are failures, never silent partial successes.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/unilab-kr/boardmap/internal/logger"
)

var (
	// ErrNotHTML is returned when the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")
	// ErrHTTPStatus is returned when the server answers with an error status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// DefaultUserAgent mimics a desktop browser. University sites are known
// to reject unidentified clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Transport tuning for the shared client.
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 4
	defaultIdleConnTimeout     = 90 * time.Second
)

// perHostInterval spaces requests to the same host when departments are
// processed in parallel.
const perHostInterval = 500 * time.Millisecond

// Fetcher fetches and parses HTML pages with per-host rate limiting.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    logger.Interface

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Fetcher. An empty userAgent falls back to DefaultUserAgent.
func New(userAgent string, log logger.Interface) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		userAgent: userAgent,
		logger:    log.WithComponent("fetch"),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves the page at target and parses it. The timeout bounds
// the whole request including the rate-limiter wait.
func (f *Fetcher) Fetch(ctx context.Context, target string, timeout time.Duration) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse URL %q: %w", target, err)
	}

	if err := f.limiter(u.Host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait for %s: %w", u.Host, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", target, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s returned %d", ErrHTTPStatus, target, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("%w: %s served %s", ErrNotHTML, target, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	f.logger.Debug("page fetched",
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return doc, nil
}

// limiter returns the rate limiter for a host, creating it on first use.
func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(perHostInterval), 1)
		f.limiters[host] = l
	}
	return l
}
