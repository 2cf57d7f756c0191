// Package download implements the host-bounded HTTP fetcher shared by
// channel and entry workers. It wraps a fresh colly.Collector per
// request (the teacher's pkg/fetcher/static.go idiom) behind a typed
// error classification and a per-host concurrency gate.
package download

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/notapresent/glommer/internal/logger"
)

// DefaultUserAgent matches the original project's fixed header; the
// module is named after it.
const DefaultUserAgent = "Mozilla/5.0 Gecko/20100101 glommer/1.0"

// Config tunes the shared downloader. Zero-value UserAgent, Timeout and
// PerHostLimit fall back to defaults in New; InsecureSkipVerify is used
// as given.
type Config struct {
	UserAgent          string
	Timeout            time.Duration // per-request total timeout
	PerHostLimit       int           // max concurrent in-flight requests per host
	InsecureSkipVerify bool          // compatibility with legacy feeds (spec default: true)
}

// DefaultConfig returns the spec's documented tunable defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:          DefaultUserAgent,
		Timeout:            6 * time.Second,
		PerHostLimit:       2,
		InsecureSkipVerify: true,
	}
}

// Downloader fetches URLs with a shared host-concurrency gate. It is
// safe for concurrent use by multiple workers.
type Downloader struct {
	cfg       Config
	transport *http.Transport
	gate      *hostGate
}

// New builds a Downloader. cfg's zero-value UserAgent, Timeout and
// PerHostLimit are replaced with DefaultConfig()'s values.
func New(cfg Config) *Downloader {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.PerHostLimit == 0 {
		cfg.PerHostLimit = def.PerHostLimit
	}

	resolver := &net.Resolver{PreferGo: true}
	dialer := &net.Dialer{Resolver: resolver, Timeout: cfg.Timeout}

	transport := &http.Transport{
		DialContext:     dialer.DialContext,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}, //nolint:gosec // spec: compatibility with legacy feeds
	}

	return &Downloader{
		cfg:       cfg,
		transport: transport,
		gate:      newHostGate(cfg.PerHostLimit),
	}
}

// Get fetches url and returns its final URL (after redirects) and
// decoded body, or a typed *Error. It blocks (a scheduler suspension
// point) until a slot for url's host is available, and aborts cleanly
// if ctx is cancelled — no lingering sockets survive past a cancelled
// context because the request is tied to ctx via VisitWithContext.
func (d *Downloader) Get(ctx context.Context, target string) (finalURL, body string, err error) {
	host, herr := hostOf(target)
	if herr != nil {
		return "", "", &Error{Kind: Transport, URL: target, Err: herr}
	}

	release, gateErr := d.gate.acquire(ctx, host)
	if gateErr != nil {
		return "", "", &Error{Kind: Timeout, URL: target, Err: gateErr}
	}
	defer release()

	reqCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	c := colly.NewCollector(
		colly.UserAgent(d.cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	c.WithTransport(d.transport)

	var (
		status   int
		respURL  *url.URL
		respBody string
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		respURL = r.Request.URL
		respBody = decodeLenient(r.Body)
	})

	c.OnError(func(r *colly.Response, e error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = e
	})

	visitErr := c.VisitWithContext(reqCtx, target)

	switch {
	case fetchErr != nil:
		return "", "", classify(target, status, fetchErr)
	case visitErr != nil:
		return "", "", classify(target, status, visitErr)
	case status < 200 || status >= 300:
		return "", "", &Error{Kind: HTTP, StatusCode: status, URL: target}
	}

	if respURL != nil {
		finalURL = respURL.String()
	} else {
		finalURL = target
	}

	logger.Debug("download complete", "url", target, "final_url", finalURL, "bytes", len(respBody))
	return finalURL, respBody, nil
}

func classify(target string, status int, err error) *Error {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: Timeout, URL: target, Err: err}
	case errors.As(err, &dnsErr):
		return &Error{Kind: DNS, URL: target, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: Timeout, URL: target, Err: err}
	case status != 0 && (status < 200 || status >= 300):
		return &Error{Kind: HTTP, StatusCode: status, URL: target, Err: err}
	default:
		return &Error{Kind: Transport, URL: target, Err: err}
	}
}

func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

// decodeLenient replaces invalid bytes rather than failing the fetch,
// mirroring Python's text(errors='ignore') the source relied on.
func decodeLenient(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
