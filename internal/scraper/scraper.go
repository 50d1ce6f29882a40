package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pfrederiksen/fencing-results/internal/logger"
)

const (
	UserAgent = "fencing-results/1.0 (github.com/pfrederiksen/fencing-results)"
	Timeout   = 30 * time.Second

	// maxPageBytes caps a single page read; the largest result pages are a
	// few hundred kilobytes.
	maxPageBytes = 16 << 20
)

var (
	// ErrNotFound is returned when the server reports the page missing.
	ErrNotFound = errors.New("page not found")
	// ErrUnreachable covers transport failures and unexpected statuses.
	ErrUnreachable = errors.New("page unreachable")
)

// Scraper fetches result pages
type Scraper struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout bounds each request. The client is copied first, so a shared
// client such as http.DefaultClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			c := *s.client
			c.Timeout = d
			s.client = &c
		}
	}
}

// WithLogger sets the logger used for run reports.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a Scraper. Without options it uses the default logger and a
// private metrics tracker.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: Timeout},
		userAgent: UserAgent,
		log:       logger.Default(),
		metrics:   logger.NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics returns the tracker the scraper records into.
func (s *Scraper) Metrics() *logger.Metrics {
	return s.metrics
}

// Fetch downloads pageURL and returns its body as UTF-8 text.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	s.metrics.IncrCounter("fetch.requests")
	defer func() {
		s.metrics.RecordTiming("fetch.duration", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("%w: fetching %s: %v", ErrUnreachable, pageURL, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		s.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("%w: %s", ErrNotFound, pageURL)
	case resp.StatusCode != http.StatusOK:
		s.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("%w: %s: unexpected status code: %d", ErrUnreachable, pageURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		s.metrics.IncrCounter("fetch.errors")
		return "", fmt.Errorf("%w: reading %s: %v", ErrUnreachable, pageURL, err)
	}
	return decode(data, resp.Header.Get("Content-Type"))
}

// ReadFile loads a saved page from disk, decoding it like a fetched page
// whose charset is only declared in its markup.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("reading page: %w", err)
	}
	return decode(data, "")
}

// decode converts data to UTF-8 from the charset named in contentType, a
// meta tag, or a byte order mark.
func decode(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("detecting charset: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}
	return string(out), nil
}
