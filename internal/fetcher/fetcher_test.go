package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/job-importer/internal/config"
	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/urlguard"
)

const jobPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Senior Software Engineer - Acme</title>
  <meta property="og:title" content="Senior Software Engineer">
  <meta property="og:site_name" content="Acme Careers">
</head>
<body>
  <nav>Home | Jobs | About</nav>
  <div class="job-location">Toronto, ON (Remote)</div>
  <div class="job-description">
    <p>We are looking for a Senior Software Engineer to join our platform
    team. You will design and operate the services behind our ingestion
    pipeline and mentor other engineers on the team.</p>
    <p>Requirements: 5+ years building production services, strong Go or
    similar systems language, experience running PostgreSQL in production.</p>
  </div>
  <footer>All rights reserved.</footer>
</body>
</html>`

// testFetcher builds a Fetcher around a plain HTTP client. The production
// transport's dial hook refuses loopback addresses, which is exactly where
// httptest servers live, so these tests bypass New and exercise Fetch
// directly. Guard enforcement at the transport has its own tests in
// urlguard.
func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	return &Fetcher{
		client: &http.Client{Timeout: 5 * time.Second},
		cfg: config.FetchConfig{
			Timeout:      5 * time.Second,
			MaxBodyBytes: 1 << 20,
			MaxRedirects: 5,
			UserAgent:    "test-agent/1.0",
		},
		log: logger.NewNop(),
	}
}

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	return u
}

func TestFetch_ExtractsJobPage(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent/1.0" {
			t.Errorf("User-Agent = %q, want configured agent", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(jobPageHTML))
	}))
	defer ts.Close()

	content, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if content.Title != "Senior Software Engineer" {
		t.Errorf("Title = %q, want og:title value", content.Title)
	}
	if content.Company != "Acme Careers" {
		t.Errorf("Company = %q, want og:site_name value", content.Company)
	}
	if content.Location != "Toronto, ON (Remote)" {
		t.Errorf("Location = %q", content.Location)
	}
	if !strings.Contains(content.Description, "Senior Software Engineer to join") {
		t.Errorf("Description missing body text: %q", content.Description)
	}
	if strings.Contains(content.Description, "All rights reserved") {
		t.Errorf("Description contains footer chrome: %q", content.Description)
	}
	if content.SourceURL != ts.URL {
		t.Errorf("SourceURL = %q, want %q", content.SourceURL, ts.URL)
	}
}

func TestFetch_PlainTextPassthrough(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Senior   Engineer\n\n\n\nRemote role.\n"))
	}))
	defer ts.Close()

	content, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if content.Description != "Senior Engineer\n\nRemote role." {
		t.Errorf("Description = %q, want normalized plain text", content.Description)
	}
	if content.Title != "" {
		t.Errorf("Title = %q, want empty for plain text", content.Title)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusMovedPermanently, http.StatusInternalServerError} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
		ts.Close()

		if !domain.IsKind(err, domain.KindFetchFailed) {
			t.Errorf("status %d: kind = %v, want fetch_failed", status, domain.KindOf(err))
		}
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.Repeat("a", 2048)))
	}))
	defer ts.Close()

	f := testFetcher(t)
	f.cfg.MaxBodyBytes = 1024

	_, err := f.Fetch(context.Background(), mustParse(t, ts.URL))
	if !domain.IsKind(err, domain.KindFetchFailed) {
		t.Fatalf("kind = %v, want fetch_failed", domain.KindOf(err))
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("error = %q, want body-size message", err)
	}
}

func TestFetch_UnsupportedContentType(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer ts.Close()

	_, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
	if !domain.IsKind(err, domain.KindFetchFailed) {
		t.Fatalf("kind = %v, want fetch_failed", domain.KindOf(err))
	}
	if !strings.Contains(err.Error(), "unsupported content type") {
		t.Errorf("error = %q, want content-type message", err)
	}
}

func TestFetch_MissingContentTypeTreatedAsHTML(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Suppress sniffing so the response carries no Content-Type at all.
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(jobPageHTML))
	}))
	defer ts.Close()

	content, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if content.Title != "Senior Software Engineer" {
		t.Errorf("Title = %q, want extraction to run without a content type", content.Title)
	}
}

func TestFetch_TransportErrorIsFetchFailed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // connection refused from here on

	_, err := testFetcher(t).Fetch(context.Background(), mustParse(t, ts.URL))
	if !domain.IsKind(err, domain.KindFetchFailed) {
		t.Fatalf("kind = %v, want fetch_failed", domain.KindOf(err))
	}
}

func TestNew_WiresGuardedTransport(t *testing.T) {
	t.Parallel()

	guard := urlguard.New(logger.NewNop())
	f := New(config.FetchConfig{
		Timeout:      10 * time.Second,
		MaxBodyBytes: 1 << 20,
		MaxRedirects: 3,
		UserAgent:    "test-agent/1.0",
	}, guard, logger.NewNop())

	if f.client.CheckRedirect == nil {
		t.Error("client.CheckRedirect not set; redirect hops would go unvalidated")
	}
	if f.client.Timeout != 10*time.Second {
		t.Errorf("client.Timeout = %v, want configured fetch timeout", f.client.Timeout)
	}

	transport, ok := f.client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("transport type = %T, want *http.Transport", f.client.Transport)
	}
	if transport.Proxy != nil {
		t.Error("transport uses a proxy; dials must stay under guard control")
	}
}
