// Package fetcher performs the bounded, SSRF-guarded retrieval of a job
// posting URL and strips the response down to visible text plus best-effort
// title, company, and location.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/job-importer/internal/config"
	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/urlguard"
)

const (
	statusOKMin = 200
	statusOKMax = 299

	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	maxIdleConns        = 10
)

// Fetcher retrieves and extracts a single URL per call. Safe for concurrent
// use.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
	log    logger.Logger
}

// New creates a Fetcher whose transport enforces the guard's policy at both
// ends: the dialer re-checks the address actually connected to, and the
// redirect policy re-validates every hop. No proxy is ever used; a proxy
// would move the dial outside the guard's sight.
func New(cfg config.FetchConfig, guard *urlguard.Guard, log logger.Logger) *Fetcher {
	dialer := &net.Dialer{
		Timeout: dialTimeout,
		Control: guard.DialControl,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		MaxIdleConns:        maxIdleConns,
		ForceAttemptHTTP2:   true,
	}
	client := &http.Client{
		Timeout:       cfg.Timeout,
		Transport:     transport,
		CheckRedirect: guard.RedirectPolicy(cfg.MaxRedirects),
	}
	return &Fetcher{client: client, cfg: cfg, log: log}
}

// Fetch retrieves the already-validated URL and returns its extracted
// content. Transport problems surface as FetchFailed; a redirect or dial
// into a blocked range surfaces as SSRFBlocked.
func (f *Fetcher) Fetch(ctx context.Context, pageURL *url.URL) (*domain.RawContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), http.NoBody)
	if err != nil {
		return nil, domain.WrapError(domain.KindFetchFailed, "create request", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		// Guard verdicts from the redirect policy or dial hook travel
		// inside a url.Error; keep their kind.
		var tagged *domain.Error
		if errors.As(err, &tagged) {
			return nil, domain.WrapError(tagged.Kind, "fetch url", err)
		}
		return nil, domain.WrapError(domain.KindFetchFailed, "fetch url", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < statusOKMin || resp.StatusCode > statusOKMax {
		return nil, domain.NewError(domain.KindFetchFailed,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode))
	}

	mediaType := responseMediaType(resp)
	switch mediaType {
	case "text/html", "application/xhtml+xml", "application/xml", "text/plain", "":
	default:
		return nil, domain.NewError(domain.KindFetchFailed,
			fmt.Sprintf("unsupported content type %q", mediaType))
	}

	body, err := readBounded(resp.Body, f.cfg.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	f.log.Debug("Fetched URL",
		logger.String("url", pageURL.String()),
		logger.Int("bytes", len(body)),
		logger.Duration("duration", time.Since(start)),
	)

	if mediaType == "text/plain" {
		return &domain.RawContent{
			Description: normalizeWhitespace(string(body)),
			SourceURL:   pageURL.String(),
		}, nil
	}

	content, err := extractContent(body, pageURL)
	if err != nil {
		return nil, err
	}
	content.SourceURL = pageURL.String()
	return content, nil
}

// readBounded reads at most maxBytes from r and fails when the body is
// larger.
func readBounded(r io.Reader, maxBytes int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, domain.WrapError(domain.KindFetchFailed, "read response body", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, domain.NewError(domain.KindFetchFailed,
			fmt.Sprintf("response body exceeds %d bytes", maxBytes))
	}
	return body, nil
}

func responseMediaType(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
