package urlguard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
)

// ErrTooManyRedirects is returned when the redirect hop limit is exceeded.
var ErrTooManyRedirects = errors.New("too many redirects")

// RedirectPolicy returns a CheckRedirect function that caps the redirect
// chain at maxRedirects and re-validates every hop target before it is
// followed: scheme check plus full host resolution and range check. Use
// with http.Client.CheckRedirect.
func (g *Guard) RedirectPolicy(maxRedirects int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return domain.WrapError(domain.KindFetchFailed,
				fmt.Sprintf("stopped after %d redirects", maxRedirects),
				ErrTooManyRedirects)
		}

		if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
			g.log.Warn("Blocked redirect to disallowed scheme",
				logger.String("scheme", req.URL.Scheme),
			)
			return domain.NewError(domain.KindSSRFBlocked, "redirect to disallowed scheme")
		}

		if err := g.CheckHost(req.Context(), req.URL.Hostname()); err != nil {
			if domain.IsKind(err, domain.KindSSRFBlocked) {
				g.log.Warn("Blocked redirect target",
					logger.String("host", req.URL.Hostname()),
					logger.Int("hop", len(via)),
				)
			}
			return err
		}
		return nil
	}
}
