// Package urlguard validates user-supplied URLs before anything fetches
// them. It rejects non-http(s) schemes and any hostname that resolves to a
// private, loopback, link-local, multicast, or otherwise reserved address,
// and supplies the redirect and dial hooks that keep those checks applied on
// every hop of a request.
package urlguard

import (
	"context"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"syscall"

	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
)

// Resolver matches the part of net.Resolver the guard needs. Substituted in
// tests.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Guard validates URLs and network addresses against the blocked-range
// tables.
type Guard struct {
	resolver Resolver
	log      logger.Logger
}

// New creates a Guard using the default system resolver.
func New(log logger.Logger) *Guard {
	return &Guard{resolver: net.DefaultResolver, log: log}
}

// NewWithResolver creates a Guard with a custom resolver.
func NewWithResolver(resolver Resolver, log logger.Logger) *Guard {
	return &Guard{resolver: resolver, log: log}
}

// Validate parses rawURL and checks that it is an absolute http(s) URL whose
// host does not resolve to a disallowed address. The only network I/O is DNS
// resolution. Returns the parsed URL on success; on failure the error kind
// is InvalidURL, SSRFBlocked, or FetchFailed (resolution failure).
func (g *Guard) Validate(ctx context.Context, rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, domain.NewError(domain.KindInvalidURL, "url is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidURL, "url does not parse", err)
	}
	if !parsed.IsAbs() {
		return nil, domain.NewError(domain.KindInvalidURL, "url is not absolute")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, domain.NewError(domain.KindInvalidURL, "scheme must be http or https")
	}
	if parsed.Hostname() == "" {
		return nil, domain.NewError(domain.KindInvalidURL, "url has no host")
	}

	if err := g.CheckHost(ctx, parsed.Hostname()); err != nil {
		if domain.IsKind(err, domain.KindSSRFBlocked) {
			// Host only. Echoing the full URL would turn logs into an
			// SSRF oracle.
			g.log.Warn("Blocked URL target",
				logger.String("host", parsed.Hostname()),
			)
		}
		return nil, err
	}

	return parsed, nil
}

// CheckHost resolves host (or parses it as a literal IP) and returns
// SSRFBlocked if any address is disallowed. Resolution failures are
// FetchFailed: the host is unreachable either way, but it is a transport
// problem, not a policy one.
func (g *Guard) CheckHost(ctx context.Context, host string) error {
	if addr, err := netip.ParseAddr(host); err == nil {
		if blockedReason(addr) != "" {
			return domain.NewError(domain.KindSSRFBlocked, "address is not allowed")
		}
		return nil
	}

	ipAddrs, err := g.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return domain.WrapError(domain.KindFetchFailed, "resolve host", err)
	}
	if len(ipAddrs) == 0 {
		return domain.NewError(domain.KindFetchFailed, "host has no addresses")
	}

	// One bad address poisons the whole set: a resolver that returns a mix
	// of public and internal addresses must not be fetched.
	for _, ipAddr := range ipAddrs {
		addr, ok := netip.AddrFromSlice(ipAddr.IP)
		if !ok {
			return domain.NewError(domain.KindSSRFBlocked, "address is not allowed")
		}
		if blockedReason(addr) != "" {
			return domain.NewError(domain.KindSSRFBlocked, "address is not allowed")
		}
	}
	return nil
}

// DialControl is a net.Dialer.Control hook that re-checks the address
// actually being dialed. It closes the window between DNS validation and
// connection (DNS rebinding).
func (g *Guard) DialControl(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return domain.WrapError(domain.KindSSRFBlocked, "dial address does not parse", err)
	}
	if blockedReason(addrPort.Addr()) != "" {
		return domain.NewError(domain.KindSSRFBlocked, "address is not allowed")
	}
	return nil
}

// RedactURL reduces a URL to scheme and host for logging. Path, query, and
// credentials are dropped.
func RedactURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "(unparseable)"
	}
	return parsed.Scheme + "://" + parsed.Hostname()
}
