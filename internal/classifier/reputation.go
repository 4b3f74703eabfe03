package classifier

import (
	"net/url"
	"strings"
)

// DomainChecker matches URLs against a list of hostname fragments for job
// sites that render postings client-side (Workday, Taleo, iCIMS and the
// like). Matching is by substring on the lowercased hostname, so an entry
// such as "workday" covers every regional Workday subdomain.
type DomainChecker struct {
	sites []string
}

func NewDomainChecker(domains []string) *DomainChecker {
	sites := make([]string, 0, len(domains))
	for _, site := range domains {
		site = strings.ToLower(strings.TrimSpace(site))
		if site != "" {
			sites = append(sites, site)
		}
	}
	return &DomainChecker{sites: sites}
}

// IsProblematicDomain reports whether rawURL points at a known
// JavaScript-heavy job site. Unparseable or hostless input is not
// problematic; it simply never matches.
func (d *DomainChecker) IsProblematicDomain(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	for _, site := range d.sites {
		if strings.Contains(host, site) {
			return true
		}
	}
	return false
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
