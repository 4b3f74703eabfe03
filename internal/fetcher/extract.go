package fetcher

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/job-importer/internal/domain"
)

const (
	// minSelectorTextLength is the least amount of text a content container
	// must yield before it is trusted over the next strategy.
	minSelectorTextLength = 150
	minParagraphLength    = 20
	maxLocationLength     = 100
)

// excludeSelector removes chrome and non-content elements before any text
// is pulled out.
const excludeSelector = "script, style, noscript, iframe, svg, form, " +
	"header, footer, nav, aside, " +
	".header, .footer, .navigation, .sidebar, .menu, .cookie-banner"

// contentSelectors are tried in order; job-board specific containers first,
// generic article containers last.
var contentSelectors = []string{
	".job-description",
	".job-details",
	"#job-description",
	"[class*='jobDescription']",
	".posting",
	"article",
	"main",
	"[role='main']",
	".content",
	"#content",
	".entry-content",
}

// locationSelectors are best-effort only; a miss leaves Location empty.
var locationSelectors = []string{
	".job-location",
	".location",
	"[class*='location']",
	"[data-test='location']",
}

// extractContent parses documentHTML and pulls out title, company,
// location, and body text. Falls back to readability extraction when the
// selector strategies yield negligible text.
func extractContent(documentHTML []byte, pageURL *url.URL) (*domain.RawContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(documentHTML))
	if err != nil {
		return nil, domain.WrapError(domain.KindFetchFailed, "parse html", err)
	}

	doc.Find(excludeSelector).Remove()

	content := &domain.RawContent{
		Title:       extractTitle(doc),
		Company:     extractCompany(doc, pageURL),
		Location:    extractLocation(doc),
		Description: extractBody(doc),
	}

	if len(content.Description) < minSelectorTextLength {
		if title, text, ok := readabilityFallback(documentHTML, pageURL); ok {
			if len(text) > len(content.Description) {
				content.Description = text
			}
			if content.Title == "" {
				content.Title = title
			}
		}
	}

	return content, nil
}

// extractTitle tries og:title, then the title tag, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if og := metaContent(doc, "og:title"); og != "" {
		return og
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractCompany tries og:site_name, then derives a name from the hostname.
func extractCompany(doc *goquery.Document, pageURL *url.URL) string {
	if site := metaContent(doc, "og:site_name"); site != "" {
		return site
	}
	return companyFromHost(pageURL)
}

// companyFromHost turns jobs.acme.com into "acme". Best effort; returns ""
// for bare IPs.
func companyFromHost(pageURL *url.URL) string {
	if pageURL == nil {
		return ""
	}
	host := strings.ToLower(pageURL.Hostname())
	if host == "" || looksLikeIP(host) {
		return ""
	}
	host = strings.TrimPrefix(host, "www.")
	labels := strings.Split(host, ".")
	if len(labels) >= 2 {
		return labels[len(labels)-2]
	}
	return labels[0]
}

var ipLikeRe = regexp.MustCompile(`^[0-9.]+$`)

// looksLikeIP reports bare v4 literals and, via the colon, v6 literals.
// Hostnames never contain colons once url.Hostname strips the port.
func looksLikeIP(host string) bool {
	return strings.Contains(host, ":") || ipLikeRe.MatchString(host)
}

func extractLocation(doc *goquery.Document) string {
	for _, sel := range locationSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" && len(text) <= maxLocationLength {
			return normalizeWhitespace(text)
		}
	}
	return ""
}

// extractBody walks the content selectors, then falls back to joining the
// page's paragraphs, then to the whole body text.
func extractBody(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		text := normalizeWhitespace(container.Text())
		if len(text) > minSelectorTextLength {
			return text
		}
	}

	if text := joinParagraphs(doc); len(text) > minSelectorTextLength {
		return text
	}

	return normalizeWhitespace(doc.Find("body").Text())
}

func joinParagraphs(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) >= minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})
	return normalizeWhitespace(strings.Join(paragraphs, "\n\n"))
}

// metaContent reads a meta tag by property, then by name.
func metaContent(doc *goquery.Document, key string) string {
	if content, ok := doc.Find("meta[property='" + key + "']").First().Attr("content"); ok {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			return trimmed
		}
	}
	if content, ok := doc.Find("meta[name='" + key + "']").First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

var (
	spacesRe   = regexp.MustCompile(`[ \t\r\f]+`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
	linePadRe  = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// normalizeWhitespace collapses runs of spaces and blank lines while
// keeping paragraph breaks.
func normalizeWhitespace(s string) string {
	s = spacesRe.ReplaceAllString(s, " ")
	s = linePadRe.ReplaceAllString(s, "")
	s = newlinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
