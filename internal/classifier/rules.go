package classifier

import (
	"regexp"
	"sort"
	"strings"
)

// Signal weights. Each signal fires at most once per classification and the
// weights are additive; banding happens against the configured thresholds.
const (
	tooShortWeight            = 30
	knownATSDomainWeight      = 20
	templateMarkerWeight      = 25
	heavyTemplateMarkerWeight = 40
	unrenderedJSWeight        = 25
	lowWordRatioWeight        = 20
	headerTemplateWeight      = 30
)

const (
	// heavyMarkerCount is the marker count above which the template-marker
	// signal upgrades from templateMarkerWeight to heavyTemplateMarkerWeight.
	heavyMarkerCount = 10

	// minMarkerCount and markerDensityFloor gate the template-marker signal:
	// a handful of stray braces in otherwise clean prose does not fire it.
	minMarkerCount     = 3
	markerDensityFloor = 0.02

	// minPlainWordRatio is the fraction of whitespace tokens that must look
	// like plain words before text passes the natural-language check.
	minPlainWordRatio = 0.30

	headerScanLength  = 200
	maxSnippetLength  = 40
	maxSnippetReasons = 2
)

// Human-readable reasons attached to classification results. These strings
// are returned to API callers, so they stay stable.
const (
	ReasonTooShort        = "Content is too short to be a valid job description"
	ReasonKnownATSDomain  = "URL is from a known JavaScript-heavy job site"
	ReasonTemplateMarkers = "Content contains unrendered template syntax"
	ReasonUnrenderedJS    = "Content contains unrendered JavaScript code"
	ReasonLowWordRatio    = "Content does not look like natural language text"
	ReasonHeaderTemplate  = "Template syntax appears at the start of the content"
)

// markerRule names one family of template or framework syntax that should
// never survive server-side rendering.
type markerRule struct {
	name    string
	pattern *regexp.Regexp
}

// markerRules are the template-syntax families counted by the marker signal
// and probed by the header check. Every rule is evaluated on each call.
var markerRules = []markerRule{
	{"handlebars", regexp.MustCompile(`\{\{[^{}]{1,200}\}\}`)},
	{"jinja block", regexp.MustCompile(`\{%[^%]{1,200}%\}`)},
	{"erb tag", regexp.MustCompile(`<%[=\-]?[^%]{0,200}%>`)},
	{"angular attribute", regexp.MustCompile(`\bng-(?:app|bind|class|click|controller|hide|if|include|init|model|repeat|show|src|style|submit)\b`)},
	{"angular structural", regexp.MustCompile(`\*ng(?:If|For|Switch|SwitchCase|Class|Style|TemplateOutlet)\b`)},
	{"vue directive", regexp.MustCompile(`\bv-(?:bind|cloak|else|else-if|for|html|if|model|on|once|pre|show|text)\b`)},
	{"jsx member expression", regexp.MustCompile(`\{\s*(?:this\.)?[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)+\s*\}`)},
	{"jsx call expression", regexp.MustCompile(`\{\s*[A-Za-z_$][\w$]*\([^(){}]*\)\s*\}`)},
	{"js template literal", regexp.MustCompile(`\$\{[^{}]{1,200}\}`)},
	{"bracket placeholder", regexp.MustCompile(`\[[A-Z][A-Z0-9_]{2,24}\]`)},
}

// jsPhrases are literal strings that betray an unrendered single-page app:
// loader boilerplate and bundler artifacts. Matched case-insensitively with
// one Aho-Corasick pass over the text.
var jsPhrases = []string{
	"loading...",
	"please wait",
	"please enable javascript",
	"javascript is required",
	"javascript is disabled",
	"you need to enable javascript",
	"loading job data",
	"__webpack_require__",
	"webpackjsonp",
	"window.__initial_state__",
	"document.getelementbyid(",
	"react.createelement(",
	"vue.component(",
	"new vue(",
}

// jsPatterns catch raw JavaScript source that leaked into extracted text:
// function literals, ES module syntax, and component class declarations.
var jsPatterns = []markerRule{
	{"function literal", regexp.MustCompile(`\bfunction\s*\([^)]{0,80}\)\s*\{`)},
	{"module import", regexp.MustCompile(`\bimport\s+(?:[\w{}*,\s]{1,80}\s+from\s+)?["'][^"']{1,120}["']`)},
	{"module export", regexp.MustCompile(`\bexport\s+(?:default|const|function|class|var|let)\b`)},
	{"component declaration", regexp.MustCompile(`\bclass\s+[A-Z]\w*\s+extends\s+(?:React\.)?(?:Pure)?Component\b`)},
}

var plainWordPattern = regexp.MustCompile(`^[A-Za-z]{2,20}$`)

// markerScan aggregates template-marker matches across all rules. Count and
// matched length are computed over non-overlapping spans so that nested
// syntax ({{job.title}} is both handlebars and a JSX-like expression) is
// counted once.
type markerScan struct {
	count      int
	matchedLen int
	snippets   []string
}

func (m markerScan) density(textLen int) float64 {
	if textLen == 0 {
		return 0
	}
	return float64(m.matchedLen) / float64(textLen)
}

func scanTemplateMarkers(text string) markerScan {
	var spans [][]int
	for _, rule := range markerRules {
		spans = append(spans, rule.pattern.FindAllStringIndex(text, -1)...)
	}
	if len(spans) == 0 {
		return markerScan{}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] > spans[j][1]
	})

	var scan markerScan
	prevEnd := -1
	for _, span := range spans {
		if span[0] < prevEnd {
			continue
		}
		scan.count++
		scan.matchedLen += span[1] - span[0]
		if len(scan.snippets) < maxSnippetReasons {
			scan.snippets = append(scan.snippets, snippet(text[span[0]:span[1]]))
		}
		prevEnd = span[1]
	}
	return scan
}

// snippet collapses internal whitespace and caps the match at
// maxSnippetLength so reasons stay readable in API responses.
func snippet(match string) string {
	match = strings.Join(strings.Fields(match), " ")
	if len(match) > maxSnippetLength {
		match = match[:maxSnippetLength-3] + "..."
	}
	return match
}

func hasTemplateSyntax(text string) bool {
	for _, rule := range markerRules {
		if rule.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// plainWordRatio reports the fraction of whitespace-separated tokens that
// are plain words (letters only, 2 to 20 characters, trailing punctuation
// ignored). The second return is false when the text has no tokens at all.
func plainWordRatio(text string) (float64, bool) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0, false
	}
	plain := 0
	for _, token := range tokens {
		token = strings.TrimRight(token, ".,;:!?")
		if plainWordPattern.MatchString(token) {
			plain++
		}
	}
	return float64(plain) / float64(len(tokens)), true
}
