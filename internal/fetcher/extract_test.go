package fetcher

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"og:title wins over title tag and h1",
			`<html><head><title>Page Title</title><meta property="og:title" content="OG Title"></head><body><h1>H1 Title</h1></body></html>`,
			"OG Title",
		},
		{
			"title tag wins over h1",
			`<html><head><title> Page Title </title></head><body><h1>H1 Title</h1></body></html>`,
			"Page Title",
		},
		{
			"h1 fallback",
			`<html><body><h1>H1 Title</h1><p>body</p></body></html>`,
			"H1 Title",
		},
		{
			"nothing to find",
			`<html><body><p>body</p></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractTitle(docFrom(t, tt.html)); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBody_SelectorPriority(t *testing.T) {
	t.Parallel()

	jobText := strings.Repeat("Job container sentence with enough words to matter. ", 5)
	articleText := strings.Repeat("Article container sentence that should lose. ", 5)
	html := `<html><body>
		<article>` + articleText + `</article>
		<div class="job-description">` + jobText + `</div>
	</body></html>`

	got := extractBody(docFrom(t, html))
	if !strings.Contains(got, "Job container sentence") {
		t.Errorf("extractBody() = %q, want job-description content", got)
	}
	if strings.Contains(got, "Article container") {
		t.Errorf("extractBody() picked article over job-description: %q", got)
	}
}

func TestExtractBody_ShortContainerFallsThrough(t *testing.T) {
	t.Parallel()

	mainText := strings.Repeat("Main container sentence with plenty of words in it. ", 5)
	html := `<html><body>
		<div class="job-description">Too short.</div>
		<main>` + mainText + `</main>
	</body></html>`

	got := extractBody(docFrom(t, html))
	if !strings.Contains(got, "Main container sentence") {
		t.Errorf("extractBody() = %q, want main content after short container", got)
	}
}

func TestExtractBody_ParagraphFallback(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<p>First paragraph with enough characters to be kept around.</p>
		<p>short</p>
		<p>Second paragraph that also clears the minimum length easily.</p>
		<p>Third paragraph rounding out the text so the total is long enough.</p>
	</body></html>`

	got := extractBody(docFrom(t, html))
	if strings.Contains(got, "short") {
		t.Errorf("extractBody() kept sub-minimum paragraph: %q", got)
	}
	if strings.Count(got, "\n\n") != 2 {
		t.Errorf("extractBody() = %q, want three paragraphs joined by blank lines", got)
	}
}

func TestExtractBody_BodyTextLastResort(t *testing.T) {
	t.Parallel()

	got := extractBody(docFrom(t, `<html><body>loose text only</body></html>`))
	if got != "loose text only" {
		t.Errorf("extractBody() = %q, want raw body text", got)
	}
}

func TestExtractContent_RemovesChrome(t *testing.T) {
	t.Parallel()

	jobText := strings.Repeat("Real posting content that should survive extraction. ", 5)
	html := `<html><body>
		<script>window.__tracking__ = true;</script>
		<nav>Home | Jobs | Sign in</nav>
		<div class="cookie-banner">We use cookies to improve your experience.</div>
		<div class="job-description">` + jobText + `</div>
		<footer>All rights reserved.</footer>
	</body></html>`

	pageURL, _ := url.Parse("https://jobs.acme.com/senior-engineer")
	content, err := extractContent([]byte(html), pageURL)
	if err != nil {
		t.Fatalf("extractContent: %v", err)
	}

	for _, chrome := range []string{"__tracking__", "Sign in", "cookies", "rights reserved"} {
		if strings.Contains(content.Description, chrome) {
			t.Errorf("Description contains chrome %q: %q", chrome, content.Description)
		}
	}
	if !strings.Contains(content.Description, "Real posting content") {
		t.Errorf("Description lost the posting text: %q", content.Description)
	}
	if content.Company != "acme" {
		t.Errorf("Company = %q, want hostname-derived fallback", content.Company)
	}
}

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		doc := docFrom(t, `<html><body><span class="job-location"> Berlin,  Germany </span></body></html>`)
		if got := extractLocation(doc); got != "Berlin, Germany" {
			t.Errorf("extractLocation() = %q", got)
		}
	})

	t.Run("over-length match ignored", func(t *testing.T) {
		t.Parallel()
		doc := docFrom(t, `<html><body><div class="job-location">`+strings.Repeat("x", 120)+`</div></body></html>`)
		if got := extractLocation(doc); got != "" {
			t.Errorf("extractLocation() = %q, want empty for oversized text", got)
		}
	})
}

func TestCompanyFromHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://jobs.acme.com/senior-engineer", "acme"},
		{"https://www.example.com/careers", "example"},
		{"https://example.com", "example"},
		{"https://localhost:8080/x", "localhost"},
		{"https://93.184.216.34/x", ""},
		{"https://[2001:db8::1]/x", ""},
	}

	for _, tt := range tests {
		u, err := url.Parse(tt.rawURL)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.rawURL, err)
		}
		if got := companyFromHost(u); got != tt.want {
			t.Errorf("companyFromHost(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}

	if got := companyFromHost(nil); got != "" {
		t.Errorf("companyFromHost(nil) = %q, want empty", got)
	}
}

func TestMetaContent_PropertyThenName(t *testing.T) {
	t.Parallel()

	doc := docFrom(t, `<html><head>
		<meta name="og:site_name" content="NameCo">
	</head></html>`)
	if got := metaContent(doc, "og:site_name"); got != "NameCo" {
		t.Errorf("metaContent() = %q, want name-attribute fallback", got)
	}

	doc = docFrom(t, `<html><head>
		<meta property="og:site_name" content="PropCo">
		<meta name="og:site_name" content="NameCo">
	</head></html>`)
	if got := metaContent(doc, "og:site_name"); got != "PropCo" {
		t.Errorf("metaContent() = %q, want property attribute to win", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a  b\t c", "a b c"},
		{"line1  \n   line2", "line1\nline2"},
		{"a\n\n\n\n\nb", "a\n\nb"},
		{"  padded  ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadabilityFallback(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if _, _, ok := readabilityFallback([]byte("  \n "), nil); ok {
			t.Error("readabilityFallback() ok for blank input")
		}
	})

	t.Run("long article", func(t *testing.T) {
		t.Parallel()
		paragraph := "We are hiring a backend engineer to build and operate the services " +
			"behind our data platform, including ingestion, storage, and the APIs " +
			"that product teams depend on every day."
		var b strings.Builder
		b.WriteString(`<html><head><title>Backend Engineer</title></head><body><div id="post">`)
		for i := 0; i < 8; i++ {
			b.WriteString("<p>" + paragraph + "</p>")
		}
		b.WriteString(`</div></body></html>`)

		pageURL, _ := url.Parse("https://example.com/careers/backend")
		_, text, ok := readabilityFallback([]byte(b.String()), pageURL)
		if !ok {
			t.Fatal("readabilityFallback() not ok for article-shaped page")
		}
		if !strings.Contains(text, "backend engineer to build") {
			t.Errorf("text = %q, want article prose", text)
		}
	})
}
