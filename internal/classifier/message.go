package classifier

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/job-importer/internal/domain"
)

// GarbageContentErrorMessage builds the user-facing explanation for a
// rejected import: which site failed and how to paste the posting manually.
// It returns an empty string when the result is not garbage.
func GarbageContentErrorMessage(result domain.ClassificationResult, rawURL string) string {
	if !result.IsGarbage {
		return ""
	}

	host := hostOf(rawURL)
	if host == "" {
		host = "the source site"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The job posting at %s couldn't be automatically extracted. ", host)
	b.WriteString("The page most likely renders its content with JavaScript, which this importer cannot execute.\n")
	b.WriteString("\n")
	b.WriteString("To import this job manually:\n")
	b.WriteString("1. Open the posting in your browser\n")
	b.WriteString("2. Copy the full job description text\n")
	b.WriteString("3. Paste it into the manual entry form")
	return b.String()
}
