package cleanup

import (
	"encoding/json"
	"strings"

	"github.com/jonesrussell/job-importer/internal/domain"
)

// parseStructured decodes the model's reply into a StructuredJobDescription.
// The reply must hold a single JSON object; markdown fences and surrounding
// prose are tolerated and stripped. Missing required fields fail closed
// rather than defaulting.
func parseStructured(reply string) (*domain.StructuredJobDescription, error) {
	payload := extractJSON(reply)
	if payload == "" {
		return nil, domain.NewError(domain.KindCleanupFailed, "cleanup reply contains no JSON object")
	}

	var job domain.StructuredJobDescription
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, domain.WrapError(domain.KindCleanupFailed, "cleanup reply is not valid JSON", err)
	}
	if err := validate(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// extractJSON returns the outermost {...} span of the reply, or an empty
// string when no object is present.
func extractJSON(reply string) string {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return ""
	}
	return reply[start : end+1]
}

func validate(job *domain.StructuredJobDescription) error {
	if strings.TrimSpace(job.Title) == "" {
		return domain.NewError(domain.KindCleanupFailed, "cleanup reply is missing a title")
	}
	if strings.TrimSpace(job.Description) == "" {
		return domain.NewError(domain.KindCleanupFailed, "cleanup reply is missing a description")
	}

	lists := []struct {
		name string
		list []string
	}{
		{"responsibilities", job.Responsibilities},
		{"requirements", job.Requirements},
		{"nice_to_have", job.NiceToHave},
		{"benefits", job.Benefits},
	}
	for _, entry := range lists {
		if entry.list == nil {
			return domain.NewError(domain.KindCleanupFailed, "cleanup reply is missing the "+entry.name+" list")
		}
	}
	return nil
}
