// Package domain holds the data model shared across the job-importer
// pipeline: extracted content, classification results, cleaned job
// descriptions, pipeline outcomes, and the error taxonomy.
package domain

// RawContent is the minimally-processed text extracted from a fetched page.
// Everything in it is best-effort except Description and SourceURL.
type RawContent struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
}

// StructuredJobDescription is the schema-validated output of the cleanup
// adapter. It is never constructed by hand outside that adapter.
type StructuredJobDescription struct {
	Title            string   `json:"title"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	NiceToHave       []string `json:"nice_to_have"`
	Benefits         []string `json:"benefits"`
}
