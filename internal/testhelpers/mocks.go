// Package testhelpers provides hand-rolled mocks shared by the pipeline and
// API tests. They count calls under a mutex so tests can assert how often a
// dependency was exercised.
package testhelpers

import (
	"context"
	"sync"

	"github.com/jonesrussell/job-importer/internal/domain"
)

// MockCleanupService implements cleanup.Service with configurable results.
type MockCleanupService struct {
	mu sync.Mutex

	// Result and Err configure what Clean returns. Err wins when both are
	// set.
	Result *domain.StructuredJobDescription
	Err    error

	calls  int
	inputs []string
}

func (m *MockCleanupService) Clean(_ context.Context, rawText string) (*domain.StructuredJobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.inputs = append(m.inputs, rawText)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// Calls reports how many times Clean was invoked.
func (m *MockCleanupService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastInput returns the text passed to the most recent Clean call.
func (m *MockCleanupService) LastInput() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.inputs) == 0 {
		return ""
	}
	return m.inputs[len(m.inputs)-1]
}

// MockPipeline implements the API handler's pipeline dependency.
type MockPipeline struct {
	mu sync.Mutex

	Outcome *domain.Outcome
	Err     error

	calls      int
	urls       []string
	cleanFlags []bool
}

func (m *MockPipeline) Run(_ context.Context, rawURL string, clean bool) (*domain.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.urls = append(m.urls, rawURL)
	m.cleanFlags = append(m.cleanFlags, clean)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Outcome, nil
}

// Calls reports how many times Run was invoked.
func (m *MockPipeline) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastURL returns the URL passed to the most recent Run call.
func (m *MockPipeline) LastURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.urls) == 0 {
		return ""
	}
	return m.urls[len(m.urls)-1]
}

// LastClean returns the clean flag passed to the most recent Run call.
func (m *MockPipeline) LastClean() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.cleanFlags) == 0 {
		return false
	}
	return m.cleanFlags[len(m.cleanFlags)-1]
}

// SampleStructuredJob returns a small valid structured description for
// wiring through mocks.
func SampleStructuredJob() *domain.StructuredJobDescription {
	return &domain.StructuredJobDescription{
		Title:            "Senior Software Engineer",
		Company:          "Acme",
		Location:         "Toronto, ON",
		EmploymentType:   "full-time",
		Salary:           "$140,000 - $170,000",
		Description:      "Build and operate the platform services behind our customer-facing products, working with product managers and designers across the company to ship reliable software on a modern cloud stack.",
		Responsibilities: []string{"Design APIs", "Mentor engineers"},
		Requirements:     []string{"5+ years with Go"},
		NiceToHave:       []string{},
		Benefits:         []string{"Extended health"},
	}
}
