// Package cleanup turns raw extracted job text into a structured description
// by prompting a language model and strictly validating its JSON reply.
// Every failure, transport or schema, collapses into a single cleanup_failed
// error so the pipeline can degrade to the raw content.
package cleanup

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
)

// Service cleans raw job text into a structured description.
type Service interface {
	Clean(ctx context.Context, rawText string) (*domain.StructuredJobDescription, error)
}

// Config carries the cleanup adapter settings.
type Config struct {
	APIKey string
	Model  string

	// Timeout bounds one Clean call end to end, including retries inside
	// the SDK.
	Timeout time.Duration

	// MaxInputChars caps the text sent to the model. Longer input is
	// truncated, not rejected.
	MaxInputChars int

	// MaxTokens caps the model's reply.
	MaxTokens int64
}

const systemPrompt = `You turn scraped job posting text into structured JSON.
Respond with ONLY a single JSON object, no markdown fences and no commentary, using exactly these keys:
{
  "title": "the job title",
  "company": "company name, or empty string",
  "location": "location, or empty string",
  "employment_type": "full-time, part-time, contract, internship, or empty string",
  "salary": "salary or range as written, or empty string",
  "description": "the full job description rewritten as clean readable text",
  "responsibilities": ["each responsibility as its own entry"],
  "requirements": ["each requirement as its own entry"],
  "nice_to_have": ["each optional qualification as its own entry"],
  "benefits": ["each benefit as its own entry"]
}
Every key must be present. Use "" for unknown strings and [] for empty lists.
Never invent information that is not in the input text.`

// AnthropicService implements Service against the Anthropic Messages API.
type AnthropicService struct {
	client anthropic.Client
	cfg    Config
	log    logger.Logger
}

func NewAnthropicService(cfg Config, log logger.Logger) *AnthropicService {
	return &AnthropicService{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		log:    log,
	}
}

// Clean sends rawText to the model and returns the validated structured
// description. Errors always carry domain.KindCleanupFailed.
func (s *AnthropicService) Clean(ctx context.Context, rawText string) (*domain.StructuredJobDescription, error) {
	input := truncateInput(strings.TrimSpace(rawText), s.cfg.MaxInputChars)
	if input == "" {
		return nil, domain.NewError(domain.KindCleanupFailed, "no text to clean")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.cfg.Model),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: anthropic.Float(0),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	})
	if err != nil {
		return nil, domain.WrapError(domain.KindCleanupFailed, "cleanup model call failed", err)
	}
	if message.StopReason == anthropic.StopReasonMaxTokens {
		return nil, domain.NewError(domain.KindCleanupFailed, "cleanup reply truncated at the token limit")
	}

	job, err := parseStructured(textContent(message))
	if err != nil {
		return nil, err
	}

	s.log.Debug("Cleanup produced structured description",
		logger.String("model", s.cfg.Model),
		logger.Int("input_chars", len(input)),
		logger.Duration("duration", time.Since(start)),
	)
	return job, nil
}

func textContent(message *anthropic.Message) string {
	var b strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

func truncateInput(text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		return text[:maxChars]
	}
	return text
}
