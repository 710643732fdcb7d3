package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/nbtai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements AIProvider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
	SourceLang  string  // Source language code (validated at construction)
	TargetLang  string  // Target language code (validated at construction)
}

// NewOpenAIProvider creates a new OpenAI provider. The configured language
// pair is validated immediately.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if err := validateLangs(BackendOpenAI, cfg.SourceLang, cfg.TargetLang); err != nil {
		return nil, err
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}, nil
}

// Translate translates a single text using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.Text == "" {
		return "", nil
	}

	systemPrompt := p.buildSystemPrompt(req)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &nbtai.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &nbtai.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	sourceName := nbtai.GetLanguageName(req.SourceLang)
	targetName := nbtai.GetLanguageName(req.TargetLang)
	styleDesc := nbtai.GetStyleDescription(req.Style)

	contextText := "The content comes from a Jupyter notebook (Markdown prose and code comments)."
	if req.Context != "" {
		contextText = fmt.Sprintf("The content is for: %s. Adapt the tone to be appropriate for this context.", req.Context)
	}

	prompt := fmt.Sprintf(`# Role
You are an expert native translator. You translate content from %s to %s with the fluency and nuance of a highly educated native speaker.

# Context
%s

# Register
%s

# Task
Translate the text in the user message into idiomatic %s.

# Style Guide
- **Natural Flow**: Avoid literal translations. Rephrase sentences to sound completely natural to a native speaker.
- **Vocabulary**: Use precise, culturally relevant terminology. Avoid awkward "translationese" or robotic phrasing.
- **Placeholders**: The text may contain placeholder tokens of the form xx_something_xx. Keep every one of them EXACTLY as it appears, in its original position. Never translate, merge, or drop them.
- **Markdown Safety**: Do NOT translate URLs, code spans, or anything inside backticks. Preserve Markdown punctuation (headers, emphasis, lists) as is.
- **Formatting**: Preserve meaningful whitespace (leading/trailing spaces, newlines).`, sourceName, targetName, contextText, styleDesc, targetName)

	if len(req.Glossary) > 0 {
		prompt += "\n\n# Glossary\nWhen you encounter these phrases, prefer these translations (unless context demands otherwise):"
		for source, target := range req.Glossary {
			prompt += fmt.Sprintf("\n- \"%s\" -> %s", source, target)
		}
	}

	if len(req.ExcludedTerms) > 0 {
		terms := strings.Join(req.ExcludedTerms, "\n- ")
		prompt += fmt.Sprintf("\n\n# Exclusions\nDo NOT translate the following terms. Keep them exactly as they appear in the source:\n- %s", terms)
	}

	prompt += "\n\n# Format\nReturn ONLY the translated text. No explanations, no quotes, no Markdown code fences around the output."

	return prompt
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := err.Error()
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(strings.ToLower(errStr), pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements AIProvider
var _ AIProvider = (*OpenAIProvider)(nil)
