// Package extract runs the concurrent profile extraction pipeline: six
// independent field subtasks fanned out over the normalized text, a hard
// settle barrier, then the one dependent subtask (tier-2 keywords).
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator maps document text plus a field instruction to model output.
// An empty string means "nothing found"; callers treat it exactly like an
// error, so implementations never need to synthesize one from the other.
type Generator interface {
	Generate(ctx context.Context, documentText, instruction string) (string, error)
}

// LLMConfig selects and tunes the backing model provider.
type LLMConfig struct {
	Provider    string // "openai" or "ollama"
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// LLM implements Generator on a langchaingo llms.Model.
type LLM struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewLLM builds the configured provider.
func NewLLM(cfg LLMConfig) (*LLM, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model must be set")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case "openai":
		opts := []openai.Option{openai.WithModel(cfg.Model)}
		if cfg.APIKey != "" {
			opts = append(opts, openai.WithToken(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initialize %s model: %w", cfg.Provider, err)
	}

	return &LLM{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Generate sends the instruction as the system message and the document text
// as the user message, returning the trimmed completion.
func (l *LLM) Generate(ctx context.Context, documentText, instruction string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, documentText),
	}
	resp, err := l.model.GenerateContent(ctx, content,
		llms.WithTemperature(l.temperature),
		llms.WithMaxTokens(l.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

var _ Generator = (*LLM)(nil)
