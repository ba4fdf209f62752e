package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Provider defines the interface for judge backends. A judge receives a
// system prompt and a human prompt and returns raw completion text; callers
// parse it into the stage's structured result type.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single completion
	Complete(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Request is one judge invocation
type Request struct {
	System      string
	Human       string
	Temperature float32
	MaxTokens   int
}

// Config holds judge provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout per request
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int
}

// Invoke runs one judge call and parses the completion as JSON into T. Any
// transport or parse failure is returned to the caller, which treats it as
// an attempt failure and resolves to the stage's safe default. Failures
// here are never retried.
func Invoke[T any](ctx context.Context, p Provider, req Request) (*T, error) {
	raw, err := p.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("judge call (%s): %w", p.Name(), err)
	}

	var out T
	if err := json.Unmarshal([]byte(StripFences(raw)), &out); err != nil {
		slog.Debug("judge returned unparseable output",
			slog.String("provider", p.Name()),
			slog.String("raw", preview(raw, 200)))
		return nil, fmt.Errorf("parse judge output: %w", err)
	}

	return &out, nil
}

// StripFences removes a markdown code fence wrapper from judge output.
// Models frequently wrap JSON in ```json ... ``` despite instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // Drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Timestamp returns the current UTC time formatted for prompt headers
func Timestamp() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
}
