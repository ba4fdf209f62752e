// Package search implements the evidence retrieval layer: pluggable web
// search providers behind one contract, plus caching and optional page
// expansion on top.
package search

import (
	"context"

	"github.com/veracitydev/veracity/internal/model"
)

// Provider defines the interface for web-search backends. Implementations
// return ranked snippets for a query; which provider runs is a static
// configuration choice, never a per-query decision.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search returns ranked evidence snippets for the query
	Search(ctx context.Context, query string) ([]model.Evidence, error)
}

// truncateSnippet caps evidence text at the configured character limit
func truncateSnippet(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	return s[:maxChars]
}
