package search

import (
	"fmt"

	"github.com/veracitydev/veracity/internal/model"
)

// NewProvider creates a search provider based on configuration
func NewProvider(cfg model.SearchConfig) (Provider, error) {
	switch cfg.Provider {
	case "exa":
		return NewExaProvider(cfg.ExaAPIKey, "", cfg.ResultsPerQuery, cfg.SnippetMaxChars, cfg.Timeout)
	case "tavily":
		return NewTavilyProvider(cfg.TavilyAPIKey, "", cfg.ResultsPerQuery, cfg.SnippetMaxChars, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}
