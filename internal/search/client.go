package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/veracitydev/veracity/internal/cache"
	"github.com/veracitydev/veracity/internal/model"
)

// Client is the retrieval front door: one provider behind a cache and an
// optional page expander. Retrieval failures degrade to an empty result so
// a broken provider never aborts a verification run.
type Client struct {
	provider   Provider
	cache      cache.Cache
	expander   *Expander
	ttl        time.Duration
	maxResults int
	maxChars   int
}

// NewClient creates a retrieval client. cacheStore and expander may be nil.
func NewClient(provider Provider, cacheStore cache.Cache, expander *Expander, cfg model.SearchConfig, ttl time.Duration) *Client {
	return &Client{
		provider:   provider,
		cache:      cacheStore,
		expander:   expander,
		ttl:        ttl,
		maxResults: cfg.ResultsPerQuery,
		maxChars:   cfg.SnippetMaxChars,
	}
}

// Search retrieves evidence for a query. Cached responses are served without
// touching the provider; provider errors are logged and return no evidence.
func (c *Client) Search(ctx context.Context, query string) []model.Evidence {
	key := cache.Key(c.provider.Name(), query)

	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var items []model.Evidence
			if err := json.Unmarshal(data, &items); err == nil {
				return items
			}
			_ = c.cache.Delete(key)
		}
	}

	items, err := c.provider.Search(ctx, query)
	if err != nil {
		slog.Warn("search failed",
			slog.String("provider", c.provider.Name()),
			slog.String("query", query),
			slog.String("error", err.Error()))
		return nil
	}

	if c.maxResults > 0 && len(items) > c.maxResults {
		items = items[:c.maxResults]
	}
	for i := range items {
		items[i].Text = truncateSnippet(items[i].Text, c.maxChars)
	}

	if c.expander != nil {
		items = c.expander.Expand(ctx, items)
	}

	if c.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = c.cache.Set(key, data, c.ttl)
		}
	}

	return items
}
