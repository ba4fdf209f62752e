package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veracitydev/veracity/internal/model"
)

// TavilyProvider implements the Provider interface for the Tavily search API
type TavilyProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxResults int
	maxChars   int
}

// Tavily API structures
type tavilyRequest struct {
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	Topic             string `json:"topic"`
	IncludeRawContent string `json:"include_raw_content,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		URL        string `json:"url"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		RawContent string `json:"raw_content"`
	} `json:"results"`
}

// NewTavilyProvider creates a new Tavily provider
func NewTavilyProvider(apiKey, baseURL string, maxResults, maxChars int, timeout time.Duration) (*TavilyProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Tavily API key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TavilyProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxResults: maxResults,
		maxChars:   maxChars,
	}, nil
}

// Name returns the provider name
func (p *TavilyProvider) Name() string {
	return "tavily"
}

// Search runs a search and returns evidence snippets. Raw page content is
// preferred over the short summary snippet when the API provides it.
func (p *TavilyProvider) Search(ctx context.Context, query string) ([]model.Evidence, error) {
	apiReq := tavilyRequest{
		Query:             query,
		MaxResults:        p.maxResults,
		Topic:             "general",
		IncludeRawContent: "markdown",
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", httpResp.StatusCode)
	}

	var resp tavilyResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	evidence := make([]model.Evidence, 0, len(resp.Results))
	for _, r := range resp.Results {
		snippet := r.RawContent
		if snippet == "" {
			snippet = r.Content
		}
		evidence = append(evidence, model.Evidence{
			URL:   r.URL,
			Title: r.Title,
			Text:  truncateSnippet(snippet, p.maxChars),
		})
	}

	return evidence, nil
}
