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

// ExaProvider implements the Provider interface for the Exa search API
type ExaProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	numResults int
	maxChars   int
}

// Exa API structures
type exaRequest struct {
	Query      string      `json:"query"`
	NumResults int         `json:"numResults"`
	Type       string      `json:"type"`
	Contents   exaContents `json:"contents"`
}

type exaContents struct {
	Text exaTextOptions `json:"text"`
}

type exaTextOptions struct {
	MaxCharacters int `json:"maxCharacters"`
}

type exaResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"results"`
}

// NewExaProvider creates a new Exa provider
func NewExaProvider(apiKey, baseURL string, numResults, maxChars int, timeout time.Duration) (*ExaProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Exa API key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ExaProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		numResults: numResults,
		maxChars:   maxChars,
	}, nil
}

// Name returns the provider name
func (p *ExaProvider) Name() string {
	return "exa"
}

// Search runs a neural search and returns evidence snippets
func (p *ExaProvider) Search(ctx context.Context, query string) ([]model.Evidence, error) {
	apiReq := exaRequest{
		Query:      query,
		NumResults: p.numResults,
		Type:       "neural",
		Contents:   exaContents{Text: exaTextOptions{MaxCharacters: p.maxChars}},
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
	httpReq.Header.Set("x-api-key", p.apiKey)

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

	var resp exaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	evidence := make([]model.Evidence, 0, len(resp.Results))
	for _, r := range resp.Results {
		evidence = append(evidence, model.Evidence{
			URL:   r.URL,
			Title: r.Title,
			Text:  truncateSnippet(r.Text, p.maxChars),
		})
	}

	return evidence, nil
}
