package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/veracitydev/veracity/internal/model"
)

var (
	errRobotsDisallowed = errors.New("disallowed by robots.txt")
	errBadStatus        = errors.New("non-200 response")
)

// Expander widens evidence snippets by fetching the result pages and
// extracting their visible text. Fetches honor robots.txt and a per-host
// rate limit; any failure leaves the original snippet untouched.
type Expander struct {
	httpClient *http.Client
	robots     *robotsChecker
	userAgent  string
	maxBytes   int64
	maxChars   int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
}

// NewExpander creates a page expander from search configuration
func NewExpander(cfg model.SearchConfig) *Expander {
	return &Expander{
		httpClient: &http.Client{Timeout: cfg.ExpandTimeout},
		robots:     newRobotsChecker(cfg.ExpandUserAgent, cfg.ExpandTimeout),
		userAgent:  cfg.ExpandUserAgent,
		maxBytes:   cfg.ExpandMaxBytes,
		maxChars:   cfg.SnippetMaxChars,
		limiters:   make(map[string]*rate.Limiter),
		perHost:    rate.Limit(cfg.ExpandRatePerSec),
	}
}

// Expand replaces each snippet with the page's visible text where the page
// can be fetched. Results keep their order; failed fetches are logged and
// the snippet from the search provider stands.
func (e *Expander) Expand(ctx context.Context, items []model.Evidence) []model.Evidence {
	out := make([]model.Evidence, len(items))
	copy(out, items)

	for i := range out {
		text, err := e.fetchPage(ctx, out[i].URL)
		if err != nil {
			slog.Debug("page expansion skipped", slog.String("url", out[i].URL), slog.String("error", err.Error()))
			continue
		}
		if text != "" {
			out[i].Text = truncateSnippet(text, e.maxChars)
		}
	}

	return out
}

func (e *Expander) fetchPage(ctx context.Context, rawURL string) (string, error) {
	if !e.robots.canFetch(ctx, rawURL) {
		return "", errRobotsDisallowed
	}

	if err := e.wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errBadStatus
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}

	return visibleText(doc), nil
}

// wait blocks until the per-host rate limit clears
func (e *Expander) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	e.mu.Lock()
	limiter, exists := e.limiters[parsed.Host]
	if !exists {
		limiter = rate.NewLimiter(e.perHost, 1)
		e.limiters[parsed.Host] = limiter
	}
	e.mu.Unlock()

	return limiter.Wait(ctx)
}

// visibleText extracts text nodes from HTML, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
