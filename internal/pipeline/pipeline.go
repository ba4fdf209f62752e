// Package pipeline wires extraction, verification, and reporting into the
// end-to-end fact-checking flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veracitydev/veracity/internal/cache"
	"github.com/veracitydev/veracity/internal/extract"
	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/report"
	"github.com/veracitydev/veracity/internal/search"
	"github.com/veracitydev/veracity/internal/verify"
)

// Pipeline orchestrates the complete fact-checking process
type Pipeline struct {
	extractor    *extract.Extractor
	orchestrator *verify.Orchestrator
	renderer     *report.Renderer
	config       *model.Config
}

// NewPipeline creates a pipeline from configuration. It fails when the judge
// or search backend cannot be constructed; everything downstream degrades
// instead of failing.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	judgeProvider, err := judge.NewProvider(judge.ConfigFromModel(cfg.Judge))
	if err != nil {
		return nil, fmt.Errorf("create judge provider: %w", err)
	}

	searchProvider, err := search.NewProvider(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("create search provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	var expander *search.Expander
	if cfg.Search.ExpandPages {
		expander = search.NewExpander(cfg.Search)
	}

	client := search.NewClient(searchProvider, store, expander, cfg.Search, cfg.Cache.TTL)
	verifier := verify.NewVerifier(judgeProvider, client, cfg.Verification)

	return &Pipeline{
		extractor:    extract.NewExtractor(judgeProvider, cfg.Extraction),
		orchestrator: verify.NewOrchestrator(verifier),
		renderer:     report.NewRenderer(cfg.Output.IncludeFooter),
		config:       cfg,
	}, nil
}

// CheckText runs the full pipeline on a document: extract claims, verify
// each one, aggregate into a report. A document with no verifiable claims
// yields a zero-claim report.
func (p *Pipeline) CheckText(ctx context.Context, text, metadata string) (*model.FactCheckReport, error) {
	claims := p.extractor.Extract(ctx, text, metadata)
	slog.Info("extraction finished", slog.Int("claims", len(claims)))

	verdicts := p.orchestrator.VerifyAll(ctx, claims)

	r := model.BuildReport(text, verdicts)
	return &r, nil
}

// ExtractClaims runs only the extraction stage
func (p *Pipeline) ExtractClaims(ctx context.Context, text, metadata string) []model.ValidatedClaim {
	return p.extractor.Extract(ctx, text, metadata)
}

// VerifyClaims runs only the verification stage on pre-extracted claims
func (p *Pipeline) VerifyClaims(ctx context.Context, claims []model.ValidatedClaim) []model.Verdict {
	return p.orchestrator.VerifyAll(ctx, claims)
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(r *model.FactCheckReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(r, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(r, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(r)

	return nil
}
