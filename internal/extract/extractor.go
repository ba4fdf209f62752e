// Package extract implements the multi-stage claim extraction pipeline:
// selection, disambiguation, decomposition, and validation. The first two
// stages run through consensus voting; the last two are single-shot.
package extract

import (
	"context"
	"log/slog"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/text"
)

// Extractor turns free text into validated atomic claims
type Extractor struct {
	provider judge.Provider
	cfg      model.ExtractionConfig
}

// NewExtractor creates an extractor backed by the given judge provider
func NewExtractor(provider judge.Provider, cfg model.ExtractionConfig) *Extractor {
	return &Extractor{provider: provider, cfg: cfg}
}

// Extract runs the full pipeline. Empty input, judge failures, and
// below-quorum consensus all shrink the output; none of them raise.
func (e *Extractor) Extract(ctx context.Context, answerText, metadata string) []model.ValidatedClaim {
	segmenter := text.NewSegmenter(e.cfg.Selection.Preceding, e.cfg.Selection.Following)
	sentences := segmenter.Segment(answerText, metadata)
	if len(sentences) == 0 {
		slog.Info("no sentences to process")
		return nil
	}

	selected := e.selectVerifiable(ctx, sentences)
	if len(selected) == 0 {
		slog.Info("no verifiable content found", slog.Int("sentences", len(sentences)))
		return nil
	}
	slog.Info("selection complete",
		slog.Int("selected", len(selected)),
		slog.Int("sentences", len(sentences)))

	disambiguated := e.disambiguate(ctx, selected)
	if len(disambiguated) == 0 {
		slog.Info("nothing could be disambiguated")
		return nil
	}
	slog.Info("disambiguation complete",
		slog.Int("disambiguated", len(disambiguated)),
		slog.Int("selected", len(selected)))

	potential := e.decompose(ctx, disambiguated)
	if len(potential) == 0 {
		slog.Info("no potential claims after decomposition")
		return nil
	}
	slog.Info("decomposition complete", slog.Int("claims", len(potential)))

	validated := e.validate(ctx, potential)
	slog.Info("validation complete",
		slog.Int("validated", len(validated)),
		slog.Int("potential", len(potential)))

	return validated
}
