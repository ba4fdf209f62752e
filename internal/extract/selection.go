package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/vote"
)

// selectionOutput is the selection judge's response shape
type selectionOutput struct {
	ProcessedSentence  string `json:"processed_sentence"`
	NoVerifiableClaims bool   `json:"no_verifiable_claims"`
	RemainsUnchanged   bool   `json:"remains_unchanged"`
}

// selectVerifiable keeps sentences that contain a specific, verifiable
// proposition, possibly rewritten to only the verifiable portion. Judging
// "verifiable" is noisy, so each sentence goes through consensus voting.
func (e *Extractor) selectVerifiable(ctx context.Context, sentences []model.ContextualSentence) []model.SelectedContent {
	cfg := e.cfg.Selection

	attempt := func(ctx context.Context, item model.ContextualSentence) (string, bool) {
		out, err := judge.Invoke[selectionOutput](ctx, e.provider, judge.Request{
			System:      selectionSystemPrompt,
			Human:       fmt.Sprintf(stageHumanPrompt, item.ContextForJudge, item.OriginalSentence),
			Temperature: cfg.Temperature,
		})
		if err != nil || out.NoVerifiableClaims || out.ProcessedSentence == "" {
			return "", false
		}
		if out.RemainsUnchanged {
			return item.OriginalSentence, true
		}
		return strings.TrimSpace(out.ProcessedSentence), true
	}

	build := func(processed string, item model.ContextualSentence) model.SelectedContent {
		return model.SelectedContent{ProcessedSentence: processed, Source: item}
	}

	return vote.Process(ctx, sentences,
		vote.Config{Completions: cfg.Completions, MinSuccesses: cfg.MinSuccesses},
		attempt, build)
}
