package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
)

// validationOutput is the validation judge's response shape
type validationOutput struct {
	IsCompleteDeclarative bool `json:"is_complete_declarative"`
}

// validate checks each candidate claim in isolation for being a complete,
// grammatically standalone declarative sentence, then dedupes by exact
// claim text, first occurrence wins. Claims run concurrently; the filter
// pass afterward is sequential so ordering stays deterministic.
func (e *Extractor) validate(ctx context.Context, claims []model.PotentialClaim) []model.ValidatedClaim {
	results := make([]model.ValidatedClaim, len(claims))

	var wg sync.WaitGroup
	for i, claim := range claims {
		wg.Add(1)
		go func(i int, claim model.PotentialClaim) {
			defer wg.Done()
			results[i] = e.validateOne(ctx, claim)
		}(i, claim)
	}
	wg.Wait()

	seen := make(map[string]bool, len(results))
	var validated []model.ValidatedClaim
	for _, v := range results {
		switch {
		case !v.IsCompleteDeclarative:
			slog.Info("discarded claim", slog.String("reason", "invalid format"),
				slog.String("claim", v.ClaimText))
		case seen[v.ClaimText]:
			slog.Info("discarded claim", slog.String("reason", "duplicate"),
				slog.String("claim", v.ClaimText))
		default:
			seen[v.ClaimText] = true
			validated = append(validated, v)
		}
	}

	return validated
}

// validateOne runs the single deterministic judge call for one claim. A
// failed call marks the claim invalid rather than erroring out.
func (e *Extractor) validateOne(ctx context.Context, claim model.PotentialClaim) model.ValidatedClaim {
	out, err := judge.Invoke[validationOutput](ctx, e.provider, judge.Request{
		System:      validationSystemPrompt,
		Human:       fmt.Sprintf(validationHumanPrompt, claim.ClaimText),
		Temperature: e.cfg.Validation.Temperature,
	})

	isValid := err == nil && out.IsCompleteDeclarative

	return model.ValidatedClaim{
		ClaimText:             claim.ClaimText,
		IsCompleteDeclarative: isValid,
		DisambiguatedSentence: claim.DisambiguatedSentence,
		OriginalSentence:      claim.OriginalSentence,
		OriginalIndex:         claim.OriginalIndex,
	}
}
