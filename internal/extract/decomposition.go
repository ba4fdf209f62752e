package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/text"
)

// decompositionOutput is the decomposition judge's response shape
type decompositionOutput struct {
	Claims   []string `json:"claims"`
	NoClaims bool     `json:"no_claims"`
}

// decompose splits each disambiguated sentence into zero or more atomic,
// self-contained propositions. A single attempt per sentence suffices here;
// the input has already been filtered and disambiguated upstream. Sentences
// are processed concurrently and joined in input order; a failed or empty
// judge call yields no claims for that sentence, never an error.
func (e *Extractor) decompose(ctx context.Context, items []model.DisambiguatedContent) []model.PotentialClaim {
	perItem := make([][]model.PotentialClaim, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item model.DisambiguatedContent) {
			defer wg.Done()
			perItem[i] = e.decomposeOne(ctx, item)
		}(i, item)
	}
	wg.Wait()

	var claims []model.PotentialClaim
	for _, c := range perItem {
		claims = append(claims, c...)
	}
	return claims
}

func (e *Extractor) decomposeOne(ctx context.Context, item model.DisambiguatedContent) []model.PotentialClaim {
	pastContext := text.RemoveFollowingSentences(item.Source.Source.ContextForJudge)

	out, err := judge.Invoke[decompositionOutput](ctx, e.provider, judge.Request{
		System:      decompositionSystemPrompt,
		Human:       fmt.Sprintf(stageHumanPrompt, pastContext, item.DisambiguatedSentence),
		Temperature: e.cfg.Decomposition.Temperature,
	})
	if err != nil || out.NoClaims || len(out.Claims) == 0 {
		slog.Info("no claims decomposed",
			slog.String("sentence", item.DisambiguatedSentence))
		return nil
	}

	source := item.Source.Source
	var claims []model.PotentialClaim
	for _, claimText := range out.Claims {
		claimText = strings.TrimSpace(claimText)
		if claimText == "" {
			continue
		}
		claims = append(claims, model.PotentialClaim{
			ClaimText:             claimText,
			DisambiguatedSentence: item.DisambiguatedSentence,
			OriginalSentence:      source.OriginalSentence,
			OriginalIndex:         source.OriginalIndex,
		})
	}

	return claims
}
