package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/text"
	"github.com/veracitydev/veracity/internal/vote"
)

// disambiguationOutput is the disambiguation judge's response shape
type disambiguationOutput struct {
	DisambiguatedSentence string `json:"disambiguated_sentence"`
	CannotBeDisambiguated bool   `json:"cannot_be_disambiguated"`
}

// disambiguate resolves partial names, acronyms, and referential ambiguity
// using only preceding context: the following-sentences block is stripped so
// nothing unavailable at claim-check time leaks into the result. A sentence
// whose ambiguity cannot be resolved with consensus confidence is dropped.
func (e *Extractor) disambiguate(ctx context.Context, selected []model.SelectedContent) []model.DisambiguatedContent {
	cfg := e.cfg.Disambiguation

	attempt := func(ctx context.Context, item model.SelectedContent) (string, bool) {
		pastContext := text.RemoveFollowingSentences(item.Source.ContextForJudge)

		out, err := judge.Invoke[disambiguationOutput](ctx, e.provider, judge.Request{
			System:      disambiguationSystemPrompt,
			Human:       fmt.Sprintf(stageHumanPrompt, pastContext, item.ProcessedSentence),
			Temperature: cfg.Temperature,
		})
		if err != nil || out.CannotBeDisambiguated || out.DisambiguatedSentence == "" {
			return "", false
		}
		return strings.TrimSpace(out.DisambiguatedSentence), true
	}

	build := func(sentence string, item model.SelectedContent) model.DisambiguatedContent {
		return model.DisambiguatedContent{DisambiguatedSentence: sentence, Source: item}
	}

	return vote.Process(ctx, selected,
		vote.Config{Completions: cfg.Completions, MinSuccesses: cfg.MinSuccesses},
		attempt, build)
}
