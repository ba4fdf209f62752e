// Package verify implements the per-claim verification loop: iterative query
// generation and evidence retrieval bounded by a sufficiency judge and an
// iteration ceiling, followed by a final evidence evaluation.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/text"
)

const previewItems = 10
const previewChars = 200

// Retriever is the evidence source consumed by the loop. Failures inside
// the retriever surface as empty results, never errors.
type Retriever interface {
	Search(ctx context.Context, query string) []model.Evidence
}

// Verifier runs the verification loop for individual claims. Each Verify
// call owns its evidence and query history; a Verifier is safe for
// concurrent use across claims.
type Verifier struct {
	judge  judge.Provider
	search Retriever
	cfg    model.VerificationConfig
}

// NewVerifier creates a claim verifier
func NewVerifier(j judge.Provider, s Retriever, cfg model.VerificationConfig) *Verifier {
	return &Verifier{judge: j, search: s, cfg: cfg}
}

type queryOutput struct {
	Query string `json:"query"`
}

type decisionOutput struct {
	NeedsMoreEvidence bool     `json:"needs_more_evidence"`
	MissingAspects    []string `json:"missing_aspects"`
}

type evaluationOutput struct {
	Verdict                  string `json:"verdict"`
	Reasoning                string `json:"reasoning"`
	InfluentialSourceIndices []int  `json:"influential_source_indices"`
}

// Verify runs the full loop for one claim and always returns a verdict.
// Judge and retrieval failures degrade to safe defaults; they never abort
// the claim.
func (v *Verifier) Verify(ctx context.Context, claim model.ValidatedClaim) model.Verdict {
	var (
		evidence   []model.Evidence
		queries    []string
		assessment *model.IntermediateAssessment
		iteration  int
	)

	for {
		iteration++

		query := v.generateQuery(ctx, claim, iteration, queries, assessment)
		if query == "" {
			// Degraded path: search the claim verbatim, keep it out of the
			// history so the next generation is not conditioned on it.
			query = claim.ClaimText
		} else {
			queries = append(queries, query)
		}

		retrieved := v.search.Search(ctx, query)
		evidence = append(evidence, retrieved...)
		slog.Info("evidence retrieved",
			slog.String("claim", claim.ClaimText),
			slog.Int("iteration", iteration),
			slog.Int("new", len(retrieved)),
			slog.Int("total", len(evidence)))

		if iteration >= v.cfg.MaxIterations {
			slog.Info("iteration ceiling reached, evaluating",
				slog.String("claim", claim.ClaimText),
				slog.Int("iterations", iteration))
			break
		}

		assessment = v.decide(ctx, claim, evidence)
		if assessment == nil || !assessment.NeedsMoreEvidence {
			break
		}
	}

	return v.evaluate(ctx, claim, evidence, iteration)
}

// generateQuery asks the judge for a search query. Returns "" on failure.
func (v *Verifier) generateQuery(ctx context.Context, claim model.ValidatedClaim, iteration int, queries []string, assessment *model.IntermediateAssessment) string {
	var system string
	if iteration == 1 {
		system = fmt.Sprintf(queryInitialSystemPrompt, judge.Timestamp())
	} else {
		var parts []string
		if len(queries) > 0 {
			parts = append(parts, "Previous queries: "+strings.Join(queries, ", "))
		}
		if assessment != nil && len(assessment.MissingAspects) > 0 {
			parts = append(parts, "Missing aspects: "+strings.Join(assessment.MissingAspects, ", "))
		}
		system = fmt.Sprintf(queryIterativeSystemPrompt, judge.Timestamp(), iteration, strings.Join(parts, " | "))
	}

	out, err := judge.Invoke[queryOutput](ctx, v.judge, judge.Request{
		System: system,
		Human:  fmt.Sprintf(queryHumanPrompt, claim.ClaimText),
	})
	if err != nil {
		slog.Warn("query generation failed, falling back to claim text",
			slog.String("claim", claim.ClaimText),
			slog.String("error", err.Error()))
		return ""
	}

	return strings.TrimSpace(out.Query)
}

// decide asks the sufficiency judge whether to keep searching. A nil return
// means evaluate now, either because the evidence sufficed or the judge
// call failed.
func (v *Verifier) decide(ctx context.Context, claim model.ValidatedClaim, evidence []model.Evidence) *model.IntermediateAssessment {
	human := fmt.Sprintf(decisionHumanPrompt, claim.ClaimText, len(evidence), previewEvidence(evidence))

	out, err := judge.Invoke[decisionOutput](ctx, v.judge, judge.Request{
		System: fmt.Sprintf(decisionSystemPrompt, judge.Timestamp()),
		Human:  human,
	})
	if err != nil {
		slog.Warn("sufficiency check failed, proceeding to evaluation",
			slog.String("claim", claim.ClaimText),
			slog.String("error", err.Error()))
		return nil
	}

	return &model.IntermediateAssessment{
		NeedsMoreEvidence: out.NeedsMoreEvidence,
		MissingAspects:    out.MissingAspects,
	}
}

// evaluate produces the final verdict from the accumulated evidence
func (v *Verifier) evaluate(ctx context.Context, claim model.ValidatedClaim, evidence []model.Evidence, iterations int) model.Verdict {
	slog.Info("evaluating claim",
		slog.String("claim", claim.ClaimText),
		slog.Int("evidence", len(evidence)),
		slog.Int("iterations", iterations))

	system := fmt.Sprintf(evaluationSystemPrompt, judge.Timestamp())
	truncated := v.truncateForBudget(evidence, claim.ClaimText, system)

	out, err := judge.Invoke[evaluationOutput](ctx, v.judge, judge.Request{
		System: system,
		Human:  fmt.Sprintf(evaluationHumanPrompt, claim.ClaimText, formatEvidence(truncated)),
	})
	if err != nil {
		slog.Warn("evaluation failed, refuting by default",
			slog.String("claim", claim.ClaimText),
			slog.String("error", err.Error()))
		return model.Verdict{
			ClaimText:             claim.ClaimText,
			DisambiguatedSentence: claim.DisambiguatedSentence,
			OriginalSentence:      claim.OriginalSentence,
			OriginalIndex:         claim.OriginalIndex,
			Result:                model.ResultRefuted,
			Reasoning:             "Failed to evaluate the evidence due to technical issues.",
			Sources:               nil,
		}
	}

	result := model.VerificationResult(out.Verdict)
	if !result.Valid() {
		slog.Warn("invalid verdict, refuting by default",
			slog.String("claim", claim.ClaimText),
			slog.String("verdict", out.Verdict))
		result = model.ResultRefuted
	}

	// Indices refer to the truncated list shown to the judge; the flags are
	// carried by URL onto the deduplicated full evidence record.
	influential := make(map[string]bool)
	for _, idx := range out.InfluentialSourceIndices {
		if idx >= 1 && idx <= len(truncated) {
			influential[truncated[idx-1].URL] = true
		}
	}

	sources := model.DedupeEvidenceByURL(evidence)
	for i := range sources {
		sources[i].IsInfluential = influential[sources[i].URL]
	}

	return model.Verdict{
		ClaimText:             claim.ClaimText,
		DisambiguatedSentence: claim.DisambiguatedSentence,
		OriginalSentence:      claim.OriginalSentence,
		OriginalIndex:         claim.OriginalIndex,
		Result:                result,
		Reasoning:             out.Reasoning,
		Sources:               sources,
	}
}

// truncateForBudget selects the evidence that fits the estimated-token
// ceiling at evaluation time, preferring the most recently retrieved items.
// The working evidence record is never truncated, only the prompt. When
// nothing fits, the oldest item is sent alone rather than none.
func (v *Verifier) truncateForBudget(items []model.Evidence, claimText, systemPrompt string) []model.Evidence {
	if len(items) == 0 {
		return items
	}

	base := text.EstimateTokens(systemPrompt + fmt.Sprintf(evaluationHumanPrompt, claimText, ""))
	available := v.cfg.TokenBudget - base - v.cfg.SafetyMargin
	if available <= 0 {
		return items[:1]
	}

	keep := make(map[int]bool, len(items))
	var selected []model.Evidence
	for i := len(items) - 1; i >= 0; i-- {
		cost := text.EstimateTokens(formatEvidence(append(selected, items[i])))
		if cost > available {
			break
		}
		selected = append(selected, items[i])
		keep[i] = true
	}

	if len(keep) == 0 {
		return items[:1]
	}

	result := make([]model.Evidence, 0, len(keep))
	for i, item := range items {
		if keep[i] {
			result = append(result, item)
		}
	}

	if len(result) < len(items) {
		slog.Info("evidence truncated for evaluation",
			slog.Int("from", len(items)),
			slog.Int("to", len(result)))
	}

	return result
}

// formatEvidence renders numbered evidence blocks for the evaluation prompt
func formatEvidence(items []model.Evidence) string {
	if len(items) == 0 {
		return "No relevant evidence snippets were found."
	}

	var blocks []string
	for i, item := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "Source %d: %s\n", i+1, item.URL)
		if item.Title != "" {
			fmt.Fprintf(&b, "Title: %s\n", item.Title)
		}
		fmt.Fprintf(&b, "Snippet: %s\n---", strings.TrimSpace(item.Text))
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

// previewEvidence renders the short evidence summary for the sufficiency
// judge: the first few items, each capped to a couple hundred characters.
func previewEvidence(items []model.Evidence) string {
	var lines []string
	for _, item := range items {
		if len(lines) >= previewItems {
			break
		}
		snippet := item.Text
		if len(snippet) > previewChars {
			snippet = snippet[:previewChars]
		}
		if item.Title != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s...", item.Title, snippet))
		} else {
			lines = append(lines, fmt.Sprintf("- %s...", snippet))
		}
	}
	return strings.Join(lines, "\n")
}
