package verify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
)

type fakeJudge struct {
	mu       sync.Mutex
	respond  func(req judge.Request) (string, error)
	requests []judge.Request
}

func (j *fakeJudge) Name() string { return "fake" }

func (j *fakeJudge) Complete(ctx context.Context, req judge.Request) (string, error) {
	j.mu.Lock()
	j.requests = append(j.requests, req)
	j.mu.Unlock()
	return j.respond(req)
}

func (j *fakeJudge) IsAvailable(ctx context.Context) bool { return true }

func (j *fakeJudge) countStage(stage string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, req := range j.requests {
		if stageOf(req) == stage {
			n++
		}
	}
	return n
}

func stageOf(req judge.Request) string {
	switch {
	case strings.Contains(req.System, "search query generator"):
		return "query"
	case strings.Contains(req.System, "evidence sufficiency"):
		return "decision"
	case strings.Contains(req.System, "Evaluate claims based ONLY"):
		return "evaluation"
	}
	return "unknown"
}

type fakeRetriever struct {
	mu      sync.Mutex
	queries []string
	results func(query string) []model.Evidence
}

func (r *fakeRetriever) Search(ctx context.Context, query string) []model.Evidence {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	n := len(r.queries)
	r.mu.Unlock()
	if r.results != nil {
		return r.results(query)
	}
	return []model.Evidence{{
		URL:  fmt.Sprintf("https://example.com/%d", n),
		Text: fmt.Sprintf("evidence %d", n),
	}}
}

func testClaim() model.ValidatedClaim {
	return model.ValidatedClaim{
		ClaimText:             "NASA was established in 1958.",
		IsCompleteDeclarative: true,
		DisambiguatedSentence: "NASA was established in 1958.",
		OriginalSentence:      "NASA was established in 1958.",
	}
}

func testConfig() model.VerificationConfig {
	return model.DefaultConfig().Verification
}

// insatiableJudge always asks for more evidence and finally supports
func insatiableJudge() *fakeJudge {
	return &fakeJudge{respond: func(req judge.Request) (string, error) {
		switch stageOf(req) {
		case "query":
			return `{"query": "nasa founding 1958"}`, nil
		case "decision":
			return `{"needs_more_evidence": true, "missing_aspects": ["official founding documents"]}`, nil
		case "evaluation":
			return `{"verdict": "Supported", "reasoning": "Evidence confirms the founding year.", "influential_source_indices": [1]}`, nil
		}
		return "", fmt.Errorf("unknown stage")
	}}
}

func TestVerify_IterationCeiling(t *testing.T) {
	j := insatiableJudge()
	r := &fakeRetriever{}
	v := NewVerifier(j, r, testConfig())

	verdict := v.Verify(context.Background(), testClaim())

	// A never-satisfied sufficiency judge drives exactly max_iterations
	// retrieval rounds and one fewer sufficiency check.
	if got := j.countStage("query"); got != 5 {
		t.Errorf("expected 5 query generations, got %d", got)
	}
	if got := j.countStage("decision"); got != 4 {
		t.Errorf("expected 4 sufficiency checks, got %d", got)
	}
	if got := j.countStage("evaluation"); got != 1 {
		t.Errorf("expected 1 evaluation, got %d", got)
	}

	// Evidence accumulated across every iteration
	if len(verdict.Sources) != 5 {
		t.Errorf("expected 5 accumulated sources, got %d", len(verdict.Sources))
	}
	if verdict.Result != model.ResultSupported {
		t.Errorf("expected Supported, got %s", verdict.Result)
	}
}

func TestVerify_StopsWhenSufficient(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "decision" {
			return `{"needs_more_evidence": false}`, nil
		}
		return base(req)
	}
	r := &fakeRetriever{}
	v := NewVerifier(j, r, testConfig())

	v.Verify(context.Background(), testClaim())

	if got := j.countStage("query"); got != 1 {
		t.Errorf("expected 1 query generation, got %d", got)
	}
	if got := j.countStage("decision"); got != 1 {
		t.Errorf("expected 1 sufficiency check, got %d", got)
	}
	if len(r.queries) != 1 {
		t.Errorf("expected 1 retrieval, got %d", len(r.queries))
	}
}

func TestVerify_DecisionFailureProceedsToEvaluation(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "decision" {
			return "", fmt.Errorf("backend down")
		}
		return base(req)
	}
	v := NewVerifier(j, &fakeRetriever{}, testConfig())

	verdict := v.Verify(context.Background(), testClaim())

	if got := j.countStage("query"); got != 1 {
		t.Errorf("expected 1 query generation before degraded evaluation, got %d", got)
	}
	if verdict.Result != model.ResultSupported {
		t.Errorf("expected evaluation to still run, got %s", verdict.Result)
	}
}

func TestVerify_QueryFailureFallsBackToClaimText(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "query" {
			return "", fmt.Errorf("backend down")
		}
		return base(req)
	}
	r := &fakeRetriever{}
	v := NewVerifier(j, r, testConfig())

	claim := testClaim()
	v.Verify(context.Background(), claim)

	if len(r.queries) == 0 {
		t.Fatal("expected retrieval to still happen")
	}
	if r.queries[0] != claim.ClaimText {
		t.Errorf("expected raw claim text as fallback query, got %q", r.queries[0])
	}
}

func TestVerify_EvaluationFailureRefutesWithNoSources(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "evaluation" {
			return "", fmt.Errorf("backend down")
		}
		return base(req)
	}
	v := NewVerifier(j, &fakeRetriever{}, testConfig())

	verdict := v.Verify(context.Background(), testClaim())

	if verdict.Result != model.ResultRefuted {
		t.Errorf("expected fail-closed Refuted, got %s", verdict.Result)
	}
	if len(verdict.Sources) != 0 {
		t.Errorf("expected no sources on evaluation failure, got %d", len(verdict.Sources))
	}
	if verdict.Reasoning == "" {
		t.Error("expected a reasoning string explaining the failure")
	}
	if verdict.ClaimText != testClaim().ClaimText {
		t.Error("verdict lost the claim identity")
	}
}

func TestVerify_InvalidVerdictDefaultsToRefuted(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "evaluation" {
			return `{"verdict": "Inconclusive", "reasoning": "unclear", "influential_source_indices": []}`, nil
		}
		return base(req)
	}
	v := NewVerifier(j, &fakeRetriever{}, testConfig())

	verdict := v.Verify(context.Background(), testClaim())

	if verdict.Result != model.ResultRefuted {
		t.Errorf("expected unknown verdict coerced to Refuted, got %s", verdict.Result)
	}
	// Unlike a failed call, an invalid verdict keeps the gathered sources
	if len(verdict.Sources) == 0 {
		t.Error("expected sources preserved for invalid verdict")
	}
}

func TestVerify_SourcesDedupedWithInfluentialFlags(t *testing.T) {
	j := insatiableJudge()
	r := &fakeRetriever{results: func(query string) []model.Evidence {
		// Same URL every round, refreshed text
		return []model.Evidence{{URL: "https://example.com/one", Text: "refreshed " + query}}
	}}
	v := NewVerifier(j, r, testConfig())

	verdict := v.Verify(context.Background(), testClaim())

	if len(verdict.Sources) != 1 {
		t.Fatalf("expected duplicate URLs collapsed to 1 source, got %d", len(verdict.Sources))
	}
	if !verdict.Sources[0].IsInfluential {
		t.Error("expected the judge-cited source marked influential")
	}
}

func TestVerify_TokenBudgetSendsOldestWhenNothingFits(t *testing.T) {
	j := insatiableJudge()
	r := &fakeRetriever{}
	cfg := testConfig()
	cfg.TokenBudget = 0 // Forces the degenerate single-item path
	v := NewVerifier(j, r, cfg)

	verdict := v.Verify(context.Background(), testClaim())

	j.mu.Lock()
	var evalHuman string
	for _, req := range j.requests {
		if stageOf(req) == "evaluation" {
			evalHuman = req.Human
		}
	}
	j.mu.Unlock()

	if !strings.Contains(evalHuman, "https://example.com/1") {
		t.Error("expected the oldest evidence item in the evaluation prompt")
	}
	if strings.Contains(evalHuman, "https://example.com/2") {
		t.Error("expected later items excluded from the evaluation prompt")
	}

	// The permanent record keeps everything regardless of the prompt cut
	if len(verdict.Sources) != 5 {
		t.Errorf("expected all 5 sources in the verdict, got %d", len(verdict.Sources))
	}
}

func TestOrchestrator_EmptyClaims(t *testing.T) {
	v := NewVerifier(insatiableJudge(), &fakeRetriever{}, testConfig())
	o := NewOrchestrator(v)

	if verdicts := o.VerifyAll(context.Background(), nil); len(verdicts) != 0 {
		t.Errorf("expected no verdicts for no claims, got %d", len(verdicts))
	}
}

func TestOrchestrator_VerdictOrderMatchesClaims(t *testing.T) {
	j := insatiableJudge()
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "decision" {
			return `{"needs_more_evidence": false}`, nil
		}
		return base(req)
	}
	v := NewVerifier(j, &fakeRetriever{}, testConfig())
	o := NewOrchestrator(v)

	claims := []model.ValidatedClaim{
		{ClaimText: "First claim here.", OriginalIndex: 0},
		{ClaimText: "Second claim here.", OriginalIndex: 1},
		{ClaimText: "Third claim here.", OriginalIndex: 2},
	}

	verdicts := o.VerifyAll(context.Background(), claims)

	if len(verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(verdicts))
	}
	for i, verdict := range verdicts {
		if verdict.ClaimText != claims[i].ClaimText {
			t.Errorf("verdict %d: expected %q, got %q", i, claims[i].ClaimText, verdict.ClaimText)
		}
	}
}
