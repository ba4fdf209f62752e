package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/veracitydev/veracity/internal/judge"
	"github.com/veracitydev/veracity/internal/model"
)

// scriptedJudge returns canned JSON keyed by which stage prompt it sees
type scriptedJudge struct {
	mu       sync.Mutex
	respond  func(req judge.Request) (string, error)
	requests []judge.Request
}

func (j *scriptedJudge) Name() string { return "scripted" }

func (j *scriptedJudge) Complete(ctx context.Context, req judge.Request) (string, error) {
	j.mu.Lock()
	j.requests = append(j.requests, req)
	j.mu.Unlock()
	return j.respond(req)
}

func (j *scriptedJudge) IsAvailable(ctx context.Context) bool { return true }

func stageOf(req judge.Request) string {
	switch {
	case strings.Contains(req.System, "simplest possible discrete units"):
		return "decomposition"
	case strings.Contains(req.System, "verifiable proposition"):
		return "selection"
	case strings.Contains(req.System, "decontextualize the sentence"):
		return "disambiguation"
	case strings.Contains(req.System, "complete, declarative sentence"):
		return "validation"
	}
	return "unknown"
}

func defaultExtractionConfig() model.ExtractionConfig {
	return model.DefaultConfig().Extraction
}

// passthroughJudge answers every stage affirmatively, echoing the sentence
func passthroughJudge(t *testing.T) *scriptedJudge {
	t.Helper()
	return &scriptedJudge{respond: func(req judge.Request) (string, error) {
		switch stageOf(req) {
		case "selection":
			return `{"processed_sentence": "_", "remains_unchanged": true, "no_verifiable_claims": false}`, nil
		case "disambiguation":
			sentence := lastPromptSentence(req.Human)
			out, _ := json.Marshal(map[string]any{
				"disambiguated_sentence": sentence,
				"cannot_be_disambiguated": false,
			})
			return string(out), nil
		case "decomposition":
			sentence := lastPromptSentence(req.Human)
			out, _ := json.Marshal(map[string]any{"claims": []string{sentence}, "no_claims": false})
			return string(out), nil
		case "validation":
			return `{"is_complete_declarative": true}`, nil
		}
		return "", fmt.Errorf("unexpected stage: %s", req.System)
	}}
}

// lastPromptSentence pulls the sentence out of the stage human prompt
func lastPromptSentence(human string) string {
	_, after, found := strings.Cut(human, "Sentence:\n")
	if !found {
		_, after, _ = strings.Cut(human, "Claim:\n")
	}
	return strings.TrimSpace(after)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := NewExtractor(passthroughJudge(t), defaultExtractionConfig())

	if claims := e.Extract(context.Background(), "", ""); len(claims) != 0 {
		t.Errorf("expected no claims for empty input, got %d", len(claims))
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	e := NewExtractor(passthroughJudge(t), defaultExtractionConfig())

	text := "NASA was established in 1958. The agency runs the United States space program."
	claims := e.Extract(context.Background(), text, "")

	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d: %+v", len(claims), claims)
	}

	for i, claim := range claims {
		if !claim.IsCompleteDeclarative {
			t.Errorf("claim %d not marked complete declarative", i)
		}
		if claim.OriginalIndex != i {
			t.Errorf("claim %d: expected original index %d, got %d", i, i, claim.OriginalIndex)
		}
	}
	if claims[0].OriginalSentence != "NASA was established in 1958." {
		t.Errorf("unexpected original sentence: %q", claims[0].OriginalSentence)
	}
}

func TestExtract_SelectionDropsUnverifiable(t *testing.T) {
	j := passthroughJudge(t)
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "selection" && strings.Contains(lastPromptSentence(req.Human), "I hope this helps") {
			return `{"processed_sentence": "", "no_verifiable_claims": true}`, nil
		}
		return base(req)
	}

	e := NewExtractor(j, defaultExtractionConfig())

	text := "NASA was established in 1958. I hope this helps with the question."
	claims := e.Extract(context.Background(), text, "")

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d: %+v", len(claims), claims)
	}
	if claims[0].OriginalSentence != "NASA was established in 1958." {
		t.Errorf("wrong sentence survived selection: %q", claims[0].OriginalSentence)
	}
}

func TestExtract_ValidationDeduplicates(t *testing.T) {
	j := passthroughJudge(t)
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "decomposition" {
			// Both sentences decompose to the same claim text
			return `{"claims": ["NASA was established in 1958."], "no_claims": false}`, nil
		}
		return base(req)
	}

	e := NewExtractor(j, defaultExtractionConfig())

	text := "NASA was established in 1958. NASA came into being in the year 1958."
	claims := e.Extract(context.Background(), text, "")

	if len(claims) != 1 {
		t.Fatalf("expected duplicate claims collapsed to 1, got %d", len(claims))
	}
	// First occurrence wins, so the claim maps back to the first sentence
	if claims[0].OriginalIndex != 0 {
		t.Errorf("expected first occurrence kept, got index %d", claims[0].OriginalIndex)
	}
}

func TestExtract_ValidationFiltersIncomplete(t *testing.T) {
	j := passthroughJudge(t)
	base := j.respond
	j.respond = func(req judge.Request) (string, error) {
		if stageOf(req) == "validation" && strings.Contains(req.Human, "in 1958") {
			return `{"is_complete_declarative": false}`, nil
		}
		return base(req)
	}

	e := NewExtractor(j, defaultExtractionConfig())

	text := "NASA was established in 1958. The agency runs the United States space program."
	claims := e.Extract(context.Background(), text, "")

	if len(claims) != 1 {
		t.Fatalf("expected 1 claim after validation filter, got %d", len(claims))
	}
	if strings.Contains(claims[0].ClaimText, "1958") {
		t.Errorf("filtered claim leaked through: %q", claims[0].ClaimText)
	}
}

func TestExtract_JudgeFailureDropsEverything(t *testing.T) {
	j := &scriptedJudge{respond: func(req judge.Request) (string, error) {
		return "", fmt.Errorf("backend down")
	}}

	e := NewExtractor(j, defaultExtractionConfig())

	claims := e.Extract(context.Background(), "NASA was established in 1958.", "")
	if len(claims) != 0 {
		t.Errorf("expected no claims when every judge call fails, got %d", len(claims))
	}
}

func TestExtract_DisambiguationStripsFollowingContext(t *testing.T) {
	j := passthroughJudge(t)

	e := NewExtractor(j, defaultExtractionConfig())
	e.Extract(context.Background(), "First sentence about NASA. Second sentence about the agency.", "")

	j.mu.Lock()
	defer j.mu.Unlock()
	for _, req := range j.requests {
		stage := stageOf(req)
		if stage == "disambiguation" || stage == "decomposition" {
			if strings.Contains(req.Human, "[Following Sentences:]") {
				t.Fatalf("%s prompt still contains following context:\n%s", stage, req.Human)
			}
		}
	}
}
