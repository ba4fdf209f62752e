package text

import (
	"strings"
	"testing"
)

func TestRemoveFollowingSentences(t *testing.T) {
	ctx := "[Document Metadata: q]\n\n" + MarkerPreceding + "\nEarlier.\n\n" +
		MarkerInterest + "\nThe sentence.\n\n" + MarkerFollowing + "\nLater."

	stripped := RemoveFollowingSentences(ctx)

	if strings.Contains(stripped, MarkerFollowing) {
		t.Error("following marker still present")
	}
	if strings.Contains(stripped, "Later.") {
		t.Error("following sentence still present")
	}
	if !strings.Contains(stripped, "The sentence.") {
		t.Error("sentence of interest removed")
	}

	// Idempotent
	if again := RemoveFollowingSentences(stripped); again != stripped {
		t.Error("second removal changed the context")
	}
}

func TestRemoveFollowingSentences_NoBlock(t *testing.T) {
	ctx := MarkerInterest + "\nOnly the sentence."
	if got := RemoveFollowingSentences(ctx); got != ctx {
		t.Errorf("context without following block changed: %q", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := map[string]int{
		"":         0,
		"abc":      0,
		"abcd":     1,
		"abcdefgh": 2,
	}
	for input, want := range cases {
		if got := EstimateTokens(input); got != want {
			t.Errorf("EstimateTokens(%q): expected %d, got %d", input, want, got)
		}
	}
}
