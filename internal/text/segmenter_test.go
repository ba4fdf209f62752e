package text

import (
	"strings"
	"testing"
)

func TestSplitSentences_Basic(t *testing.T) {
	sentences := SplitSentences("NASA was established in 1958. It runs the space program. Does it launch rockets? Yes!")

	expected := []string{
		"NASA was established in 1958.",
		"It runs the space program.",
		"Does it launch rockets?",
		"Yes!",
	}

	if len(sentences) != len(expected) {
		t.Fatalf("expected %d sentences, got %d: %v", len(expected), len(sentences), sentences)
	}
	for i, want := range expected {
		if sentences[i] != want {
			t.Errorf("sentence %d: expected %q, got %q", i, want, sentences[i])
		}
	}
}

func TestSplitSentences_Decimals(t *testing.T) {
	sentences := SplitSentences("The budget was 3.5 billion dollars. It grew later.")

	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if !strings.Contains(sentences[0], "3.5 billion") {
		t.Errorf("decimal split apart: %q", sentences[0])
	}
}

func TestSplitSentences_ClosingQuotes(t *testing.T) {
	sentences := SplitSentences(`He said "it works." Then he left.`)

	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != `He said "it works."` {
		t.Errorf("expected closing quote kept with sentence, got %q", sentences[0])
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	sentences := SplitSentences("a trailing fragment without punctuation")

	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
}

func TestMergeFragments(t *testing.T) {
	merged := MergeFragments([]string{"Hi.", "This is a longer sentence about NASA."})

	if len(merged) != 1 {
		t.Fatalf("expected 1 merged sentence, got %d: %v", len(merged), merged)
	}
	if merged[0] != "Hi. This is a longer sentence about NASA." {
		t.Errorf("unexpected merge result: %q", merged[0])
	}
}

func TestMergeFragments_TrailingFragment(t *testing.T) {
	merged := MergeFragments([]string{"This is a complete sentence.", "Ok."})

	// Nothing follows the short fragment, so it stands alone
	if len(merged) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(merged), merged)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s := NewSegmenter(5, 5)

	if got := s.Segment("", ""); len(got) != 0 {
		t.Errorf("expected no sentences for empty input, got %d", len(got))
	}
	if got := s.Segment("   \n\n  ", ""); len(got) != 0 {
		t.Errorf("expected no sentences for whitespace input, got %d", len(got))
	}
}

func TestSegment_IndicesAndContext(t *testing.T) {
	s := NewSegmenter(1, 1)

	input := "First sentence here. Second sentence here. Third sentence here."
	sentences := s.Segment(input, "Question: what happened?")

	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}

	for i, cs := range sentences {
		if cs.OriginalIndex != i {
			t.Errorf("sentence %d: expected index %d, got %d", i, i, cs.OriginalIndex)
		}
	}

	mid := sentences[1].ContextForJudge
	if !strings.Contains(mid, "[Document Metadata: Question: what happened?]") {
		t.Errorf("metadata missing from context: %q", mid)
	}
	if !strings.Contains(mid, MarkerPreceding) || !strings.Contains(mid, "First sentence here.") {
		t.Errorf("preceding block missing: %q", mid)
	}
	if !strings.Contains(mid, MarkerInterest) || !strings.Contains(mid, "Second sentence here.") {
		t.Errorf("sentence of interest missing: %q", mid)
	}
	if !strings.Contains(mid, MarkerFollowing) || !strings.Contains(mid, "Third sentence here.") {
		t.Errorf("following block missing: %q", mid)
	}

	// First sentence has no preceding block, last has no following block
	if strings.Contains(sentences[0].ContextForJudge, MarkerPreceding) {
		t.Error("first sentence should have no preceding block")
	}
	if strings.Contains(sentences[2].ContextForJudge, MarkerFollowing) {
		t.Error("last sentence should have no following block")
	}
}

func TestSegment_ParagraphBoundaries(t *testing.T) {
	s := NewSegmenter(5, 5)

	sentences := s.Segment("First paragraph sentence.\n\nSecond paragraph sentence.", "")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences across paragraphs, got %d", len(sentences))
	}
}

func TestSegment_ZeroFollowingWindow(t *testing.T) {
	s := NewSegmenter(5, 0)

	sentences := s.Segment("First sentence here. Second sentence here.", "")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	if strings.Contains(sentences[0].ContextForJudge, MarkerFollowing) {
		t.Error("following block present despite zero window")
	}
}
