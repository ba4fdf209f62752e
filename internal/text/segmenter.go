// Package text holds the sentence segmenter and the context-window helpers
// shared by the extraction and verification pipelines.
package text

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/veracitydev/veracity/internal/model"
)

// Context window markers. Downstream stages locate and strip blocks by
// these exact strings, so they are part of the segmenter's contract.
const (
	MarkerPreceding = "[Preceding Sentences:]"
	MarkerInterest  = "[Sentence of Interest for current task:]"
	MarkerFollowing = "[Following Sentences:]"
)

// minSentenceLen is the fragment threshold: anything shorter is merged into
// the following sentence (bare bullets, initials, stray punctuation).
const minSentenceLen = 5

var paragraphSplit = regexp.MustCompile(`\n[ \t]*\n`)

// Segmenter splits raw text into contextual sentences
type Segmenter struct {
	preceding int
	following int
}

// NewSegmenter creates a segmenter with the given context window sizes
func NewSegmenter(preceding, following int) *Segmenter {
	return &Segmenter{preceding: preceding, following: following}
}

// Segment splits text into sentences and builds a context window for each.
// Empty input yields an empty slice, never an error.
func (s *Segmenter) Segment(answerText, metadata string) []model.ContextualSentence {
	var raw []string
	for _, paragraph := range paragraphSplit.Split(answerText, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		// Tokenize per paragraph so sentence boundaries never cross a break
		raw = append(raw, SplitSentences(paragraph)...)
	}

	merged := MergeFragments(raw)

	sentences := make([]model.ContextualSentence, 0, len(merged))
	for i, sentence := range merged {
		sentences = append(sentences, model.ContextualSentence{
			OriginalSentence: sentence,
			ContextForJudge:  s.buildContext(merged, i, metadata),
			Metadata:         metadata,
			OriginalIndex:    i,
		})
	}

	slog.Debug("segmented text", slog.Int("sentences", len(sentences)))
	return sentences
}

// buildContext assembles the window around sentence i. Missing blocks are
// omitted entirely; there are no empty headers.
func (s *Segmenter) buildContext(sentences []string, i int, metadata string) string {
	var parts []string

	if metadata != "" {
		parts = append(parts, fmt.Sprintf("[Document Metadata: %s]", metadata))
	}

	start := i - s.preceding
	if start < 0 {
		start = 0
	}
	if start < i {
		parts = append(parts, "\n"+MarkerPreceding)
		parts = append(parts, sentences[start:i]...)
	}

	parts = append(parts, fmt.Sprintf("\n%s\n%s", MarkerInterest, sentences[i]))

	end := i + 1 + s.following
	if end > len(sentences) {
		end = len(sentences)
	}
	if i+1 < end {
		parts = append(parts, "\n"+MarkerFollowing)
		parts = append(parts, sentences[i+1:end]...)
	}

	return strings.Join(parts, "\n")
}

// SplitSentences tokenizes a paragraph into sentences. A sentence ends at
// '.', '!' or '?' (plus any trailing closing quotes or brackets) followed by
// whitespace. The trailing remainder is kept whatever its length; fragment
// filtering happens later in MergeFragments.
func SplitSentences(paragraph string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(paragraph)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Carry closing quotes/brackets with the sentence
		j := i + 1
		for j < len(runes) && isClosing(runes[j]) {
			current.WriteRune(runes[j])
			j++
		}

		if j >= len(runes) || unicode.IsSpace(runes[j]) {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
			i = j
		} else {
			// Mid-token terminator (abbreviation, decimal, URL): keep going
			i = j - 1
		}
	}

	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}

// MergeFragments folds sentences shorter than the fragment threshold into
// the sentence that follows, repeating until the accumulated text reaches
// the threshold or input is exhausted.
func MergeFragments(sentences []string) []string {
	var merged []string

	i := 0
	for i < len(sentences) {
		current := strings.TrimSpace(sentences[i])

		for utf8.RuneCountInString(current) < minSentenceLen && i+1 < len(sentences) {
			i++
			current += " " + strings.TrimSpace(sentences[i])
		}

		if current != "" {
			merged = append(merged, current)
		}
		i++
	}

	return merged
}
