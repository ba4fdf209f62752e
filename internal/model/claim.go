package model

// ContextualSentence is a single sentence from the source text together with
// the context window shown to the judge. Immutable once built; OriginalIndex
// ties every downstream artifact back to the source position.
type ContextualSentence struct {
	OriginalSentence string `json:"original_sentence"` // The raw sentence from the source text
	ContextForJudge  string `json:"context_for_judge"` // Formatted window: metadata, preceding, marker, following
	Metadata         string `json:"metadata,omitempty"`
	OriginalIndex    int    `json:"original_index"` // Position in the merged-sentence sequence (0-based)
}

// SelectedContent is a sentence judged to contain verifiable content.
// ProcessedSentence may be a rewrite keeping only the verifiable portion.
type SelectedContent struct {
	ProcessedSentence string             `json:"processed_sentence"`
	Source            ContextualSentence `json:"source"`
}

// DisambiguatedContent is selected content with partial names, acronyms and
// references resolved against preceding context.
type DisambiguatedContent struct {
	DisambiguatedSentence string          `json:"disambiguated_sentence"`
	Source                SelectedContent `json:"source"`
}

// PotentialClaim is one atomic proposition decomposed from a disambiguated
// sentence. A single sentence yields zero or more claims.
type PotentialClaim struct {
	ClaimText             string `json:"claim_text"`
	DisambiguatedSentence string `json:"disambiguated_sentence"`
	OriginalSentence      string `json:"original_sentence"`
	OriginalIndex         int    `json:"original_index"`
}

// ValidatedClaim is a potential claim that passed the standalone-sentence
// check. Only claims with IsCompleteDeclarative true survive the pipeline.
type ValidatedClaim struct {
	ClaimText             string `json:"claim_text"`
	IsCompleteDeclarative bool   `json:"is_complete_declarative"`
	DisambiguatedSentence string `json:"disambiguated_sentence"`
	OriginalSentence      string `json:"original_sentence"`
	OriginalIndex         int    `json:"original_index"`
}
