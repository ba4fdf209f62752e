package model

// VerificationResult is the outcome of checking one claim
type VerificationResult string

const (
	ResultSupported VerificationResult = "Supported"
	ResultRefuted   VerificationResult = "Refuted"
)

// Valid reports whether the value is one of the known results. Judge output
// is parsed at the boundary; anything else is treated as a failed call.
func (r VerificationResult) Valid() bool {
	return r == ResultSupported || r == ResultRefuted
}

// Verdict is the terminal artifact for one claim: the determination, the
// reasoning behind it, and every evidence source gathered along the way.
type Verdict struct {
	ClaimText             string             `json:"claim_text"`
	DisambiguatedSentence string             `json:"disambiguated_sentence"`
	OriginalSentence      string             `json:"original_sentence"`
	OriginalIndex         int                `json:"original_index"`
	Result                VerificationResult `json:"result"`
	Reasoning             string             `json:"reasoning"`
	Sources               []Evidence         `json:"sources"`
}
