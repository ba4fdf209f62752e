package model

// Evidence is a single retrieved snippet supporting or contradicting a claim
type Evidence struct {
	URL           string `json:"url"`
	Text          string `json:"text"`
	Title         string `json:"title,omitempty"`
	IsInfluential bool   `json:"is_influential"` // Marked by the evaluation judge as verdict-driving
}

// IntermediateAssessment is the sufficiency judge's view of the evidence
// gathered so far; MissingAspects steer the next query.
type IntermediateAssessment struct {
	NeedsMoreEvidence bool     `json:"needs_more_evidence"`
	MissingAspects    []string `json:"missing_aspects,omitempty"`
}

// DedupeEvidenceByURL collapses evidence to one entry per URL. The first
// occurrence keeps its position; later entries with the same URL overwrite
// the value (last-write-wins).
func DedupeEvidenceByURL(items []Evidence) []Evidence {
	if len(items) == 0 {
		return nil
	}

	pos := make(map[string]int, len(items))
	out := make([]Evidence, 0, len(items))

	for _, item := range items {
		if i, seen := pos[item.URL]; seen {
			out[i] = item
			continue
		}
		pos[item.URL] = len(out)
		out = append(out, item)
	}

	return out
}
