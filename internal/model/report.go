package model

import (
	"fmt"
	"time"
)

// FactCheckReport is the final output of the full pipeline
type FactCheckReport struct {
	Answer         string    `json:"answer"`          // The text claims were extracted from
	ClaimsVerified int       `json:"claims_verified"` // Number of claims that went through verification
	Supported      int       `json:"supported"`
	Refuted        int       `json:"refuted"`
	Verdicts       []Verdict `json:"verdicts"`
	Summary        string    `json:"summary"`
	Timestamp      time.Time `json:"timestamp"`
}

// BuildReport aggregates verdicts into counts and a summary line.
// An empty verdict set is a normal outcome, not an error.
func BuildReport(answer string, verdicts []Verdict) FactCheckReport {
	var supported, refuted int
	for _, v := range verdicts {
		switch v.Result {
		case ResultSupported:
			supported++
		case ResultRefuted:
			refuted++
		}
	}

	summary := fmt.Sprintf(
		"Fact-check complete. Of %d claims verified: %d supported, %d refuted",
		len(verdicts), supported, refuted,
	)

	return FactCheckReport{
		Answer:         answer,
		ClaimsVerified: len(verdicts),
		Supported:      supported,
		Refuted:        refuted,
		Verdicts:       verdicts,
		Summary:        summary,
		Timestamp:      time.Now().UTC(),
	}
}
