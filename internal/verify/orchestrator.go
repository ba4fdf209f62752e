package verify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/veracitydev/veracity/internal/model"
)

// Orchestrator fans validated claims out to independent verification loops.
// Claims share nothing; each loop owns its evidence and query history.
type Orchestrator struct {
	verifier *Verifier
}

// NewOrchestrator creates a verification orchestrator
func NewOrchestrator(v *Verifier) *Orchestrator {
	return &Orchestrator{verifier: v}
}

// VerifyAll verifies every claim concurrently and returns verdicts in claim
// order. An empty claim set returns nil without spawning anything.
func (o *Orchestrator) VerifyAll(ctx context.Context, claims []model.ValidatedClaim) []model.Verdict {
	if len(claims) == 0 {
		slog.Info("no claims to verify")
		return nil
	}

	slog.Info("verifying claims", slog.Int("count", len(claims)))

	verdicts := make([]model.Verdict, len(claims))
	var wg sync.WaitGroup

	for i, claim := range claims {
		wg.Add(1)
		go func(i int, claim model.ValidatedClaim) {
			defer wg.Done()
			verdicts[i] = o.verifier.Verify(ctx, claim)
		}(i, claim)
	}

	wg.Wait()
	return verdicts
}
