// Package vote implements consensus voting over repeated noisy judge
// attempts. A result is accepted only when a quorum of independent attempts
// succeeds; anything below the quorum drops the item entirely. Precision
// over recall: dropping an ambiguous sentence beats propagating a wrong
// interpretation of it.
package vote

import (
	"context"
	"log/slog"
	"sync"
)

// Attempt performs one noisy extraction attempt for an item. The returned
// bool reports success; judge-call failures count as unsuccessful attempts,
// never as errors.
type Attempt[T, R any] func(ctx context.Context, item T) (R, bool)

// Factory builds the stage artifact from the winning payload and the
// original item.
type Factory[T, R, O any] func(payload R, item T) O

// Config tunes one voting invocation
type Config struct {
	Completions  int // Independent attempts per item
	MinSuccesses int // Quorum; below it the item is dropped
}

// Process runs each item through Completions concurrent attempts and keeps
// it only if at least MinSuccesses succeed. The winning payload is the
// first successful attempt in issue order, not a majority text; changing
// this changes which sentence variant survives under disagreement. Items
// are processed sequentially relative to each other; only the attempts
// within one item run concurrently, and all of them are awaited before the
// quorum is evaluated.
func Process[T, R, O any](ctx context.Context, items []T, cfg Config, attempt Attempt[T, R], build Factory[T, R, O]) []O {
	completions := cfg.Completions
	if completions < 1 {
		completions = 1
	}
	minSuccesses := cfg.MinSuccesses
	if minSuccesses < 1 {
		minSuccesses = 1
	}

	var results []O

	for _, item := range items {
		payloads := make([]R, completions)
		succeeded := make([]bool, completions)

		var wg sync.WaitGroup
		for i := 0; i < completions; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				payloads[i], succeeded[i] = attempt(ctx, item)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, ok := range succeeded {
			if ok {
				successes++
			}
		}

		if successes < minSuccesses {
			slog.Info("consensus not reached, dropping item",
				slog.Int("successes", successes),
				slog.Int("required", minSuccesses))
			continue
		}

		for i, ok := range succeeded {
			if ok {
				results = append(results, build(payloads[i], item))
				break
			}
		}
	}

	return results
}
