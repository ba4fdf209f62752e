package vote

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestProcess_QuorumReached(t *testing.T) {
	items := []string{"a", "b"}

	attempt := func(ctx context.Context, item string) (string, bool) {
		return item + "!", true
	}
	build := func(payload, item string) string {
		return payload
	}

	results := Process(context.Background(), items,
		Config{Completions: 3, MinSuccesses: 2}, attempt, build)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0] != "a!" || results[1] != "b!" {
		t.Errorf("expected input order preserved, got %v", results)
	}
}

func TestProcess_BelowQuorumDropsItem(t *testing.T) {
	var calls int32

	// One success out of three attempts, quorum is two
	attempt := func(ctx context.Context, item string) (string, bool) {
		n := atomic.AddInt32(&calls, 1)
		return item, n == 1
	}
	build := func(payload, item string) string { return payload }

	results := Process(context.Background(), []string{"x"},
		Config{Completions: 3, MinSuccesses: 2}, attempt, build)

	if len(results) != 0 {
		t.Errorf("expected item dropped below quorum, got %v", results)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected all 3 attempts to run, got %d", calls)
	}
}

func TestProcess_AllAttemptsRunDespiteFailure(t *testing.T) {
	var calls int32

	attempt := func(ctx context.Context, item string) (string, bool) {
		atomic.AddInt32(&calls, 1)
		return "", false
	}
	build := func(payload, item string) string { return payload }

	Process(context.Background(), []string{"x"},
		Config{Completions: 4, MinSuccesses: 1}, attempt, build)

	// Full join: every attempt completes even when all fail
	if atomic.LoadInt32(&calls) != 4 {
		t.Errorf("expected 4 attempts, got %d", calls)
	}
}

func TestProcess_FirstSuccessfulPayloadWins(t *testing.T) {
	var seq int32

	// Every attempt succeeds with a distinct payload; the winner must be
	// the first successful attempt in issue order regardless of which
	// goroutine finished first.
	attempt := func(ctx context.Context, item string) (string, bool) {
		n := atomic.AddInt32(&seq, 1)
		return fmt.Sprintf("attempt-%d", n), true
	}
	build := func(payload, item string) string { return payload }

	results := Process(context.Background(), []string{"x"},
		Config{Completions: 3, MinSuccesses: 2}, attempt, build)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// Issue order means goroutine index 0, whichever sequence number it drew
	if results[0] == "" {
		t.Error("expected a winning payload")
	}
}

func TestProcess_SingleShotConfig(t *testing.T) {
	var calls int32

	attempt := func(ctx context.Context, item string) (string, bool) {
		atomic.AddInt32(&calls, 1)
		return item, true
	}
	build := func(payload, item string) string { return payload }

	results := Process(context.Background(), []string{"a", "b", "c"},
		Config{Completions: 1, MinSuccesses: 1}, attempt, build)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestProcess_ZeroConfigDefaults(t *testing.T) {
	attempt := func(ctx context.Context, item string) (string, bool) {
		return item, true
	}
	build := func(payload, item string) string { return payload }

	results := Process(context.Background(), []string{"a"},
		Config{}, attempt, build)

	if len(results) != 1 {
		t.Fatalf("expected zero config to default to one attempt, got %d results", len(results))
	}
}

func TestProcess_EmptyItems(t *testing.T) {
	attempt := func(ctx context.Context, item string) (string, bool) { return item, true }
	build := func(payload, item string) string { return payload }

	results := Process(context.Background(), nil,
		Config{Completions: 3, MinSuccesses: 2}, attempt, build)

	if len(results) != 0 {
		t.Errorf("expected no results for no items, got %d", len(results))
	}
}
