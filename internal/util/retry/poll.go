package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotReady is returned by Poll when the condition did not become true
// within the attempt bound.
var ErrNotReady = errors.New("condition not ready within polling bound")

// Condition reports whether the awaited state has been reached. A non-nil
// error aborts polling immediately.
type Condition func(ctx context.Context) (done bool, err error)

// Poll checks cond every interval, up to maxAttempts times. The first check
// happens immediately, not after the first interval. It returns nil once the
// condition reports done, the condition's error if it fails, or ErrNotReady
// when maxAttempts checks have all reported not-done.
func Poll(ctx context.Context, interval time.Duration, maxAttempts int, cond Condition) error {
	if maxAttempts < 1 {
		return fmt.Errorf("maxAttempts must be >= 1, got %d", maxAttempts)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		done, err := cond(ctx)
		if err != nil {
			return fmt.Errorf("polling aborted on attempt %d: %w", attempt, err)
		}
		if done {
			return nil
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(interval):
			}
		}
	}

	return fmt.Errorf("%w after %d attempts", ErrNotReady, maxAttempts)
}
