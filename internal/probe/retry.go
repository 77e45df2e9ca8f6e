package probe

import (
	"context"
	"fmt"
	"time"
)

// Retry reprobes a flaky target a fixed number of times with a constant
// backoff. The last failure is annotated with the attempt count.
type Retry struct {
	Inner    Prober
	Attempts int
	Backoff  time.Duration
}

func (r *Retry) Probe(ctx context.Context) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		last = r.Inner.Probe(ctx)
		if last == nil {
			return nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	return fmt.Errorf("%w (after %d attempts)", last, attempts)
}
