package effects

import (
	"context"
	"errors"
	"time"
)

// Run calls frame at a fixed rate of fps until ctx is cancelled. Frames that
// fall behind are dropped rather than queued.
func Run(ctx context.Context, fps int, frame func()) error {
	if fps <= 0 {
		return errors.New("effects: fps must be positive")
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame()
		}
	}
}

// Advance runs n frames back to back without waiting, painting nothing.
func (s *Scene) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Frame(Discard, Discard)
	}
}
