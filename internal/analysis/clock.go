package analysis

import (
	"context"
	"time"
)

// Clock abstracts wall-clock time so retry and pacing logic can be
// tested deterministically.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until the context is done, returning the
	// context's error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
