package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/mnrules"
)

var _ mnrules.Pacer = Sleeper{}

// Sleeper pauses on a real timer.
type Sleeper struct{}

// Pause blocks for d or until ctx is done.
func (Sleeper) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
