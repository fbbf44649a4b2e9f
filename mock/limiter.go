package mock

import (
	"context"
	"time"

	"github.com/fwojciec/mnrules"
)

var _ mnrules.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of mnrules.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ mnrules.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of mnrules.Pacer.
type Pacer struct {
	PauseFn func(ctx context.Context, d time.Duration) error
}

func (p *Pacer) Pause(ctx context.Context, d time.Duration) error {
	return p.PauseFn(ctx, d)
}
