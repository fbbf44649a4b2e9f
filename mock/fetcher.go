package mock

import (
	"context"

	"github.com/fwojciec/mnrules"
)

var _ mnrules.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of mnrules.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ mnrules.Browser = (*Browser)(nil)

// Browser is a mock implementation of mnrules.Browser.
type Browser struct {
	LaunchFn func(ctx context.Context) error
	FetchFn  func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (b *Browser) Launch(ctx context.Context) error {
	return b.LaunchFn(ctx)
}

func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	return b.FetchFn(ctx, url)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}
