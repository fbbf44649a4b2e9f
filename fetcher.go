package mnrules

import (
	"context"
	"time"
)

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Browser is a Fetcher backed by a browser session that is started
// explicitly. Fetch executes client-side rendering before returning HTML.
type Browser interface {
	Fetcher

	// Launch starts the browser session. Fetch fails until Launch succeeds.
	// Close must be safe to call whether or not Launch was ever called.
	Launch(ctx context.Context) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Pacer inserts fixed pauses between requests.
type Pacer interface {
	// Pause blocks for d or until the context is canceled.
	Pause(ctx context.Context, d time.Duration) error
}
