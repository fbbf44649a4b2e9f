// Package rod implements mnrules.Browser with headless Chrome driven by
// github.com/go-rod/rod.
package rod

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mnrules"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page navigation and render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements mnrules.Browser at compile time.
var _ mnrules.Browser = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The browser process is started by Launch, not by NewFetcher, so a Fetcher
// can be created and closed without ever starting Chrome.
type Fetcher struct {
	timeout     time.Duration
	managerOpts []ManagerOption

	mu      sync.Mutex
	manager *BrowserManager
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher. Launch must be called before Fetch,
// and Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Launch starts headless Chrome. Calling Launch on a running Fetcher is a
// no-op. Returns an error if Chrome/Chromium cannot be found or launched.
func (f *Fetcher) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.closed.Load() {
		return mnrules.Errorf(mnrules.EINVALID, "fetcher is closed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.manager != nil {
		return nil
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return err
	}
	f.manager = manager
	return nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() {
		return "", mnrules.Errorf(mnrules.EINVALID, "fetcher is closed")
	}

	f.mu.Lock()
	manager := f.manager
	f.mu.Unlock()
	if manager == nil {
		return "", mnrules.Errorf(mnrules.EINVALID, "browser not launched")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer manager.IncrementPageCount()

	page = page.Context(ctx)

	width, height := manager.WindowSize()
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  width,
		Height: height,
	}); err != nil {
		return "", err
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: manager.UserAgent(),
	}); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times
// and on a Fetcher that was never launched.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.manager == nil {
		return nil
	}
	err := f.manager.Close()
	f.manager = nil
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 if the
// browser is not running.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.manager == nil {
		return 0
	}
	return f.manager.LauncherPID()
}
