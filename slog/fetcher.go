// Package slog provides logging decorators for mnrules services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mnrules"
)

// Ensure LoggingFetcher implements mnrules.Fetcher.
var _ mnrules.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   mnrules.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mnrules.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingBrowser implements mnrules.Browser.
var _ mnrules.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with logging of the session lifecycle
// and every rendered fetch.
type LoggingBrowser struct {
	next   mnrules.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next mnrules.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Launch logs browser startup.
func (b *LoggingBrowser) Launch(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		b.logger.Info("browser launch",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Launch(ctx)
}

// Fetch logs the rendered fetch.
func (b *LoggingBrowser) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		b.logger.Info("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Fetch(ctx, url)
}

// Close logs browser shutdown.
func (b *LoggingBrowser) Close() (err error) {
	defer func() {
		b.logger.Info("browser close", "err", err)
	}()
	return b.next.Close()
}
