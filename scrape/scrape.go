// Package scrape runs the index-to-document pipeline: it fetches the rule
// index, resolves rule references, renders and extracts each rule page in
// order, and accumulates the results into a document.
package scrape

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/mnrules"
)

// Default pauses between requests.
const (
	DefaultRenderDelay  = 2 * time.Second
	DefaultSectionDelay = 1 * time.Second
	DefaultRuleDelay    = 1 * time.Second
)

// Scraper orchestrates a single sequential scrape run.
type Scraper struct {
	// IndexFetcher retrieves the index page without rendering.
	IndexFetcher mnrules.Fetcher

	// Browser renders rule detail pages. Scrape launches it once and
	// closes it before returning, on every path.
	Browser mnrules.Browser

	Resolver  mnrules.IndexResolver
	Extractor mnrules.RuleExtractor

	// Pacer performs the fixed pauses. Defaults to Sleeper.
	Pacer mnrules.Pacer

	// RateLimiter, if set, is consulted before every rule page fetch.
	RateLimiter mnrules.DomainLimiter

	// BaseURL is used to build and resolve rule URLs.
	BaseURL string

	// RenderDelay follows each page fetch, SectionDelay each extracted
	// section, and RuleDelay each rule. Zero disables the pause.
	RenderDelay  time.Duration
	SectionDelay time.Duration
	RuleDelay    time.Duration
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Reference mnrules.RuleReference
	Page      *mnrules.RulePage
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressResolved ProgressType = iota
	ProgressStarted
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scrape runs the pipeline for indexURL. Run-level failures are recorded
// as a fault on the returned document; page-level failures become inline
// entries and the run continues. The returned error is non-nil only when
// ctx is canceled, in which case the document holds the entries completed
// so far.
func (s *Scraper) Scrape(ctx context.Context, indexURL string, progress ProgressFunc) (*mnrules.Document, error) {
	defer func() { _ = s.Browser.Close() }()

	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	doc := &mnrules.Document{}

	html, err := s.IndexFetcher.Fetch(ctx, indexURL)
	if err != nil {
		doc.Abort(mnrules.FaultIndexFetch, err)
		return doc, ctx.Err()
	}

	refs, err := s.Resolver.Resolve(html, s.BaseURL)
	if err != nil || len(refs) == 0 {
		doc.Abort(mnrules.FaultNoRules, err)
		return doc, nil
	}

	total := len(refs)
	for i, ref := range refs {
		notify(ProgressEvent{
			Type:      ProgressResolved,
			Completed: i + 1,
			Total:     total,
			Reference: ref,
		})
	}

	if err := s.Browser.Launch(ctx); err != nil {
		doc.Abort(mnrules.FaultBrowserInit, err)
		return doc, ctx.Err()
	}

	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return doc, err
		}

		page, err := s.scrapePage(ctx, ref)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return doc, ctxErr
		}

		entry := mnrules.Entry{Reference: ref}
		if err != nil {
			entry.Err = &mnrules.PageError{URL: ref.URL, Err: err}
			notify(ProgressEvent{
				Type:      ProgressFailed,
				Completed: i + 1,
				Total:     total,
				Reference: ref,
				Error:     entry.Err,
			})
		} else {
			entry.Page = page
			notify(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: i + 1,
				Total:     total,
				Reference: ref,
				Page:      page,
			})
		}
		doc.Append(entry)

		if err := s.pause(ctx, s.RuleDelay); err != nil {
			return doc, err
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return doc, nil
}

// scrapePage renders and extracts one rule page, pausing after the fetch
// and after each discovered section.
func (s *Scraper) scrapePage(ctx context.Context, ref mnrules.RuleReference) (*mnrules.RulePage, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(ref.URL)); err != nil {
			return nil, err
		}
	}

	html, err := s.Browser.Fetch(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	if err := s.pause(ctx, s.RenderDelay); err != nil {
		return nil, err
	}

	page, err := s.Extractor.Extract(html, ref.URL, s.BaseURL)
	if err != nil {
		return nil, err
	}

	for range page.Sections {
		if err := s.pause(ctx, s.SectionDelay); err != nil {
			return nil, err
		}
	}

	return page, nil
}

func (s *Scraper) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	pacer := s.Pacer
	if pacer == nil {
		pacer = Sleeper{}
	}
	return pacer.Pause(ctx, d)
}

// hostOf returns the host of rawURL, or rawURL itself if it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
