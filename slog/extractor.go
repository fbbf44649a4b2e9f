package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mnrules"
)

// Ensure LoggingResolver implements mnrules.IndexResolver.
var _ mnrules.IndexResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps an IndexResolver with logging.
type LoggingResolver struct {
	next   mnrules.IndexResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next mnrules.IndexResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the reference count.
func (r *LoggingResolver) Resolve(html string, baseURL string) (refs []mnrules.RuleReference, err error) {
	defer func(begin time.Time) {
		r.logger.Info("resolve index",
			"base", baseURL,
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(html, baseURL)
}

// Ensure LoggingExtractor implements mnrules.RuleExtractor.
var _ mnrules.RuleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RuleExtractor with logging.
type LoggingExtractor struct {
	next   mnrules.RuleExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next mnrules.RuleExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the title and
// section count.
func (e *LoggingExtractor) Extract(html string, ruleURL string, baseURL string) (page *mnrules.RulePage, err error) {
	defer func(begin time.Time) {
		var title string
		var sections int
		if page != nil {
			title = page.Title
			sections = len(page.Sections)
		}
		e.logger.Info("extract",
			"url", ruleURL,
			"title", title,
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, ruleURL, baseURL)
}
