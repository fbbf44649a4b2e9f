package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mnrules"
)

// Ensure LoggingWriter implements mnrules.DocumentWriter.
var _ mnrules.DocumentWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a DocumentWriter with logging.
type LoggingWriter struct {
	next   mnrules.DocumentWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next mnrules.DocumentWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer.
func (w *LoggingWriter) WriteDocument(ctx context.Context, doc *mnrules.Document) (err error) {
	defer func(begin time.Time) {
		var entries, failed int
		if doc != nil {
			entries = len(doc.Entries)
			failed = doc.Failed()
		}
		w.logger.Info("write document",
			"entries", entries,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc)
}
