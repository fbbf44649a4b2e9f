package mock

import (
	"context"

	"github.com/fwojciec/mnrules"
)

var _ mnrules.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of mnrules.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *mnrules.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *mnrules.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}
