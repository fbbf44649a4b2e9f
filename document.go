package mnrules

import (
	"context"
	"strings"
)

// Entry is one rule's slot in the output document. Exactly one of Page
// and Err is set.
type Entry struct {
	Reference RuleReference
	Page      *RulePage
	Err       error
}

// Markdown renders the entry, or its inline error marker on failure.
func (e Entry) Markdown() string {
	if e.Err != nil {
		return e.Err.Error() + "\n"
	}
	if e.Page == nil {
		return ""
	}
	return e.Page.Markdown()
}

// Document accumulates rule entries in discovery order.
type Document struct {
	Entries []Entry

	// Fault is set when the run aborted before any page was scraped.
	Fault *Fault
}

// Append adds an entry to the end of the document.
func (d *Document) Append(e Entry) {
	d.Entries = append(d.Entries, e)
}

// Abort records a run-level fault.
func (d *Document) Abort(kind FaultKind, err error) {
	d.Fault = &Fault{Kind: kind, Err: err}
}

// Failed returns the number of entries that carry an error.
func (d *Document) Failed() int {
	var n int
	for _, e := range d.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Markdown renders the document. A faulted document renders as the fault
// marker alone.
func (d *Document) Markdown() string {
	if d.Fault != nil {
		return d.Fault.Error() + "\n"
	}
	var b strings.Builder
	for _, e := range d.Entries {
		b.WriteString(e.Markdown())
	}
	return b.String()
}

// DocumentWriter persists a rendered document.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}
