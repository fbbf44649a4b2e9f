// Package goquery implements HTML parsing for Revisor index and rule pages
// using github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mnrules"
)

// ruleLinkRe matches the rule citation used in index page anchor text.
var ruleLinkRe = regexp.MustCompile(`Minn\.\s+Rules\s+(\d+\.\d+)`)

var _ mnrules.IndexResolver = (*IndexResolver)(nil)

// IndexResolver finds rule links on a Revisor topic index page.
type IndexResolver struct{}

// NewIndexResolver creates a new IndexResolver.
func NewIndexResolver() *IndexResolver {
	return &IndexResolver{}
}

// Resolve returns one reference for every anchor whose text cites
// "Minn. Rules {number}". Detail URLs are synthesized from the rule number,
// not taken from the anchor's href.
func (r *IndexResolver) Resolve(html string, baseURL string) ([]mnrules.RuleReference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mnrules.Errorf(mnrules.EINVALID, "failed to parse HTML: %v", err)
	}

	var refs []mnrules.RuleReference
	var resolveErr error
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		m := ruleLinkRe.FindStringSubmatch(sel.Text())
		if m == nil {
			return true
		}

		u, err := mnrules.RuleURL(baseURL, m[1])
		if err != nil {
			resolveErr = err
			return false
		}

		refs = append(refs, mnrules.RuleReference{ID: m[1], URL: u})
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}

	return refs, nil
}
