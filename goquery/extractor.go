package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mnrules"
)

// sectionIDRe matches the dotted rule code at the start of a section id,
// e.g. "7511.0020" in "7511.0020-note" or all of "7511.0020.1".
var sectionIDRe = regexp.MustCompile(`^\d+(?:\.\d+)+`)

const (
	headingSelector = "h1, h2, h3, h4, h5, h6"
	sectionSelector = "div.section"
)

var _ mnrules.RuleExtractor = (*RuleExtractor)(nil)

// RuleExtractor pulls the title and section text out of a rendered
// Revisor rule page.
type RuleExtractor struct {
	converter mnrules.Converter
}

// ExtractorOption configures a RuleExtractor.
type ExtractorOption func(*RuleExtractor)

// WithSectionConverter renders section bodies through c instead of using
// their plain visible text.
func WithSectionConverter(c mnrules.Converter) ExtractorOption {
	return func(e *RuleExtractor) {
		e.converter = c
	}
}

// NewRuleExtractor creates a new RuleExtractor.
func NewRuleExtractor(opts ...ExtractorOption) *RuleExtractor {
	e := &RuleExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses a rule detail page.
func (e *RuleExtractor) Extract(html string, ruleURL string, baseURL string) (*mnrules.RulePage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mnrules.Errorf(mnrules.EINVALID, "failed to parse HTML: %v", err)
	}

	ruleID := mnrules.RuleIDFromURL(ruleURL)

	sections, err := e.extractSections(doc, baseURL)
	if err != nil {
		return nil, err
	}

	return &mnrules.RulePage{
		Title:    findTitle(doc, ruleID),
		URL:      ruleURL,
		Sections: sections,
	}, nil
}

// findTitle returns the first heading mentioning ruleID, or ruleID itself.
// An empty ruleID matches no heading.
func findTitle(doc *goquery.Document, ruleID string) string {
	title := ruleID
	doc.Find(headingSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if ruleID != "" && strings.Contains(text, ruleID) {
			title = strings.TrimSpace(text)
			return false
		}
		return true
	})
	return title
}

func (e *RuleExtractor) extractSections(doc *goquery.Document, baseURL string) ([]mnrules.RuleSection, error) {
	var sections []mnrules.RuleSection
	var sectionErr error

	doc.Find(sectionSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id, _ := sel.Attr("id")
		sectionID := sectionIDRe.FindString(id)
		if sectionID == "" {
			return true
		}

		u, err := sectionURL(sel, baseURL, sectionID)
		if err != nil {
			sectionErr = err
			return false
		}

		text, err := e.sectionText(sel)
		if err != nil {
			sectionErr = err
			return false
		}

		sections = append(sections, mnrules.RuleSection{
			ID:   sectionID,
			URL:  u,
			Text: text,
		})
		return true
	})
	if sectionErr != nil {
		return nil, sectionErr
	}

	return sections, nil
}

func (e *RuleExtractor) sectionText(sel *goquery.Selection) (string, error) {
	if e.converter == nil {
		return strings.TrimSpace(sel.Text()), nil
	}
	inner, err := sel.Html()
	if err != nil {
		return "", mnrules.Errorf(mnrules.EINTERNAL, "failed to render section HTML: %v", err)
	}
	md, err := e.converter.Convert(inner)
	if err != nil {
		return "", fmt.Errorf("convert section: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// sectionURL resolves the container's first link, falling back to the
// synthesized "/rules/{id}" form.
func sectionURL(sel *goquery.Selection, baseURL, sectionID string) (string, error) {
	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		return mnrules.ResolveURL(baseURL, href)
	}
	return mnrules.SectionURL(baseURL, sectionID)
}
