package mnrules

import (
	"net/url"
	"strings"
)

// RuleReference is a rule discovered on the index page.
type RuleReference struct {
	// ID is the dotted rule number, e.g. "7511.0020".
	ID string

	// URL is the absolute detail page URL, always ending in "/rules/{ID}/".
	URL string
}

// RuleSection is one section container of a rule detail page.
type RuleSection struct {
	// ID is the leading dotted-numeric code of the container's id attribute.
	ID string

	// URL is the first link inside the container, or "/rules/{ID}"
	// (no trailing slash) resolved against the base URL.
	URL string

	// Text is the container's visible text with outer whitespace trimmed.
	Text string
}

// RulePage is the structured content extracted from one rule detail page.
type RulePage struct {
	Title    string
	URL      string
	Sections []RuleSection
}

// Markdown renders the page as a level-2 title, a source line, and one
// level-3 block per section.
func (p *RulePage) Markdown() string {
	var b strings.Builder
	b.WriteString("\n## ")
	b.WriteString(p.Title)
	b.WriteString("\n\n**Source:** ")
	b.WriteString(p.URL)
	b.WriteString("\n\n")
	for _, s := range p.Sections {
		b.WriteString("### ")
		b.WriteString(s.ID)
		b.WriteString("\n\n")
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// RuleURL joins baseURL with the absolute path "/rules/{id}/" as the
// index page links to it.
func RuleURL(baseURL, id string) (string, error) {
	return joinPath(baseURL, "/rules/"+id+"/")
}

// SectionURL joins baseURL with the absolute path "/rules/{id}". Unlike
// RuleURL there is no trailing slash.
func SectionURL(baseURL, id string) (string, error) {
	return joinPath(baseURL, "/rules/"+id)
}

// ResolveURL resolves href against baseURL.
func ResolveURL(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "invalid link %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func joinPath(baseURL, path string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	return base.ResolveReference(&url.URL{Path: path}).String(), nil
}

// RuleIDFromURL returns the last non-empty path segment of a rule URL.
// For "https://www.revisor.mn.gov/rules/7511.0020/" it returns "7511.0020".
func RuleIDFromURL(ruleURL string) string {
	path := ruleURL
	if u, err := url.Parse(ruleURL); err == nil {
		path = u.Path
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// IndexResolver turns index page HTML into an ordered list of rule references.
type IndexResolver interface {
	// Resolve scans the index HTML for rule links in document order.
	// Duplicates are kept. An empty result is not an error.
	Resolve(html string, baseURL string) ([]RuleReference, error)
}

// RuleExtractor extracts structured rule content from a rendered detail page.
type RuleExtractor interface {
	// Extract returns the page title and its sections in markup order.
	// A missing title is not an error; the rule ID from ruleURL is used.
	Extract(html string, ruleURL string, baseURL string) (*RulePage, error)
}

// Converter transforms a fragment of section HTML into markdown.
type Converter interface {
	Convert(html string) (string, error)
}
