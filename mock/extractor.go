package mock

import "github.com/fwojciec/mnrules"

var _ mnrules.IndexResolver = (*IndexResolver)(nil)

// IndexResolver is a mock implementation of mnrules.IndexResolver.
type IndexResolver struct {
	ResolveFn func(html string, baseURL string) ([]mnrules.RuleReference, error)
}

func (r *IndexResolver) Resolve(html string, baseURL string) ([]mnrules.RuleReference, error) {
	return r.ResolveFn(html, baseURL)
}

var _ mnrules.RuleExtractor = (*RuleExtractor)(nil)

// RuleExtractor is a mock implementation of mnrules.RuleExtractor.
type RuleExtractor struct {
	ExtractFn func(html string, ruleURL string, baseURL string) (*mnrules.RulePage, error)
}

func (e *RuleExtractor) Extract(html string, ruleURL string, baseURL string) (*mnrules.RulePage, error) {
	return e.ExtractFn(html, ruleURL, baseURL)
}
