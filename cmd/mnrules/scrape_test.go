package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/mnrules"
	main "github.com/fwojciec/mnrules/cmd/mnrules"
	"github.com/fwojciec/mnrules/mock"
	"github.com/fwojciec/mnrules/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScraper(indexErr error) *scrape.Scraper {
	return &scrape.Scraper{
		IndexFetcher: &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				if indexErr != nil {
					return "", indexErr
				}
				return indexHTML, nil
			},
		},
		Browser: &mock.Browser{
			LaunchFn: func(context.Context) error { return nil },
			FetchFn:  func(context.Context, string) (string, error) { return ruleHTML, nil },
			CloseFn:  func() error { return nil },
		},
		Resolver: &mock.IndexResolver{
			ResolveFn: func(string, string) ([]mnrules.RuleReference, error) {
				return []mnrules.RuleReference{
					{ID: "7511.0010", URL: "https://example.com/rules/7511.0010/"},
				}, nil
			},
		},
		Extractor: &mock.RuleExtractor{
			ExtractFn: func(_ string, ruleURL string, _ string) (*mnrules.RulePage, error) {
				return &mnrules.RulePage{Title: "7511.0010 ADOPTION", URL: ruleURL}, nil
			},
		},
		BaseURL: "https://example.com",
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints document when requested", func(t *testing.T) {
		t.Parallel()

		var written *mnrules.Document
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: newScraper(nil),
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(_ context.Context, doc *mnrules.Document) error {
					written = doc
					return nil
				},
			},
		}

		cmd := &main.ScrapeCmd{IndexURL: "https://example.com/index", Output: "out.md", Print: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, written)
		assert.Len(t, written.Entries, 1)
		assert.Contains(t, stdout.String(), "## 7511.0010 ADOPTION")
		assert.Contains(t, stdout.String(), "Saved 1 rules (0 failed) to out.md")
	})

	t.Run("index fault is reported and written", func(t *testing.T) {
		t.Parallel()

		var written string
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: newScraper(errors.New("connection refused")),
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(_ context.Context, doc *mnrules.Document) error {
					written = doc.Markdown()
					return nil
				},
			},
		}

		cmd := &main.ScrapeCmd{IndexURL: "https://example.com/index", Output: "out.md"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Error fetching index page: connection refused\n", written)
		assert.Contains(t, stderr.String(), "error: Error fetching index page: connection refused")
	})

	t.Run("write failure is returned", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Scraper: newScraper(nil),
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(context.Context, *mnrules.Document) error {
					return errors.New("disk full")
				},
			},
		}

		cmd := &main.ScrapeCmd{IndexURL: "https://example.com/index", Output: "out.md"}
		err := cmd.Run(deps)

		assert.EqualError(t, err, "disk full")
	})

	t.Run("canceled run writes partial document", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		writes := 0
		deps := &main.Dependencies{
			Ctx:     ctx,
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Scraper: newScraper(nil),
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(context.Context, *mnrules.Document) error {
					writes++
					return nil
				},
			},
		}

		cmd := &main.ScrapeCmd{IndexURL: "https://example.com/index", Output: "out.md"}
		err := cmd.Run(deps)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, writes)
	})
}
