package main

import (
	"fmt"

	"github.com/fwojciec/mnrules/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressResolved:
			fmt.Fprintf(deps.Stdout, "Found rule link: %s\n", e.Reference.URL)
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d rules\n", e.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "--- [%d/%d] %s ---\n", e.Completed, e.Total, scrape.TruncateURL(e.Reference.URL, 60))
			fmt.Fprintf(deps.Stdout, "  Title: %s\n", e.Page.Title)
			for _, s := range e.Page.Sections {
				fmt.Fprintf(deps.Stdout, "    Found section: %s - %s\n", s.ID, s.URL)
			}
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", e.Reference.URL, e.Error)
		}
	}

	doc, scrapeErr := deps.Scraper.Scrape(deps.Ctx, c.IndexURL, progress)

	if doc.Fault != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doc.Fault.Error())
	}

	// A canceled run still writes the rules completed so far.
	if err := deps.Writer.WriteDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Output, err)
		return err
	}

	md := doc.Markdown()
	if c.Print {
		fmt.Fprint(deps.Stdout, md)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d rules (%d failed) to %s (%s, xxhash %s)\n",
		len(doc.Entries), doc.Failed(), c.Output, scrape.FormatBytes(len(md)), scrape.ComputeHash(md))

	return scrapeErr
}
