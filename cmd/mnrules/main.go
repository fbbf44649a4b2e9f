package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mnrules"
	"github.com/fwojciec/mnrules/fs"
	"github.com/fwojciec/mnrules/goquery"
	"github.com/fwojciec/mnrules/htmltomarkdown"
	mnhttp "github.com/fwojciec/mnrules/http"
	"github.com/fwojciec/mnrules/rod"
	"github.com/fwojciec/mnrules/scrape"
	mnslog "github.com/fwojciec/mnrules/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser overrides the rod browser. Set before calling Run().
	Browser mnrules.Browser

	// IndexFetcher overrides the HTTP index fetcher. Set before calling Run().
	IndexFetcher mnrules.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mnrules"),
		kong.Description("Scrape Minnesota Revisor fire code rules into a markdown file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"index_url": mnrules.DefaultIndexURL,
			"base_url":  mnrules.DefaultBaseURL,
			"output":    mnrules.DefaultOutput,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := validateURL(cli.IndexURL); err != nil {
		return fmt.Errorf("index URL: %w", err)
	}
	if err := validateURL(cli.BaseURL); err != nil {
		return fmt.Errorf("base URL: %w", err)
	}

	indexFetcher := m.IndexFetcher
	if indexFetcher == nil {
		indexFetcher = mnhttp.NewFetcher(
			mnhttp.WithTimeout(cli.Timeout),
			mnhttp.WithUserAgent(rod.DefaultUserAgent),
		)
	}

	defer indexFetcher.Close()

	browser := m.Browser
	if browser == nil {
		browser = rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithManagerOptions(rod.WithMaxPages(cli.MaxPages)),
		)
	}

	var resolver mnrules.IndexResolver = goquery.NewIndexResolver()
	var extractorOpts []goquery.ExtractorOption
	if cli.SectionFormat == "markdown" {
		extractorOpts = append(extractorOpts, goquery.WithSectionConverter(htmltomarkdown.NewConverter()))
	}
	var extractor mnrules.RuleExtractor = goquery.NewRuleExtractor(extractorOpts...)
	var writer mnrules.DocumentWriter = fs.NewWriter(cli.Output)

	if cli.Debug {
		logger := slog.New(slog.NewTextHandler(stderr, nil)).With("run", uuid.NewString())
		indexFetcher = mnslog.NewLoggingFetcher(indexFetcher, logger)
		browser = mnslog.NewLoggingBrowser(browser, logger)
		resolver = mnslog.NewLoggingResolver(resolver, logger)
		extractor = mnslog.NewLoggingExtractor(extractor, logger)
		writer = mnslog.NewLoggingWriter(writer, logger)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Scraper: &scrape.Scraper{
			IndexFetcher: indexFetcher,
			Browser:      browser,
			Resolver:     resolver,
			Extractor:    extractor,
			RateLimiter:  scrape.NewDomainLimiter(cli.RPS),
			BaseURL:      cli.BaseURL,
			RenderDelay:  cli.RenderDelay,
			SectionDelay: cli.SectionDelay,
			RuleDelay:    cli.RuleDelay,
		},
		Writer: writer,
	}

	cmd := &ScrapeCmd{
		IndexURL: cli.IndexURL,
		Output:   cli.Output,
		Print:    cli.Print,
	}

	return cmd.Run(deps)
}

// validateURL requires an absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return mnrules.Errorf(mnrules.EINVALID, "invalid URL %q: %v", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return mnrules.Errorf(mnrules.EINVALID, "URL %q must be absolute http(s)", raw)
	}
	return nil
}
