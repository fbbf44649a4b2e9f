package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/mnrules"
	"github.com/fwojciec/mnrules/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Scraper *scrape.Scraper
	Writer  mnrules.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	IndexURL      string        `name:"index-url" default:"${index_url}" help:"Rule index page URL"`
	BaseURL       string        `name:"base-url" default:"${base_url}" help:"Site URL used to build rule links"`
	Output        string        `short:"o" default:"${output}" help:"Output markdown file"`
	Timeout       time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	RenderDelay   time.Duration `default:"2s" help:"Pause after each rule page load"`
	SectionDelay  time.Duration `default:"1s" help:"Pause after each extracted section"`
	RuleDelay     time.Duration `default:"1s" help:"Pause after each rule"`
	RPS           float64       `name:"rps" default:"1" help:"Maximum rule page requests per second (0 disables)"`
	MaxPages      int64         `default:"75" help:"Pages rendered before the browser is restarted"`
	SectionFormat string        `enum:"text,markdown" default:"text" help:"Section body rendering (text or markdown)"`
	Print         bool          `short:"p" help:"Also print the document to stdout"`
	Debug         bool          `short:"d" help:"Log service calls to stderr"`
}

// ScrapeCmd runs one scrape and writes the document.
type ScrapeCmd struct {
	IndexURL string
	Output   string
	Print    bool
}
