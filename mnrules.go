// Package mnrules scrapes Minnesota Revisor rule pages into a single
// markdown document. It resolves an index page into rule references,
// renders each rule page in a headless browser, extracts the rule title
// and sections, and concatenates the results in discovery order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, http/).
package mnrules

// Default endpoints for the fire code topic on the Minnesota Revisor site.
const (
	DefaultIndexURL = "https://www.revisor.mn.gov/index/rule/topic/fire_code?year=null"
	DefaultBaseURL  = "https://www.revisor.mn.gov"
	DefaultOutput   = "mn_fire_code_rules.md"
)
