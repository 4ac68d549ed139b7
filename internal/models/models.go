// Package models defines the data structures shared across the board
// discovery pipeline: the campus seed tree, discovered boards, and the
// manual review ledger entries.
package models

// Selectors holds the CSS selectors needed to scrape one board's listing
// rows. The fields are embedded into Board so they serialize flat,
// alongside the board's own fields.
type Selectors struct {
	RowSelector   string `json:"row_selector" yaml:"row_selector" mapstructure:"row_selector"`
	TitleSelector string `json:"title_selector" yaml:"title_selector" mapstructure:"title_selector"`
	DateSelector  string `json:"date_selector" yaml:"date_selector" mapstructure:"date_selector"`
	AttrName      string `json:"attr_name" yaml:"attr_name" mapstructure:"attr_name"`
}

// Board is a discovered notice board: a navigable listing page for a
// recurring category of announcements, together with the selectors a
// later scraping stage needs to walk its rows.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Selectors
}

// Department identifies one discovery target. URL may be empty, malformed,
// or the NOT_FOUND sentinel; the orchestrator validates before fetching.
type Department struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Boards []Board `json:"boards"`
}

// College groups departments under a named college.
type College struct {
	Name        string       `json:"name"`
	Departments []Department `json:"departments"`
}

// Campus is the root of the seed tree for one campus.
type Campus struct {
	Campus   string    `json:"campus"`
	Colleges []College `json:"colleges"`
}

// ReviewRecord marks a department the automated heuristics could not
// confidently process. Records are append-only and ordered by processing
// order within a run.
type ReviewRecord struct {
	Campus string `json:"campus"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// URLNotFound is the sentinel written by the department crawler when a
// department's homepage link could not be located.
const URLNotFound = "NOT_FOUND"
