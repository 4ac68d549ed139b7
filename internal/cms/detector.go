// Package cms detects which known content-management-system layout a page
// uses and yields the structural selectors needed to scrape that layout's
// listing rows. Detection is a substring heuristic over the page URL and
// the lowercased markup, not a parse: it must tolerate malformed pages.
package cms

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unilab-kr/boardmap/internal/models"
	"github.com/unilab-kr/boardmap/internal/seeds"
)

// Profile is a recognized CMS layout with its scraping selectors.
type Profile struct {
	Name string
	models.Selectors
}

// Detector matches pages against an ordered list of CMS patterns.
// Pattern order is part of the semantics: some pages superficially
// satisfy more than one pattern, and the earliest declared wins.
type Detector struct {
	patterns []seeds.CmsPattern
}

// NewDetector creates a Detector over the given patterns.
func NewDetector(patterns []seeds.CmsPattern) *Detector {
	return &Detector{patterns: patterns}
}

// Detect returns the profile for the first pattern matching the page, or
// false when no known layout is recognized.
func (d *Detector) Detect(doc *goquery.Document, pageURL string) (Profile, bool) {
	markup := ""
	if doc != nil {
		// Serialization failures leave markup empty; URL-based
		// detection still applies.
		if html, err := doc.Html(); err == nil {
			markup = strings.ToLower(html)
		}
	}
	lowerURL := strings.ToLower(pageURL)

	for _, p := range d.patterns {
		if matchesPattern(p, lowerURL, markup) {
			return Profile{Name: p.Name, Selectors: p.Selectors}, true
		}
	}
	return Profile{}, false
}

func matchesPattern(p seeds.CmsPattern, lowerURL, markup string) bool {
	for _, marker := range p.URLContains {
		if strings.Contains(lowerURL, strings.ToLower(marker)) {
			return true
		}
	}
	if markup == "" {
		return false
	}
	for _, marker := range p.MarkupContains {
		if strings.Contains(markup, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
