// Package boards extracts board descriptors from a parsed page by running
// CMS detection and link classification over every anchor in document
// order.
package boards

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unilab-kr/boardmap/internal/classify"
	"github.com/unilab-kr/boardmap/internal/cms"
	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
)

// ErrUnknownCMS is returned when no known CMS layout matches the page.
// This is terminal for the page: the caller records it for manual review
// and does not retry.
var ErrUnknownCMS = errors.New("unknown CMS structure")

// Extractor produces board descriptors from parsed pages.
type Extractor struct {
	detector   *cms.Detector
	classifier *classify.Classifier
	logger     logger.Interface
}

// NewExtractor creates an Extractor.
func NewExtractor(detector *cms.Detector, classifier *classify.Classifier, log logger.Interface) *Extractor {
	return &Extractor{
		detector:   detector,
		classifier: classifier,
		logger:     log.WithComponent("boards"),
	}
}

// Extract scans every anchor of the page and returns the boards found, in
// document order. pageURL is the URL the document was fetched from; all
// hrefs resolve against it, and links leaving its host are never boards
// of interest.
//
// Board ids are allocated per call: the first occurrence of a category
// gets the bare category id, later occurrences get _2, _3, … in encounter
// order. One page may yield several distinct boards.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) ([]models.Board, error) {
	profile, ok := e.detector.Detect(doc, pageURL)
	if !ok {
		return nil, ErrUnknownCMS
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL %q: %w", pageURL, err)
	}
	baseHost := strings.ToLower(base.Host)

	var found []models.Board
	seen := make(map[string]struct{})
	idCounts := make(map[string]int)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")

		if !classify.IsValidBoardLink(text, href) {
			return
		}
		if strings.Contains(href, "javascript") || strings.HasPrefix(href, "#") {
			return
		}

		rel, parseErr := url.Parse(strings.TrimSpace(href))
		if parseErr != nil {
			return
		}
		resolved := base.ResolveReference(rel)
		resolved.Fragment = ""
		fullURL := resolved.String()

		if _, dup := seen[fullURL]; dup {
			return
		}
		if !strings.EqualFold(resolved.Host, baseHost) {
			return
		}

		category, matched := e.classifier.Classify(text, href)
		if !matched {
			return
		}

		idCounts[category.ID]++
		id := category.ID
		if n := idCounts[category.ID]; n > 1 {
			id = fmt.Sprintf("%s_%d", category.ID, n)
		}

		name := text
		if name == "" {
			name = category.DisplayName
		}

		found = append(found, models.Board{
			ID:        id,
			Name:      name,
			URL:       fullURL,
			Selectors: profile.Selectors,
		})
		seen[fullURL] = struct{}{}

		e.logger.Debug("board link matched",
			"id", id,
			"keyword", category.Keyword,
			"url", fullURL,
			"cms", profile.Name,
		)
	})

	return found, nil
}
