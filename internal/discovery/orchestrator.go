// Package discovery orchestrates board discovery per department: homepage
// fetch, sitemap-first extraction with homepage fallback, and failure
// diversion into the manual review ledger.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unilab-kr/boardmap/internal/boards"
	"github.com/unilab-kr/boardmap/internal/fetch"
	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
)

// Review reasons. These are the only strings the ledger carries for the
// three failure categories; sitemap fetch failure is deliberately not one
// of them.
const (
	ReasonInvalidURL = "Homepage URL is invalid"
	ReasonUnknownCMS = "Unknown CMS Structure"
)

// Default fetch timeouts. The sitemap fetch is an opportunistic shortcut
// and gets the shorter budget.
const (
	DefaultHomepageTimeout = 7 * time.Second
	DefaultSitemapTimeout  = 5 * time.Second
)

// sitemapPattern matches anchor text pointing at a site map page.
var sitemapPattern = regexp.MustCompile(`(?i)사이트맵|sitemap`)

// PageFetcher is the fetch collaborator contract: return a parsed HTML
// document or fail with a distinguishable error.
type PageFetcher interface {
	Fetch(ctx context.Context, target string, timeout time.Duration) (*goquery.Document, error)
}

var _ PageFetcher = (*fetch.Fetcher)(nil)

// Discoverer runs board discovery for individual departments.
type Discoverer struct {
	fetcher         PageFetcher
	extractor       *boards.Extractor
	ledger          *Ledger
	logger          logger.Interface
	homepageTimeout time.Duration
	sitemapTimeout  time.Duration
}

// NewDiscoverer creates a Discoverer. Zero timeouts take the defaults.
func NewDiscoverer(
	fetcher PageFetcher,
	extractor *boards.Extractor,
	ledger *Ledger,
	log logger.Interface,
	homepageTimeout time.Duration,
	sitemapTimeout time.Duration,
) *Discoverer {
	if homepageTimeout <= 0 {
		homepageTimeout = DefaultHomepageTimeout
	}
	if sitemapTimeout <= 0 {
		sitemapTimeout = DefaultSitemapTimeout
	}
	return &Discoverer{
		fetcher:         fetcher,
		extractor:       extractor,
		ledger:          ledger,
		logger:          log.WithComponent("discovery"),
		homepageTimeout: homepageTimeout,
		sitemapTimeout:  sitemapTimeout,
	}
}

// DiscoverBoards finds the notice boards of one department. Every failure
// path appends exactly one ledger record and returns an empty list; the
// caller's run continues with the next department regardless.
func (d *Discoverer) DiscoverBoards(ctx context.Context, campus string, dept models.Department) []models.Board {
	log := d.logger.With("campus", campus, "department", dept.Name)

	if !isUsableHomepageURL(dept.URL) {
		log.Warn("skipping department, homepage URL unusable", "url", dept.URL)
		d.ledger.Append(models.ReviewRecord{
			Campus: campus,
			Name:   dept.Name,
			URL:    dept.URL,
			Reason: ReasonInvalidURL,
		})
		return nil
	}

	homeDoc, err := d.fetcher.Fetch(ctx, dept.URL, d.homepageTimeout)
	if err != nil {
		log.Warn("homepage fetch failed", "url", dept.URL, "error", err)
		d.ledger.Append(models.ReviewRecord{
			Campus: campus,
			Name:   dept.Name,
			URL:    dept.URL,
			Reason: fmt.Sprintf("Connection Error: %s", err),
		})
		return nil
	}
	log.Debug("homepage fetched", "url", dept.URL)

	// Sitemap pages enumerate a site's internal links and usually carry
	// every board in one place. Prefer them when present; any failure
	// here degrades silently to the homepage.
	target, targetURL := homeDoc, dept.URL
	usedSitemap := false
	if sitemapURL, ok := d.findSitemapURL(homeDoc, dept.URL); ok {
		if sitemapDoc, sErr := d.fetcher.Fetch(ctx, sitemapURL, d.sitemapTimeout); sErr == nil {
			target, targetURL = sitemapDoc, sitemapURL
			usedSitemap = true
			log.Debug("using sitemap", "url", sitemapURL)
		} else {
			log.Debug("sitemap fetch failed, falling back to homepage", "url", sitemapURL, "error", sErr)
		}
	}

	found, extractErr := d.extractor.Extract(target, targetURL)

	// A sitemap page may exist yet not itself link any boards, or use a
	// layout we do not recognize. Either way the homepage is the
	// fallback, and only its outcome is reportable.
	if usedSitemap && len(found) == 0 {
		log.Debug("sitemap yielded no boards, falling back to homepage")
		found, extractErr = d.extractor.Extract(homeDoc, dept.URL)
	}

	if extractErr != nil {
		if errors.Is(extractErr, boards.ErrUnknownCMS) {
			log.Warn("unknown CMS structure", "url", dept.URL)
			d.ledger.Append(models.ReviewRecord{
				Campus: campus,
				Name:   dept.Name,
				URL:    dept.URL,
				Reason: ReasonUnknownCMS,
			})
		} else {
			log.Warn("extraction failed", "url", dept.URL, "error", extractErr)
			d.ledger.Append(models.ReviewRecord{
				Campus: campus,
				Name:   dept.Name,
				URL:    dept.URL,
				Reason: fmt.Sprintf("Extraction Error: %s", extractErr),
			})
		}
		return nil
	}

	log.Info("boards discovered", "count", len(found))
	return found
}

// findSitemapURL looks for an anchor whose visible text names a sitemap
// and resolves its href against the homepage URL.
func (d *Discoverer) findSitemapURL(doc *goquery.Document, baseURL string) (string, bool) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}

	var result string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !sitemapPattern.MatchString(sel.Text()) {
			return true
		}
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		// An empty href resolves to the page itself, not a sitemap.
		if href == "" {
			return true
		}
		rel, parseErr := url.Parse(href)
		if parseErr != nil {
			return true
		}
		result = base.ResolveReference(rel).String()
		return false
	})
	return result, result != ""
}

// isUsableHomepageURL rejects the NOT_FOUND sentinel, empty strings, and
// anything that is not an absolute http(s) URL, before any network call.
func isUsableHomepageURL(raw string) bool {
	if raw == "" || raw == models.URLNotFound {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
