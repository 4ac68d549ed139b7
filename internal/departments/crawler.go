// Package departments crawls campus index pages into the seed tree of
// colleges and departments that board discovery consumes. A campus index
// page lists college headers followed by their departments, with homepage
// links interleaved in document order.
package departments

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unilab-kr/boardmap/internal/discovery"
	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
	"github.com/unilab-kr/boardmap/internal/seeds"
)

var (
	// collegePattern recognizes college headers ("…대학").
	collegePattern = regexp.MustCompile(`([가-힣]+대학)$`)

	// subdomainPattern pulls the subdomain out of a department homepage
	// for id generation.
	subdomainPattern = regexp.MustCompile(`https?://([^.]+)\.yonsei\.ac\.kr`)
)

// Crawler extracts campus department trees.
type Crawler struct {
	fetcher discovery.PageFetcher
	logger  logger.Interface
}

// NewCrawler creates a Crawler.
func NewCrawler(fetcher discovery.PageFetcher, log logger.Interface) *Crawler {
	return &Crawler{
		fetcher: fetcher,
		logger:  log.WithComponent("departments"),
	}
}

// CrawlAll crawls every campus seed. A campus that fails to crawl is
// logged and skipped; the others still produce results.
func (c *Crawler) CrawlAll(ctx context.Context, campuses []seeds.CampusSeed) []models.Campus {
	results := make([]models.Campus, 0, len(campuses))
	for _, seed := range campuses {
		campus, err := c.CrawlCampus(ctx, seed)
		if err != nil {
			c.logger.Warn("campus crawl failed", "campus", seed.Name, "error", err)
			continue
		}
		deptCount := 0
		for _, college := range campus.Colleges {
			deptCount += len(college.Departments)
		}
		c.logger.Info("campus crawled",
			"campus", seed.Name,
			"colleges", len(campus.Colleges),
			"departments", deptCount,
		)
		results = append(results, campus)
	}
	return results
}

// CrawlCampus fetches one campus index page and builds its college and
// department tree.
func (c *Crawler) CrawlCampus(ctx context.Context, seed seeds.CampusSeed) (models.Campus, error) {
	doc, err := c.fetcher.Fetch(ctx, seed.URL, discovery.DefaultHomepageTimeout)
	if err != nil {
		return models.Campus{}, fmt.Errorf("fetch campus index %s: %w", seed.URL, err)
	}

	campus := models.Campus{Campus: seed.Name}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		c.logger.Warn("no main content area on campus index", "campus", seed.Name)
		return campus, nil
	}

	urls := homepageURLs(doc)
	urlIdx := 0
	currentCollege := ""

	main.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		text := cleanHeaderText(sel.Text())
		if text == "" {
			return
		}

		if collegePattern.MatchString(text) {
			currentCollege = text
			return
		}
		if currentCollege == "" || strings.Contains(text, "대학") {
			return
		}

		deptURL := models.URLNotFound
		if urlIdx < len(urls) {
			deptURL = urls[urlIdx]
			urlIdx++
		} else {
			c.logger.Warn("no homepage URL found for department", "department", text)
		}

		college := findOrAddCollege(&campus, currentCollege)
		for _, existing := range college.Departments {
			if existing.Name == text {
				return
			}
		}
		college.Departments = append(college.Departments, models.Department{
			ID:   departmentID(text, deptURL),
			Name: text,
			URL:  deptURL,
		})
	})

	return campus, nil
}

// homepageURLs collects the hrefs of anchors labelled 홈페이지, in
// document order. These pair positionally with the department headers.
func homepageURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if !strings.Contains(sel.Text(), "홈페이지") {
			return
		}
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "http") && !strings.HasPrefix(href, "#") {
			urls = append(urls, href)
		}
	})
	return urls
}

// cleanHeaderText strips trailing link labels that bleed into department
// headers on the index pages.
func cleanHeaderText(text string) string {
	if idx := strings.Index(text, "교수진"); idx >= 0 {
		text = text[:idx]
	}
	if idx := strings.Index(text, "홈페이지"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func findOrAddCollege(campus *models.Campus, name string) *models.College {
	for i := range campus.Colleges {
		if campus.Colleges[i].Name == name {
			return &campus.Colleges[i]
		}
	}
	campus.Colleges = append(campus.Colleges, models.College{Name: name})
	return &campus.Colleges[len(campus.Colleges)-1]
}

// departmentID derives a stable id from the homepage subdomain when one
// exists, falling back to the department name.
func departmentID(name, url string) string {
	if url != models.URLNotFound {
		if caps := subdomainPattern.FindStringSubmatch(url); caps != nil {
			return "yonsei_" + strings.ToLower(caps[1])
		}
	}
	return "yonsei_" + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
