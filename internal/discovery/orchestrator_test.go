package discovery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilab-kr/boardmap/internal/boards"
	"github.com/unilab-kr/boardmap/internal/classify"
	"github.com/unilab-kr/boardmap/internal/cms"
	"github.com/unilab-kr/boardmap/internal/discovery"
	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/models"
	"github.com/unilab-kr/boardmap/internal/seeds"
)

// fakeFetcher serves canned HTML by URL and records fetch order.
type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

var errConnectionRefused = errors.New("connection refused")

func (f *fakeFetcher) Fetch(_ context.Context, target string, _ time.Duration) (*goquery.Document, error) {
	f.fetched = append(f.fetched, target)
	html, ok := f.pages[target]
	if !ok {
		return nil, errConnectionRefused
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func newTestDiscoverer(fetcher discovery.PageFetcher, ledger *discovery.Ledger) *discovery.Discoverer {
	seed := seeds.Default()
	extractor := boards.NewExtractor(
		cms.NewDetector(seed.CmsPatterns),
		classify.New(seed.Keywords),
		logger.NewNoOp(),
	)
	return discovery.NewDiscoverer(fetcher, extractor, ledger, logger.NewNoOp(), 0, 0)
}

func dept(name, url string) models.Department {
	return models.Department{ID: "yonsei_" + name, Name: name, URL: url}
}

func TestDiscoverBoards_SentinelURLNoFetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("철학과", "NOT_FOUND"))

	assert.Empty(t, found)
	assert.Empty(t, fetcher.fetched, "invalid URL must short-circuit before any network call")

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "NOT_FOUND", records[0].URL)
	assert.Equal(t, discovery.ReasonInvalidURL, records[0].Reason)
	assert.Equal(t, "신촌캠퍼스", records[0].Campus)
}

func TestDiscoverBoards_InvalidURLVariants(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"", "ftp://dept.yonsei.ac.kr", "dept.yonsei.ac.kr", "://bad"} {
		fetcher := &fakeFetcher{}
		ledger := discovery.NewLedger()
		d := newTestDiscoverer(fetcher, ledger)

		found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("수학과", url))
		assert.Empty(t, found, "url %q", url)
		assert.Equal(t, 1, ledger.Len(), "url %q", url)
		assert.Empty(t, fetcher.fetched, "url %q", url)
	}
}

func TestDiscoverBoards_FetchFailureRecordsError(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("물리학과", "https://phys.yonsei.ac.kr/main.do"))

	assert.Empty(t, found)
	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Reason, "Connection Error")
	assert.Contains(t, records[0].Reason, "connection refused")
}

func TestDiscoverBoards_HomepageOnly(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="/board/notice.do">공지사항</a>
			<a href="/board/scholarship.do">장학공지</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("컴퓨터과학과", "https://cs.yonsei.ac.kr/main.do"))

	require.Len(t, found, 2)
	assert.Equal(t, "notice", found[0].ID)
	assert.Equal(t, "scholarship", found[1].ID)
	assert.Zero(t, ledger.Len())
}

func TestDiscoverBoards_SitemapPreferred(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="/sitemap.do">사이트맵</a>
			<a href="/board/notice.do">공지사항</a>
		</body></html>`,
		"https://cs.yonsei.ac.kr/sitemap.do": `<html><body>
			<a href="/board/academic.do">학사공지</a>
			<a href="/board/grad.do">대학원공지</a>
			<a href="/board/notice.do">공지사항</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("컴퓨터과학과", "https://cs.yonsei.ac.kr/main.do"))

	// The sitemap enumerates more boards than the homepage; its result
	// wins outright.
	require.Len(t, found, 3)
	assert.Equal(t, "academic", found[0].ID)
	assert.Equal(t, "grad_notice", found[1].ID)
	assert.Equal(t, "notice", found[2].ID)
	assert.Equal(t, []string{
		"https://cs.yonsei.ac.kr/main.do",
		"https://cs.yonsei.ac.kr/sitemap.do",
	}, fetcher.fetched)
}

func TestDiscoverBoards_EmptyHrefSitemapAnchorIgnored(t *testing.T) {
	t.Parallel()

	// An href-less sitemap anchor would resolve to the homepage itself;
	// it must not trigger a second fetch of the same page.
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="">사이트맵</a>
			<a href="/board/notice.do">공지사항</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("컴퓨터과학과", "https://cs.yonsei.ac.kr/main.do"))

	require.Len(t, found, 1)
	assert.Equal(t, "notice", found[0].ID)
	assert.Equal(t, []string{"https://cs.yonsei.ac.kr/main.do"}, fetcher.fetched)
	assert.Zero(t, ledger.Len())
}

func TestDiscoverBoards_EmptySitemapFallsBackToHomepage(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="/sitemap.do">Sitemap</a>
			<a href="/board/notice.do">공지사항</a>
		</body></html>`,
		"https://cs.yonsei.ac.kr/sitemap.do": `<html><body>
			<a href="/about.do">학과소개</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("컴퓨터과학과", "https://cs.yonsei.ac.kr/main.do"))

	require.Len(t, found, 1)
	assert.Equal(t, "notice", found[0].ID)
	assert.Equal(t, "https://cs.yonsei.ac.kr/board/notice.do", found[0].URL)
	assert.Zero(t, ledger.Len())
}

func TestDiscoverBoards_SitemapFetchFailureIsSilent(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="/sitemap.do">사이트맵</a>
			<a href="/board/notice.do">공지사항</a>
		</body></html>`,
		// sitemap.do intentionally missing: its fetch fails.
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("컴퓨터과학과", "https://cs.yonsei.ac.kr/main.do"))

	require.Len(t, found, 1)
	assert.Equal(t, "notice", found[0].ID)
	assert.Zero(t, ledger.Len(), "sitemap fetch failure is not a reportable error")
}

func TestDiscoverBoards_UnknownCMSRecordsExactlyOne(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://custom.yonsei.ac.kr/": `<html><body>
			<a href="/board/notice">공지사항</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "미래캠퍼스", dept("디자인학부", "https://custom.yonsei.ac.kr/"))

	assert.Empty(t, found)
	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, discovery.ReasonUnknownCMS, records[0].Reason)
	assert.Equal(t, "미래캠퍼스", records[0].Campus)
}

func TestDiscoverBoards_CaseInsensitiveSitemapText(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://cs.yonsei.ac.kr/main.do": `<html><body>
			<a href="/map.do">SITEMAP</a>
		</body></html>`,
		"https://cs.yonsei.ac.kr/map.do": `<html><body>
			<a href="/board/career.do">취업게시판</a>
		</body></html>`,
	}}
	ledger := discovery.NewLedger()
	d := newTestDiscoverer(fetcher, ledger)

	found := d.DiscoverBoards(context.Background(), "신촌캠퍼스", dept("경영학과", "https://cs.yonsei.ac.kr/main.do"))

	require.Len(t, found, 1)
	assert.Equal(t, "career", found[0].ID)
}
