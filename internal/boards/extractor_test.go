package boards_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilab-kr/boardmap/internal/boards"
	"github.com/unilab-kr/boardmap/internal/classify"
	"github.com/unilab-kr/boardmap/internal/cms"
	"github.com/unilab-kr/boardmap/internal/logger"
	"github.com/unilab-kr/boardmap/internal/seeds"
)

func newExtractor() *boards.Extractor {
	seed := seeds.Default()
	return boards.NewExtractor(
		cms.NewDetector(seed.CmsPatterns),
		classify.New(seed.Keywords),
		logger.NewNoOp(),
	)
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_SingleNoticeBoard(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/board/notice.do?mid=123" class="menu">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 1)

	board := found[0]
	assert.Equal(t, "notice", board.ID)
	assert.Equal(t, "공지사항", board.Name)
	assert.Equal(t, "https://cs.yonsei.ac.kr/board/notice.do?mid=123", board.URL)
	// Selectors come from this page's CMS profile: the .do URL selects
	// the standard layout even though the href also carries mid=.
	assert.Equal(t, "tr:has(a.c-board-title)", board.RowSelector)
	assert.Equal(t, "href", board.AttrName)
}

func TestExtract_UnknownCMSIsTerminal(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/board/1">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://dept.yonsei.ac.kr/board")
	assert.ErrorIs(t, err, boards.ErrUnknownCMS)
	assert.Empty(t, found)
}

func TestExtract_DuplicateCategoryGetsSuffixedIDs(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/board/notice1.do">공지사항</a>
		<a href="/board/notice2.do">공지사항</a>
		<a href="/board/notice3.do">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "notice", found[0].ID)
	assert.Equal(t, "notice_2", found[1].ID)
	assert.Equal(t, "notice_3", found[2].ID)
}

func TestExtract_DocumentOrderPreserved(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/scholarship.do">장학공지</a>
		<a href="/academic.do">학사공지</a>
		<a href="/notice.do">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "scholarship", found[0].ID)
	assert.Equal(t, "academic", found[1].ID)
	assert.Equal(t, "notice", found[2].ID)
}

func TestExtract_CrossDomainLinksSkipped(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="https://other.yonsei.ac.kr/notice.do">공지사항</a>
		<a href="https://www.example.com/notice">학사공지</a>
		<a href="/local/notice.do">장학공지</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "scholarship", found[0].ID)
	assert.Equal(t, "https://cs.yonsei.ac.kr/local/notice.do", found[0].URL)
}

func TestExtract_PseudoLinksAndFragmentsSkipped(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="javascript:void(0)">공지사항</a>
		<a href="#content">학사공지</a>
		<a href="/notice.do">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "https://cs.yonsei.ac.kr/notice.do", found[0].URL)
}

func TestExtract_DuplicateURLsSkipped(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/notice.do">공지사항</a>
		<a href="/notice.do">공지사항</a>
		<a href="/notice.do#tab">공지사항</a>
	</body></html>`)

	// All three resolve to the same URL once fragments are stripped.
	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "notice", found[0].ID)
}

func TestExtract_LongAnchorTextDropped(t *testing.T) {
	t.Parallel()

	// 25 runes, keyword-bearing: a notice title, not a board label.
	title := "공지사항" + strings.Repeat("가", 21)
	doc := parseDoc(t, `<html><body>
		<a href="/notice.do">`+title+`</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestExtract_BlacklistedHrefDropped(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body>
		<a href="/board.do?articleNo=555">공지사항</a>
		<a href="/board/view.do">학사공지</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestExtract_EmptyAnchorTextFallsBackToDisplayName(t *testing.T) {
	t.Parallel()

	// An image-only anchor has no text to carry a keyword, so it never
	// classifies; empty-name fallback applies to whitespace-padded text
	// that trims down yet still matches.
	doc := parseDoc(t, `<html><body>
		<a href="/notice.do">  공지사항  </a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://cs.yonsei.ac.kr/main.do")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "공지사항", found[0].Name)
}

func TestExtract_XEProfileSelectors(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body class="rhymix">
		<a href="/index.php?mid=notice">공지사항</a>
	</body></html>`)

	found, err := newExtractor().Extract(doc, "https://dept.yonsei.ac.kr/")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a.xe-list-board-list__title-link", found[0].TitleSelector)
	assert.Equal(t, ".xe-list-board-list__created_at", found[0].DateSelector)
}
