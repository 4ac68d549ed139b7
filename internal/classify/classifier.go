// Package classify decides whether an anchor is a board link and, if so,
// which board category it belongs to. Classification is a pure function
// of the anchor's visible text and href: same inputs, same answer.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/unilab-kr/boardmap/internal/seeds"
)

// maxLabelRunes is the longest visible text still plausible as a board
// label. Longer text is almost always a notice title leaking into an
// anchor, not a board name. Counted in runes: the labels are Korean.
const maxLabelRunes = 20

// hrefBlacklist marks hrefs that point at a single notice rather than a
// board index.
var hrefBlacklist = []string{
	"articleNo",
	"article_no",
	"mode=view",
	"seq",
	"view.do",
	"board_seq",
}

// boardHintPattern matches hrefs that look board-like. A keyword hit in
// the visible text is sufficient on its own; the href hint is recorded so
// callers can tell a confirmed match from a text-only one.
var boardHintPattern = regexp.MustCompile(`notice|scholar|academic`)

// Category is the board category a link resolved to.
type Category struct {
	// ID is the stable short id, e.g. "notice".
	ID string
	// DisplayName is the canonical Korean name, used when the anchor
	// text is empty.
	DisplayName string
	// Keyword is the table entry that matched.
	Keyword string
	// HrefConfirmed reports whether the href also looked board-like.
	HrefConfirmed bool
}

// Classifier maps anchors to board categories using an ordered keyword
// table. The table is a slice: when a text matches several keywords, the
// earliest declared entry wins, reproducibly.
type Classifier struct {
	entries []seeds.KeywordEntry
}

// New creates a Classifier over the given keyword table.
func New(entries []seeds.KeywordEntry) *Classifier {
	return &Classifier{entries: entries}
}

// IsValidBoardLink reports whether an anchor could be a board link at
// all, before any category matching. Blacklisted hrefs point at single
// notices; over-long text is a notice title.
func IsValidBoardLink(text, href string) bool {
	for _, word := range hrefBlacklist {
		if strings.Contains(href, word) {
			return false
		}
	}
	return utf8.RuneCountInString(text) <= maxLabelRunes
}

// Classify returns the category for an anchor, or false when the link is
// not board-relevant. A false return is a silent drop, not an error.
func (c *Classifier) Classify(text, href string) (Category, bool) {
	if !IsValidBoardLink(text, href) {
		return Category{}, false
	}

	hinted := boardHintPattern.MatchString(strings.ToLower(href))
	for _, entry := range c.entries {
		if strings.Contains(text, entry.Keyword) {
			return Category{
				ID:            entry.ID,
				DisplayName:   entry.DisplayName,
				Keyword:       entry.Keyword,
				HrefConfirmed: hinted,
			}, true
		}
	}
	return Category{}, false
}
