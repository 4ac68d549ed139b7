// Package seeds manages the seed data driving board discovery: the campus
// index pages to crawl, the keyword-to-category table, and the CMS
// detection patterns. Seed data can be loaded from a yaml file; the
// compiled-in defaults cover the Yonsei campuses.
package seeds

import "github.com/unilab-kr/boardmap/internal/models"

// CampusSeed identifies one campus index page to crawl for departments.
type CampusSeed struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// KeywordEntry maps an anchor-text keyword to a board category. Entries
// are held in a slice, not a map: declaration order is the tie-break rule
// when a text matches more than one keyword.
type KeywordEntry struct {
	Keyword     string `mapstructure:"keyword" yaml:"keyword"`
	ID          string `mapstructure:"id" yaml:"id"`
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`
}

// CmsPattern describes how to recognize one CMS layout and the selectors
// to emit for it. A pattern matches when the page URL contains any entry
// of URLContains, or the lowercased markup contains any entry of
// MarkupContains. Patterns are checked in declaration order.
type CmsPattern struct {
	Name           string           `mapstructure:"name" yaml:"name"`
	URLContains    []string         `mapstructure:"url_contains" yaml:"url_contains"`
	MarkupContains []string         `mapstructure:"markup_contains" yaml:"markup_contains"`
	Selectors      models.Selectors `mapstructure:"selectors" yaml:"selectors"`
}

// Seed is the root seed structure.
type Seed struct {
	Campuses    []CampusSeed   `mapstructure:"campuses" yaml:"campuses"`
	Keywords    []KeywordEntry `mapstructure:"keywords" yaml:"keywords"`
	CmsPatterns []CmsPattern   `mapstructure:"cms_patterns" yaml:"cms_patterns"`
}

// Default returns the compiled-in seed data.
func Default() Seed {
	return Seed{
		Campuses: []CampusSeed{
			{Name: "신촌캠퍼스", URL: "https://www.yonsei.ac.kr/sc/186/subview.do"},
			{Name: "미래캠퍼스", URL: "https://mirae.yonsei.ac.kr/wj/1413/subview.do"},
		},
		// Declaration order is load-bearing: 학사공지 comes after
		// 공지사항, so a label carrying both resolves to notice.
		Keywords: []KeywordEntry{
			{Keyword: "학부공지", ID: "academic", DisplayName: "학사공지"},
			{Keyword: "대학원공지", ID: "grad_notice", DisplayName: "대학원공지"},
			{Keyword: "장학", ID: "scholarship", DisplayName: "장학공지"},
			{Keyword: "취업", ID: "career", DisplayName: "취업/진로"},
			{Keyword: "공지사항", ID: "notice", DisplayName: "일반공지"},
			{Keyword: "학사공지", ID: "academic", DisplayName: "학사공지"},
		},
		CmsPatterns: []CmsPattern{
			{
				Name:           "standard",
				URLContains:    []string{".do"},
				MarkupContains: []string{"c-board-title"},
				Selectors: models.Selectors{
					RowSelector:   "tr:has(a.c-board-title)",
					TitleSelector: "a.c-board-title",
					DateSelector:  "td:nth-last-child(1)",
					AttrName:      "href",
				},
			},
			{
				Name:           "xe",
				URLContains:    []string{"mid="},
				MarkupContains: []string{"xe", "rhymix"},
				Selectors: models.Selectors{
					RowSelector:   "li.xe-list-board-list--item:not(.xe-list-board-list--header)",
					TitleSelector: "a.xe-list-board-list__title-link",
					DateSelector:  ".xe-list-board-list__created_at",
					AttrName:      "href",
				},
			},
		},
	}
}
