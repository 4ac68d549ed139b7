package seeds

import (
	"fmt"
	"strings"
)

// Validate checks the seed data for structural problems. Beyond missing
// sections, it flags keyword entries where one keyword is a substring of
// a later-declared keyword: the later entry could never match on its own
// because the earlier one always wins, which is almost certainly a seed
// authoring mistake.
func (s Seed) Validate() error {
	if len(s.Campuses) == 0 {
		return ErrNoCampuses
	}
	if len(s.Keywords) == 0 {
		return ErrNoKeywords
	}

	for i, entry := range s.Keywords {
		if entry.Keyword == "" {
			return fmt.Errorf("keyword entry %d: empty keyword", i)
		}
		if entry.ID == "" {
			return fmt.Errorf("keyword entry %d (%s): empty id", i, entry.Keyword)
		}
		for j := i + 1; j < len(s.Keywords); j++ {
			later := s.Keywords[j]
			if strings.Contains(later.Keyword, entry.Keyword) && later.ID != entry.ID {
				return fmt.Errorf(
					"keyword %q (id %s) shadows later keyword %q (id %s): declaration order makes the later entry unreachable",
					entry.Keyword, entry.ID, later.Keyword, later.ID,
				)
			}
		}
	}

	for i, p := range s.CmsPatterns {
		if p.Name == "" {
			return fmt.Errorf("cms pattern %d: empty name", i)
		}
		if len(p.URLContains) == 0 && len(p.MarkupContains) == 0 {
			return fmt.Errorf("cms pattern %q: no detection markers", p.Name)
		}
		if p.Selectors.RowSelector == "" || p.Selectors.TitleSelector == "" {
			return fmt.Errorf("cms pattern %q: incomplete selectors", p.Name)
		}
	}

	return nil
}
