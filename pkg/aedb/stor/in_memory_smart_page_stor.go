package stor

import (
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
)

type InMemorySmartPageStor struct {
	pages []aemodel.SmartPage
}

func NewInMemorySmartPageStor(pages []aemodel.SmartPage) *InMemorySmartPageStor {
	return &InMemorySmartPageStor{pages: pages}
}

func (s *InMemorySmartPageStor) GetSmartPageByURL(url, lang string, viewer visibility.Viewer, now time.Time) (*aemodel.SmartPage, error) {
	for _, candidate := range []string{lang, visibility.DefaultLanguage} {
		for i := range s.pages {
			page := &s.pages[i]
			if page.URL == url && page.LanguageCode == candidate && visibility.SmartPageVisible(page, viewer, now) {
				return page, nil
			}
		}
	}
	return nil, ErrNotFound
}
