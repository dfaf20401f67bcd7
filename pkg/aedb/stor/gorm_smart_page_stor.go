package stor

import (
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormSmartPageStor struct {
	db *gorm.DB
}

func NewGormSmartPageStor(db *gorm.DB) *GormSmartPageStor {
	return &GormSmartPageStor{db: db}
}

// GetSmartPageByURL resolves a smart page for the requested language,
// falling back to the site default language.
func (s *GormSmartPageStor) GetSmartPageByURL(url, lang string, viewer visibility.Viewer, now time.Time) (*aemodel.SmartPage, error) {
	for _, candidate := range []string{lang, visibility.DefaultLanguage} {
		var page aemodel.SmartPage

		err := s.db.Where("url = ?", url).
			Where("language_code = ?", candidate).
			First(&page).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			continue
		case err != nil:
			return nil, errors.Wrapf(err, "getting smart page %s", url)
		}

		if visibility.SmartPageVisible(&page, viewer, now) {
			return &page, nil
		}
	}

	return nil, ErrNotFound
}
