package stor

import (
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormActivityTranslationStor struct {
	db *gorm.DB
}

func NewGormActivityTranslationStor(db *gorm.DB) *GormActivityTranslationStor {
	return &GormActivityTranslationStor{db: db}
}

func (s *GormActivityTranslationStor) GetTranslation(activityID int, lang string) (*aemodel.ActivityTranslation, error) {
	var tr aemodel.ActivityTranslation

	err := s.db.Preload("Activity").
		Where("activity_id = ?", activityID).
		Where("language_code = ?", lang).
		First(&tr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting translation %d/%s", activityID, lang)
	}

	return &tr, nil
}

// ListTranslationsForCode returns every translation of the activity with
// the given code, optionally restricted to one language. An unknown code
// is ErrNotFound, not an empty list, so the batch tool can report it.
func (s *GormActivityTranslationStor) ListTranslationsForCode(code, lang string) ([]aemodel.ActivityTranslation, error) {
	var activity aemodel.Activity
	err := s.db.Where("code = ?", code).First(&activity).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting activity %s", code)
	}

	q := s.db.Preload("Activity").Where("activity_id = ?", activity.ID)
	if lang != "" {
		q = q.Where("language_code = ?", lang)
	}

	var translations []aemodel.ActivityTranslation
	if err := q.Order("language_code ASC").Find(&translations).Error; err != nil {
		return nil, errors.Wrapf(err, "listing translations for %s", code)
	}

	return translations, nil
}

// ListTranslationsMissingPDF returns the translations of published
// activities that have no generated PDF yet, newest activity first.
func (s *GormActivityTranslationStor) ListTranslationsMissingPDF(lang string) ([]aemodel.ActivityTranslation, error) {
	publishedActivities := s.db.Table("activities").
		Select("id").
		Where("published = ?", true)

	q := s.db.Preload("Activity").
		Where("pdf = ? OR pdf IS NULL", "").
		Where("activity_id IN (?)", publishedActivities)
	if lang != "" {
		q = q.Where("language_code = ?", lang)
	}

	var translations []aemodel.ActivityTranslation
	err := q.Order("created_at DESC, id DESC").Find(&translations).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing translations missing a pdf")
	}

	return translations, nil
}

// SetTranslationPDF persists the reference to a freshly generated PDF
// artifact, replacing whatever was stored before.
func (s *GormActivityTranslationStor) SetTranslationPDF(tr *aemodel.ActivityTranslation, artifact string) error {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&aemodel.ActivityTranslation{}).
			Where("id = ?", tr.ID).
			Update("pdf", artifact).Error
	})
	if err != nil {
		return errors.Wrapf(err, "setting pdf for translation %d", tr.ID)
	}

	tr.PDF = artifact
	return nil
}
