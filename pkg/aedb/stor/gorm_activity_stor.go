package stor

import (
	"fmt"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormActivityStor struct {
	db *gorm.DB
}

func NewGormActivityStor(db *gorm.DB) *GormActivityStor {
	return &GormActivityStor{db: db}
}

// categoryColumns maps category facet names onto their boolean columns.
// Only names from this map ever reach the SQL string.
var categoryColumns = map[string]string{
	aemodel.CategorySpace:      "space",
	aemodel.CategoryEarth:      "earth",
	aemodel.CategoryNavigation: "navigation",
	aemodel.CategoryHeritage:   "heritage",
}

func (s *GormActivityStor) withPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Translations").
		Preload("Attachments").
		Preload("LanguageAttachments").
		Preload("Links").
		Preload("Authors").
		Preload("RepositoryEntries.Repository").
		Preload("Age").
		Preload("Level")
}

// visibleScope restricts a query to what the viewer may see. Staff get an
// unrestricted query so they can preview drafts and embargoed activities.
func (s *GormActivityStor) visibleScope(db *gorm.DB, viewer visibility.Viewer, now time.Time) *gorm.DB {
	if viewer.Staff {
		return db
	}
	return db.Where("published = ?", true).
		Where("release_date IS NULL OR release_date <= ?", now)
}

// activeTranslationScope keeps only activities with at least one complete,
// unembargoed translation. Listings use it so no empty cards render; the
// detail/redirect path skips it.
func (s *GormActivityStor) activeTranslationScope(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Where(`EXISTS (SELECT 1 FROM activity_translations
		WHERE activity_translations.activity_id = activities.id
		AND activity_translations.published = ?
		AND (activity_translations.embargo_date IS NULL OR activity_translations.embargo_date <= ?))`,
		true, now)
}

// listQuery applies visibility plus the requested facets. Built fresh for
// the count and the fetch so the two don't share builder state.
func (s *GormActivityStor) listQuery(params ActivityListParams) *gorm.DB {
	q := s.db.Model(&aemodel.Activity{})
	q = s.visibleScope(q, params.Viewer, params.Now)
	q = s.activeTranslationScope(q, params.Now)

	if params.hasCategory() {
		q = q.Where(fmt.Sprintf("%s = ?", categoryColumns[params.Category]), true)
	}

	if params.LevelCode != "" {
		levelIDs := s.db.Table("metadata_options").
			Select("id").
			Where("option_group = ?", aemodel.MetadataGroupLevel).
			Where("code = ?", params.LevelCode)
		q = q.Where("level_id IN (?)", levelIDs)
	}

	if params.AgeCode != "" {
		ageIDs := s.db.Table("metadata_options").
			Select("id").
			Where("option_group = ?", aemodel.MetadataGroupAge).
			Where("code = ?", params.AgeCode)
		q = q.Where("age_id IN (?)", ageIDs)
	}

	return q
}

func (s *GormActivityStor) ListActivities(params ActivityListParams) (*ActivityPage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var total int64
	if err := s.listQuery(params).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "counting activities")
	}

	// Ordering is total (code breaks release date ties) so pagination
	// never repeats or skips an item.
	direction := "DESC"
	if params.Ascending {
		direction = "ASC"
	}
	q := s.listQuery(params).Order(fmt.Sprintf("release_date %s, code %s", direction, direction))

	page := params.page()
	pageSize := params.pageSize()

	var activities []aemodel.Activity
	err := s.withPreloads(q).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing activities")
	}

	items := make([]ActivityListing, 0, len(activities))
	for i := range activities {
		tr := visibility.TranslationForLanguage(&activities[i], params.Lang, params.Now, true)
		if tr == nil {
			// The translation scope guarantees at least one active
			// translation, so this only guards a racing unpublish.
			continue
		}
		items = append(items, ActivityListing{Activity: activities[i], Translation: *tr})
	}

	return newActivityPage(items, page, pageSize, int(total)), nil
}

func (s *GormActivityStor) GetActivityByCode(code string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error) {
	var activity aemodel.Activity

	err := s.withPreloads(s.db).Where("code = ?", code).First(&activity).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting activity %s", code)
	}

	if !visibility.ActivityVisible(&activity, viewer, now) {
		return nil, ErrNotFound
	}

	return &activity, nil
}

func (s *GormActivityStor) GetActivityByTranslationSlug(translationSlug string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error) {
	var activity aemodel.Activity

	slugMatches := s.db.Table("activity_translations").
		Select("activity_id").
		Where("slug = ?", translationSlug)

	err := s.withPreloads(s.db).Where("id IN (?)", slugMatches).First(&activity).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting activity by slug %s", translationSlug)
	}

	if !visibility.ActivityVisible(&activity, viewer, now) {
		return nil, ErrNotFound
	}

	return &activity, nil
}

func (s *GormActivityStor) FeaturedActivities(n int, now time.Time) ([]aemodel.Activity, error) {
	q := s.db.Model(&aemodel.Activity{}).Where("featured = ?", true)
	q = s.visibleScope(q, visibility.Anonymous, now)
	q = s.activeTranslationScope(q, now)

	var activities []aemodel.Activity
	err := s.withPreloads(q).
		Order("release_date DESC, code DESC").
		Limit(n).
		Find(&activities).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing featured activities")
	}

	return activities, nil
}

func (s *GormActivityStor) CreateActivity(activity *aemodel.Activity) (*aemodel.Activity, error) {
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	NormalizeActivity(activity)

	var err error
	if activity.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		for i := range activity.Translations {
			tr := &activity.Translations[i]
			if tr.Slug == "" {
				tr.Slug = s.uniqueTranslationSlug(tx, tr.Title)
			}
		}
		return tx.Create(activity).Error
	})

	if err != nil {
		return nil, errors.Wrapf(err, "creating activity %s", activity.Code)
	}

	return activity, nil
}

func (s *GormActivityStor) UpdateActivity(activity *aemodel.Activity) (*aemodel.Activity, error) {
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	NormalizeActivity(activity)

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Save(activity).Error
	})

	if err != nil {
		return nil, errors.Wrapf(err, "updating activity %s", activity.Code)
	}

	return activity, nil
}

// uniqueTranslationSlug slugifies the title and adds an incrementing
// suffix until no other translation carries the slug.
func (s *GormActivityStor) uniqueTranslationSlug(tx *gorm.DB, title string) string {
	slugOfTitle := slug.Make(title)
	candidate := slugOfTitle

	for next := 1; ; next++ {
		var count int64
		tx.Model(&aemodel.ActivityTranslation{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slugOfTitle, next)
	}
}
