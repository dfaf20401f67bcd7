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

type GormCollectionStor struct {
	db *gorm.DB
}

func NewGormCollectionStor(db *gorm.DB) *GormCollectionStor {
	return &GormCollectionStor{db: db}
}

func (s *GormCollectionStor) visibleScope(db *gorm.DB, viewer visibility.Viewer, now time.Time) *gorm.DB {
	if viewer.Staff {
		return db
	}
	return db.Where("published = ?", true).
		Where("release_date IS NULL OR release_date <= ?", now)
}

func (s *GormCollectionStor) ListCollections(viewer visibility.Viewer, now time.Time) ([]aemodel.Collection, error) {
	var collections []aemodel.Collection

	q := s.visibleScope(s.db.Model(&aemodel.Collection{}), viewer, now)
	err := q.Order("position ASC, slug ASC").Find(&collections).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing collections")
	}

	return collections, nil
}

func (s *GormCollectionStor) GetCollectionBySlug(collectionSlug string, viewer visibility.Viewer, now time.Time) (*aemodel.Collection, error) {
	var collection aemodel.Collection

	err := s.db.Preload("Activities.Translations").
		Where("slug = ?", collectionSlug).
		First(&collection).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrapf(err, "getting collection %s", collectionSlug)
	}

	if !visibility.CollectionVisible(&collection, viewer, now) {
		return nil, ErrNotFound
	}

	// Member activities still go through the activity rules.
	collection.Activities = visibility.FilterActivities(collection.Activities, viewer, now)

	return &collection, nil
}

func (s *GormCollectionStor) CreateCollection(collection *aemodel.Collection) (*aemodel.Collection, error) {
	var err error
	if collection.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	slugOfTitle := slug.Make(collection.Title)
	if collection.Slug == "" {
		collection.Slug = slugOfTitle
	}
	slugNext := 1

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
	CreateLoop:
		for {
			err = tx.Create(collection).Error
			switch {
			case err == nil:
				break CreateLoop
			case errors.Is(err, gorm.ErrDuplicatedKey):
				// Collision on the slug; add an incrementing suffix and
				// try again.
				collection.Slug = fmt.Sprintf("%s-%d", slugOfTitle, slugNext)
				slugNext = slugNext + 1
			default:
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, errors.Wrapf(err, "creating collection %s", collection.Title)
	}

	return collection, nil
}
