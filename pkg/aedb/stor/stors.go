package stor

import (
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"gorm.io/gorm"
)

type ActivityStor interface {
	CreateActivity(activity *aemodel.Activity) (*aemodel.Activity, error)
	UpdateActivity(activity *aemodel.Activity) (*aemodel.Activity, error)
	GetActivityByCode(code string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error)
	GetActivityByTranslationSlug(slug string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error)
	ListActivities(params ActivityListParams) (*ActivityPage, error)
	FeaturedActivities(n int, now time.Time) ([]aemodel.Activity, error)
}

type ActivityTranslationStor interface {
	GetTranslation(activityID int, lang string) (*aemodel.ActivityTranslation, error)
	ListTranslationsForCode(code, lang string) ([]aemodel.ActivityTranslation, error)
	ListTranslationsMissingPDF(lang string) ([]aemodel.ActivityTranslation, error)
	SetTranslationPDF(tr *aemodel.ActivityTranslation, artifact string) error
}

type CollectionStor interface {
	CreateCollection(collection *aemodel.Collection) (*aemodel.Collection, error)
	ListCollections(viewer visibility.Viewer, now time.Time) ([]aemodel.Collection, error)
	GetCollectionBySlug(slug string, viewer visibility.Viewer, now time.Time) (*aemodel.Collection, error)
}

type MetadataOptionStor interface {
	ListOptionsByGroup(group string) ([]aemodel.MetadataOption, error)
	GetOptionByGroupAndCode(group, code string) (*aemodel.MetadataOption, error)
}

type UserStor interface {
	CreateUser(user *aemodel.User) (*aemodel.User, error)
	GetUserByEmail(email string) (*aemodel.User, error)
	GetUserByAPIToken(apitoken string) (*aemodel.User, error)
}

type SmartPageStor interface {
	GetSmartPageByURL(url, lang string, viewer visibility.Viewer, now time.Time) (*aemodel.SmartPage, error)
}

type Stors struct {
	ActivityStor            ActivityStor
	ActivityTranslationStor ActivityTranslationStor
	CollectionStor          CollectionStor
	MetadataOptionStor      MetadataOptionStor
	UserStor                UserStor
	SmartPageStor           SmartPageStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		ActivityStor:            NewGormActivityStor(db),
		ActivityTranslationStor: NewGormActivityTranslationStor(db),
		CollectionStor:          NewGormCollectionStor(db),
		MetadataOptionStor:      NewGormMetadataOptionStor(db),
		UserStor:                NewGormUserStor(db),
		SmartPageStor:           NewGormSmartPageStor(db),
	}
}
