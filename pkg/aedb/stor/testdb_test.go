package stor

import (
	"fmt"
	"testing"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb"
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullLogger struct{}

func (l *nullLogger) Printf(_ string, _ ...interface{}) {
}

// newTestDB opens a throwaway in-memory sqlite database, one per test so
// unique indexes don't collide between tests.
func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormLogger := logger.New(&nullLogger{},
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		})
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)

	// Set the sqlite db to 1 connection. This gets around table lock issues from
	// multiple threads.
	sqlitedb.SetMaxOpenConns(1)

	err = aedb.RunMigrations(db)
	require.NoErrorf(t, err, "Migration failed with: %s", err)

	return db
}

func seedMetadataOptions(t *testing.T, db *gorm.DB) map[string]*aemodel.MetadataOption {
	options := []aemodel.MetadataOption{
		{Group: aemodel.MetadataGroupAge, Code: "6-8", Title: "6-8 years", Position: 1},
		{Group: aemodel.MetadataGroupAge, Code: "10-12", Title: "10-12 years", Position: 2},
		{Group: aemodel.MetadataGroupLevel, Code: "beginner", Title: "Beginner", Position: 1},
		{Group: aemodel.MetadataGroupLevel, Code: "advanced", Title: "Advanced", Position: 2},
	}

	byKey := make(map[string]*aemodel.MetadataOption)
	for i := range options {
		require.NoError(t, db.Create(&options[i]).Error)
		byKey[options[i].Group+"/"+options[i].Code] = &options[i]
	}
	return byKey
}

func datePtr(t time.Time) *time.Time {
	return &t
}

// activitySpec keeps the test fixtures compact.
type activitySpec struct {
	code        string
	published   bool
	featured    bool
	releaseDate *time.Time
	space       bool
	earth       bool
	level       *aemodel.MetadataOption
	age         *aemodel.MetadataOption
	langs       map[string]bool // language code -> translation published
}

func createActivity(t *testing.T, s ActivityStor, spec activitySpec) *aemodel.Activity {
	activity := &aemodel.Activity{
		Code:        spec.code,
		Published:   spec.published,
		Featured:    spec.featured,
		ReleaseDate: spec.releaseDate,
		Space:       spec.space,
		Earth:       spec.earth,
		Authors:     []aemodel.AuthorInstitution{{Author: "Edwin Hubble", Institution: "Mount Wilson"}},
	}
	if spec.level != nil {
		activity.LevelID = &spec.level.ID
		activity.Level = spec.level
	}
	if spec.age != nil {
		activity.AgeID = &spec.age.ID
		activity.Age = spec.age
	}
	if spec.level == nil && spec.age == nil {
		// The write boundary requires one of age/level.
		defaultLevel := 1
		activity.LevelID = &defaultLevel
	}
	for lang, published := range spec.langs {
		activity.Translations = append(activity.Translations, aemodel.ActivityTranslation{
			LanguageCode: lang,
			Title:        fmt.Sprintf("Activity %s %s", spec.code, lang),
			Published:    published,
		})
	}

	created, err := s.CreateActivity(activity)
	require.NoErrorf(t, err, "creating activity %s failed: %s", spec.code, err)
	return created
}
