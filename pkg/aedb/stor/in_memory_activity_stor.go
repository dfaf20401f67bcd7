package stor

import (
	"fmt"
	"sort"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/gosimple/slug"
)

// InMemoryActivityStor evaluates the same listing semantics as the gorm
// store, but against a slice and through pkg/visibility directly. Tests
// use it so policy behavior can be checked without a database.
type InMemoryActivityStor struct {
	activities []aemodel.Activity
	nextID     int
}

func NewInMemoryActivityStor(activities []aemodel.Activity) *InMemoryActivityStor {
	nextID := 1
	for i := range activities {
		if activities[i].ID >= nextID {
			nextID = activities[i].ID + 1
		}
	}
	return &InMemoryActivityStor{activities: activities, nextID: nextID}
}

func (s *InMemoryActivityStor) ListActivities(params ActivityListParams) (*ActivityPage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var matched []aemodel.Activity
	for i := range s.activities {
		a := &s.activities[i]
		if !visibility.ActivityVisible(a, params.Viewer, params.Now) {
			continue
		}
		if len(visibility.ActiveTranslations(a, params.Now)) == 0 {
			continue
		}
		if params.hasCategory() && !a.CategoryFlag(params.Category) {
			continue
		}
		if params.LevelCode != "" && (a.Level == nil || a.Level.Code != params.LevelCode) {
			continue
		}
		if params.AgeCode != "" && (a.Age == nil || a.Age.Code != params.AgeCode) {
			continue
		}
		matched = append(matched, *a)
	}

	sortActivities(matched, params.Ascending)

	total := len(matched)
	page := params.page()
	pageSize := params.pageSize()

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]ActivityListing, 0, end-start)
	for i := start; i < end; i++ {
		tr := visibility.TranslationForLanguage(&matched[i], params.Lang, params.Now, true)
		if tr == nil {
			continue
		}
		items = append(items, ActivityListing{Activity: matched[i], Translation: *tr})
	}

	return newActivityPage(items, page, pageSize, total), nil
}

// sortActivities orders by release date then code, matching the SQL
// ordering (an unset release date sorts like NULL, i.e. earliest).
func sortActivities(activities []aemodel.Activity, ascending bool) {
	sort.SliceStable(activities, func(i, j int) bool {
		less := activityBefore(&activities[i], &activities[j])
		if ascending {
			return less
		}
		return activityBefore(&activities[j], &activities[i])
	})
}

func activityBefore(a, b *aemodel.Activity) bool {
	switch {
	case a.ReleaseDate == nil && b.ReleaseDate != nil:
		return true
	case a.ReleaseDate != nil && b.ReleaseDate == nil:
		return false
	case a.ReleaseDate != nil && b.ReleaseDate != nil && !a.ReleaseDate.Equal(*b.ReleaseDate):
		return a.ReleaseDate.Before(*b.ReleaseDate)
	default:
		return a.Code < b.Code
	}
}

func (s *InMemoryActivityStor) GetActivityByCode(code string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error) {
	for i := range s.activities {
		if s.activities[i].Code == code {
			if !visibility.ActivityVisible(&s.activities[i], viewer, now) {
				return nil, ErrNotFound
			}
			return &s.activities[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryActivityStor) GetActivityByTranslationSlug(translationSlug string, viewer visibility.Viewer, now time.Time) (*aemodel.Activity, error) {
	for i := range s.activities {
		a := &s.activities[i]
		for j := range a.Translations {
			if a.Translations[j].Slug == translationSlug {
				if !visibility.ActivityVisible(a, viewer, now) {
					return nil, ErrNotFound
				}
				return a, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryActivityStor) FeaturedActivities(n int, now time.Time) ([]aemodel.Activity, error) {
	var featured []aemodel.Activity
	for i := range s.activities {
		a := &s.activities[i]
		if !a.Featured {
			continue
		}
		if !visibility.ActivityVisible(a, visibility.Anonymous, now) {
			continue
		}
		if len(visibility.ActiveTranslations(a, now)) == 0 {
			continue
		}
		featured = append(featured, *a)
	}

	sortActivities(featured, false)
	if len(featured) > n {
		featured = featured[:n]
	}
	return featured, nil
}

func (s *InMemoryActivityStor) CreateActivity(activity *aemodel.Activity) (*aemodel.Activity, error) {
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	NormalizeActivity(activity)

	activity.ID = s.nextID
	s.nextID++

	for i := range activity.Translations {
		tr := &activity.Translations[i]
		tr.ActivityID = activity.ID
		if tr.Slug == "" {
			tr.Slug = s.uniqueSlug(slug.Make(tr.Title))
		}
	}

	s.activities = append(s.activities, *activity)
	return activity, nil
}

func (s *InMemoryActivityStor) UpdateActivity(activity *aemodel.Activity) (*aemodel.Activity, error) {
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	NormalizeActivity(activity)

	for i := range s.activities {
		if s.activities[i].ID == activity.ID {
			s.activities[i] = *activity
			return activity, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryActivityStor) uniqueSlug(base string) string {
	candidate := base
	for next := 1; ; next++ {
		inUse := false
		for i := range s.activities {
			for j := range s.activities[i].Translations {
				if s.activities[i].Translations[j].Slug == candidate {
					inUse = true
				}
			}
		}
		if !inUse {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, next)
	}
}
