package stor

import (
	"sort"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
)

// InMemoryActivityTranslationStor serves the batch PDF generator in tests.
// It shares the activity slice layout with InMemoryActivityStor:
// translations live inside their activities.
type InMemoryActivityTranslationStor struct {
	activities []aemodel.Activity
}

func NewInMemoryActivityTranslationStor(activities []aemodel.Activity) *InMemoryActivityTranslationStor {
	return &InMemoryActivityTranslationStor{activities: activities}
}

func (s *InMemoryActivityTranslationStor) GetTranslation(activityID int, lang string) (*aemodel.ActivityTranslation, error) {
	for i := range s.activities {
		if s.activities[i].ID != activityID {
			continue
		}
		for j := range s.activities[i].Translations {
			tr := &s.activities[i].Translations[j]
			if tr.LanguageCode == lang {
				tr.Activity = &s.activities[i]
				return tr, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryActivityTranslationStor) ListTranslationsForCode(code, lang string) ([]aemodel.ActivityTranslation, error) {
	for i := range s.activities {
		if s.activities[i].Code != code {
			continue
		}

		var translations []aemodel.ActivityTranslation
		for j := range s.activities[i].Translations {
			tr := s.activities[i].Translations[j]
			if lang != "" && tr.LanguageCode != lang {
				continue
			}
			tr.Activity = &s.activities[i]
			translations = append(translations, tr)
		}

		sort.Slice(translations, func(a, b int) bool {
			return translations[a].LanguageCode < translations[b].LanguageCode
		})
		return translations, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryActivityTranslationStor) ListTranslationsMissingPDF(lang string) ([]aemodel.ActivityTranslation, error) {
	var translations []aemodel.ActivityTranslation
	for i := range s.activities {
		a := &s.activities[i]
		if !a.Published {
			continue
		}
		for j := range a.Translations {
			tr := a.Translations[j]
			if tr.HasPDF() {
				continue
			}
			if lang != "" && tr.LanguageCode != lang {
				continue
			}
			tr.Activity = a
			translations = append(translations, tr)
		}
	}
	return translations, nil
}

func (s *InMemoryActivityTranslationStor) SetTranslationPDF(tr *aemodel.ActivityTranslation, artifact string) error {
	for i := range s.activities {
		for j := range s.activities[i].Translations {
			stored := &s.activities[i].Translations[j]
			if stored.ID == tr.ID {
				stored.PDF = artifact
				tr.PDF = artifact
				return nil
			}
		}
	}
	return ErrNotFound
}
