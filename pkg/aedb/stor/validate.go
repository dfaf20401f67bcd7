package stor

import (
	"strings"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
)

// ValidateActivity enforces the write boundary invariants. It is shared by
// every ActivityStor implementation so the rules cannot drift between the
// real store and the in-memory one.
func ValidateActivity(activity *aemodel.Activity) error {
	verr := NewValidationError()

	if !aemodel.ValidActivityCode(activity.Code) {
		verr.Add("code", "the code should be four digits, in the format: YY##")
	}

	if len(activity.Authors) == 0 {
		verr.Add("authors", "at least one author is required")
	}

	if activity.AgeID == nil && activity.Age == nil && activity.LevelID == nil && activity.Level == nil {
		verr.Add("", `please fill in at least one of these fields: "Age", "Level"`)
	}

	mainVisuals := 0
	for i := range activity.Attachments {
		if activity.Attachments[i].MainVisual {
			mainVisuals++
		}
	}
	if mainVisuals > 1 {
		verr.Add("attachments", `there can be only one "main visual"`)
	}

	perLang := make(map[string]int)
	for i := range activity.LanguageAttachments {
		la := &activity.LanguageAttachments[i]
		if la.MainVisual {
			perLang[la.LanguageCode]++
			if perLang[la.LanguageCode] > 1 {
				verr.Add("language_attachments", `there can be only one "main visual" per language`)
			}
		}
	}

	mainLinks := 0
	for i := range activity.Links {
		if activity.Links[i].Main {
			mainLinks++
		}
	}
	if mainLinks > 1 {
		verr.Add("links", "there can be only one main link")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// NormalizeActivity cleans up submitted content before it is saved.
// Teasers render on single-line cards, so newlines become spaces.
func NormalizeActivity(activity *aemodel.Activity) {
	for i := range activity.Translations {
		tr := &activity.Translations[i]
		tr.Teaser = strings.TrimSpace(strings.ReplaceAll(tr.Teaser, "\n", " "))
	}
}
