// Package visibility decides which activities and which of their
// translations may be shown to a given viewer at a given time. Everything
// in here is a pure function of its inputs; nothing is mutated and no
// storage is touched. Publication state is not stored anywhere, it is
// recomputed from the published flag and the release date on every call.
package visibility

import (
	"sort"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
)

// DefaultLanguage is the site default, used as the detail page fallback.
const DefaultLanguage = "en"

// Viewer classifies the requester. Staff viewers see everything so that
// editors can preview unpublished and embargoed content.
type Viewer struct {
	Staff bool
}

var (
	Anonymous   = Viewer{}
	StaffViewer = Viewer{Staff: true}
)

// State is the publication lifecycle of an activity at a point in time.
type State int

const (
	StateDraft State = iota
	StateEmbargoed
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateEmbargoed:
		return "embargoed"
	default:
		return "published"
	}
}

// ActivityState computes the lifecycle state of an activity at now. An
// unset release date means the activity is released as soon as it is
// marked published.
func ActivityState(a *aemodel.Activity, now time.Time) State {
	switch {
	case !a.Published:
		return StateDraft
	case a.ReleaseDate != nil && a.ReleaseDate.After(now):
		return StateEmbargoed
	default:
		return StatePublished
	}
}

// ActivityVisible reports whether the viewer may see the activity at now.
func ActivityVisible(a *aemodel.Activity, viewer Viewer, now time.Time) bool {
	if viewer.Staff {
		return true
	}
	return ActivityState(a, now) == StatePublished
}

// TranslationActive reports whether a translation is complete and out of
// embargo. This mirrors the activity level rule: draft translations and
// translations with a future embargo date are never surfaced.
func TranslationActive(tr *aemodel.ActivityTranslation, now time.Time) bool {
	if !tr.Published {
		return false
	}
	if tr.EmbargoDate != nil && tr.EmbargoDate.After(now) {
		return false
	}
	return true
}

// ActiveTranslations returns the activity's active translations as a new
// slice, sorted by language code so callers get a stable order. The
// activity is left untouched.
func ActiveTranslations(a *aemodel.Activity, now time.Time) []aemodel.ActivityTranslation {
	var active []aemodel.ActivityTranslation
	for i := range a.Translations {
		if TranslationActive(&a.Translations[i], now) {
			active = append(active, a.Translations[i])
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].LanguageCode < active[j].LanguageCode
	})
	return active
}

// TranslationForLanguage selects the translation to surface for the given
// language. With fallback set, any active language is acceptable when the
// requested one is missing; listings use this so an activity translated
// only into other languages still shows up. Detail pages instead fall
// back to DefaultLanguage only, and 404 when that also fails.
func TranslationForLanguage(a *aemodel.Activity, lang string, now time.Time, fallback bool) *aemodel.ActivityTranslation {
	active := ActiveTranslations(a, now)
	for i := range active {
		if active[i].LanguageCode == lang {
			return &active[i]
		}
	}
	if !fallback {
		return nil
	}
	if len(active) == 0 {
		return nil
	}
	return &active[0]
}

// DetailTranslation is the detail page selection rule: requested language,
// then the site default, then nothing.
func DetailTranslation(a *aemodel.Activity, lang string, now time.Time) *aemodel.ActivityTranslation {
	if tr := TranslationForLanguage(a, lang, now, false); tr != nil {
		return tr
	}
	return TranslationForLanguage(a, DefaultLanguage, now, false)
}

// FilterActivities returns the subset of activities visible to the viewer,
// preserving the caller's ordering and dropping duplicates by ID. The
// input slice is not modified.
func FilterActivities(activities []aemodel.Activity, viewer Viewer, now time.Time) []aemodel.Activity {
	seen := make(map[int]bool)
	var visible []aemodel.Activity
	for i := range activities {
		if seen[activities[i].ID] {
			continue
		}
		seen[activities[i].ID] = true
		if ActivityVisible(&activities[i], viewer, now) {
			visible = append(visible, activities[i])
		}
	}
	return visible
}

// CollectionVisible applies the activity rule at the collection level.
func CollectionVisible(c *aemodel.Collection, viewer Viewer, now time.Time) bool {
	if viewer.Staff {
		return true
	}
	if !c.Published {
		return false
	}
	if c.ReleaseDate != nil && c.ReleaseDate.After(now) {
		return false
	}
	return true
}

// SmartPageVisible gates smart pages on their release date.
func SmartPageVisible(p *aemodel.SmartPage, viewer Viewer, now time.Time) bool {
	if viewer.Staff {
		return true
	}
	return p.ReleaseDate == nil || !p.ReleaseDate.After(now)
}
