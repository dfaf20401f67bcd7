package aemodel

import (
	"fmt"
	"regexp"
	"time"
)

// Activity category flags. These are fixed columns, not metadata options,
// because the public site filters on them directly.
const (
	CategoryAll        = "all"
	CategorySpace      = "space"
	CategoryEarth      = "earth"
	CategoryNavigation = "navigation"
	CategoryHeritage   = "heritage"
)

var codeRE = regexp.MustCompile(`^\w*\d{4}$`)

// ValidActivityCode reports whether code is in the YY## form (two digits
// for the year followed by a two digit sequence number).
func ValidActivityCode(code string) bool {
	return codeRE.MatchString(code)
}

type Activity struct {
	ID              int        `json:"id"`
	UUID            string     `json:"uuid"`
	Code            string     `json:"code" gorm:"uniqueIndex"`
	Published       bool       `json:"published"`
	Featured        bool       `json:"featured"`
	ReleaseDate     *time.Time `json:"release_date"`
	EmbargoDate     *time.Time `json:"embargo_date"`
	Acknowledgement string     `json:"acknowledgement"`
	DOI             string     `json:"doi"`
	SourcelinkName  string     `json:"sourcelink_name"`
	SourcelinkURL   string     `json:"sourcelink_url"`

	// Category flags
	Space      bool `json:"space"`
	Earth      bool `json:"earth"`
	Navigation bool `json:"navigation"`
	Heritage   bool `json:"heritage"`

	// Metadata classifications, all drawn from the MetadataOption vocabulary
	AgeID        *int            `json:"age_id"`
	Age          *MetadataOption `json:"age" gorm:"foreignKey:AgeID;references:ID"`
	LevelID      *int            `json:"level_id"`
	Level        *MetadataOption `json:"level" gorm:"foreignKey:LevelID;references:ID"`
	TimeID       *int            `json:"time_id"`
	Time         *MetadataOption `json:"time" gorm:"foreignKey:TimeID;references:ID"`
	GroupID      *int            `json:"group_id"`
	Group        *MetadataOption `json:"group" gorm:"foreignKey:GroupID;references:ID"`
	SupervisedID *int            `json:"supervised_id"`
	Supervised   *MetadataOption `json:"supervised" gorm:"foreignKey:SupervisedID;references:ID"`
	CostID       *int            `json:"cost_id"`
	Cost         *MetadataOption `json:"cost" gorm:"foreignKey:CostID;references:ID"`
	LocationID   *int            `json:"location_id"`
	Location     *MetadataOption `json:"location" gorm:"foreignKey:LocationID;references:ID"`

	Translations        []ActivityTranslation `json:"translations"`
	Attachments         []Attachment          `json:"attachments"`
	LanguageAttachments []LanguageAttachment  `json:"language_attachments"`
	Links               []Link                `json:"links"`
	Authors             []AuthorInstitution   `json:"authors"`
	RepositoryEntries   []RepositoryEntry     `json:"repository_entries"`
	Collections         []Collection          `json:"collections" gorm:"many2many:collection2activity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetTranslation returns the translation for the given language code, or
// nil if the activity has none. It does not apply any visibility rules.
func (a *Activity) GetTranslation(lang string) *ActivityTranslation {
	for i := range a.Translations {
		if a.Translations[i].LanguageCode == lang {
			return &a.Translations[i]
		}
	}
	return nil
}

// CanonicalPath is the one URL an activity renders at. Bare code and bare
// slug URLs permanently redirect here.
func (a *Activity) CanonicalPath(tr *ActivityTranslation) string {
	return fmt.Sprintf("/activities/%s/%s/", a.Code, tr.Slug)
}

// CategoryFlag reports whether the named category flag is set.
func (a *Activity) CategoryFlag(category string) bool {
	switch category {
	case CategorySpace:
		return a.Space
	case CategoryEarth:
		return a.Earth
	case CategoryNavigation:
		return a.Navigation
	case CategoryHeritage:
		return a.Heritage
	default:
		return false
	}
}

// MainVisual returns the attachment flagged as the main visual, if any.
func (a *Activity) MainVisual() *Attachment {
	for i := range a.Attachments {
		if a.Attachments[i].MainVisual {
			return &a.Attachments[i]
		}
	}
	return nil
}
