package aemodel

import (
	"fmt"
	"time"
)

// ActivityTranslation holds the localized content of an Activity for a
// single language code. The PDF field is the media store key of the
// generated PDF artifact; it is empty until the batch generator has run.
type ActivityTranslation struct {
	ID           int       `json:"id"`
	ActivityID   int       `json:"activity_id"`
	Activity     *Activity `json:"-" gorm:"foreignKey:ActivityID;references:ID"`
	LanguageCode string    `json:"language_code" gorm:"index"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug" gorm:"index"`
	Teaser       string    `json:"teaser"`

	// Body sections
	Materials             string `json:"materials"`
	Goals                 string `json:"goals"`
	Objectives            string `json:"objectives"`
	Evaluation            string `json:"evaluation"`
	Background            string `json:"background"`
	Curriculum            string `json:"curriculum"`
	FullDesc              string `json:"fulldesc"`
	ShortDescMaterial     string `json:"short_desc_material"`
	AdditionalInformation string `json:"additional_information"`
	Conclusion            string `json:"conclusion"`
	FurtherReading        string `json:"further_reading"`
	Reference             string `json:"reference"`

	// Published marks the translation as complete. Draft translations are
	// never shown to anonymous viewers.
	Published   bool       `json:"published"`
	EmbargoDate *time.Time `json:"embargo_date"`

	PDF string `json:"pdf"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PDFFilename is the artifact name used by the batch PDF generator.
func (tr *ActivityTranslation) PDFFilename(code string) string {
	return fmt.Sprintf("astroedu-%s-%s.pdf", code, tr.LanguageCode)
}

func (tr *ActivityTranslation) HasPDF() bool {
	return tr.PDF != ""
}
