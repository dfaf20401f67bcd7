package aemodel

import "time"

// Attachment is a file associated with an activity across all languages.
// At most one attachment per activity may be flagged as the main visual.
type Attachment struct {
	ID         int       `json:"id"`
	ActivityID int       `json:"activity_id"`
	Title      string    `json:"title"`
	File       string    `json:"file"`
	MainVisual bool      `json:"main_visual"`
	Show       bool      `json:"show"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LanguageAttachment is a file scoped to one language of an activity. The
// main visual invariant applies per language.
type LanguageAttachment struct {
	ID           int       `json:"id"`
	ActivityID   int       `json:"activity_id"`
	LanguageCode string    `json:"language_code" gorm:"index"`
	Title        string    `json:"title"`
	File         string    `json:"file"`
	MainVisual   bool      `json:"main_visual"`
	Show         bool      `json:"show"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
