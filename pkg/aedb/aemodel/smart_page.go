package aemodel

import "time"

// SmartPage is a static content page addressed by URL path rather than by
// code, one row per language.
type SmartPage struct {
	ID           int        `json:"id"`
	Code         string     `json:"code" gorm:"index"`
	URL          string     `json:"url" gorm:"index"`
	LanguageCode string     `json:"language_code"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	ReleaseDate  *time.Time `json:"release_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
