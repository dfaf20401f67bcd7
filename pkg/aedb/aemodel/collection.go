package aemodel

import (
	"fmt"
	"time"
)

// Collection is a named, publishable grouping of activities.
type Collection struct {
	ID          int        `json:"id"`
	UUID        string     `json:"uuid"`
	Slug        string     `json:"slug" gorm:"uniqueIndex"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	ReleaseDate *time.Time `json:"release_date"`
	EmbargoDate *time.Time `json:"embargo_date"`
	Position    int        `json:"position"`
	Activities  []Activity `json:"activities" gorm:"many2many:collection2activity"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *Collection) CanonicalPath() string {
	return fmt.Sprintf("/collections/%s/", c.Slug)
}
