package aemodel

import "time"

// User is an editorial account. Staff users see unpublished and embargoed
// content for preview; everyone else is treated as anonymous.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	APIToken  string    `json:"-" gorm:"index"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
