package aemodel

// Repository is an external activity repository that astroEDU
// cross-references (e.g. national lesson plan archives).
type Repository struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RepositoryEntry records that an activity is also published in an
// external repository under the given URL.
type RepositoryEntry struct {
	ID           int         `json:"id"`
	ActivityID   int         `json:"activity_id"`
	RepositoryID int         `json:"repository_id"`
	Repository   *Repository `json:"repository" gorm:"foreignKey:RepositoryID;references:ID"`
	URL          string      `json:"url"`
}
