package aemodel

import "fmt"

// AuthorInstitution links an activity to one of its authors and the
// institution they wrote it for. Every activity needs at least one.
type AuthorInstitution struct {
	ID          int    `json:"id"`
	ActivityID  int    `json:"activity_id"`
	Author      string `json:"author"`
	Institution string `json:"institution"`
}

func (a AuthorInstitution) DisplayName() string {
	if a.Institution == "" {
		return a.Author
	}
	return fmt.Sprintf("%s (%s)", a.Author, a.Institution)
}
