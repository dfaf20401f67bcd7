package aemodel

// Link is an ordered external reference on an activity. At most one link
// may be flagged as main.
type Link struct {
	ID          int    `json:"id"`
	ActivityID  int    `json:"activity_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Main        bool   `json:"main"`
	Show        bool   `json:"show"`
	Position    int    `json:"position"`
}
