package aemodel

// MetadataOption groups. These are the controlled vocabularies the
// activity classification fields draw their values from.
const (
	MetadataGroupAge        = "age"
	MetadataGroupLevel      = "level"
	MetadataGroupTime       = "time"
	MetadataGroupGroup      = "group"
	MetadataGroupSupervised = "supervised"
	MetadataGroupCost       = "cost"
	MetadataGroupLocation   = "location"
)

// MetadataOption is a controlled vocabulary entry. Options are managed by
// admins only; the stores never create them as a side effect of a save.
type MetadataOption struct {
	ID       int    `json:"id"`
	// The column is option_group because "group" is reserved in MySQL.
	Group    string `json:"group" gorm:"column:option_group;index"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}
