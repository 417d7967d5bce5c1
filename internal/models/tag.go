package models

// Tag is a free-form label attachable to transactions. Like categories,
// transactions reference tags by name only.
type Tag struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
