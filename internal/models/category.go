package models

// DefaultSubcategory is assigned when a category is created without any
// subcategories.
const DefaultSubcategory = "General"

// Category groups transactions by name. Transactions reference categories
// by name only; deleting a category leaves its transactions untouched.
type Category struct {
	Base
	Name          string   `gorm:"uniqueIndex;not null" json:"name"`
	Subcategories []string `gorm:"serializer:json" json:"subcategories"`
}

// HasSubcategory reports whether sub is present in the category's list.
// Comparison is exact and case-sensitive.
func (c *Category) HasSubcategory(sub string) bool {
	for _, s := range c.Subcategories {
		if s == sub {
			return true
		}
	}
	return false
}
