package models

// DefaultCategoryColor is used for any category without a palette entry,
// including dangling references to deleted categories.
const DefaultCategoryColor = "#9ca3af"

// categoryColors maps seed category names (both locales) to display colors.
var categoryColors = map[string]string{
	"Salary": "#22c55e", "Gehalt": "#22c55e",
	"Home": "#3b82f6", "Wohnen": "#3b82f6",
	"Groceries": "#f59e0b", "Lebensmittel": "#f59e0b",
	"Restaurants": "#ef4444",
	"Transport":   "#06b6d4",
	"Health": "#ec4899", "Gesundheit": "#ec4899",
	"Leisure": "#8b5cf6", "Freizeit": "#8b5cf6",
	"Shopping": "#f97316", "Einkaufen": "#f97316",
	"Travel": "#14b8a6", "Reisen": "#14b8a6",
	"Education": "#6366f1", "Bildung": "#6366f1",
	"Finance": "#84cc16", "Finanzen": "#84cc16",
	"Family": "#d946ef", "Familie": "#d946ef",
	"Other": "#64748b", "Sonstiges": "#64748b",
}

// ColorFor returns the display color for a category name. It never fails:
// unknown names fall back to the default color.
func ColorFor(name string) string {
	if c, ok := categoryColors[name]; ok {
		return c
	}
	return DefaultCategoryColor
}
