package store

import (
	"fmt"

	"moneta/internal/logger"
	"moneta/internal/models"
)

// seedCategory pairs a category name with its default subcategories.
type seedCategory struct {
	name string
	subs []string
}

var seedCategoriesEN = []seedCategory{
	{"Salary", []string{"General", "Bonus", "Side Job"}},
	{"Home", []string{"Rent", "Utilities", "Internet", "Furniture", "Repairs"}},
	{"Groceries", []string{"Supermarket", "Bakery", "Beverages"}},
	{"Restaurants", []string{"Lunch", "Dinner", "Cafe", "Delivery"}},
	{"Transport", []string{"Public Transit", "Fuel", "Car Maintenance", "Parking"}},
	{"Health", []string{"Doctor", "Pharmacy", "Fitness", "Insurance"}},
	{"Leisure", []string{"Movies", "Concerts", "Hobbies", "Subscriptions", "Sports"}},
	{"Shopping", []string{"Clothing", "Electronics", "Gifts", "Household"}},
	{"Travel", []string{"Flights", "Hotels", "Food", "Activities"}},
	{"Education", []string{"Books", "Courses", "Tuition"}},
	{"Finance", []string{"Fees", "Interest", "Taxes"}},
	{"Family", []string{"Childcare", "School", "Toys", "Allowance"}},
	{"Other", []string{"General", "Miscellaneous"}},
}

var seedCategoriesDE = []seedCategory{
	{"Gehalt", []string{"Allgemein", "Bonus", "Nebenjob"}},
	{"Wohnen", []string{"Miete", "Nebenkosten", "Internet", "Möbel", "Reparaturen"}},
	{"Lebensmittel", []string{"Supermarkt", "Bäckerei", "Getränke"}},
	{"Restaurants", []string{"Mittagessen", "Abendessen", "Café", "Lieferung"}},
	{"Transport", []string{"ÖPNV", "Tanken", "Autowartung", "Parken"}},
	{"Gesundheit", []string{"Arzt", "Apotheke", "Fitness", "Versicherung"}},
	{"Freizeit", []string{"Kino", "Konzerte", "Hobbys", "Abos", "Sport"}},
	{"Einkaufen", []string{"Kleidung", "Elektronik", "Geschenke", "Haushalt"}},
	{"Reisen", []string{"Flüge", "Hotels", "Essen", "Aktivitäten"}},
	{"Bildung", []string{"Bücher", "Kurse", "Studiengebühren"}},
	{"Finanzen", []string{"Gebühren", "Zinsen", "Steuern"}},
	{"Familie", []string{"Kinderbetreuung", "Schule", "Spielzeug", "Taschengeld"}},
	{"Sonstiges", []string{"Allgemein", "Verschiedenes"}},
}

var seedTagsEN = []string{"Recurring", "One-time", "Vacation", "Shared"}
var seedTagsDE = []string{"Wiederkehrend", "Einmalig", "Urlaub", "Geteilt"}

// Initialize seeds the default categories and tags for the given locale.
// Each collection is seeded only when empty, so repeated calls are no-ops
// and user-modified data is never overwritten.
func (s *Store) Initialize(locale string) error {
	cats := seedCategoriesEN
	tags := seedTagsEN
	if locale == models.LocaleGerman {
		cats = seedCategoriesDE
		tags = seedTagsDE
	}

	var catCount int64
	if err := s.db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if catCount == 0 {
		for _, c := range cats {
			cat := &models.Category{Name: c.name, Subcategories: c.subs}
			if err := s.db.Create(cat).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", c.name, err)
			}
		}
		s.hub.Touch(CollectionCategories)
		logger.Get().Infow("seeded default categories", "locale", locale, "count", len(cats))
	}

	var tagCount int64
	if err := s.db.Model(&models.Tag{}).Count(&tagCount).Error; err != nil {
		return fmt.Errorf("failed to count tags: %w", err)
	}
	if tagCount == 0 {
		for _, name := range tags {
			if err := s.db.Create(&models.Tag{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed tag %q: %w", name, err)
			}
		}
		s.hub.Touch(CollectionTags)
		logger.Get().Infow("seeded default tags", "locale", locale, "count", len(tags))
	}

	return nil
}
