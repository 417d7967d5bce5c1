package models

import "time"

// SettingsID is the fixed primary key of the singleton settings record.
const SettingsID = "default"

// Supported locales for seed data and salary category detection.
const (
	LocaleEnglish = "en"
	LocaleGerman  = "de"
)

// Settings is a singleton record holding user preferences. It is created
// with defaults on first access and only ever merge-updated.
type Settings struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Locale      string    `gorm:"not null" json:"locale"`
	Currency    string    `gorm:"not null" json:"currency"`
	SavingsGoal float64   `gorm:"not null" json:"savings_goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings record created on first access.
func DefaultSettings() *Settings {
	return &Settings{
		ID:          SettingsID,
		Locale:      LocaleEnglish,
		Currency:    "EUR",
		SavingsGoal: 20,
	}
}

// ValidLocale reports whether the locale is supported.
func ValidLocale(locale string) bool {
	return locale == LocaleEnglish || locale == LocaleGerman
}
