package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/store"
)

// settingsService handles the settings singleton.
type settingsService struct {
	db  *gorm.DB
	hub *store.Hub
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(st *store.Store) SettingsServicer {
	return &settingsService{db: st.DB(), hub: st.Hub()}
}

// GetSettings returns the singleton settings record, creating it with
// defaults on first access.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	defaults := models.DefaultSettings()
	if err := s.db.Create(defaults).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionSettings)
	return defaults, nil
}

// UpdateSettings merge-updates the singleton. Only provided fields change;
// the record is never replaced wholesale.
func (s *settingsService) UpdateSettings(update SettingsUpdate) (*models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Locale != nil {
		if !models.ValidLocale(*update.Locale) {
			return nil, apperrors.ErrInvalidLocale
		}
		updates["locale"] = *update.Locale
	}
	if update.Currency != nil {
		if len(*update.Currency) != 3 {
			return nil, apperrors.ErrInvalidCurrency
		}
		updates["currency"] = *update.Currency
	}
	if update.SavingsGoal != nil {
		if *update.SavingsGoal < 0 || *update.SavingsGoal > 100 {
			return nil, apperrors.ErrInvalidSavingsGoal
		}
		updates["savings_goal"] = *update.SavingsGoal
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
		}
		s.hub.Touch(store.CollectionSettings)
	}

	return settings, nil
}
