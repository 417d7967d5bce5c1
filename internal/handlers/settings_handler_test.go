package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"moneta/internal/models"
	"moneta/internal/services"
)

type mockSettingsService struct {
	getSettingsFn    func() (*models.Settings, error)
	updateSettingsFn func(update services.SettingsUpdate) (*models.Settings, error)
}

func (m *mockSettingsService) GetSettings() (*models.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn()
	}
	return &models.Settings{ID: models.SettingsID, Locale: "en", Currency: "EUR", SavingsGoal: 20}, nil
}

func (m *mockSettingsService) UpdateSettings(update services.SettingsUpdate) (*models.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(update)
	}
	return &models.Settings{ID: models.SettingsID, Locale: "en", Currency: "EUR", SavingsGoal: 20}, nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/settings", handler.GetSettings)
	r.PATCH("/settings", handler.UpdateSettings)
	return r
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	t.Run("returns 200 with current settings", func(t *testing.T) {
		handler := NewSettingsHandler(&mockSettingsService{})
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "GET", "/settings", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		settings := result["settings"].(map[string]interface{})
		if settings["locale"] != "en" || settings["currency"] != "EUR" {
			t.Errorf("unexpected settings payload: %v", settings)
		}
	})
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var gotUpdate services.SettingsUpdate
		settingsSvc := &mockSettingsService{
			updateSettingsFn: func(update services.SettingsUpdate) (*models.Settings, error) {
				gotUpdate = update
				return &models.Settings{ID: models.SettingsID, Locale: "de", Currency: "EUR", SavingsGoal: 20}, nil
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PATCH", "/settings", `{"locale":"de"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUpdate.Locale == nil || *gotUpdate.Locale != "de" {
			t.Error("expected locale update to be forwarded")
		}
		if gotUpdate.Currency != nil || gotUpdate.SavingsGoal != nil {
			t.Error("expected absent fields to stay nil")
		}
	})

	t.Run("forwards savings goal", func(t *testing.T) {
		var gotUpdate services.SettingsUpdate
		settingsSvc := &mockSettingsService{
			updateSettingsFn: func(update services.SettingsUpdate) (*models.Settings, error) {
				gotUpdate = update
				return &models.Settings{ID: models.SettingsID, Locale: "en", Currency: "EUR", SavingsGoal: 35.5}, nil
			},
		}
		handler := NewSettingsHandler(settingsSvc)
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PATCH", "/settings", `{"savings_goal":35.5}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUpdate.SavingsGoal == nil || *gotUpdate.SavingsGoal != 35.5 {
			t.Error("expected savings goal update to be forwarded")
		}
	})

	t.Run("returns 400 on unsupported locale", func(t *testing.T) {
		handler := NewSettingsHandler(&mockSettingsService{})
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PATCH", "/settings", `{"locale":"fr"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION")
	})

	t.Run("returns 400 on unknown currency code", func(t *testing.T) {
		handler := NewSettingsHandler(&mockSettingsService{})
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PATCH", "/settings", `{"currency":"EURO"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on out of range savings goal", func(t *testing.T) {
		handler := NewSettingsHandler(&mockSettingsService{})
		r := setupSettingsRouter(handler)

		rec := doRequest(r, "PATCH", "/settings", `{"savings_goal":250}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
