package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"moneta/internal/handlers"
	"moneta/internal/live"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/models"
	"moneta/internal/services"
	"moneta/internal/store"
	"moneta/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Store  *store.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// store seeded with the English defaults.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppLocale(t, models.LocaleEnglish)
}

// setupAppLocale creates the stack with an explicit seed locale.
func setupAppLocale(t *testing.T, locale string) *testApp {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	st, err := store.OpenDSN(dsn)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})

	tables := []interface{}{
		&models.Transaction{},
		&models.Category{},
		&models.Tag{},
		&models.Settings{},
	}
	if err := st.DB().AutoMigrate(tables...); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}
	if err := st.Initialize(locale); err != nil {
		t.Fatalf("failed to seed test store: %v", err)
	}

	// Services
	transactionService := services.NewTransactionService(st)
	categoryService := services.NewCategoryService(st)
	tagService := services.NewTagService(st)
	settingsService := services.NewSettingsService(st)
	statsService := services.NewStatsService(transactionService)

	// Snapshot refresher; closed before the store.
	refresher := live.NewRefresher(st, transactionService, nil)
	t.Cleanup(refresher.Close)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, categoryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	tagHandler := handlers.NewTagHandler(tagService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	statsHandler := handlers.NewStatsHandler(statsService, transactionService)
	dashboardHandler := handlers.NewDashboardHandler(refresher)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/bulk-delete", transactionHandler.BulkDeleteTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	stats := v1.Group("/stats")
	stats.GET("/monthly", statsHandler.GetMonthlyStats)
	stats.GET("/breakdown", statsHandler.GetMonthBreakdown)
	stats.GET("/top", statsHandler.GetTopCategories)
	stats.GET("/summary", statsHandler.GetMonthSummary)
	stats.GET("/range", statsHandler.GetRangeStats)
	stats.GET("/categories", statsHandler.GetCategoryTotals)
	stats.GET("/totals", statsHandler.GetMonthlyTotals)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/subcategories", categoryHandler.AddSubcategory)
	categories.DELETE("/:id/subcategories/:subcategory", categoryHandler.RemoveSubcategory)

	tags := v1.Group("/tags")
	tags.POST("", tagHandler.CreateTag)
	tags.GET("", tagHandler.GetTags)
	tags.DELETE("/:id", tagHandler.DeleteTag)

	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PATCH("", settingsHandler.UpdateSettings)

	return &testApp{Store: st, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createTransaction records a transaction and returns its generated ID.
func (app *testApp) createTransaction(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
