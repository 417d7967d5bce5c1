package main

import (
	"fmt"
	"net/http"
	"os"

	"moneta/internal/config"
	"moneta/internal/handlers"
	"moneta/internal/live"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/services"
	"moneta/internal/store"
	"moneta/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "moneta/internal/docs" // Import swagger docs
)

// @title           Moneta API
// @version         1.0
// @description     Moneta is a self-hosted personal finance tracker for recording transactions and deriving monthly statistics, category breakdowns, and savings rates.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Custom binding validators used by the request payloads
	validator.Register()

	// Open the record store and bring the schema up to date
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	if err := st.Migrate(cfg.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run record store migrations: %w", err)
	}
	if err := st.Initialize(cfg.Locale); err != nil {
		return fmt.Errorf("failed to seed record store: %w", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(st)
	categoryService := services.NewCategoryService(st)
	tagService := services.NewTagService(st)
	settingsService := services.NewSettingsService(st)
	statsService := services.NewStatsService(transactionService)

	// The refresher keeps the dashboard snapshot current as records change
	refresher := live.NewRefresher(st, transactionService, nil)
	defer refresher.Close()

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, categoryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	tagHandler := handlers.NewTagHandler(tagService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	statsHandler := handlers.NewStatsHandler(statsService, transactionService)
	dashboardHandler := handlers.NewDashboardHandler(refresher)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/bulk-delete", transactionHandler.BulkDeleteTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Dashboard route
	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	// Stats routes
	stats := v1.Group("/stats")
	stats.GET("/monthly", statsHandler.GetMonthlyStats)
	stats.GET("/breakdown", statsHandler.GetMonthBreakdown)
	stats.GET("/top", statsHandler.GetTopCategories)
	stats.GET("/summary", statsHandler.GetMonthSummary)
	stats.GET("/range", statsHandler.GetRangeStats)
	stats.GET("/categories", statsHandler.GetCategoryTotals)
	stats.GET("/totals", statsHandler.GetMonthlyTotals)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/subcategories", categoryHandler.AddSubcategory)
	categories.DELETE("/:id/subcategories/:subcategory", categoryHandler.RemoveSubcategory)

	// Tag routes
	tags := v1.Group("/tags")
	tags.POST("", tagHandler.CreateTag)
	tags.GET("", tagHandler.GetTags)
	tags.DELETE("/:id", tagHandler.DeleteTag)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PATCH("", settingsHandler.UpdateSettings)

	log.Infof("Starting Moneta backend server on port %s", cfg.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
