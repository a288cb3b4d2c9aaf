package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"paisa/internal/config"
	"paisa/internal/database"
	"paisa/internal/handlers"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/scheduler"
	"paisa/internal/services"
	"paisa/internal/validator"

	_ "paisa/internal/docs" // Import swagger docs
)

// @title           Paisa API
// @version         1.0
// @description     Paisa is a personal finance tracker: one cash balance, an expense ledger, savings goals, spending budgets, and derived insights and reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	balanceService := services.NewBalanceService(db)
	expenseService := services.NewExpenseService(db, balanceService)
	goalService := services.NewGoalService(db, balanceService)
	budgetService := services.NewBudgetService(db)
	insightService := services.NewInsightService(db)
	reportService := services.NewReportService(db, balanceService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	balanceHandler := handlers.NewBalanceHandler(balanceService, goalService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	goalHandler := handlers.NewGoalHandler(goalService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	insightHandler := handlers.NewInsightHandler(insightService)
	reportHandler := handlers.NewReportHandler(reportService)
	categoryHandler := handlers.NewCategoryHandler()

	// Background jobs
	jobs := scheduler.New(budgetService, goalService)
	if err := jobs.Register(appConfig.BudgetSweepCron, appConfig.AlertCheckCron); err != nil {
		return fmt.Errorf("failed to register scheduled jobs: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Owner profile
	protected.GET("/profile", authHandler.GetProfile)

	// Balance routes
	balance := protected.Group("/balance")
	balance.GET("", balanceHandler.GetBalance)
	balance.PUT("", balanceHandler.SetBalance)
	balance.POST("/credit", balanceHandler.Credit)
	balance.POST("/debit", balanceHandler.Debit)
	balance.GET("/available", balanceHandler.GetAvailable)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.GET("/statistics", expenseHandler.GetStatistics)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/alerts", goalHandler.GetGoalAlerts)
	goals.GET("/summary", goalHandler.GetGoalSummary)
	goals.POST("/delete-by-name", goalHandler.DeleteGoalByName)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)
	goals.POST("/:id/contributions", goalHandler.Contribute)
	goals.POST("/:id/cancel", goalHandler.CancelGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/alerts", budgetHandler.GetBudgetAlerts)
	budgets.GET("/summary", budgetHandler.GetBudgetSummary)
	budgets.POST("/delete-by-category", budgetHandler.DeleteBudgetByCategory)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)
	budgets.POST("/:id/renew", budgetHandler.RenewBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Insight routes
	insights := protected.Group("/insights")
	insights.GET("", insightHandler.GetInsights)
	insights.GET("/anomalies", insightHandler.GetAnomalies)
	insights.GET("/suggestions", insightHandler.GetSuggestions)
	insights.GET("/trend", insightHandler.GetTrend)
	insights.GET("/comparison", insightHandler.GetComparison)

	// Reports and categories
	protected.GET("/reports", reportHandler.GetReport)
	protected.GET("/categories", categoryHandler.GetCategories)

	log.Infof("Starting Paisa backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
