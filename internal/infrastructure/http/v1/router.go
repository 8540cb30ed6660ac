// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"finledger/internal/domain/auth"
	"finledger/internal/domain/budget"
	"finledger/internal/domain/category"
	"finledger/internal/domain/dashboard"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
	"finledger/internal/domain/report"
	"finledger/internal/infrastructure/http/v1/handlers"
	"finledger/internal/infrastructure/http/v1/middleware"
	"finledger/internal/infrastructure/storage/postgres"
	"finledger/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Services per domain
	AuthService      *auth.Service
	ReportService    *report.Service
	IncomeService    *income.Service
	ExpenseService   *expense.Service
	BudgetService    *budget.Service
	CategoryService  *category.Service
	DashboardService *dashboard.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)

		registerReportRoutes(protected, baseHandler, cfg)
		registerFinanceRoutes(protected, baseHandler, cfg)
	}

	return router
}

// registerReportRoutes registers report generation endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportsHandler(base, cfg.ReportService)

	reports := rg.Group("/reports")
	{
		reports.POST("/generate", h.Generate)
		reports.GET("", h.List)
		reports.GET("/stats", h.Stats)
		reports.GET("/download/:id", h.Download)
		reports.GET("/:id", h.GetByID)
		reports.DELETE("/:id", h.Delete)
	}
}

// registerFinanceRoutes registers the financial record endpoints that feed
// report aggregation.
func registerFinanceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	incomeHandler := handlers.NewIncomeHandler(base, cfg.IncomeService)
	incomes := rg.Group("/incomes")
	{
		incomes.POST("", incomeHandler.Create)
		incomes.GET("", incomeHandler.List)
		incomes.GET("/:id", incomeHandler.GetByID)
		incomes.DELETE("/:id", incomeHandler.Delete)
	}

	expenseHandler := handlers.NewExpenseHandler(base, cfg.ExpenseService)
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", expenseHandler.Create)
		expenses.GET("", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.GetByID)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}

	budgetHandler := handlers.NewBudgetHandler(base, cfg.BudgetService)
	budgets := rg.Group("/budgets")
	{
		budgets.POST("", budgetHandler.Create)
		budgets.GET("", budgetHandler.List)
		budgets.GET("/:id", budgetHandler.GetByID)
		budgets.DELETE("/:id", budgetHandler.Delete)
	}

	categoryHandler := handlers.NewCategoryHandler(base, cfg.CategoryService)
	categories := rg.Group("/categories")
	{
		categories.POST("", categoryHandler.Create)
		categories.GET("", categoryHandler.List)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	dashboardHandler := handlers.NewDashboardHandler(base, cfg.DashboardService)
	rg.GET("/dashboard", dashboardHandler.Summary)
}
