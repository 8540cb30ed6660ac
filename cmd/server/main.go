// Package main is the entry point for the finledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finledger/internal/domain/auth"
	"finledger/internal/domain/budget"
	"finledger/internal/domain/category"
	"finledger/internal/domain/dashboard"
	"finledger/internal/domain/expense"
	"finledger/internal/domain/income"
	"finledger/internal/domain/report"
	v1 "finledger/internal/infrastructure/http/v1"
	"finledger/internal/infrastructure/storage/postgres"
	"finledger/internal/infrastructure/storage/postgres/auth_repo"
	"finledger/internal/infrastructure/storage/postgres/finance_repo"
	"finledger/internal/infrastructure/storage/postgres/report_repo"
	"finledger/pkg/logger"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting finledger server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	reportRepo := report_repo.NewReportRepo(txManager)
	incomeRepo := finance_repo.NewIncomeRepo(txManager)
	expenseRepo := finance_repo.NewExpenseRepo(txManager)
	budgetRepo := finance_repo.NewBudgetRepo(txManager)
	categoryRepo := finance_repo.NewCategoryRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- JWT Service ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))

	// --- Services ---
	authService := auth.NewService(userRepo, jwtService)
	incomeService := income.NewService(incomeRepo)
	expenseService := expense.NewService(expenseRepo)
	budgetService := budget.NewService(budgetRepo)
	categoryService := category.NewService(categoryRepo)
	dashboardService := dashboard.NewService(incomeRepo, expenseRepo)

	auditService, err := postgres.NewAuditService(txManager, "report")
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	aggregator := report.NewAggregator(incomeRepo, expenseRepo, budgetRepo)
	artifacts := report.NewArtifactWriter(getEnv("REPORTS_DIR", "./public/reports"))
	reportService := report.NewService(reportRepo, aggregator, artifacts, txManager, auditService, log)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		ReportService:    reportService,
		IncomeService:    incomeService,
		ExpenseService:   expenseService,
		BudgetService:    budgetService,
		CategoryService:  categoryService,
		DashboardService: dashboardService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	// Let in-flight report generation finish before exit
	reportService.Wait()

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
