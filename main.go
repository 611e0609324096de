package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joaovbraz/mmn-invest-backend/database"
	"github.com/joaovbraz/mmn-invest-backend/jobs"
	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/middleware"
	"github.com/joaovbraz/mmn-invest-backend/routes"
	"github.com/joaovbraz/mmn-invest-backend/services"
)

func main() {
	// Load .env if present (do not overwrite already-set environment variables).
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	env := strings.ToLower(os.Getenv("ENV"))
	if err := logging.InitLogger(env == "production"); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Sync()
	sugar := logging.Sugar()

	requiredEnvVars := []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "JWT_SECRET"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			sugar.Fatalf("required environment variable %s is not set", envVar)
		}
	}

	db, err := database.Connect()
	if err != nil {
		sugar.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate only in development to avoid accidental production schema changes
	if env == "development" {
		sugar.Info("running in development mode, performing auto-migration")
		if err := database.Migrate(db); err != nil {
			sugar.Fatalf("failed to migrate database: %v", err)
		}
		if err := database.SeedPlans(db); err != nil {
			sugar.Fatalf("failed to seed plans: %v", err)
		}
	} else {
		sugar.Info("running in production mode, skipping auto-migration")
	}

	// Service wiring
	wallets := services.NewWalletService(db)
	referrals := services.NewReferralService(db)
	investments := services.NewInvestmentService(db, wallets)
	deposits := services.NewDepositService(db, wallets)
	withdrawals := services.NewWithdrawalService(db, wallets)
	yields := services.NewYieldService(db, wallets)

	router := routes.InitRouter(routes.Deps{
		DB:          db,
		Wallets:     wallets,
		Referrals:   referrals,
		Investments: investments,
		Deposits:    deposits,
		Withdrawals: withdrawals,
		Yields:      yields,
	})

	// Global middleware in recommended order:
	// Logging -> Security headers / CORS -> Request ID -> Max Body -> Timeout -> Recovery -> Metrics -> Suspicious Activity
	handler := middleware.RequestLogMiddleware(
		middleware.SecurityHeadersMiddleware(
			middleware.RequestIDMiddleware(
				middleware.MaxBodyMiddleware(
					middleware.TimeoutMiddleware(
						middleware.RecoveryMiddleware(
							middleware.MetricsMiddleware(
								middleware.SuspiciousActivityMiddleware(router),
							),
						),
					),
				),
			),
		),
	)

	scheduler, err := jobs.StartScheduler(yields)
	if err != nil {
		sugar.Fatalf("failed to start scheduler: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infof("server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := scheduler.Shutdown(); err != nil {
		sugar.Errorf("scheduler shutdown: %v", err)
	}
	if err := server.Shutdown(ctx); err != nil {
		sugar.Fatalf("server forced to shutdown: %v", err)
	}

	sugar.Info("server exited")
}
