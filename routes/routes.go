package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/joaovbraz/mmn-invest-backend/controllers"
	"github.com/joaovbraz/mmn-invest-backend/controllers/admins"
	"github.com/joaovbraz/mmn-invest-backend/controllers/auth"
	"github.com/joaovbraz/mmn-invest-backend/controllers/users"
	"github.com/joaovbraz/mmn-invest-backend/middleware"
	"github.com/joaovbraz/mmn-invest-backend/services"
)

// Deps carries everything the routers need.
type Deps struct {
	DB          *gorm.DB
	Wallets     *services.WalletService
	Referrals   *services.ReferralService
	Investments *services.InvestmentService
	Deposits    *services.DepositService
	Withdrawals *services.WithdrawalService
	Yields      *services.YieldService
}

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv != "" {
		parts := strings.Split(originsEnv, ",")
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour)
	webhookLimiter := middleware.NewWebhookLimiter(500, time.Hour, []string{"127.0.0.1"})

	userController := users.NewController(deps.DB, deps.Wallets, deps.Investments, deps.Deposits, deps.Withdrawals, deps.Yields)
	authController := auth.NewController(deps.DB, deps.Referrals)
	adminController := admins.NewController(deps.DB, deps.Withdrawals)
	planController := controllers.NewPlanController(deps.DB)

	// Cron endpoint for daily yields (protected via X-CRON-KEY header)
	api.Handle("/cron/daily-yields", cronLimiter.Middleware(http.HandlerFunc(userController.CronDailyYields))).Methods(http.MethodPost)

	// Pix payment webhook
	api.Handle("/callback/pix", webhookLimiter.Middleware(http.HandlerFunc(userController.PixWebhook))).Methods(http.MethodPost)

	api.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	UsersRoutes(api, authController, userController, planController)
	SetAdminRoutes(api, adminController)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "mmn-invest-api",
	})
}
