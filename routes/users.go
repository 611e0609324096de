package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/joaovbraz/mmn-invest-backend/controllers"
	"github.com/joaovbraz/mmn-invest-backend/controllers/auth"
	"github.com/joaovbraz/mmn-invest-backend/controllers/users"
	"github.com/joaovbraz/mmn-invest-backend/middleware"
)

// UsersRoutes registers the public and authenticated user routes.
func UsersRoutes(api *mux.Router, authController *auth.Controller, userController *users.Controller, planController *controllers.PlanController) {
	// Login/register limiter: 60 per IP over 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Session limiter: 120 reads, 60 writes per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	authed := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(authController.Register))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(authController.Login))).Methods(http.MethodPost)
	api.Handle("/logout", authed(authController.Logout)).Methods(http.MethodPost)

	// Public: active plan catalog
	api.Handle("/plans", userLimiter.Middleware(http.HandlerFunc(planController.List))).Methods(http.MethodGet)

	// Account
	api.Handle("/users/info", authed(userController.Info)).Methods(http.MethodGet)
	api.Handle("/users/wallet", authed(userController.Wallet)).Methods(http.MethodGet)
	api.Handle("/users/transactions", authed(userController.ListTransactions)).Methods(http.MethodGet)

	// Investments
	api.Handle("/users/investments", authed(userController.CreateInvestment)).Methods(http.MethodPost)
	api.Handle("/users/investments", authed(userController.ListInvestments)).Methods(http.MethodGet)

	// Pix deposits
	api.Handle("/users/deposits", authed(userController.CreateDeposit)).Methods(http.MethodPost)
	api.Handle("/users/deposits", authed(userController.ListDeposits)).Methods(http.MethodGet)

	// Withdrawals
	api.Handle("/users/withdrawals", authed(userController.RequestWithdrawal)).Methods(http.MethodPost)
	api.Handle("/users/withdrawals", authed(userController.ListWithdrawals)).Methods(http.MethodGet)

	// Referral team overview
	api.Handle("/users/team", authed(userController.Team)).Methods(http.MethodGet)
	api.Handle("/users/team/{level:[0-9]+}", authed(userController.Team)).Methods(http.MethodGet)
}
