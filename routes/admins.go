package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/joaovbraz/mmn-invest-backend/controllers/admins"
	"github.com/joaovbraz/mmn-invest-backend/middleware"
)

// SetAdminRoutes registers admin endpoints behind auth + role check.
func SetAdminRoutes(api *mux.Router, adminController *admins.Controller) {
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware, middleware.RequireAdmin)

	adminRouter.Handle("/dashboard", http.HandlerFunc(adminController.Dashboard)).Methods(http.MethodGet)

	// Withdrawal management
	adminRouter.Handle("/withdrawals", http.HandlerFunc(adminController.ListWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(adminController.ApproveWithdrawal)).Methods(http.MethodPut)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(adminController.RejectWithdrawal)).Methods(http.MethodPut)

	// Plan management
	adminRouter.Handle("/plans", http.HandlerFunc(adminController.ListPlans)).Methods(http.MethodGet)
	adminRouter.Handle("/plans", http.HandlerFunc(adminController.CreatePlan)).Methods(http.MethodPost)
	adminRouter.Handle("/plans/{id:[0-9]+}", http.HandlerFunc(adminController.UpdatePlan)).Methods(http.MethodPut)
}
