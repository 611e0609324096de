package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joaovbraz/mmn-invest-backend/models"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

func callRequireAdmin(role string, withRole bool) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil)
	if withRole {
		req = req.WithContext(context.WithValue(req.Context(), utils.UserRoleKey, role))
	}
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	return rec
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	rec := callRequireAdmin(models.RoleAdmin, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	rec := callRequireAdmin(models.RoleUser, true)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireAdminRejectsMissingRole(t *testing.T) {
	rec := callRequireAdmin("", false)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
