package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joaovbraz/mmn-invest-backend/utils"
)

func TestLogoutAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "logout-test-secret")

	token, err := utils.GenerateAccessTokenWithExpiry(7, "USER", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	c := &Controller{}
	c.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestLogoutRejectsInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "logout-test-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	c := &Controller{}
	c.Logout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
