package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tavolo/globals"
	"tavolo/middleware"

	"github.com/golang-jwt/jwt/v5"
)

func TestRefreshRejectsTokenWithoutExpiry(t *testing.T) {
	claims := &middleware.Claims{UserID: "u1"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token/refresh", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	refreshTokenHandler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
