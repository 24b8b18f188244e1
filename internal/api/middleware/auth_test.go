package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": "helper",
		"name": "Maria Lopez",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != "helper" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxFullName) != "Maria Lopez" {
			t.Fatalf("full_name not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	valid := jwt.MapClaims{"sub": "user-1", "role": "client", "exp": time.Now().Add(time.Hour).Unix()}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other", valid)},
		{"expired", "Bearer " + signToken(t, "secret", jwt.MapClaims{"sub": "u", "role": "client", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"no expiry", "Bearer " + signToken(t, "secret", jwt.MapClaims{"sub": "u", "role": "client"})},
		{"no subject", "Bearer " + signToken(t, "secret", jwt.MapClaims{"role": "client", "exp": time.Now().Add(time.Hour).Unix()})},
	}

	for _, tc := range cases {
		rec, called := runAuth(t, tc.header)
		if called {
			t.Errorf("%s: next must not be called", tc.name)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}
