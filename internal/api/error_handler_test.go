package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantLog  string
	}{
		{
			name:     "http error keeps code and message",
			err:      echo.NewHTTPError(http.StatusConflict, "User with this email already exists."),
			wantCode: http.StatusConflict,
			wantMsg:  "User with this email already exists.",
		},
		{
			name:     "internal cause is logged not returned",
			err:      echo.NewHTTPError(http.StatusInternalServerError, "Database error during login.").SetInternal(errors.New("disk I/O error")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Database error during login.",
			wantLog:  "disk I/O error",
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("get helper: %w", domain.ErrHelperNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  "Helper not found",
		},
		{
			name:     "unexpected error",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal server error.",
			wantLog:  "boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/helpers/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.New(&logs))(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, body.Error)
			}
			if strings.Contains(rec.Body.String(), "disk I/O") || strings.Contains(rec.Body.String(), "boom") {
				t.Errorf("internal cause leaked: %s", rec.Body.String())
			}
			if tc.wantLog != "" && !strings.Contains(logs.String(), tc.wantLog) {
				t.Errorf("expected log to contain %q, got %q", tc.wantLog, logs.String())
			}
			if tc.wantLog == "" && logs.Len() != 0 {
				t.Errorf("expected no log, got %q", logs.String())
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left untouched, got %d %q", rec.Code, rec.Body.String())
	}
}
