package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func readiness(t *testing.T, db Pinger) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := NewHealthDependenciesHandler(db, nil, nil).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_OptionalStoresDisabled(t *testing.T) {
	code, resp := readiness(t, stubPinger{})

	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, resp)
	}
	if resp.Dependencies["mongodb"].Status != "disabled" || resp.Dependencies["redis"].Status != "disabled" {
		t.Errorf("unconfigured stores must report disabled: %+v", resp.Dependencies)
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	code, resp := readiness(t, stubPinger{err: errors.New("database is closed")})

	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded 503, got %d %+v", code, resp)
	}
	if dep := resp.Dependencies["database"]; dep.Status != "unhealthy" || dep.Error == "" {
		t.Errorf("unexpected database status: %+v", dep)
	}
}
