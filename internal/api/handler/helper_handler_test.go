package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

type stubHelperService struct {
	searchFn func(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error)
	getFn    func(ctx context.Context, id string) (*domain.HelperProfile, error)
}

func (s *stubHelperService) Search(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
	return s.searchFn(ctx, f)
}

func (s *stubHelperService) Get(ctx context.Context, id string) (*domain.HelperProfile, error) {
	return s.getFn(ctx, id)
}

func TestHelperHandler_Search_ForwardsFilters(t *testing.T) {
	skills := "plumbing"
	stub := &stubHelperService{
		searchFn: func(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
			if f.City != "Austin" || f.Skill != "plumb" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []domain.Profile{{ID: "h1", Role: domain.RoleHelper, Skills: &skills, PasswordHash: domain.MockPasswordHash}}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/api/helpers?city=Austin&skill=plumb", "")
	if err := NewHelperHandler(stub).Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	decodeBody(t, rec, &resp)
	if len(resp) != 1 || resp[0]["id"] != "h1" || resp[0]["skills"] != "plumbing" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, ok := resp[0]["password_hash"]; ok {
		t.Error("password_hash must not be serialized")
	}
	if v, ok := resp[0]["hourly_rate"]; !ok || v != nil {
		t.Errorf("absent hourly_rate must render as null, got %v (present=%v)", v, ok)
	}
}

func TestHelperHandler_Search_EmptyIsArray(t *testing.T) {
	stub := &stubHelperService{
		searchFn: func(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
			return []domain.Profile{}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/api/helpers", "")
	if err := NewHelperHandler(stub).Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %s", rec.Body.String())
	}
}

func TestHelperHandler_Search_StoreFault(t *testing.T) {
	stub := &stubHelperService{
		searchFn: func(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
			return nil, errors.New("no such table: profiles")
		},
	}
	c, _ := newTestContext(http.MethodGet, "/api/helpers", "")
	assertHTTPError(t, NewHelperHandler(stub).Search(c), http.StatusInternalServerError, "Could not retrieve helper data.")
}

func TestHelperHandler_Get(t *testing.T) {
	comment := "great"
	stub := &stubHelperService{
		getFn: func(ctx context.Context, id string) (*domain.HelperProfile, error) {
			if id != "h1" {
				return nil, domain.ErrHelperNotFound
			}
			return &domain.HelperProfile{
				Profile:        domain.Profile{ID: "h1", FullName: "Maria", Role: domain.RoleHelper},
				Availabilities: []domain.Availability{{ID: "a1", Days: "Mon", StartTime: "09:00", EndTime: "12:00"}},
				Reviews: []domain.Review{{
					Rating: 5, Comment: &comment, ReviewerName: "Alex",
					CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
				}},
			}, nil
		},
	}
	h := NewHelperHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/helpers/h1", "")
	c.SetParamNames("id")
	c.SetParamValues("h1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		ID             string                 `json:"id"`
		FullName       string                 `json:"full_name"`
		Availabilities []availabilityResponse `json:"availabilities"`
		Reviews        []reviewResponse       `json:"reviews"`
	}
	decodeBody(t, rec, &resp)
	if resp.ID != "h1" || resp.FullName != "Maria" {
		t.Errorf("profile fields not merged at top level: %+v", resp)
	}
	if len(resp.Availabilities) != 1 || resp.Availabilities[0].Days != "Mon" {
		t.Errorf("unexpected availabilities: %+v", resp.Availabilities)
	}
	if len(resp.Reviews) != 1 || resp.Reviews[0].ReviewerName != "Alex" || resp.Reviews[0].CreatedAt != "2026-03-01T10:00:00Z" {
		t.Errorf("unexpected reviews: %+v", resp.Reviews)
	}

	c, _ = newTestContext(http.MethodGet, "/api/helpers/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	assertHTTPError(t, h.Get(c), http.StatusNotFound, "Helper not found")
}
