package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	byID           map[string]*domain.Profile
	availabilities map[string][]domain.Availability
	reviews        map[string][]domain.Review
	createErr      error // if set, Create returns this error
	findErr        error // if set, lookups return this error
	lastFilter     ports.HelperFilter
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		byID:           make(map[string]*domain.Profile),
		availabilities: make(map[string][]domain.Availability),
		reviews:        make(map[string][]domain.Review),
	}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == p.Email {
			return domain.ErrUserExists
		}
	}
	r.byID[p.ID] = cloneProfile(p)
	return nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, p := range r.byID {
		if p.Email == email {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindHelper(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byID[id]
	if !ok || p.Role != domain.RoleHelper {
		return nil, domain.ErrHelperNotFound
	}
	return cloneProfile(p), nil
}

// SearchHelpers applies the same filters and ordering the SQL repository uses.
func (r *stubProfileRepo) SearchHelpers(_ context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
	r.lastFilter = f
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []domain.Profile{}
	for _, p := range r.byID {
		if p.Role != domain.RoleHelper {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
			continue
		}
		if f.Skill != "" && (p.Skills == nil || !strings.Contains(strings.ToLower(*p.Skills), strings.ToLower(f.Skill))) {
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewsCount > out[j].ReviewsCount
	})
	return out, nil
}

func (r *stubProfileRepo) ListAvailabilities(_ context.Context, helperID string) ([]domain.Availability, error) {
	return append([]domain.Availability{}, r.availabilities[helperID]...), nil
}

func (r *stubProfileRepo) ListReviews(_ context.Context, revieweeID string) ([]domain.Review, error) {
	return append([]domain.Review{}, r.reviews[revieweeID]...), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func registerInput(email, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    email,
		Password: "whatever",
		FullName: "Ana Torres",
		City:     "Austin",
		Role:     role,
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	in := registerInput("ana@example.com", "helper")
	in.Skills = strPtr("plumbing")
	in.HourlyRate = floatPtr(35)

	profile, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.ID == "" {
		t.Fatal("expected generated id")
	}
	if profile.PasswordHash != domain.MockPasswordHash {
		t.Errorf("expected mock credential marker, got %q", profile.PasswordHash)
	}
	if profile.Role != domain.RoleHelper {
		t.Errorf("unexpected role: %s", profile.Role)
	}
	if profile.Skills == nil || *profile.Skills != "plumbing" {
		t.Errorf("expected helper skills to be kept, got %v", profile.Skills)
	}
	if profile.HourlyRate == nil || *profile.HourlyRate != 35 {
		t.Errorf("expected helper hourly rate to be kept, got %v", profile.HourlyRate)
	}
	if profile.MemberSince != time.Now().UTC().Year() {
		t.Errorf("expected member_since %d, got %d", time.Now().UTC().Year(), profile.MemberSince)
	}
	if _, ok := repo.byID[profile.ID]; !ok {
		t.Error("expected profile to be persisted")
	}
}

func TestAuthService_Register_ClientDropsHelperFields(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	in := registerInput("bob@example.com", "client")
	in.Skills = strPtr("carpentry")
	in.HourlyRate = floatPtr(50)
	in.State = strPtr("TX")

	profile, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored := repo.byID[profile.ID]
	if stored.Skills != nil {
		t.Errorf("client skills must be stored as absent, got %q", *stored.Skills)
	}
	if stored.HourlyRate != nil {
		t.Errorf("client hourly_rate must be stored as absent, got %v", *stored.HourlyRate)
	}
	if stored.State == nil || *stored.State != "TX" {
		t.Errorf("optional state must be kept for clients, got %v", stored.State)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	cases := []struct {
		name string
		in   ports.RegisterInput
		want error
	}{
		{"missing email", registerInput("", "client"), domain.ErrInvalidInput},
		{"missing city", func() ports.RegisterInput { in := registerInput("a@b.c", "client"); in.City = ""; return in }(), domain.ErrInvalidInput},
		{"missing role", registerInput("a@b.c", ""), domain.ErrInvalidInput},
		{"email without at", registerInput("not-an-email", "client"), domain.ErrInvalidEmail},
		{"unknown role", registerInput("a@b.c", "admin"), domain.ErrInvalidRole},
	}

	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Errorf("invalid registrations must not persist anything, got %d rows", len(repo.byID))
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("dup@example.com", "client")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("dup@example.com", "helper")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected exactly 1 stored profile, got %d", len(repo.byID))
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := newStubProfileRepo()
	repo.createErr = errors.New("disk full")
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, err := svc.Register(context.Background(), registerInput("x@example.com", "client"))
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("store fault must not be reported as a conflict: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com", "helper"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", domain.MockPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Profile.ID != registered.ID || res.Profile.FullName != "Ana Torres" {
		t.Fatalf("unexpected profile: %+v", res.Profile)
	}
	if res.Token == "" {
		t.Fatal("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleHelper) {
		t.Errorf("expected role %s, got %v", domain.RoleHelper, claims["role"])
	}
}

func TestAuthService_Login_RegistrationPasswordIsIgnored(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	in := registerInput("dave@example.com", "client")
	in.Password = "my-own-password"
	_, _ = svc.Register(context.Background(), in)

	if _, err := svc.Login(context.Background(), "dave@example.com", "my-own-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for the registration password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave@example.com", domain.MockPassword); err != nil {
		t.Fatalf("shared password must log in, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailMatchesWrongPassword(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), registerInput("erin@example.com", "client"))

	_, wrongPassword := svc.Login(context.Background(), "erin@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", domain.MockPassword)

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestAuthService_Login_TamperedMarkerRejected(t *testing.T) {
	repo := newStubProfileRepo()
	repo.byID["u1"] = &domain.Profile{ID: "u1", Email: "f@example.com", PasswordHash: "$2a$10$real", Role: domain.RoleClient}
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, err := svc.Login(context.Background(), "f@example.com", domain.MockPassword); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubProfileRepo(), "secret", time.Hour, discardLogger)

	if _, err := svc.Login(context.Background(), "", "password"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_StoreFault(t *testing.T) {
	repo := newStubProfileRepo()
	repo.findErr = errors.New("connection reset")
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, err := svc.Login(context.Background(), "a@b.c", domain.MockPassword)
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store fault must surface as a plain error, got %v", err)
	}
}
