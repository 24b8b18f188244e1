package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

// AuthService implements registration and login.
//
// Credentials are mocked: every profile stores domain.MockPasswordHash and
// logs in with domain.MockPassword, whatever password was supplied at
// registration.
type AuthService struct {
	repo      ports.ProfileRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.ProfileRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Profile, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" || in.City == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	role := domain.Role(in.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	now := s.now().UTC()
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: domain.MockPasswordHash,
		Role:         role,
		FullName:     in.FullName,
		Phone:        in.Phone,
		City:         in.City,
		State:        in.State,
		Description:  in.Description,
		MemberSince:  now.Year(),
		CreatedAt:    now,
	}
	if role == domain.RoleHelper {
		profile.Skills = in.Skills
		profile.HourlyRate = in.HourlyRate
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", profile.ID).Str("role", string(role)).Msg("profile registered")
	return profile, nil
}

// Login checks the mock credentials. An unknown email and a wrong password
// both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if profile.PasswordHash != domain.MockPasswordHash || password != domain.MockPassword {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	return &ports.LoginResult{Token: token, Profile: profile}, nil
}

// Profile returns the profile with the given id, whatever its role.
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) generateToken(p *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"role": string(p.Role),
		"name": p.FullName,
		"exp":  s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
