package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

type HelperService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
}

func NewHelperService(repo ports.ProfileRepository, logger zerolog.Logger) *HelperService {
	return &HelperService{repo: repo, logger: logger}
}

// Search returns every helper matching the filter. Filters are trimmed and
// ignored when blank.
func (s *HelperService) Search(ctx context.Context, filter ports.HelperFilter) ([]domain.Profile, error) {
	filter.City = strings.TrimSpace(filter.City)
	filter.Skill = strings.TrimSpace(filter.Skill)

	helpers, err := s.repo.SearchHelpers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search helpers: %w", err)
	}

	s.logger.Debug().
		Str("city", filter.City).
		Str("skill", filter.Skill).
		Int("results", len(helpers)).
		Msg("helper search")
	return helpers, nil
}

// Get loads a helper profile with its availabilities and received reviews.
func (s *HelperService) Get(ctx context.Context, id string) (*domain.HelperProfile, error) {
	profile, err := s.repo.FindHelper(ctx, id)
	if err != nil {
		return nil, err
	}

	availabilities, err := s.repo.ListAvailabilities(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get helper %s: availabilities: %w", id, err)
	}

	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get helper %s: reviews: %w", id, err)
	}

	return &domain.HelperProfile{
		Profile:        *profile,
		Availabilities: availabilities,
		Reviews:        reviews,
	}, nil
}
