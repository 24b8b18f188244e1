package ports

import (
	"context"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// HelperFilter carries the optional search filters for helpers.
// Empty fields are not applied.
type HelperFilter struct {
	City  string // substring match on city, case-insensitive
	Skill string // substring match on skills, case-insensitive
}

// ProfileRepository defines persistence operations for profiles and the
// rows that hang off them.
type ProfileRepository interface {
	// Create inserts a new profile. Returns domain.ErrUserExists when the
	// email is already taken.
	Create(ctx context.Context, p *domain.Profile) error
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// FindHelper retrieves a profile by id restricted to role=helper.
	FindHelper(ctx context.Context, id string) (*domain.Profile, error)
	// SearchHelpers returns every helper matching filter, ordered by rating
	// then review count, both descending.
	SearchHelpers(ctx context.Context, filter HelperFilter) ([]domain.Profile, error)
	ListAvailabilities(ctx context.Context, helperID string) ([]domain.Availability, error)
	// ListReviews returns reviews received by revieweeID, newest first.
	ListReviews(ctx context.Context, revieweeID string) ([]domain.Review, error)
}
