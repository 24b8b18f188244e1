package ports

import (
	"context"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// HelperService defines the read operations on helper profiles.
type HelperService interface {
	Search(ctx context.Context, filter HelperFilter) ([]domain.Profile, error)
	Get(ctx context.Context, id string) (*domain.HelperProfile, error)
}
