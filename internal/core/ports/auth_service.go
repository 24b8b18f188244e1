package ports

import (
	"context"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// RegisterInput carries everything needed to create a profile. Optional
// fields are nil when absent; Skills and HourlyRate are dropped for
// non-helper roles.
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	City        string
	Role        string
	Phone       *string
	State       *string
	Description *string
	Skills      *string
	HourlyRate  *float64
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Profile *domain.Profile
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, id string) (*domain.Profile, error)
}
