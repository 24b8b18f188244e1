package domain

import "time"

// Role distinguishes the two kinds of marketplace accounts.
type Role string

const (
	RoleClient Role = "client"
	RoleHelper Role = "helper"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleHelper
}

const (
	// MockPasswordHash is stored in place of a real password hash for every
	// account. Login succeeds only when the stored value equals this marker.
	MockPasswordHash = "mock_hash"
	// MockPassword is the single literal password shared by all accounts.
	MockPassword = "password"
)

// Profile is a registered person, either a client or a helper.
// Skills and HourlyRate are only populated for helpers.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	Phone        *string
	City         string
	State        *string
	Description  *string
	Skills       *string
	HourlyRate   *float64
	Rating       float64
	ReviewsCount int
	MemberSince  int
	CreatedAt    time.Time
}

// IsHelper reports whether the profile offers services.
func (p *Profile) IsHelper() bool {
	return p.Role == RoleHelper
}

// Availability is a recurring time window a helper can be booked in.
type Availability struct {
	ID        string
	HelperID  string
	Days      string
	StartTime string
	EndTime   string
}

// Review is a rating left by one profile for another, joined with the
// reviewer's display name on read.
type Review struct {
	ID           string
	ReviewerID   string
	RevieweeID   string
	ReviewerName string
	Rating       float64
	Comment      *string
	CreatedAt    time.Time
}

// HelperProfile is the composite view served by the profile detail endpoint.
type HelperProfile struct {
	Profile        Profile
	Availabilities []Availability
	Reviews        []Review
}
