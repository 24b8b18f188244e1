package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

const profileColumns = `id, email, password_hash, role, full_name, phone, city, state,
	description, skills, hourly_rate, rating, reviews_count, member_since, created_at`

// ProfileRepository implements ports.ProfileRepository on the relational store.
type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.PasswordHash, string(p.Role), p.FullName, p.Phone, p.City, p.State,
		p.Description, p.Skills, p.HourlyRate, p.Rating, p.ReviewsCount, p.MemberSince, formatTime(p.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	row := r.db.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile %s: %w", id, err)
	}
	return p, nil
}

func (r *ProfileRepository) FindHelper(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ? AND role = ?`, id, string(domain.RoleHelper))
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHelperNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find helper %s: %w", id, err)
	}
	return p, nil
}

// predicate is one WHERE condition together with its bound argument.
type predicate struct {
	cond string
	arg  any
}

func helperPredicates(f ports.HelperFilter) []predicate {
	preds := []predicate{{cond: "role = ?", arg: string(domain.RoleHelper)}}
	if f.City != "" {
		preds = append(preds, predicate{cond: "LOWER(city) LIKE LOWER(?)", arg: "%" + f.City + "%"})
	}
	if f.Skill != "" {
		preds = append(preds, predicate{cond: "LOWER(skills) LIKE LOWER(?)", arg: "%" + f.Skill + "%"})
	}
	return preds
}

func (r *ProfileRepository) SearchHelpers(ctx context.Context, f ports.HelperFilter) ([]domain.Profile, error) {
	preds := helperPredicates(f)
	conds := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))
	for _, p := range preds {
		conds = append(conds, p.cond)
		args = append(args, p.arg)
	}

	rows, err := r.db.query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE `+strings.Join(conds, " AND ")+
			` ORDER BY rating DESC, reviews_count DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("search helpers: %w", err)
	}
	defer rows.Close()

	helpers := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan helper: %w", err)
		}
		helpers = append(helpers, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search helpers: %w", err)
	}
	return helpers, nil
}

func (r *ProfileRepository) ListAvailabilities(ctx context.Context, helperID string) ([]domain.Availability, error) {
	rows, err := r.db.query(ctx, `
		SELECT id, helper_id, days, start_time, end_time
		FROM availabilities
		WHERE helper_id = ?
		ORDER BY id`, helperID)
	if err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	defer rows.Close()

	out := []domain.Availability{}
	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.ID, &a.HelperID, &a.Days, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) ListReviews(ctx context.Context, revieweeID string) ([]domain.Review, error) {
	rows, err := r.db.query(ctx, `
		SELECT r.id, r.reviewer_id, r.reviewee_id, p.full_name AS reviewer_name,
			r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN profiles p ON r.reviewer_id = p.id
		WHERE r.reviewee_id = ?
		ORDER BY r.created_at DESC`, revieweeID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var (
			rv        domain.Review
			comment   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&rv.ID, &rv.ReviewerID, &rv.RevieweeID, &rv.ReviewerName,
			&rv.Rating, &comment, &createdAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Comment = nullString(comment)
		rv.CreatedAt = parseTime(createdAt)
		out = append(out, rv)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s rowScanner) (*domain.Profile, error) {
	var (
		p                                 domain.Profile
		role, createdAt                   string
		phone, state, description, skills sql.NullString
		hourlyRate                        sql.NullFloat64
	)
	err := s.Scan(&p.ID, &p.Email, &p.PasswordHash, &role, &p.FullName, &phone, &p.City, &state,
		&description, &skills, &hourlyRate, &p.Rating, &p.ReviewsCount, &p.MemberSince, &createdAt)
	if err != nil {
		return nil, err
	}

	p.Role = domain.Role(role)
	p.Phone = nullString(phone)
	p.State = nullString(state)
	p.Description = nullString(description)
	p.Skills = nullString(skills)
	if hourlyRate.Valid {
		v := hourlyRate.Float64
		p.HourlyRate = &v
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
