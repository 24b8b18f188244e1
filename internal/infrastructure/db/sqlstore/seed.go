package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

type seedProfile struct {
	Email        string
	Role         domain.Role
	FullName     string
	Phone        string
	City         string
	State        string
	Description  string
	Skills       string
	HourlyRate   float64
	Rating       float64
	ReviewsCount int
	Availability [][3]string // days, start, end
}

type seedReview struct {
	Reviewer string // email
	Reviewee string // email
	Rating   float64
	Comment  string
	DaysAgo  int
}

var seedProfiles = []seedProfile{
	{
		Email: "maria.lopez@example.com", Role: domain.RoleHelper, FullName: "Maria Lopez",
		Phone: "512-555-0101", City: "Austin", State: "TX",
		Description: "Licensed plumber with ten years of residential experience.",
		Skills:      "plumbing, leak repair, water heaters", HourlyRate: 45,
		Rating: 4.8, ReviewsCount: 2,
		Availability: [][3]string{{"Mon,Tue,Wed", "08:00", "16:00"}, {"Sat", "09:00", "13:00"}},
	},
	{
		Email: "james.chen@example.com", Role: domain.RoleHelper, FullName: "James Chen",
		Phone: "512-555-0102", City: "Austin", State: "TX",
		Description: "Deep cleaning and move-out cleaning.",
		Skills:      "cleaning, organizing", HourlyRate: 30,
		Rating: 4.5, ReviewsCount: 1,
		Availability: [][3]string{{"Thu,Fri", "10:00", "18:00"}},
	},
	{
		Email: "sofia.reyes@example.com", Role: domain.RoleHelper, FullName: "Sofia Reyes",
		Phone: "214-555-0103", City: "Dallas", State: "TX",
		Description: "Handywoman for small repairs, furniture assembly and painting.",
		Skills:      "carpentry, painting, furniture assembly", HourlyRate: 40,
		Availability: [][3]string{{"Mon,Wed,Fri", "09:00", "17:00"}},
	},
	{
		Email: "alex.kim@example.com", Role: domain.RoleClient, FullName: "Alex Kim",
		Phone: "512-555-0201", City: "Austin", State: "TX",
	},
	{
		Email: "priya.patel@example.com", Role: domain.RoleClient, FullName: "Priya Patel",
		City: "Dallas", State: "TX",
	},
}

var seedReviews = []seedReview{
	{Reviewer: "alex.kim@example.com", Reviewee: "maria.lopez@example.com", Rating: 5, Comment: "Fixed our water heater the same day.", DaysAgo: 3},
	{Reviewer: "priya.patel@example.com", Reviewee: "maria.lopez@example.com", Rating: 4.6, Comment: "On time and tidy.", DaysAgo: 20},
	{Reviewer: "alex.kim@example.com", Reviewee: "james.chen@example.com", Rating: 4.5, DaysAgo: 9},
}

// Seed inserts demo helpers, clients, availabilities and reviews. Profiles
// whose email already exists are left untouched, along with their rows.
// It returns the number of profiles inserted.
func (db *DB) Seed(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	inserted := 0

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		ids := make(map[string]string, len(seedProfiles))
		fresh := make(map[string]bool, len(seedProfiles))

		for _, sp := range seedProfiles {
			var existing string
			err := tx.QueryRowContext(ctx, db.rebind("SELECT id FROM profiles WHERE email = ?"), sp.Email).Scan(&existing)
			switch {
			case err == nil:
				ids[sp.Email] = existing
				continue
			case !errors.Is(err, sql.ErrNoRows):
				return fmt.Errorf("seed lookup %s: %w", sp.Email, err)
			}

			id := uuid.NewString()
			var skills, rate any
			if sp.Role == domain.RoleHelper {
				skills, rate = sp.Skills, sp.HourlyRate
			}
			_, err = tx.ExecContext(ctx, db.rebind(`
				INSERT INTO profiles (`+profileColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				id, sp.Email, domain.MockPasswordHash, string(sp.Role), sp.FullName, nullable(sp.Phone), sp.City, nullable(sp.State),
				nullable(sp.Description), skills, rate, sp.Rating, sp.ReviewsCount, now.Year(), formatTime(now),
			)
			if err != nil {
				return fmt.Errorf("seed profile %s: %w", sp.Email, err)
			}
			ids[sp.Email] = id
			fresh[sp.Email] = true
			inserted++

			for _, av := range sp.Availability {
				_, err := tx.ExecContext(ctx, db.rebind(`
					INSERT INTO availabilities (id, helper_id, days, start_time, end_time)
					VALUES (?, ?, ?, ?, ?)`),
					uuid.NewString(), id, av[0], av[1], av[2])
				if err != nil {
					return fmt.Errorf("seed availability for %s: %w", sp.Email, err)
				}
			}
		}

		for _, rv := range seedReviews {
			if !fresh[rv.Reviewee] {
				continue
			}
			_, err := tx.ExecContext(ctx, db.rebind(`
				INSERT INTO reviews (id, reviewer_id, reviewee_id, rating, comment, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`),
				uuid.NewString(), ids[rv.Reviewer], ids[rv.Reviewee], rv.Rating, nullable(rv.Comment),
				formatTime(now.AddDate(0, 0, -rv.DaysAgo)))
			if err != nil {
				return fmt.Errorf("seed review for %s: %w", rv.Reviewee, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info().Int("profiles", inserted).Msg("seed complete")
	return inserted, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
