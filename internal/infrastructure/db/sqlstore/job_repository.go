package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// JobRepository implements ports.JobRepository on the relational store.
type JobRepository struct {
	db *DB
}

func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO jobs (id, client_id, helper_id, scheduled_date, scheduled_start, scheduled_end,
			agreed_hourly_rate, total_amount, status, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.ClientID, j.HelperID, j.ScheduledDate, j.ScheduledStart, j.ScheduledEnd,
		j.AgreedHourlyRate, j.TotalAmount, string(j.Status), j.Details, formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ListForHelper inner-joins the client profile, so jobs whose client does
// not exist are not returned.
func (r *JobRepository) ListForHelper(ctx context.Context, helperID string) ([]domain.HelperJob, error) {
	rows, err := r.db.query(ctx, `
		SELECT j.id, j.scheduled_date, j.scheduled_start, j.scheduled_end, j.details, j.status,
			p.full_name AS client_name, p.city, p.phone
		FROM jobs j
		JOIN profiles p ON j.client_id = p.id
		WHERE j.helper_id = ?
		ORDER BY j.scheduled_date DESC, j.status`, helperID)
	if err != nil {
		return nil, fmt.Errorf("list helper jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.HelperJob{}
	for rows.Next() {
		var (
			j          domain.HelperJob
			status     string
			end, phone sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.ScheduledDate, &j.ScheduledStart, &end, &j.Details, &status,
			&j.ClientName, &j.City, &phone); err != nil {
			return nil, fmt.Errorf("scan helper job: %w", err)
		}
		j.Status = domain.JobStatus(status)
		j.ScheduledEnd = nullString(end)
		j.Phone = nullString(phone)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list helper jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (bool, error) {
	res, err := r.db.exec(ctx, `UPDATE jobs SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return false, fmt.Errorf("update job status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update job status: rows affected: %w", err)
	}
	return n > 0, nil
}
