package ports

import (
	"context"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// CreateJobInput carries a job request. Nil rate and amount fall back to
// the domain defaults.
type CreateJobInput struct {
	ClientID         string
	HelperID         string
	ScheduledDate    string
	ScheduledStart   string
	ScheduledEnd     *string
	AgreedHourlyRate *float64
	TotalAmount      *float64
	Details          string
	IdempotencyKey   string
}

// JobResult is returned by the service after creating a job.
type JobResult struct {
	JobID  string
	Status domain.JobStatus
	// AlreadyExisted is true when the Idempotency-Key matched an earlier job.
	AlreadyExisted bool
}

// UpdateJobStatusInput carries a status change.
type UpdateJobStatusInput struct {
	JobID     string
	Status    string
	RequestID string
}

// JobService defines use-case operations for jobs.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*JobResult, error)
	ListHelperJobs(ctx context.Context, helperID string) ([]domain.HelperJob, error)
	// UpdateStatus reports whether a stored job matched the id.
	UpdateStatus(ctx context.Context, input UpdateJobStatusInput) (bool, error)
}
