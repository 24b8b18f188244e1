package ports

import (
	"context"
	"time"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) error
	// ListForHelper returns the helper's jobs joined with client details,
	// ordered by scheduled date descending, then status.
	ListForHelper(ctx context.Context, helperID string) ([]domain.HelperJob, error)
	// UpdateStatus sets the status unconditionally. The boolean reports
	// whether a row matched id; a miss is not an error.
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (bool, error)
}

// IdempotencyStore remembers which job a client-supplied Idempotency-Key
// produced so a resubmitted request does not create a second job.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (jobID string, found bool, err error)
	Remember(ctx context.Context, key, jobID string, ttl time.Duration) error
}

// JobEventRecorder appends job status changes to an audit trail.
type JobEventRecorder interface {
	Record(ctx context.Context, event *domain.JobEvent) error
}
