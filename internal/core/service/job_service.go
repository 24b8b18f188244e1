package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

const defaultIdempotencyTTL = 24 * time.Hour

type JobService struct {
	repo           ports.JobRepository
	idempotency    ports.IdempotencyStore // optional
	audit          ports.JobEventRecorder // optional
	idempotencyTTL time.Duration
	logger         zerolog.Logger
	now            func() time.Time
}

// JobServiceOption configures optional collaborators of a JobService.
type JobServiceOption func(*JobService)

// WithIdempotency enables Idempotency-Key replay backed by store.
func WithIdempotency(store ports.IdempotencyStore, ttl time.Duration) JobServiceOption {
	return func(s *JobService) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithAudit records every applied status change with recorder.
func WithAudit(recorder ports.JobEventRecorder) JobServiceOption {
	return func(s *JobService) {
		s.audit = recorder
	}
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger, opts ...JobServiceOption) *JobService {
	s := &JobService{
		repo:           repo,
		idempotencyTTL: defaultIdempotencyTTL,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateJob stores a new job in status requested. The client and helper
// references are not checked. If an idempotency key is provided and already
// seen, the previously created job id is returned without side effects.
func (s *JobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*ports.JobResult, error) {
	if in.ClientID == "" || in.HelperID == "" || in.ScheduledDate == "" || in.ScheduledStart == "" || in.Details == "" {
		return nil, domain.ErrInvalidInput
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		jobID, found, err := s.idempotency.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if found {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("job_id", jobID).Msg("idempotent replay")
			return &ports.JobResult{JobID: jobID, Status: domain.JobRequested, AlreadyExisted: true}, nil
		}
	}

	job := &domain.Job{
		ID:               uuid.NewString(),
		ClientID:         in.ClientID,
		HelperID:         in.HelperID,
		ScheduledDate:    in.ScheduledDate,
		ScheduledStart:   in.ScheduledStart,
		ScheduledEnd:     in.ScheduledEnd,
		AgreedHourlyRate: domain.DefaultAgreedHourlyRate,
		TotalAmount:      domain.DefaultTotalAmount,
		Status:           domain.JobRequested,
		Details:          in.Details,
		CreatedAt:        s.now().UTC(),
	}
	if in.AgreedHourlyRate != nil {
		job.AgreedHourlyRate = *in.AgreedHourlyRate
	}
	if in.TotalAmount != nil {
		job.TotalAmount = *in.TotalAmount
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, in.IdempotencyKey, job.ID, s.idempotencyTTL); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Str("client_id", job.ClientID).
		Str("helper_id", job.HelperID).
		Msg("job requested")

	return &ports.JobResult{JobID: job.ID, Status: job.Status}, nil
}

func (s *JobService) ListHelperJobs(ctx context.Context, helperID string) ([]domain.HelperJob, error) {
	jobs, err := s.repo.ListForHelper(ctx, helperID)
	if err != nil {
		return nil, fmt.Errorf("list jobs for helper %s: %w", helperID, err)
	}
	return jobs, nil
}

// UpdateStatus moves a job to one of the update targets regardless of its
// current status. An unknown job id is a silent no-op reported as matched=false.
func (s *JobService) UpdateStatus(ctx context.Context, in ports.UpdateJobStatusInput) (bool, error) {
	status := domain.JobStatus(in.Status)
	if !status.IsUpdateTarget() {
		return false, domain.ErrInvalidStatus
	}

	matched, err := s.repo.UpdateStatus(ctx, in.JobID, status)
	if err != nil {
		return false, fmt.Errorf("update job %s status: %w", in.JobID, err)
	}
	if !matched {
		s.logger.Debug().Str("job_id", in.JobID).Str("status", in.Status).Msg("status update matched no job")
		return false, nil
	}

	if s.audit != nil {
		event := &domain.JobEvent{
			JobID:     in.JobID,
			Status:    status,
			UpdatedAt: s.now().UTC(),
			RequestID: in.RequestID,
		}
		if err := s.audit.Record(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("job_id", in.JobID).Msg("failed to record job event")
		}
	}

	s.logger.Info().Str("job_id", in.JobID).Str("status", in.Status).Msg("job status updated")
	return true, nil
}
