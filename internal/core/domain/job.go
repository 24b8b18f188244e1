package domain

import "time"

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobRequested JobStatus = "requested"
	JobAccepted  JobStatus = "accepted"
	JobRejected  JobStatus = "rejected"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

const (
	// DefaultAgreedHourlyRate applies when a job request omits the rate.
	DefaultAgreedHourlyRate = 200.00
	// DefaultTotalAmount applies when a job request omits the total. It is a
	// placeholder and is not derived from duration and rate.
	DefaultTotalAmount = 400.00
)

// updateTargets lists the statuses a job can be moved to after creation.
// Transitions are not constrained by the current status: any job can be
// moved to any of these, including the status it already has.
var updateTargets = map[JobStatus]struct{}{
	JobAccepted:  {},
	JobRejected:  {},
	JobCompleted: {},
	JobCancelled: {},
}

// IsUpdateTarget reports whether s may be set through a status update.
// JobRequested is only ever assigned at creation.
func (s JobStatus) IsUpdateTarget() bool {
	_, ok := updateTargets[s]
	return ok
}

// Job is a scheduled service engagement between a client and a helper.
type Job struct {
	ID               string
	ClientID         string
	HelperID         string
	ScheduledDate    string
	ScheduledStart   string
	ScheduledEnd     *string
	AgreedHourlyRate float64
	TotalAmount      float64
	Status           JobStatus
	Details          string
	CreatedAt        time.Time
}

// HelperJob is a job as listed on a helper's dashboard, joined with the
// requesting client's contact details.
type HelperJob struct {
	ID             string
	ScheduledDate  string
	ScheduledStart string
	ScheduledEnd   *string
	Details        string
	Status         JobStatus
	ClientName     string
	City           string
	Phone          *string
}

// JobEvent records a status change applied to a job.
type JobEvent struct {
	JobID     string
	Status    JobStatus
	UpdatedAt time.Time
	RequestID string
}
