package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

const jobEventsCollection = "job_events"

// JobEventRepository appends job status changes to the job_events audit
// collection. It implements ports.JobEventRecorder.
type JobEventRepository struct {
	col *mongo.Collection
}

func NewJobEventRepository(db *mongo.Database) *JobEventRepository {
	return &JobEventRepository{col: db.Collection(jobEventsCollection)}
}

type jobEventDocument struct {
	JobID      string    `bson:"job_id"`
	Status     string    `bson:"status"`
	UpdatedAt  time.Time `bson:"updated_at"`
	RequestID  string    `bson:"request_id,omitempty"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Record inserts one audit document per applied status change.
func (r *JobEventRepository) Record(ctx context.Context, event *domain.JobEvent) error {
	doc := jobEventDocument{
		JobID:      event.JobID,
		Status:     string(event.Status),
		UpdatedAt:  event.UpdatedAt.UTC(),
		RequestID:  event.RequestID,
		RecordedAt: time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert job event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index on job_id.
func (r *JobEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "updated_at", Value: 1}},
	})
	return err
}
