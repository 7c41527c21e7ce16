package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/imagestore/internal/lib/job"
	"github.com/deppfellow/imagestore/internal/model"
	"github.com/hibiken/asynq"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// IngestService hands images to the background ingest worker.
type IngestService struct {
	client TaskEnqueuer
}

func NewIngestService(client TaskEnqueuer) *IngestService {
	return &IngestService{client: client}
}

// Enqueue schedules an image:ingest task and returns its id.
func (s *IngestService) Enqueue(ctx context.Context, in model.NewImage) (*asynq.TaskInfo, error) {
	task, err := job.NewIngestImageTask(in)
	if err != nil {
		return nil, fmt.Errorf("build ingest task: %w", err)
	}

	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("enqueue ingest task: %w", err)
	}

	return info, nil
}
