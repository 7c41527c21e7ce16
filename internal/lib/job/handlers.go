package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/hibiken/asynq"
)

// ImageIngester persists an image in the relational and document stores.
type ImageIngester interface {
	IngestImage(ctx context.Context, in model.NewImage) error
}

// InitHandlers sets the dependencies task handlers need. It must be called
// before Start.
func (j *JobService) InitHandlers(ingester ImageIngester) {
	j.ingester = ingester
}

func (j *JobService) handleIngestImageTask(ctx context.Context, t *asynq.Task) error {
	var p IngestImagePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed, so skip the retries.
		return fmt.Errorf("failed to unmarshal ingest image payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskIngestImage).
		Str("name", p.Name).
		Msg("Processing image ingest task")

	if err := j.ingester.IngestImage(ctx, p.NewImage()); err != nil {
		j.logger.Error().
			Str("type", TaskIngestImage).
			Str("name", p.Name).
			Err(err).
			Msg("Failed to ingest image")
		return err
	}

	j.logger.Info().
		Str("type", TaskIngestImage).
		Str("name", p.Name).
		Msg("Successfully ingested image")

	return nil
}
