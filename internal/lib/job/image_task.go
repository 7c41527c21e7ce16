package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskIngestImage stores a labeled image in both stores.
	TaskIngestImage = "image:ingest"

	// QueueDefault is the queue ingest tasks are enqueued on.
	QueueDefault = "default"

	ingestMaxRetry = 3
	ingestTimeout  = 30 * time.Second
)

// IngestImagePayload is the JSON payload of an ingest task.
type IngestImagePayload struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	AILabels []string `json:"ai_labels"`
	AIText   []string `json:"ai_text"`
}

// NewImage converts the payload into the insert model both stores accept.
func (p IngestImagePayload) NewImage() model.NewImage {
	return model.NewImage{
		Name:     p.Name,
		URL:      p.URL,
		AILabels: p.AILabels,
		AIText:   p.AIText,
	}
}

// NewIngestImageTask builds an ingest task: up to 3 retries on the
// default queue, each attempt bounded to 30 seconds.
func NewIngestImageTask(in model.NewImage) (*asynq.Task, error) {
	payload, err := json.Marshal(IngestImagePayload{
		Name:     in.Name,
		URL:      in.URL,
		AILabels: in.AILabels,
		AIText:   in.AIText,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskIngestImage,
		payload,
		asynq.MaxRetry(ingestMaxRetry),
		asynq.Queue(QueueDefault),
		asynq.Timeout(ingestTimeout),
	), nil
}
