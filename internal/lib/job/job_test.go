package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngester struct {
	got []model.NewImage
	err error
}

func (f *fakeIngester) IngestImage(_ context.Context, in model.NewImage) error {
	f.got = append(f.got, in)
	return f.err
}

func newTestJobService(ingester ImageIngester) *JobService {
	log := zerolog.Nop()
	j := &JobService{logger: &log}
	j.InitHandlers(ingester)
	return j
}

func TestNewIngestImageTask(t *testing.T) {
	task, err := NewIngestImageTask(model.NewImage{
		Name:     "cat.jpg",
		URL:      "https://bucket/cat.jpg",
		AILabels: []string{"cat", "dog"},
		AIText:   []string{"stop sign"},
	})
	require.NoError(t, err)

	assert.Equal(t, TaskIngestImage, task.Type())

	var p IngestImagePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "cat.jpg", p.Name)
	assert.Equal(t, []string{"cat", "dog"}, p.AILabels)
	assert.Equal(t, []string{"stop sign"}, p.AIText)
}

func TestHandleIngestImageTask_StoresImage(t *testing.T) {
	ingester := &fakeIngester{}
	j := newTestJobService(ingester)

	task, err := NewIngestImageTask(model.NewImage{Name: "cat.jpg", URL: "https://bucket/cat.jpg"})
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	require.Len(t, ingester.got, 1)
	assert.Equal(t, "https://bucket/cat.jpg", ingester.got[0].URL)
}

func TestHandleIngestImageTask_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("postgres down")
	j := newTestJobService(&fakeIngester{err: storeErr})

	task, err := NewIngestImageTask(model.NewImage{Name: "cat.jpg", URL: "https://bucket/cat.jpg"})
	require.NoError(t, err)

	assert.ErrorIs(t, j.handleIngestImageTask(context.Background(), task), storeErr)
}

func TestHandleIngestImageTask_BadPayloadSkipsRetry(t *testing.T) {
	ingester := &fakeIngester{}
	j := newTestJobService(ingester)

	err := j.handleIngestImageTask(context.Background(), asynq.NewTask(TaskIngestImage, []byte("{")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, ingester.got)
}

func TestStart_RequiresHandlers(t *testing.T) {
	log := zerolog.Nop()
	j := &JobService{logger: &log}

	assert.Error(t, j.Start())
}
