package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/deppfellow/imagestore/internal/lib/job"
	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/repository"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMongo struct {
	inserted  []model.NewImage
	insertErr error
}

func (f *fakeMongo) FetchOne(_ context.Context, id string) (model.Document, error) {
	return model.Document{"id": id}, nil
}

func (f *fakeMongo) FetchAll(context.Context) ([]model.Document, error) {
	return []model.Document{}, nil
}

func (f *fakeMongo) Insert(_ context.Context, in model.NewImage) (*repository.InsertResult, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, in)
	return &repository.InsertResult{ID: "65f0c0ffee0000000000abcd", Message: "Mongo added id: 65f0c0ffee0000000000abcd"}, nil
}

func (f *fakeMongo) DeleteAllByKeyExistence(_ context.Context, key string) (*repository.DeleteResult, error) {
	return &repository.DeleteResult{Count: 2, Message: "Mongo deleted 2 documents"}, nil
}

func (f *fakeMongo) DeleteOne(context.Context, string) (*repository.DeleteResult, error) {
	return &repository.DeleteResult{Count: 1, Message: "Mongo deleted 1 documents"}, nil
}

type fakePostgres struct {
	inserted  []model.NewImage
	insertErr error
}

func (f *fakePostgres) FetchOne(_ context.Context, id int64) (*model.Image, error) {
	return &model.Image{ID: id}, nil
}

func (f *fakePostgres) FetchAll(context.Context) ([]model.Image, error) {
	return []model.Image{}, nil
}

func (f *fakePostgres) Insert(_ context.Context, in model.NewImage) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, in)
	return int64(len(f.inserted)), nil
}

func (f *fakePostgres) Delete(context.Context, int64) error { return nil }

func newImageService(m *fakeMongo, p *fakePostgres) *ImageService {
	log := zerolog.Nop()
	return NewImageService(m, p, &log)
}

var catImage = model.NewImage{
	Name:     "cat.jpg",
	URL:      "https://bucket/cat.jpg",
	AILabels: []string{"cat", "dog"},
	AIText:   []string{"stop sign"},
}

func TestIngestImage_WritesBothStores(t *testing.T) {
	m, p := &fakeMongo{}, &fakePostgres{}
	svc := newImageService(m, p)

	require.NoError(t, svc.IngestImage(context.Background(), catImage))
	assert.Equal(t, []model.NewImage{catImage}, p.inserted)
	assert.Equal(t, []model.NewImage{catImage}, m.inserted)
}

func TestIngestImage_StopsWhenPostgresFails(t *testing.T) {
	m, p := &fakeMongo{}, &fakePostgres{insertErr: errors.New("down")}
	svc := newImageService(m, p)

	err := svc.IngestImage(context.Background(), catImage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest into postgres")
	assert.Empty(t, m.inserted)
}

func TestIngestImage_ReportsMongoFailure(t *testing.T) {
	m, p := &fakeMongo{insertErr: errors.New("down")}, &fakePostgres{}
	svc := newImageService(m, p)

	err := svc.IngestImage(context.Background(), catImage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres id 1")
}

func TestImageService_PassesResultsThrough(t *testing.T) {
	svc := newImageService(&fakeMongo{}, &fakePostgres{})
	ctx := context.Background()

	res, err := svc.DeleteMongoImagesByKey(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)

	id, err := svc.AddPostgresImage(ctx, catImage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	img, err := svc.GetPostgresImage(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), img.ID)
}

type fakeEnqueuer struct {
	task *asynq.Task
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Queue: job.QueueDefault}, nil
}

func TestIngestService_Enqueue(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := NewIngestService(enq)

	info, err := svc.Enqueue(context.Background(), catImage)
	require.NoError(t, err)
	assert.Equal(t, "task-1", info.ID)

	require.NotNil(t, enq.task)
	assert.Equal(t, job.TaskIngestImage, enq.task.Type())

	var p job.IngestImagePayload
	require.NoError(t, json.Unmarshal(enq.task.Payload(), &p))
	assert.Equal(t, catImage, p.NewImage())
}

func TestIngestService_EnqueueError(t *testing.T) {
	svc := NewIngestService(&fakeEnqueuer{err: errors.New("redis down")})

	_, err := svc.Enqueue(context.Background(), catImage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue ingest task")
}

func TestAuthService_DisabledWithoutKey(t *testing.T) {
	s := &server.Server{Config: config.DefaultConfig()}
	assert.False(t, NewAuthService(s).Enabled())
}
