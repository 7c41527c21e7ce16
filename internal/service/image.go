package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/repository"
	"github.com/rs/zerolog"
)

// MongoImageStore is the document-store accessor the service drives.
type MongoImageStore interface {
	FetchOne(ctx context.Context, id string) (model.Document, error)
	FetchAll(ctx context.Context) ([]model.Document, error)
	Insert(ctx context.Context, in model.NewImage) (*repository.InsertResult, error)
	DeleteAllByKeyExistence(ctx context.Context, key string) (*repository.DeleteResult, error)
	DeleteOne(ctx context.Context, id string) (*repository.DeleteResult, error)
}

// PostgresImageStore is the relational accessor the service drives.
type PostgresImageStore interface {
	FetchOne(ctx context.Context, id int64) (*model.Image, error)
	FetchAll(ctx context.Context) ([]model.Image, error)
	Insert(ctx context.Context, in model.NewImage) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ImageService exposes image metadata in both stores.
type ImageService struct {
	mongo    MongoImageStore
	postgres PostgresImageStore
	logger   *zerolog.Logger
}

func NewImageService(mongo MongoImageStore, postgres PostgresImageStore, logger *zerolog.Logger) *ImageService {
	return &ImageService{
		mongo:    mongo,
		postgres: postgres,
		logger:   logger,
	}
}

func (s *ImageService) GetMongoImage(ctx context.Context, id string) (model.Document, error) {
	return s.mongo.FetchOne(ctx, id)
}

func (s *ImageService) ListMongoImages(ctx context.Context) ([]model.Document, error) {
	return s.mongo.FetchAll(ctx)
}

func (s *ImageService) AddMongoImage(ctx context.Context, in model.NewImage) (*repository.InsertResult, error) {
	res, err := s.mongo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("image_id", res.ID).Msg("added image to mongo")
	return res, nil
}

// DeleteMongoImagesByKey deletes every document that has the field key.
func (s *ImageService) DeleteMongoImagesByKey(ctx context.Context, key string) (*repository.DeleteResult, error) {
	res, err := s.mongo.DeleteAllByKeyExistence(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("key", key).Int64("deleted", res.Count).Msg("deleted images from mongo")
	return res, nil
}

func (s *ImageService) DeleteMongoImage(ctx context.Context, id string) (*repository.DeleteResult, error) {
	return s.mongo.DeleteOne(ctx, id)
}

func (s *ImageService) GetPostgresImage(ctx context.Context, id int64) (*model.Image, error) {
	return s.postgres.FetchOne(ctx, id)
}

func (s *ImageService) ListPostgresImages(ctx context.Context) ([]model.Image, error) {
	return s.postgres.FetchAll(ctx)
}

func (s *ImageService) AddPostgresImage(ctx context.Context, in model.NewImage) (int64, error) {
	id, err := s.postgres.Insert(ctx, in)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("image_id", id).Msg("added image to postgres")
	return id, nil
}

func (s *ImageService) DeletePostgresImage(ctx context.Context, id int64) error {
	return s.postgres.Delete(ctx, id)
}

// IngestImage writes the image to the relational store, then to the
// document store. It backs the image:ingest background task.
func (s *ImageService) IngestImage(ctx context.Context, in model.NewImage) error {
	id, err := s.postgres.Insert(ctx, in)
	if err != nil {
		return fmt.Errorf("ingest into postgres: %w", err)
	}

	res, err := s.mongo.Insert(ctx, in)
	if err != nil {
		return fmt.Errorf("ingest into mongo (postgres id %d): %w", id, err)
	}

	s.logger.Info().
		Int64("postgres_id", id).
		Str("mongo_id", res.ID).
		Msg("ingested image into both stores")

	return nil
}
