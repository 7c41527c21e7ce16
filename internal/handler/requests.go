package handler

import (
	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/validation"
)

// EmptyRequest is bound by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// MongoImageIDRequest carries a document id path param.
type MongoImageIDRequest struct {
	ID string `param:"id" validate:"required,mongodb"`
}

func (r *MongoImageIDRequest) Validate() error { return validation.Struct(r) }

// MongoKeyRequest carries the field name for delete-all-by-key.
type MongoKeyRequest struct {
	Key string `param:"key" validate:"required,startsnotwith=$"`
}

func (r *MongoKeyRequest) Validate() error { return validation.Struct(r) }

// PostgresImageIDRequest carries a relational id path param.
type PostgresImageIDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *PostgresImageIDRequest) Validate() error { return validation.Struct(r) }

// AddImageRequest is the JSON body of the insert and ingest endpoints.
type AddImageRequest struct {
	model.NewImage
}

func (r *AddImageRequest) Validate() error { return validation.Struct(r) }

// AddPostgresImageResponse reports the id the relational store assigned.
type AddPostgresImageResponse struct {
	ID int64 `json:"id"`
}

// IngestImageResponse reports the queued background task.
type IngestImageResponse struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}
