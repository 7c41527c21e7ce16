package handler

import (
	"context"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/repository"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
)

// MongoImageService is the document-store half of the image service.
type MongoImageService interface {
	GetMongoImage(ctx context.Context, id string) (model.Document, error)
	ListMongoImages(ctx context.Context) ([]model.Document, error)
	AddMongoImage(ctx context.Context, in model.NewImage) (*repository.InsertResult, error)
	DeleteMongoImagesByKey(ctx context.Context, key string) (*repository.DeleteResult, error)
	DeleteMongoImage(ctx context.Context, id string) (*repository.DeleteResult, error)
}

// MongoImageHandler serves the document-store routes. Documents are
// written as relaxed extended JSON.
type MongoImageHandler struct {
	Handler
	images MongoImageService
}

func NewMongoImageHandler(s *server.Server, images MongoImageService) *MongoImageHandler {
	return &MongoImageHandler{
		Handler: NewHandler(s),
		images:  images,
	}
}

func (h *MongoImageHandler) GetImage(c echo.Context, req *MongoImageIDRequest) (model.Document, error) {
	doc, err := h.images.GetMongoImage(c.Request().Context(), req.ID)
	return doc, storeError(err)
}

func (h *MongoImageHandler) ListImages(c echo.Context, _ *EmptyRequest) ([]model.Document, error) {
	docs, err := h.images.ListMongoImages(c.Request().Context())
	return docs, storeError(err)
}

func (h *MongoImageHandler) AddImage(c echo.Context, req *AddImageRequest) (*repository.InsertResult, error) {
	res, err := h.images.AddMongoImage(c.Request().Context(), req.NewImage)
	return res, storeError(err)
}

// DeleteAllByKey deletes every document that has the field named by key.
func (h *MongoImageHandler) DeleteAllByKey(c echo.Context, req *MongoKeyRequest) (*repository.DeleteResult, error) {
	res, err := h.images.DeleteMongoImagesByKey(c.Request().Context(), req.Key)
	return res, storeError(err)
}

func (h *MongoImageHandler) DeleteImage(c echo.Context, req *MongoImageIDRequest) (*repository.DeleteResult, error) {
	res, err := h.images.DeleteMongoImage(c.Request().Context(), req.ID)
	return res, storeError(err)
}
