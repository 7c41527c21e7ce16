package handler

import (
	"context"

	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
)

// PostgresImageService is the relational half of the image service.
type PostgresImageService interface {
	GetPostgresImage(ctx context.Context, id int64) (*model.Image, error)
	ListPostgresImages(ctx context.Context) ([]model.Image, error)
	AddPostgresImage(ctx context.Context, in model.NewImage) (int64, error)
	DeletePostgresImage(ctx context.Context, id int64) error
}

// PostgresImageHandler serves the relational routes.
type PostgresImageHandler struct {
	Handler
	images PostgresImageService
}

func NewPostgresImageHandler(s *server.Server, images PostgresImageService) *PostgresImageHandler {
	return &PostgresImageHandler{
		Handler: NewHandler(s),
		images:  images,
	}
}

// GetImage returns one row; unset optional columns are left out of the body.
func (h *PostgresImageHandler) GetImage(c echo.Context, req *PostgresImageIDRequest) (*model.Image, error) {
	img, err := h.images.GetPostgresImage(c.Request().Context(), req.ID)
	return img, storeError(err)
}

func (h *PostgresImageHandler) ListImages(c echo.Context, _ *EmptyRequest) ([]model.Image, error) {
	images, err := h.images.ListPostgresImages(c.Request().Context())
	return images, storeError(err)
}

func (h *PostgresImageHandler) AddImage(c echo.Context, req *AddImageRequest) (*AddPostgresImageResponse, error) {
	id, err := h.images.AddPostgresImage(c.Request().Context(), req.NewImage)
	if err != nil {
		return nil, storeError(err)
	}
	return &AddPostgresImageResponse{ID: id}, nil
}

func (h *PostgresImageHandler) DeleteImage(c echo.Context, req *PostgresImageIDRequest) error {
	return storeError(h.images.DeletePostgresImage(c.Request().Context(), req.ID))
}
