package handler

import (
	"context"

	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/deppfellow/imagestore/internal/middleware"
	"github.com/deppfellow/imagestore/internal/model"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// IngestService queues images for the background ingest worker.
type IngestService interface {
	Enqueue(ctx context.Context, in model.NewImage) (*asynq.TaskInfo, error)
}

type IngestHandler struct {
	Handler
	ingest IngestService
}

func NewIngestHandler(s *server.Server, ingest IngestService) *IngestHandler {
	return &IngestHandler{
		Handler: NewHandler(s),
		ingest:  ingest,
	}
}

// IngestImage queues the image for insertion into both stores and answers
// 202 without waiting for the writes.
func (h *IngestHandler) IngestImage(c echo.Context, req *AddImageRequest) (*IngestImageResponse, error) {
	info, err := h.ingest.Enqueue(c.Request().Context(), req.NewImage)
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Str("name", req.Name).Msg("failed to enqueue image ingest")
		return nil, errs.NewServiceUnavailableError("The ingest queue is temporarily unavailable")
	}

	return &IngestImageResponse{
		TaskID: info.ID,
		Queue:  info.Queue,
	}, nil
}
