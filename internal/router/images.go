package router

import (
	"net/http"

	"github.com/deppfellow/imagestore/internal/handler"
	"github.com/deppfellow/imagestore/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerImageRoutes registers the always-on image routes and, when
// extended is set, the fetch-all, insert, delete-one and ingest routes.
// DELETE routes go through Clerk when a secret key is configured.
func registerImageRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware, extended bool) {
	mongo := h.MongoImages
	pg := h.PostgresImages

	r.GET("/get-image-mongo/:id",
		handler.Handle(mongo.Handler, mongo.GetImage, http.StatusOK, &handler.MongoImageIDRequest{}))
	r.DELETE("/delete-all-mongo/:key",
		handler.Handle(mongo.Handler, mongo.DeleteAllByKey, http.StatusOK, &handler.MongoKeyRequest{}),
		auth.RequireAuthIfEnabled)
	r.GET("/get-image-postgres/:id",
		handler.Handle(pg.Handler, pg.GetImage, http.StatusOK, &handler.PostgresImageIDRequest{}))

	if !extended {
		return
	}

	r.GET("/get-all-images-mongo",
		handler.Handle(mongo.Handler, mongo.ListImages, http.StatusOK, &handler.EmptyRequest{}))
	r.POST("/mongo-add-image",
		handler.Handle(mongo.Handler, mongo.AddImage, http.StatusCreated, &handler.AddImageRequest{}))
	r.DELETE("/delete-one-mongo/:id",
		handler.Handle(mongo.Handler, mongo.DeleteImage, http.StatusOK, &handler.MongoImageIDRequest{}),
		auth.RequireAuthIfEnabled)

	r.GET("/get-all-images-postgres",
		handler.Handle(pg.Handler, pg.ListImages, http.StatusOK, &handler.EmptyRequest{}))
	r.POST("/postgres-add-image",
		handler.Handle(pg.Handler, pg.AddImage, http.StatusCreated, &handler.AddImageRequest{}))
	r.DELETE("/delete-image-postgres/:id",
		handler.HandleNoContent(pg.Handler, pg.DeleteImage, http.StatusNoContent, &handler.PostgresImageIDRequest{}),
		auth.RequireAuthIfEnabled)

	r.POST("/ingest-image",
		handler.Handle(h.Ingest.Handler, h.Ingest.IngestImage, http.StatusAccepted, &handler.AddImageRequest{}))
}
