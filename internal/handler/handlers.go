package handler

import (
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/deppfellow/imagestore/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health         *HealthHandler
	OpenAPI        *OpenAPIHandler
	MongoImages    *MongoImageHandler
	PostgresImages *PostgresImageHandler
	Ingest         *IngestHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(s),
		OpenAPI:        NewOpenAPIHandler(s),
		MongoImages:    NewMongoImageHandler(s, services.Images),
		PostgresImages: NewPostgresImageHandler(s, services.Images),
		Ingest:         NewIngestHandler(s, services.Ingest),
	}
}
