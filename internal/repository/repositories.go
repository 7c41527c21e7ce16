package repository

import (
	"github.com/deppfellow/imagestore/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	MongoImages    *MongoImageRepository
	PostgresImages *PostgresImageRepository
}

// NewRepositories builds each accessor on the handle the server owns:
// the pgx pool for images, the mongo collection for image documents.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		MongoImages:    NewMongoImageRepository(s.Mongo.Collection, s.Logger),
		PostgresImages: NewPostgresImageRepository(s.DB.Pool, s.Logger),
	}
}
