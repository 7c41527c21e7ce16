package service

import (
	"github.com/deppfellow/imagestore/internal/repository"
	"github.com/deppfellow/imagestore/internal/server"
)

type Services struct {
	Auth   *AuthService
	Images *ImageService
	Ingest *IngestService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:   NewAuthService(s),
		Images: NewImageService(repos.MongoImages, repos.PostgresImages, s.Logger),
		Ingest: NewIngestService(s.Job.Client),
	}, nil
}
