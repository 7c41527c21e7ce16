package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/imagestore/internal/server"
)

// AuthService configures the Clerk SDK with the secret key.
type AuthService struct {
	server  *server.Server
	enabled bool
}

func NewAuthService(s *server.Server) *AuthService {
	enabled := s.Config.Auth.Enabled()
	if enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server:  s,
		enabled: enabled,
	}
}

// Enabled reports whether destructive routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a.enabled
}
