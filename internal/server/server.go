// Package server defines the Server container that owns the process-wide
// resources: configuration, loggers, the PostgreSQL pool, the mongo client,
// the redis client, the background job service and the http.Server.
//
// It provides the constructor that opens them and the start/shutdown
// logic that runs and releases them cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/deppfellow/imagestore/internal/database"
	"github.com/deppfellow/imagestore/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/imagestore/internal/logger"
)

// Server is the application container that holds shared resources.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is the relational store pool.
	DB *database.Database

	// Mongo is the document store client and image collection.
	Mongo *database.Mongo

	// Redis backs the job queue and is checked by /status.
	Redis *redis.Client

	// Job enqueues and runs background tasks. Handlers are registered by
	// the caller once services exist.
	Job *job.JobService

	httpServer *http.Server
}

// New opens both stores and the redis client.
//
// Either store being unreachable is fatal. Redis is not: without it the
// ingest endpoint fails and /status reports it, but the CRUD routes keep
// working.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mongoStore, err := database.NewMongo(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize mongo: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Mongo:         mongoStore,
		Redis:         redisClient,
		Job:           job.NewJobService(logger, cfg),
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
// Config timeouts are whole seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server until Shutdown. It requires SetupHTTPServer
// to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Bool("extended_routes", s.Config.Server.ExtendedRoutes).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// ends, then releases every resource. All steps run; their errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to disconnect mongo: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	return errors.Join(errList...)
}
