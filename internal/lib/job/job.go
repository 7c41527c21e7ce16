// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with an
// asynq.Client and executed by the workers of an asynq.Server.
package job

import (
	"errors"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server   *asynq.Server
	logger   *zerolog.Logger
	ingester ImageIngester
}

// NewJobService creates a JobService configured to use Redis from cfg.
// Neither the client nor the server connects until first use.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical":   6,
				QueueDefault: 3,
				"low":        1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskIngestImage, j.handleIngestImageTask)
	return mux
}

// Start runs the workers in the background. It returns once they are up.
func (j *JobService) Start() error {
	if j.ingester == nil {
		return errors.New("job handlers not initialized")
	}

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(j.Mux())
}

// Stop waits for running tasks to finish, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
