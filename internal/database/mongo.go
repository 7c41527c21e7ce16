package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo owns the document store client and the image collection.
type Mongo struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	log        *zerolog.Logger
}

// mongoClientOptions builds client options from config: stable API v1,
// primary-preferred reads and the three configured timeouts.
func mongoClientOptions(cfg config.MongoConfig) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	return options.Client().
		ApplyURI(cfg.URI()).
		SetServerAPIOptions(serverAPI).
		SetReadPreference(readpref.PrimaryPreferred()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
}

// NewMongo connects to the document store and pings it.
func NewMongo(cfg *config.Config, logger *zerolog.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(cfg.Mongo))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.PrimaryPreferred()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().
		Str("database", cfg.Mongo.Database).
		Str("collection", cfg.Mongo.Collection).
		Msg("connected to mongo")

	return &Mongo{
		Client:     client,
		Collection: client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
		log:        logger,
	}, nil
}

// Ping checks the client can still select a server.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.PrimaryPreferred())
}

// Close disconnects the client, waiting for in-use connections until ctx ends.
func (m *Mongo) Close(ctx context.Context) error {
	m.log.Info().Msg("disconnecting from mongo")
	return m.Client.Disconnect(ctx)
}
