// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types, and validates that
// required values are present so the service fails fast on bad config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Accept the legacy PG*/MONGO_* variable names as fallbacks.
//   - Map env vars into the Config struct tree.
//   - Validate required values and inject defaults for optional blocks.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every service variable carries.
//
// Nesting uses a double underscore, so
//
//	IMAGESTORE_DATABASE__HOST -> database.host -> Config.Database.Host
//	IMAGESTORE_SERVER__READ_TIMEOUT -> server.read_timeout
const EnvPrefix = "IMAGESTORE_"

// legacyEnv maps the variable names the first deployment used onto koanf keys.
// They are loaded before the prefixed variables, so the prefixed form wins.
var legacyEnv = map[string]string{
	"PGHOST":     "database.host",
	"PGPORT":     "database.port",
	"PGDATABASE": "database.name",
	"PGUSER":     "database.user",
	"PGPASSWORD": "database.password",
	"MONGO_CONN": "mongo.conn",
	"MONGO_USER": "mongo.user",
	"MONGO_PW":   "mongo.password",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Mongo         MongoConfig          `koanf:"mongo" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// ExtendedRoutes registers the fetch-all, insert, delete-one and ingest
	// endpoints next to the three always-on routes.
	ExtendedRoutes bool `koanf:"extended_routes"`

	// RateLimit is the sustained requests/second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=1"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// DSN builds the postgres URL for pgx. The password is escaped so
// characters like ':' or '@' do not break the URL.
func (d DatabaseConfig) DSN() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}

// MongoConfig contains the document store connection parameters.
//
// Conn is the cluster host part of the URI (e.g. cluster0.abcde.mongodb.net).
type MongoConfig struct {
	Scheme                 string        `koanf:"scheme" validate:"required,oneof=mongodb mongodb+srv"`
	Conn                   string        `koanf:"conn" validate:"required"`
	User                   string        `koanf:"user" validate:"required"`
	Password               string        `koanf:"password" validate:"required"`
	Database               string        `koanf:"database" validate:"required"`
	Collection             string        `koanf:"collection" validate:"required"`
	ConnectTimeout         time.Duration `koanf:"connect_timeout" validate:"min=1s"`
	SocketTimeout          time.Duration `koanf:"socket_timeout" validate:"min=1s"`
	ServerSelectionTimeout time.Duration `koanf:"server_selection_timeout" validate:"min=1s"`
}

// URI builds the connection string. User and password are query-escaped
// once, the same way the Atlas console does it.
func (m MongoConfig) URI() string {
	return fmt.Sprintf("%s://%s:%s@%s/?retryWrites=true&w=majority",
		m.Scheme,
		url.QueryEscape(m.User),
		url.QueryEscape(m.Password),
		m.Conn,
	)
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret. An empty key leaves destructive
// routes unauthenticated.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key"`
}

// Enabled reports whether Clerk authentication should guard routes.
func (a AuthConfig) Enabled() bool {
	return a.SecretKey != ""
}

// DefaultConfig returns a Config holding every non-credential default.
// Credentials and hosts are intentionally left empty.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxConns:        10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Mongo: MongoConfig{
			Scheme:                 "mongodb+srv",
			Database:               "Images",
			Collection:             "vite_demo_images",
			ConnectTimeout:         30 * time.Second,
			SocketTimeout:          30 * time.Second,
			ServerSelectionTimeout: 30 * time.Second,
		},
		Redis:         RedisConfig{Address: "localhost:6379"},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey turns IMAGESTORE_DATABASE__HOST into database.host.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// on top of DefaultConfig, validates it, applies observability defaults and
// returns the result.
//
// Unlike a log-and-exit loader, every failure is returned so the caller
// (cmd/imagestore) decides how to die.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Legacy names first so the prefixed variables override them.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		mapped, ok := legacyEnv[key]
		if !ok {
			return "", nil
		}
		return mapped, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Partial observability variables land on top of the defaults; a nil
	// block only happens when a caller builds Config by hand.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary block so
	// logs and traces agree on naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
