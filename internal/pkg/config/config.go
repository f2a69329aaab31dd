package config

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionStoreMongo = "mongo"
	SessionStoreRedis = "redis"
)

type Config struct {
	Port      string `env:"PORT,       default=3000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	StaticDir string `env:"STATIC_DIR, default=public"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret       string `env:"SESSION_SECRET, required"`
	Store        string `env:"SESSION_STORE,  default=mongo"`
	CookieSecure bool   `env:"COOKIE_SECURE,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=members_auth"`

	// Atlas-style credentials. When Host is set they take precedence over URI.
	Host     string `env:"MONGODB_HOST"`
	User     string `env:"MONGODB_USER"`
	Password string `env:"MONGODB_PASSWORD"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// ConnectionURI returns the URI to dial.
func (m MongoConfig) ConnectionURI() string {
	if m.Host == "" {
		return m.URI
	}
	u := url.URL{Scheme: "mongodb+srv", Host: m.Host, Path: "/"}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String()
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for process start-up; it panics on invalid configuration.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	switch cfg.Session.Store {
	case SessionStoreMongo, SessionStoreRedis:
	default:
		return nil, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMongo, SessionStoreRedis, cfg.Session.Store)
	}
	return &cfg, nil
}
