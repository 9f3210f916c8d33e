package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// IntegritySecret keys the account integrity digest. Loaded once at
	// startup and read-only afterwards: rotating it makes every stored
	// digest unverifiable, which the guard will read as tampering and
	// answer with mass pruning on login. Do not change it casually.
	IntegritySecret string `env:"INTEGRITY_SECRET, required"`

	Session SessionConfig
	Argon2  Argon2Config
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME, default=sid"`
	TTL        time.Duration `env:"SESSION_TTL,         default=24h"`

	// Secret signs the session-id cookie. Distinct from IntegritySecret,
	// which is reserved for the integrity digest.
	Secret string `env:"SESSION_SECRET, required"`
}

type Argon2Config struct {
	MemoryKB    uint32 `env:"ARGON2_MEMORY_KB,   default=65536"`
	Time        uint32 `env:"ARGON2_TIME,        default=3"`
	Parallelism uint8  `env:"ARGON2_PARALLELISM, default=2"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// CookieSecure reports whether session cookies should carry the Secure flag.
// Tied to the deployment environment: everything but development is assumed
// to be behind TLS.
func (c *Config) CookieSecure() bool {
	return c.Env != "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
