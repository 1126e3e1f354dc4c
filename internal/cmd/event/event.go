// Package event parses event server configuration and launches the service.
package event

import (
	"context"
	"flag"
	"net"
	"os"
	"strconv"

	entrypoint "github.com/louisbranch/eventline/internal/platform/cmd"
	"github.com/louisbranch/eventline/internal/platform/logging"
	server "github.com/louisbranch/eventline/internal/services/event/app"
	"github.com/louisbranch/eventline/internal/services/event/storage"
)

// Config holds event command configuration. Environment names are read with
// the EVENTLINE_ prefix.
type Config struct {
	Host string `env:"HOST" yaml:"host"`
	Port int    `env:"PORT" yaml:"port"`

	StoreDriver   string `env:"STORE_DRIVER" yaml:"store_driver"`
	SQLitePath    string `env:"SQLITE_PATH" yaml:"sqlite_path"`
	PostgresDSN   string `env:"POSTGRES_DSN" yaml:"postgres_dsn"`
	RedisAddr     string `env:"REDIS_ADDR" yaml:"redis_addr"`
	RedisPassword string `env:"REDIS_PASSWORD" yaml:"redis_password"`
	RedisDB       int    `env:"REDIS_DB" yaml:"redis_db"`
	RedisPrefix   string `env:"REDIS_PREFIX" yaml:"redis_prefix"`

	TLSCertFile string `env:"TLS_CERT_FILE" yaml:"tls_cert_file"`
	TLSKeyFile  string `env:"TLS_KEY_FILE" yaml:"tls_key_file"`

	ManagementPort int     `env:"MANAGEMENT_PORT" yaml:"management_port"`
	RateLimit      float64 `env:"RATE_LIMIT" yaml:"rate_limit"`
	RateBurst      int     `env:"RATE_BURST" yaml:"rate_burst"`

	LogLevel  string `env:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format"`
}

func defaultConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        5050,
		StoreDriver: storage.DriverMemory,
		SQLitePath:  "data/events.db",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "eventline",
		RateBurst:   100,
		LogLevel:    "info",
		LogFormat:   logging.FormatConsole,
	}
}

// ParseConfig layers defaults, the optional YAML file, the environment and
// flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	if fs != nil {
		fs.StringVar(&cfg.Host, "host", cfg.Host, "The event gRPC server host")
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The event gRPC server port")
		fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "Event store driver: memory, sqlite, postgres or redis")
		fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database file")
		fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
		fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis server address")
		fs.StringVar(&cfg.TLSCertFile, "tls-cert", cfg.TLSCertFile, "TLS certificate file")
		fs.StringVar(&cfg.TLSKeyFile, "tls-key", cfg.TLSKeyFile, "TLS private key file")
		fs.IntVar(&cfg.ManagementPort, "management-port", cfg.ManagementPort, "Health and metrics HTTP port, 0 disables it")
		fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Accepted calls per second, 0 disables limiting")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	}
	if err := entrypoint.ParseConfig(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// serverConfig maps command configuration onto the server runtime.
func serverConfig(cfg Config) server.Config {
	out := server.Config{
		Addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Store: server.StoreConfig{
			Driver:        cfg.StoreDriver,
			SQLitePath:    cfg.SQLitePath,
			PostgresDSN:   cfg.PostgresDSN,
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			RedisPrefix:   cfg.RedisPrefix,
		},
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
	}
	if cfg.ManagementPort > 0 {
		out.ManagementAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.ManagementPort))
	}
	return out
}

// Run starts the event gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	logger = logger.With().Str("service", entrypoint.ServiceEvent).Logger()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEvent, entrypoint.RunOptions{Logger: &logger}, func(ctx context.Context) error {
		return server.Run(ctx, serverConfig(cfg), server.Options{Logger: &logger})
	})
}
