package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	Server ServerConfig
	DB     DatabaseConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type LogConfig struct {
	Level string
	File  string
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver   string
	Postgres PostgresConfig
	SQLite   SQLiteConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type SQLiteConfig struct {
	Path string
}

// RedisConfig is optional; an empty Addr keeps the route cache in process.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig is optional; no brokers disables invalidation broadcasts.
type KafkaConfig struct {
	Brokers           []string
	InvalidationTopic string
	ConsumerGroup     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "invoice_dashboard"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Server: ServerConfig{
			Host:            getEnv("HTTP_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("HTTP_PORT", 8030),
			ShutdownTimeout: time.Duration(getEnvAsInt("HTTP_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		},
		DB: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnvAsInt("POSTGRES_PORT", 5432),
				User:     getEnv("POSTGRES_USER", "postgres"),
				Password: getEnv("POSTGRES_PASSWORD", ""),
				DBName:   getEnv("POSTGRES_DB", "postgres"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
				MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			},
			SQLite: SQLiteConfig{
				Path: getEnv("SQLITE_PATH", "invoices.db"),
			},
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("ROUTE_CACHE_TTL_SEC", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:           splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "")),
			InvalidationTopic: getEnv("KAFKA_INVALIDATION_TOPIC", "route-invalidations"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "invoice-dashboard"),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN escapes credentials and the database name, so passwords may hold '@', '/' or ':'.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.InvalidationTopic != ""
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	switch c.DB.Driver {
	case DriverPostgres:
		p := c.DB.Postgres
		if p.Host == "" || p.User == "" || p.DBName == "" {
			return fmt.Errorf("database config is incomplete")
		}
		if p.Port <= 0 {
			return fmt.Errorf("POSTGRES_PORT is invalid")
		}
	case DriverSQLite:
		if c.DB.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
