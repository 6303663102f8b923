package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Email      EmailConfig
	RecordsAPI RecordsAPIConfig
	Redis      RedisConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RecordsAPIConfig points at the upstream master-data service that owns
// branches, customers, products and non-stock items.
type RecordsAPIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// RedisConfig holds the master-data cache settings.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify access tokens issued by the
// identity service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
	ArchivePrefix string `mapstructure:"archive_prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the QUOTEDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quotedesk")
	v.SetDefault("db.password", "quotedesk_secret")
	v.SetDefault("db.name", "quotedesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "quotedesk")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "quotedesk-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)
	v.SetDefault("s3.archive_prefix", "quotations")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "quotes@quotedesk.in")
	v.SetDefault("email.from_name", "QuoteDesk")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Records API defaults
	v.SetDefault("records_api.base_url", "http://localhost:9000/api")
	v.SetDefault("records_api.api_key", "")
	v.SetDefault("records_api.timeout_secs", 10)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "QUOTEDESK_SERVER_PORT",
		"server.read_timeout":      "QUOTEDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "QUOTEDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":       "QUOTEDESK_SERVER_ENVIRONMENT",
		"db.host":                  "QUOTEDESK_DB_HOST",
		"db.port":                  "QUOTEDESK_DB_PORT",
		"db.user":                  "QUOTEDESK_DB_USER",
		"db.password":              "QUOTEDESK_DB_PASSWORD",
		"db.name":                  "QUOTEDESK_DB_NAME",
		"db.sslmode":               "QUOTEDESK_DB_SSLMODE",
		"db.max_open":              "QUOTEDESK_DB_MAX_OPEN",
		"db.max_idle":              "QUOTEDESK_DB_MAX_IDLE",
		"jwt.secret":               "QUOTEDESK_JWT_SECRET",
		"jwt.issuer":               "QUOTEDESK_JWT_ISSUER",
		"s3.region":                "QUOTEDESK_S3_REGION",
		"s3.bucket":                "QUOTEDESK_S3_BUCKET",
		"s3.endpoint":              "QUOTEDESK_S3_ENDPOINT",
		"s3.access_key":            "QUOTEDESK_S3_ACCESS_KEY",
		"s3.secret_key":            "QUOTEDESK_S3_SECRET_KEY",
		"s3.presign_expiry":        "QUOTEDESK_S3_PRESIGN_EXPIRY",
		"s3.archive_prefix":        "QUOTEDESK_S3_ARCHIVE_PREFIX",
		"log.level":                "QUOTEDESK_LOG_LEVEL",
		"log.format":               "QUOTEDESK_LOG_FORMAT",
		"cors.allowed_origins":     "QUOTEDESK_CORS_ALLOWED_ORIGINS",
		"email.provider":           "QUOTEDESK_EMAIL_PROVIDER",
		"email.region":             "QUOTEDESK_EMAIL_REGION",
		"email.from_address":       "QUOTEDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":          "QUOTEDESK_EMAIL_FROM_NAME",
		"email.frontend_url":       "QUOTEDESK_EMAIL_FRONTEND_URL",
		"records_api.base_url":     "QUOTEDESK_RECORDS_API_BASE_URL",
		"records_api.api_key":      "QUOTEDESK_RECORDS_API_API_KEY",
		"records_api.timeout_secs": "QUOTEDESK_RECORDS_API_TIMEOUT_SECS",
		"redis.enabled":            "QUOTEDESK_REDIS_ENABLED",
		"redis.addr":               "QUOTEDESK_REDIS_ADDR",
		"redis.password":           "QUOTEDESK_REDIS_PASSWORD",
		"redis.db":                 "QUOTEDESK_REDIS_DB",
		"redis.cache_ttl":          "QUOTEDESK_REDIS_CACHE_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUOTEDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUOTEDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
		ArchivePrefix: strings.Trim(v.GetString("s3.archive_prefix"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.RecordsAPI = RecordsAPIConfig{
		BaseURL:     strings.TrimRight(v.GetString("records_api.base_url"), "/"),
		APIKey:      v.GetString("records_api.api_key"),
		TimeoutSecs: v.GetInt("records_api.timeout_secs"),
	}
	if cfg.RecordsAPI.BaseURL == "" {
		return nil, fmt.Errorf("records_api.base_url is required")
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("redis.enabled"),
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		CacheTTL: v.GetDuration("redis.cache_ttl"),
	}

	return cfg, nil
}
