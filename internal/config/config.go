package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// MinJWTSecretLength is the shortest JWT_SECRET accepted while admin is enabled.
const MinJWTSecretLength = 32

// Config holds the configuration of the portal API server.
type Config struct {
	ServiceName     string        `mapstructure:"SERVICE_NAME"`
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"` // empty disables the browse cache
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"` // empty disables events

	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey     string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string `mapstructure:"S3_SECRET_KEY"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3UseSSL        bool   `mapstructure:"S3_USE_SSL"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	RelayURL string `mapstructure:"RELAY_URL"` // empty disables the email side channel

	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminSessionTTL   time.Duration `mapstructure:"ADMIN_SESSION_TTL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TransitionPolicy  string        `mapstructure:"TRANSITION_POLICY"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "property-portal")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "ayyavu_promoters")
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("NATS_URL", "")

	v.SetDefault("S3_ENDPOINT", "localhost:9000")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_BUCKET", "property-images")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_PUBLIC_BASE_URL", "")

	v.SetDefault("RELAY_URL", "")

	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("ADMIN_SESSION_TTL", "12h")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TRANSITION_POLICY", string(domain.PolicyStrict))

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
}

// LoadConfig reads configuration from the environment (godotenv is called in main).
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.AdminPasswordHash == "" {
		appLogger.Warn("ADMIN_PASSWORD_HASH is empty, admin routes are disabled. Generate one with `portalctl hash-password`.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("database_url_present", cfg.DatabaseURL != ""),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("s3_endpoint", cfg.S3Endpoint),
		zap.String("s3_bucket", cfg.S3Bucket),
		zap.String("relay_url", cfg.RelayURL),
		zap.String("transition_policy", cfg.TransitionPolicy),
		zap.Bool("admin_enabled", cfg.AdminPasswordHash != ""),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for STORE_DRIVER=mongo")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER '%s', expected mongo or postgres", c.StoreDriver)
	}

	if _, err := domain.ParseTransitionPolicy(c.TransitionPolicy); err != nil {
		return fmt.Errorf("TRANSITION_POLICY: %w", err)
	}
	if c.AdminPasswordHash != "" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
		}
		if len(c.JWTSecret) < MinJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
		}
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	return nil
}

// Policy returns the parsed transition policy. Call after Validate.
func (c *Config) Policy() domain.TransitionPolicy {
	p, _ := domain.ParseTransitionPolicy(c.TransitionPolicy)
	return p
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
