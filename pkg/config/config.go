package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Workflow     WorkflowConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every cross-field problem at once instead of failing on the first.
func (c *Config) Validate() error {
	var err error
	if c.FeatureFlags.PersistOrders && !c.FeatureFlags.UseSQLite && strings.TrimSpace(c.DB.DSN) == "" {
		err = multierr.Append(err, fmt.Errorf("%s is required when %s is enabled", EnvDBDSN, EnvPersistOrders))
	}
	if c.FeatureFlags.UseSQLite && strings.TrimSpace(c.DB.SQLitePath) == "" {
		err = multierr.Append(err, fmt.Errorf("%s is required when %s is enabled", EnvSQLitePath, EnvUseSQLite))
	}
	if strings.TrimSpace(c.PubSub.OrdersTopic) != "" && strings.TrimSpace(c.GCP.ProjectID) == "" {
		err = multierr.Append(err, fmt.Errorf("%s is required when %s is set", EnvGCPProjectID, EnvPubSubOrdersTopic))
	}
	err = multierr.Append(err, c.Workflow.validate())
	return err
}

type AppConfig struct {
	Env          string `envconfig:"BCF_APP_ENV" required:"true"`
	Port         string `envconfig:"BCF_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BCF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BCF_LOG_WARN_STACK" default:"false"`
	// DemoOwner receives the sample history when demo seeding is on.
	DemoOwner string `envconfig:"BCF_DEMO_OWNER" default:"demo-buyer"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"BCF_DB_DSN"`
	SQLitePath string `envconfig:"BCF_SQLITE_PATH" default:"bcf.db"`

	MaxOpenConns    int           `envconfig:"BCF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BCF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BCF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BCF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BCF_REDIS_URL"`
	Address      string        `envconfig:"BCF_REDIS_ADDR"`
	Password     string        `envconfig:"BCF_REDIS_PASSWORD"`
	DB           int           `envconfig:"BCF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BCF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BCF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BCF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BCF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BCF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"BCF_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BCF_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BCF_JWT_EXPIRATION_MINUTES" default:"720"`
}

type FeatureFlagsConfig struct {
	UseSQLite       bool `envconfig:"BCF_USE_SQLITE" default:"false"`
	AutoMigrate     bool `envconfig:"BCF_AUTO_MIGRATE" default:"false"`
	PersistOrders   bool `envconfig:"BCF_ORDERS_PERSIST" default:"false"`
	SeedDemoHistory bool `envconfig:"BCF_SEED_DEMO_HISTORY" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BCF_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"BCF_PUBSUB_ORDERS_TOPIC"`
}

// WorkflowConfig tunes the configuration wizard, order submission and the idle reaper.
type WorkflowConfig struct {
	OrderIDPrefix      string        `envconfig:"BCF_ORDER_ID_PREFIX" default:"BCF"`
	OrderIDDigits      int           `envconfig:"BCF_ORDER_ID_DIGITS" default:"6"`
	OrderIDRetryBudget int           `envconfig:"BCF_ORDER_ID_RETRY_BUDGET" default:"16"`
	SessionIdleTTL     time.Duration `envconfig:"BCF_WORKFLOW_SESSION_IDLE_TTL" default:"30m"`
	ReaperInterval     time.Duration `envconfig:"BCF_WORKFLOW_REAPER_INTERVAL" default:"1m"`
	AnnotationTimeout  time.Duration `envconfig:"BCF_WORKFLOW_ANNOTATION_TIMEOUT" default:"10s"`
}

func (w WorkflowConfig) validate() error {
	var err error
	if strings.TrimSpace(w.OrderIDPrefix) == "" {
		err = multierr.Append(err, errors.New("order id prefix must not be empty"))
	}
	if w.OrderIDDigits < 4 || w.OrderIDDigits > 12 {
		err = multierr.Append(err, fmt.Errorf("order id digits must be between 4 and 12, got %d", w.OrderIDDigits))
	}
	if w.OrderIDRetryBudget < 1 {
		err = multierr.Append(err, fmt.Errorf("order id retry budget must be positive, got %d", w.OrderIDRetryBudget))
	}
	if w.SessionIdleTTL <= 0 {
		err = multierr.Append(err, errors.New("session idle ttl must be positive"))
	}
	if w.ReaperInterval <= 0 {
		err = multierr.Append(err, errors.New("reaper interval must be positive"))
	}
	return err
}
