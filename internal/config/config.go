package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "ELIGIBILITY_"

type Config struct {
	Primary        Primary              `koanf:"primary"`
	Server         ServerConfig         `koanf:"server"`
	Database       DatabaseConfig       `koanf:"database" validate:"-"`
	Submitter      SubmitterConfig      `koanf:"submitter"`
	Clearinghouses ClearinghousesConfig `koanf:"clearinghouses"`
	Transport      TransportConfig      `koanf:"transport"`
	Rules          RulesConfig          `koanf:"rules"`
	Logger         LoggerConfig         `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// SubmitterConfig identifies this provider on the ISA/GS envelope and in
// the information receiver loop.
type SubmitterConfig struct {
	SenderID        string `koanf:"sender_id" validate:"required,max=15"`
	ReceiverID      string `koanf:"receiver_id" validate:"required,max=15"`
	UsageIndicator  string `koanf:"usage_indicator" validate:"required,oneof=P T"`
	ProviderName    string `koanf:"provider_name" validate:"required"`
	ProviderNPI     string `koanf:"provider_npi" validate:"required,len=10,numeric"`
	TraceOriginator string `koanf:"trace_originator" validate:"required"`
}

type ClearinghouseConfig struct {
	Name       string `koanf:"name" validate:"required"`
	Endpoint   string `koanf:"endpoint" validate:"required,url"`
	Format     string `koanf:"format" validate:"required,oneof=soap mime"`
	Username   string `koanf:"username" validate:"required"`
	Password   string `koanf:"password" validate:"required"`
	SenderID   string `koanf:"sender_id" validate:"required"`
	ReceiverID string `koanf:"receiver_id" validate:"required"`
}

// ClearinghousesConfig holds the primary endpoint and an optional secondary
// used for failover. The secondary is ignored when its endpoint is empty.
type ClearinghousesConfig struct {
	Primary   ClearinghouseConfig `koanf:"primary"`
	Secondary ClearinghouseConfig `koanf:"secondary" validate:"-"`
}

// Endpoints returns the configured clearinghouses in failover order.
func (c ClearinghousesConfig) Endpoints() []ClearinghouseConfig {
	out := []ClearinghouseConfig{c.Primary}
	if c.Secondary.Endpoint != "" {
		out = append(out, c.Secondary)
	}
	return out
}

type TransportConfig struct {
	AttemptTimeout time.Duration `koanf:"attempt_timeout" validate:"required"`
}

type RulesConfig struct {
	ProgramName string `koanf:"program_name" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                     "development",
		"server.port":                     "8080",
		"server.read_timeout":             "30s",
		"server.write_timeout":            "30s",
		"server.idle_timeout":             "60s",
		"database.port":                   5432,
		"database.ssl_mode":               "disable",
		"database.max_open_conns":         10,
		"database.max_idle_conns":         2,
		"database.conn_max_lifetime":      "1h",
		"database.conn_max_idle_time":     "30m",
		"submitter.usage_indicator":       "P",
		"clearinghouses.primary.format":   "soap",
		"clearinghouses.secondary.format": "soap",
		"transport.attempt_timeout":       "8s",
		"rules.program_name":              "FFS Behavioral Health",
		"logger.level":                    "info",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load default configuration", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks every section except the database, which only the
// server needs (see ValidateDatabase).
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Clearinghouses.Secondary.Endpoint != "" {
		if err := validate.Struct(c.Clearinghouses.Secondary); err != nil {
			return fmt.Errorf("secondary clearinghouse: %w", err)
		}
	}
	return nil
}

func (c *Config) ValidateDatabase() error {
	if err := validator.New().Struct(c.Database); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func (c LoggerConfig) NewLogger(environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.slogLevel()}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func (c LoggerConfig) slogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
