// Package config loads service configuration from YAML with environment
// overrides and explicit defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/complaintdesk/triage/internal/chatbot"
)

// Default configuration values.
const (
	defaultServiceName      = "complaint-triage"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8080
	defaultDBPath           = "complaints.db"
	defaultArtifactPath     = "complaint_classifier_model.bin"
	defaultTrainingDataPath = "training_data.csv"
	defaultTokenTTLHours    = 12
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultReadTimeoutSec   = 30
	defaultWriteTimeoutSec  = 30
)

// Config holds all configuration for the complaint triage service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Model    ModelConfig    `yaml:"model"`
	Auth     AuthConfig     `yaml:"auth"`
	Chatbot  chatbot.Config `yaml:"chatbot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"TRIAGE_PORT" yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"   yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" yaml:"path"`
}

// ModelConfig holds classifier artifact and training configuration.
type ModelConfig struct {
	ArtifactPath     string `env:"MODEL_ARTIFACT_PATH" yaml:"artifact_path"`
	TrainingDataPath string `env:"TRAINING_DATA_PATH"  yaml:"training_data_path"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string        `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load reads configuration from path (if it exists), applies environment
// overrides and defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	var cfg Config

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// Path returns the configured config file path, honoring CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yml"
}

func applyEnvOverrides(cfg *Config) {
	envOverrideInt(&cfg.Service.Port, "TRIAGE_PORT")
	envOverrideBool(&cfg.Service.Debug, "APP_DEBUG")
	envOverride(&cfg.Database.Path, "DB_PATH")
	envOverride(&cfg.Model.ArtifactPath, "MODEL_ARTIFACT_PATH")
	envOverride(&cfg.Model.TrainingDataPath, "TRAINING_DATA_PATH")
	envOverride(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	envOverride(&cfg.Chatbot.APIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.Logging.Level, "LOG_LEVEL")
	envOverride(&cfg.Logging.Format, "LOG_FORMAT")
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Service.ReadTimeout == 0 {
		cfg.Service.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if cfg.Service.WriteTimeout == 0 {
		cfg.Service.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath
	}
	if cfg.Model.ArtifactPath == "" {
		cfg.Model.ArtifactPath = defaultArtifactPath
	}
	if cfg.Model.TrainingDataPath == "" {
		cfg.Model.TrainingDataPath = defaultTrainingDataPath
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTLHours * time.Hour
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envOverrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func envOverrideBool(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
