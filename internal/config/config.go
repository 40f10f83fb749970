// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`
	Collect   CollectConfig   `yaml:"collect" mapstructure:"collect"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ScoringConfig holds the feature weights for the composite lead score.
// Weights must sum to 1.0.
type ScoringConfig struct {
	ContactWeight      float64 `yaml:"contact_weight" mapstructure:"contact_weight"`
	BusinessWeight     float64 `yaml:"business_weight" mapstructure:"business_weight"`
	FreshnessWeight    float64 `yaml:"freshness_weight" mapstructure:"freshness_weight"`
	VerificationWeight float64 `yaml:"verification_weight" mapstructure:"verification_weight"`
	EngagementWeight   float64 `yaml:"engagement_weight" mapstructure:"engagement_weight"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	ScoreThreshold float64 `yaml:"score_threshold" mapstructure:"score_threshold"`
	TopNiches      int     `yaml:"top_niches" mapstructure:"top_niches"`
	CandidateLimit int     `yaml:"candidate_limit" mapstructure:"candidate_limit"`
}

// CollectConfig configures the simulated collectors.
type CollectConfig struct {
	ProfilePath string  `yaml:"profile_path" mapstructure:"profile_path"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leads.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("scoring.contact_weight", 0.30)
	v.SetDefault("scoring.business_weight", 0.25)
	v.SetDefault("scoring.freshness_weight", 0.20)
	v.SetDefault("scoring.verification_weight", 0.15)
	v.SetDefault("scoring.engagement_weight", 0.10)
	v.SetDefault("recommend.score_threshold", 70)
	v.SetDefault("recommend.top_niches", 3)
	v.SetDefault("recommend.candidate_limit", 1000)
	v.SetDefault("collect.rate_per_sec", 10)
	v.SetDefault("collect.concurrency", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
