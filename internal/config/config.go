package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
	UploadDir   string   `mapstructure:"UPLOAD_DIR"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// NLP inference sidecar (entity recognition + document embeddings).
	NLPServiceURL     string `mapstructure:"NLP_SERVICE_URL"`
	NLPTimeoutSeconds int    `mapstructure:"NLP_TIMEOUT_SECONDS"`

	// Problem-statement generation.
	OpenAIAPIKey      string  `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel       string  `mapstructure:"OPENAI_MODEL"`
	OpenAITemperature float64 `mapstructure:"OPENAI_TEMPERATURE"`
	OpenAIMaxTokens   int     `mapstructure:"OPENAI_MAX_TOKENS"`

	// Related-question ranking.
	MinSimilarityScore  float64 `mapstructure:"MIN_SIMILARITY_SCORE"`
	MaxRelatedQuestions int     `mapstructure:"MAX_RELATED_QUESTIONS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("UPLOAD_DIR", "uploads/screenshots")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("NLP_SERVICE_URL", "http://localhost:8090")
	v.SetDefault("NLP_TIMEOUT_SECONDS", 30)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TEMPERATURE", 0.7)
	v.SetDefault("OPENAI_MAX_TOKENS", 500)
	v.SetDefault("MIN_SIMILARITY_SCORE", 0.5)
	v.SetDefault("MAX_RELATED_QUESTIONS", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("UPLOAD_DIR")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("NLP_SERVICE_URL")
	v.BindEnv("NLP_TIMEOUT_SECONDS")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("OPENAI_TEMPERATURE")
	v.BindEnv("OPENAI_MAX_TOKENS")
	v.BindEnv("MIN_SIMILARITY_SCORE")
	v.BindEnv("MAX_RELATED_QUESTIONS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.NLPServiceURL == "" {
		return fmt.Errorf("NLP_SERVICE_URL is required")
	}
	if c.MinSimilarityScore < 0 || c.MinSimilarityScore > 1 {
		return fmt.Errorf("MIN_SIMILARITY_SCORE must be in [0,1], got %v", c.MinSimilarityScore)
	}
	if c.MaxRelatedQuestions <= 0 {
		return fmt.Errorf("MAX_RELATED_QUESTIONS must be positive, got %d", c.MaxRelatedQuestions)
	}
	if c.NLPTimeoutSeconds <= 0 {
		return fmt.Errorf("NLP_TIMEOUT_SECONDS must be positive, got %d", c.NLPTimeoutSeconds)
	}
	if c.IsProduction() && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required in production")
	}
	return nil
}
