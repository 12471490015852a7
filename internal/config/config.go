package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config aggregates every runtime setting for the assistant.  Values come
// from the process environment, with a .env file as a convenience for
// local development.
type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	OpenAIAPIKey   string `mapstructure:"OPENAI_API_KEY"`
	ChatModel      string `mapstructure:"OPENAI_MODEL_CHAT"`
	EmbeddingModel string `mapstructure:"OPENAI_MODEL_EMBEDDING"`

	VectorStorePath  string `mapstructure:"VECTORSTORE_PATH"`
	VectorCollection string `mapstructure:"VECTORSTORE_COLLECTION"`

	TavilyAPIKey string `mapstructure:"TAVILY_API_KEY"`

	AuditBuffer int `mapstructure:"AUDIT_BUFFER"`
}

// Load reads configuration from the environment.  The assistant can run
// without OpenAI or Tavily credentials in a degraded mode, but the patient
// store is mandatory, so a missing DATABASE_URL fails fast.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("OPENAI_MODEL_CHAT", "gpt-4o-mini")
	v.SetDefault("OPENAI_MODEL_EMBEDDING", "text-embedding-3-small")
	v.SetDefault("VECTORSTORE_PATH", "data/vectorstore")
	v.SetDefault("VECTORSTORE_COLLECTION", "nephrology")
	v.SetDefault("AUDIT_BUFFER", 1000)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL_CHAT")
	v.BindEnv("OPENAI_MODEL_EMBEDDING")
	v.BindEnv("VECTORSTORE_PATH")
	v.BindEnv("VECTORSTORE_COLLECTION")
	v.BindEnv("TAVILY_API_KEY")
	v.BindEnv("AUDIT_BUFFER")

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuditBuffer < 1 {
		return nil, fmt.Errorf("AUDIT_BUFFER must be positive, got %d", cfg.AuditBuffer)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
