package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIModel     string        `env:"OPENAI_MODEL"`
	DBPath          string        `env:"DB_PATH"          envDefault:"summaries.sqlite"`
	RequestInterval time.Duration `env:"REQUEST_INTERVAL" envDefault:"1s"`
	Timeout         time.Duration `env:"PIPELINE_TIMEOUT" envDefault:"5m"`
}

func LoadConfig() Config {
	var cfg Config
	env.Must(cfg, env.Parse(&cfg))
	return cfg
}
