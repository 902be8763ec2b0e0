package main

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// config is the process configuration, parsed from the environment.
// A .env file is loaded first when present (local development); real
// deployments set the variables directly.
type config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DBURL         string `env:"DB_URL"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`

	// WaterTargetLiters is the daily hydration target used for percentage math.
	WaterTargetLiters float64 `env:"WATER_TARGET_LITERS" envDefault:"3.2"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

func loadConfig() (config, error) {
	// Missing .env is fine — env vars may come from the deployment instead.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
