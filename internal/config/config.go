package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	TranslatorAPIKey  string `env:"TRANSLATOR_API_KEY"`
	TranslatorBaseURL string `env:"TRANSLATOR_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	TranslatorModel   string `env:"TRANSLATOR_MODEL" envDefault:"mixtral-8x7b-32768"`
	TranslateTimeout  int    `env:"TRANSLATE_TIMEOUT_SECONDS" envDefault:"15"`

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"English"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SendRateWindowSeconds int `env:"SEND_RATE_WINDOW_SECONDS" envDefault:"10"`
	SendRateMax           int `env:"SEND_RATE_MAX" envDefault:"20"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
