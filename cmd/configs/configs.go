package configs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort                  string `mapstructure:"SERVER_PORT"`
	LogMode                     string `mapstructure:"LOG_MODE"`
	LogLevel                    string `mapstructure:"LOG_LEVEL"`
	LogFile                     string `mapstructure:"LOG_FILE"`
	RateLimiterMaxRequests      int    `mapstructure:"RATE_LIMITER_MAX_REQUESTS"`
	RateLimiterTimeDelay        string `mapstructure:"RATE_LIMITER_TIME_DELAY"`
	RateLimiterTokenMaxRequests int    `mapstructure:"RATE_LIMITER_TOKEN_MAX_REQUESTS"`
	RateLimiterTokenTimeDelay   string `mapstructure:"RATE_LIMITER_TOKEN_TIME_DELAY"`
	RateLimiterWindow           string `mapstructure:"RATE_LIMITER_WINDOW"`
	RateLimiterCleanupInterval  string `mapstructure:"RATE_LIMITER_CLEANUP_INTERVAL"`
	RateLimiterBackend          string `mapstructure:"RATE_LIMITER_BACKEND"`
	RateLimiterRedisAddr        string `mapstructure:"RATE_LIMITER_REDIS_ADDR"`
}

var defaults = map[string]any{
	"SERVER_PORT":                     "8080",
	"LOG_MODE":                        "development",
	"LOG_LEVEL":                       "info",
	"LOG_FILE":                        "",
	"RATE_LIMITER_MAX_REQUESTS":       0,
	"RATE_LIMITER_TIME_DELAY":         "10s",
	"RATE_LIMITER_TOKEN_MAX_REQUESTS": 0,
	"RATE_LIMITER_TOKEN_TIME_DELAY":   "10s",
	"RATE_LIMITER_WINDOW":             "1s",
	"RATE_LIMITER_CLEANUP_INTERVAL":   "1m",
	"RATE_LIMITER_BACKEND":            "memory",
	"RATE_LIMITER_REDIS_ADDR":         "localhost:6379",
}

// LoadConfig lê as variáveis de ambiente, completando com o .env do
// diretório path quando ele existir. Variáveis já definidas no ambiente
// têm prioridade sobre o arquivo.
func LoadConfig(path string) (*Config, error) {
	var config *Config

	envFile := filepath.Join(path, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "erro ao ler %s", envFile)
	}

	v := viper.New()
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "erro ao carregar configuração")
	}
	return config, nil
}

type Durations struct {
	RateLimiterTimeDelay       time.Duration
	RateLimiterTokenTimeDelay  time.Duration
	RateLimiterWindow          time.Duration
	RateLimiterCleanupInterval time.Duration
}

// ParseDurations converte os campos de duração, indicando a variável
// inválida no erro.
func (c *Config) ParseDurations() (Durations, error) {
	var d Durations

	fields := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"RATE_LIMITER_TIME_DELAY", c.RateLimiterTimeDelay, &d.RateLimiterTimeDelay},
		{"RATE_LIMITER_TOKEN_TIME_DELAY", c.RateLimiterTokenTimeDelay, &d.RateLimiterTokenTimeDelay},
		{"RATE_LIMITER_WINDOW", c.RateLimiterWindow, &d.RateLimiterWindow},
		{"RATE_LIMITER_CLEANUP_INTERVAL", c.RateLimiterCleanupInterval, &d.RateLimiterCleanupInterval},
	}

	for _, f := range fields {
		parsed, err := time.ParseDuration(f.value)
		if err != nil {
			return Durations{}, errors.Wrapf(err,
				"formato inválido para %s: %s. Unidades válidas são \"ns\", \"us\" (ou \"µs\"), \"ms\", \"s\", \"m\", \"h\"",
				f.key, f.value)
		}
		*f.dest = parsed
	}

	return d, nil
}
