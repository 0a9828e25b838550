package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string
	CatalogFile string

	Log    LogConfig
	Cache  CacheConfig
	Search SearchConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type SearchConfig struct {
	NodeBudget       int
	DefaultStrategy  string
	DefaultAlgorithm string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.CatalogFile = v.GetString("CATALOG_FILE")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), time.Hour),
	}

	cfg.Search = SearchConfig{
		NodeBudget:       max(v.GetInt("SEARCH_NODE_BUDGET"), 0),
		DefaultStrategy:  strings.ToLower(v.GetString("DEFAULT_STRATEGY")),
		DefaultAlgorithm: strings.ToLower(v.GetString("DEFAULT_ALGORITHM")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("CATALOG_FILE", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", "1h")

	v.SetDefault("SEARCH_NODE_BUDGET", 0)
	v.SetDefault("DEFAULT_STRATEGY", "weighted")
	v.SetDefault("DEFAULT_ALGORITHM", "maxcoverage")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}
