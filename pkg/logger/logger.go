package logger

import (
	"fmt"

	"go.uber.org/zap"
)

type Config struct {
	IsDevelopment bool
	Encoding      string
	Level         string
}

// ConfigFor returns json/info for production and console/debug everywhere else.
// A non-empty level overrides the default.
func ConfigFor(appEnv, level string) Config {
	cfg := Config{Encoding: "json", Level: "info"}
	if appEnv != "production" {
		cfg.IsDevelopment = true
		cfg.Encoding = "console"
		cfg.Level = "debug"
	}
	if level != "" {
		cfg.Level = level
	}
	return cfg
}

func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.IsDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zc.Level = level

	return zc.Build()
}
