package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from the configured level and mode. Prod
// mode logs JSON, everything else uses the console encoder.
func New(levelStr, mode string) *zap.Logger {
	logger, err := buildConfig(levelStr, mode).Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildConfig maps the APP_MODE values (dev, prod) onto zap presets.
func buildConfig(levelStr, mode string) zap.Config {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if mode == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg
}
