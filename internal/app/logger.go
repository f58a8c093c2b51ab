package app

import (
	"github.com/wojbuk3335/Bukowski-app-API-sub002/config"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

func NewLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.File,
		MaxSizeMB:         cfg.Logger.FileMaxSizeMB,
		MaxBackups:        cfg.Logger.FileMaxBackups,
		MaxAgeDays:        cfg.Logger.FileMaxAgeDays,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	return logger.NewZapLogger(logConfig)
}
