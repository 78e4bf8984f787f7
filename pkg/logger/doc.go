// Package logger builds configured log/slog loggers for the services.
//
// It supports JSON output for production log aggregation and text output
// for development, a configurable minimum level, and static attributes
// (such as the service name) attached to every record.
//
// # Usage
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelInfo),
//		logger.WithAttr(slog.String("service", "verify")),
//	)
//
// Or from the environment:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg, slog.String("service", "auth"))
package logger
