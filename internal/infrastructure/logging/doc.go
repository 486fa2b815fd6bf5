// Package logging provides structured logging for GroupTrail.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the application.
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting service", "port", 5000)
//	logger.Error("failed to query locations", "error", err)
//
// Never log secrets such as the InfluxDB token or MQTT password.
package logging
