// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is shared by the CLI commands, the source
// adapters, and the validation engine.
//
// # Dataset Awareness
//
// Processing runs are keyed by inventory acronym and year. The WithInventory
// helper attaches both fields to a logger so every entry produced while
// downloading, parsing, or validating one dataset can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("processing inventory")
//
//	// In a source adapter:
//	l := logger.WithInventory(log, "NEI", "2017")
//	l.Warn("national totals unavailable")
package logger
