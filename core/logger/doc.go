// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is shared by every command and service.
//
// # Run Correlation
//
// Each fetch run is assigned a run ID. The WithRun helper attaches it to the
// log entry, ensuring that all logs belonging to one run can be correlated
// with the artifacts that run produced.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("fetch started")
//
//	// Inside a run:
//	l := logger.WithRun(log, runID)
//	l.Error("fetch failed", zap.Error(err))
package logger
