// Package logger provides a structured logging facility based on Zap.
//
// The "debug" level selects Zap's development configuration; every other
// level uses the production configuration. The "console" format switches to
// a coloured console encoder, which the CLI uses for its own output.
//
// # Request Correlation
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the log entry.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
