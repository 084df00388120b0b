// Package logging builds the zap loggers used across the bridge.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// Components receive a *zap.Logger and attach structured fields such as
// view_id, method, channel and url. ForView scopes a logger to one view.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("view created", zap.Int64("view_id", 1))
package logging
