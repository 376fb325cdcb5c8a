// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Transaction ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "magazine-db/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(os.Stderr, "text", "debug")
//	    logger.Info("application started", slog.String("driver", "sqlite"))
//	}
//
//	func insert(ctx context.Context) {
//	    logger := logging.WithTxID(ctx, logging.FromContext(ctx))
//	    logger.Debug("inserting author")
//	}
package logging
