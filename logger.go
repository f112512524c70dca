package ggchart

import (
	"log/slog"

	"github.com/gogpu/ggchart/internal/logging"
)

// SetLogger configures the logger for ggchart and all its sub-packages.
// By default, ggchart produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ggchart:
//   - [slog.LevelDebug]: state transitions (zoom clamps, base fallback,
//     label cache invalidation, planned tick counts)
//   - [slog.LevelWarn]: rejected mode transitions
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	ggchart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by ggchart.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
