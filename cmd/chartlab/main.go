// Command chartlab drives a chart engine through a YAML scenario and
// reports the resulting axes, crosshair and diagnostics.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/ggchart"
)

var (
	logLevel  string
	logFormat string
	logFile   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartlab",
		Short: "Replay chart interaction scenarios",
		Long: `chartlab loads a YAML scenario (plot size, price mode, data and a list
of interaction steps), replays it against a chart engine and prints the
planned axis ticks, crosshair labels and engine diagnostics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger(cmd.ErrOrStderr(), logLevel, logFormat, logFile)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")

	rootCmd.AddCommand(newRunCmd(), newServeCmd(), newValidateCmd())
	return rootCmd
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", level)
	}
}

// setupLogger installs the chart logger. Engine debug output is
// verbose, so a log file is rotated at 25 MB.
func setupLogger(stderr io.Writer, level, format, filename string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	var w io.Writer = stderr
	if filename != "" {
		w = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
	ggchart.SetLogger(slog.New(h))
	return nil
}
