package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/strikewarn/strikewarn-go/cmd"
	"github.com/strikewarn/strikewarn-go/internal/conf"
	"github.com/strikewarn/strikewarn-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(parseLogLevel(settings))

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command execution failed: %v\n", err)
		os.Exit(1)
	}
}

// parseLogLevel maps the configured level string onto slog levels. Debug mode
// forces debug logging regardless of the configured level.
func parseLogLevel(settings *conf.Settings) slog.Level {
	if settings.Debug {
		return slog.LevelDebug
	}
	switch settings.Main.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
