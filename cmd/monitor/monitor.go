// Package monitor implements the realtime monitoring subcommand: the full
// detection-to-response loop with the API server.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/strikewarn/strikewarn-go/internal/conf"
	"github.com/strikewarn/strikewarn-go/internal/datastore"
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/deterrent"
	"github.com/strikewarn/strikewarn-go/internal/httpcontroller"
	"github.com/strikewarn/strikewarn-go/internal/logging"
	"github.com/strikewarn/strikewarn-go/internal/notification"
	"github.com/strikewarn/strikewarn-go/internal/observability"
	"github.com/strikewarn/strikewarn-go/internal/pipeline"
	"github.com/strikewarn/strikewarn-go/internal/species"
	"github.com/strikewarn/strikewarn-go/internal/strategy"
)

const shutdownTimeout = 10 * time.Second

// Command creates the monitor command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the realtime bird-strike monitoring loop",
		Long:  "Start the detection pipeline, strategic response engine, deterrent player, and the monitoring API server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the monitor command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Monitor.Zone, "zone", viper.GetString("monitor.zone"), "Monitoring zone identifier")
	cmd.Flags().StringVar(&settings.Deterrent.SoundsDir, "sounds", viper.GetString("deterrent.soundsdir"), "Directory with predator sound assets")
	cmd.Flags().Float64Var(&settings.Deterrent.Volume, "volume", viper.GetFloat64("deterrent.volume"), "Deterrent playback volume (0.0-1.0)")
	cmd.Flags().StringVar(&settings.Risk.CatalogPath, "catalog", viper.GetString("risk.catalogpath"), "Species risk catalog override, YAML")
	cmd.Flags().StringVar(&settings.HTTP.Port, "port", viper.GetString("http.port"), "API server port")
	cmd.Flags().BoolVar(&settings.Database.Enabled, "database", viper.GetBool("database.enabled"), "Enable alert persistence")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}

// runMonitor wires the subsystems together and blocks until interrupted.
func runMonitor(settings *conf.Settings) error {
	logger := logging.ForService("monitor")
	logger.Info("starting monitoring", "zone", settings.Monitor.Zone)

	catalog, err := species.LoadCatalog(settings.Risk.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load species catalog: %w", err)
	}
	logger.Info("species catalog loaded", "species", catalog.Len())

	library, err := deterrent.LoadDirLibrary(settings.Deterrent.SoundsDir)
	if err != nil {
		return fmt.Errorf("failed to load sound library: %w", err)
	}
	logger.Info("predator sound library loaded", "sounds", len(library.ListIDs()))

	player := deterrent.NewPlayer(library, nil, settings.Deterrent.StopTimeout)
	defer player.Stop()

	var store datastore.Interface
	if settings.Database.Enabled {
		ds, err := datastore.Open(settings.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open datastore: %w", err)
		}
		defer func() {
			if err := ds.Close(); err != nil {
				logger.Error("failed to close datastore", "error", err)
			}
		}()
		store = ds
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	broadcaster := notification.NewBroadcaster(settings.Monitor.QueueSize)
	broadcaster.Start()
	defer broadcaster.Stop()

	if settings.Main.Log.Enabled {
		fileLogger, closeLog, err := logging.NewFileLogger(settings.Main.Log.Path, "alerts", slog.LevelInfo)
		if err != nil {
			return fmt.Errorf("failed to open alert log: %w", err)
		}
		defer func() {
			if err := closeLog(); err != nil {
				logger.Error("failed to close alert log", "error", err)
			}
		}()
		broadcaster.Subscribe("filelog", func(n *notification.Notification) error {
			fileLogger.Info("notification",
				"type", string(n.Type),
				"priority", string(n.Priority),
				"title", n.Title,
				"message", n.Message,
				"metadata", n.Metadata)
			return nil
		})
	}

	if settings.MQTT.Enabled {
		sink, err := notification.NewMQTTSink(&settings.MQTT)
		if err != nil {
			// MQTT is an optional egress; a dead broker must not keep the
			// runway monitoring loop from starting.
			logger.Error("MQTT sink unavailable, continuing without it", "error", err)
		} else {
			defer sink.Close()
			broadcaster.Subscribe("mqtt", sink.Subscriber())
		}
	}

	engine := strategy.NewEngine(strategy.Config{
		Library:         library,
		Player:          player,
		ResponseLogSize: settings.Monitor.ResponseLogSize,
		Notifier:        broadcaster,
		Store:           store,
		Metrics:         metrics.Deterrent,
	})

	pl := pipeline.New(pipeline.Config{
		Zone:        settings.Monitor.Zone,
		Catalog:     catalog,
		Engine:      engine,
		HistorySize: settings.Monitor.HistorySize,
		Notifier:    broadcaster,
		Store:       store,
		Metrics:     metrics.Pipeline,
	})
	player.SetStatusObserver(func(active bool) {
		metrics.Deterrent.SetPlaybackActive(active)
		pl.DeterrentObserver()(active)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan detection.Event, settings.Monitor.QueueSize)
	pl.Start(ctx, events)
	defer pl.Stop()

	if settings.HTTP.Enabled {
		server := httpcontroller.New(settings, engine, pl, store, metrics)
		server.Detections = events

		errChan := make(chan error, 1)
		go func() { errChan <- server.Start() }()

		select {
		case <-ctx.Done():
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("HTTP server failed: %w", err)
			}
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	} else {
		<-ctx.Done()
	}

	logger.Info("monitoring stopped")
	return nil
}
