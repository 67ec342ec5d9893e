package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/daybook-app/daybook-sync/internal/client/api"
	"github.com/daybook-app/daybook-sync/internal/client/cli"
	"github.com/daybook-app/daybook-sync/internal/client/netmon"
	"github.com/daybook-app/daybook-sync/internal/client/storage/boltdb"
	"github.com/daybook-app/daybook-sync/internal/client/storage/sqlite"
	"github.com/daybook-app/daybook-sync/internal/client/sync"
	"github.com/daybook-app/daybook-sync/internal/models"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Ingestion server URL")
	dataDir := flag.String("data-dir", ".", "Directory for the queue and state databases")
	token := flag.String("token", "", "Bearer token for the ingestion server")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	autoSync := flag.Bool("auto-sync", true, "Trigger passes on preferred connectivity")
	useBatch := flag.Bool("batch", false, "Upload attachment-free kinds through the batch endpoint")
	maxAttempts := flag.Int("max-attempts", sync.DefaultMaxAttempts, "Dead-letter an entry after this many rejections")
	pollInterval := flag.Duration("poll-interval", 5*time.Second, "Connectivity poll interval")
	retryDelay := flag.Duration("retry-delay", 0, "Fixed retry delay after a failed pass (0 = exponential backoff)")
	maxPhotos := flag.Int("max-photos", 10, "Maximum photos per experience (0 = unlimited)")
	maxPhotoBytes := flag.Int64("max-photo-bytes", 10<<20, "Maximum bytes per photo (0 = unlimited)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	logger := newLogger(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue, err := sqlite.New(ctx, filepath.Join(*dataDir, "daybook-queue.db"), models.AttachmentLimits{
		MaxCount: *maxPhotos,
		MaxBytes: *maxPhotoBytes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open queue database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Error("failed to close queue database", "error", err)
		}
	}()

	state, err := boltdb.New(ctx, filepath.Join(*dataDir, "daybook-state.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open state database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := state.Close(); err != nil {
			logger.Error("failed to close state database", "error", err)
		}
	}()

	deviceID, err := state.DeviceID(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load device id: %v\n", err)
		os.Exit(1)
	}

	uploader := api.NewClient(api.Config{
		BaseURL:   *serverURL,
		AuthToken: *token,
		DeviceID:  deviceID,
	})

	service := sync.New(queue, state, uploader, logger, sync.Config{
		MaxAttempts: *maxAttempts,
		UseBatch:    *useBatch,
		AutoSync:    *autoSync,
	})

	monitor := netmon.New(netmon.Config{PollInterval: *pollInterval}, logger)
	defer func() {
		if err := monitor.Close(); err != nil {
			logger.Error("failed to close network monitor", "error", err)
		}
	}()

	backoff := sync.BackoffFactory(sync.DefaultBackoffFactory)
	if *retryDelay > 0 {
		backoff = sync.ConstantBackoffFactory(*retryDelay)
	}
	runner := sync.NewRunner(service, monitor, logger, backoff)

	agent := cli.New(queue, service, monitor, runner, os.Stdout)
	if err := agent.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Daybook Sync Agent\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
