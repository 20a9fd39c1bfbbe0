package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mail-sync/internal/client"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/lockfile"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Exit codes: 0 on success or when another instance is already running,
// 2 when interrupted, 1 on any other failure.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	if cfg.PrintDefConfig {
		fmt.Println(config.DefaultJSON())
		return 0
	}

	log := logger.New("mailsync", logger.Options{
		Verbose: cfg.Log.Verbose,
		File:    cfg.Log.File,
	})
	printBuildInfo(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("init error")
		return 1
	}
	defer app.Close()

	switch err = app.Run(ctx); {
	case err == nil:
		log.Info().Msg("sync finished")
		return 0
	case errors.Is(err, lockfile.ErrAlreadyRunning):
		log.Info().Msg("another instance is already running, nothing to do")
		return 0
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		log.Warn().Msg("interrupted")
		return 2
	default:
		log.Error().Err(err).Msg("sync failed")
		return 1
	}
}

func printBuildInfo(log *logger.Logger) {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	log.Info().
		Str("version", buildVersion).
		Str("date", buildDate).
		Str("commit", buildCommit).
		Msg("build info")
}
