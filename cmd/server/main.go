// Package main is the entry point for the lotto resonance service.
// It loads the draw archive from tiered storage, tops it up from the
// official draw source, calibrates rule weights, and serves ranked
// candidate suggestions over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/clients/dhlottery"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/config"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/database"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/modules/generator"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/scheduler"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/server"
	"github.com/sihoon-0077/lotto-pattern2242289/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting lotto resonance service")

	providers, closeProviders := buildProviders(cfg, log)
	defer closeProviders()

	client := dhlottery.NewClient(cfg.UpstreamURL, cfg.FetchTimeout, log)
	store := history.NewStore(providers, client, cfg.BaselineRound, log)
	store.Load()

	svc := generator.NewService(store, generator.Options{
		Attempts:      cfg.GenerateAttempts,
		Threshold:     cfg.ScoreThreshold,
		HistoryWindow: cfg.HistoryWindow,
		SnapshotPath:  filepath.Join(cfg.DataDir, "calibration.msgpack"),
	}, log)

	// Warm-start calibration, then keep the archive fresh on schedule.
	refreshJob := generator.NewRefreshJob(svc)

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	sched.Start()
	defer sched.Stop()

	if err := sched.RunNow(refreshJob); err != nil {
		log.Warn().Err(err).Msg("Initial refresh failed")
	}

	srv := server.New(server.Config{
		Port:            cfg.Port,
		Log:             log,
		Service:         svc,
		SuggestionCount: cfg.SuggestionCount,
		DevMode:         cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildProviders assembles the archive storage tiers in read-priority
// order: sqlite (when configured), writable JSON cache, bundled JSON,
// optional S3. Tiers that fail to initialize are skipped - the service
// still runs on whatever remains.
func buildProviders(cfg *config.Config, log zerolog.Logger) ([]history.Provider, func()) {
	var providers []history.Provider
	var closers []func()

	if cfg.DatabasePath != "" {
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Warn().Err(err).Msg("SQLite tier unavailable")
		} else if p, err := history.NewSQLiteProvider(db); err != nil {
			log.Warn().Err(err).Msg("SQLite tier unavailable")
			db.Close()
		} else {
			providers = append(providers, p)
			closers = append(closers, func() { db.Close() })
		}
	}

	providers = append(providers,
		history.NewFileProvider("writable", cfg.WritableArchive, true),
		history.NewFileProvider("bundled", cfg.BundledArchive, false),
	)

	if cfg.S3Bucket != "" {
		p, err := history.NewS3Provider(context.Background(), cfg.S3Bucket, cfg.S3Key)
		if err != nil {
			log.Warn().Err(err).Msg("S3 tier unavailable")
		} else {
			providers = append(providers, p)
		}
	}

	return providers, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}
