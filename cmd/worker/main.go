package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"tecsoqr/internal/engine/codes"
	"tecsoqr/internal/pkg/logger"
	"tecsoqr/internal/platform/config"
	"tecsoqr/internal/platform/database"
	"tecsoqr/internal/workers"
)

func main() {
	configPath := pflag.StringP("config", "c", "configs/config.yaml", "Path to config file")
	once := pflag.Bool("once", false, "Run a single purge pass and exit")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	svc := codes.NewService(codes.NewRepository(db), nil, cfg.History.Retention)

	if *once {
		n, err := workers.PurgeExpiredCodes(svc)
		if err != nil {
			log.Fatal().Err(err).Msg("purge failed")
		}
		log.Info().Int64("deleted", n).Msg("purge complete")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Dur("interval", cfg.History.PurgeInterval).Msg("starting history purge worker")
	workers.RunEvery(ctx, "history_purge", cfg.History.PurgeInterval, func() error {
		_, err := workers.PurgeExpiredCodes(svc)
		return err
	})
}
