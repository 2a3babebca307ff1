package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"tecsoqr/internal/pkg/logger"
	"tecsoqr/internal/platform/config"
	"tecsoqr/internal/platform/database"
)

func main() {
	configPath := pflag.StringP("config", "c", "configs/config.yaml", "Path to config file")
	dir := pflag.String("dir", "", "Migrations directory (defaults to database.migrations_dir)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging)

	if *dir == "" {
		*dir = cfg.Database.MigrationsDir
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	applied, err := database.Migrate(db, *dir)
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Int("files", len(applied)).Msg("migration completed successfully")
}
