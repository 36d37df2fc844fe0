package main

import (
	"context"

	"jugadubazar/internal/config"
	"jugadubazar/internal/db"
	"jugadubazar/internal/logging"
	materialrepo "jugadubazar/internal/repository/material"
	"jugadubazar/internal/seed"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New(logging.Options{Service: "seed", Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	n, err := seed.Apply(ctx, materialrepo.NewPostgres(pool, logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}

	logger.Info().Int("materials", n).Msg("seed applied")
}
