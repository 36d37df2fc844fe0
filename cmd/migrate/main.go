package main

import (
	"context"
	"os"

	"jugadubazar/internal/config"
	"jugadubazar/internal/db"
	"jugadubazar/internal/logging"
	"jugadubazar/internal/migrate"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New(logging.Options{Service: "migrate", Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	cmd := &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return up(ctx, cfg.DBConnString, logger)
				},
			},
			{
				Name:  "down",
				Usage: "Roll back every migration",
				Action: func(ctx context.Context, _ *cli.Command) error {
					pool, err := db.Connect(ctx, cfg.DBConnString)
					if err != nil {
						return err
					}
					defer pool.Close()
					if err := migrate.Reset(ctx, pool); err != nil {
						return err
					}
					logger.Info().Msg("migrations rolled back")
					return nil
				},
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return up(ctx, cfg.DBConnString, logger)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}
}

func up(ctx context.Context, dsn string, logger zerolog.Logger) error {
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		return err
	}
	logger.Info().Uint("version", version).Msg("migrations applied")
	return nil
}
