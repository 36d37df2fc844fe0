package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"jugadubazar/internal/config"
	"jugadubazar/internal/db"
	"jugadubazar/internal/importer"
	"jugadubazar/internal/logging"
	materialrepo "jugadubazar/internal/repository/material"

	"github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.FromEnv()
	logger := logging.New(logging.Options{Service: "importer", Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	cmd := &cli.Command{
		Name:  "importer",
		Usage: "Import supplier materials from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the materials CSV",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "validate rows without writing",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := os.Open(c.String("file"))
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			pool, err := db.Connect(ctx, cfg.DBConnString)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer pool.Close()

			imp := importer.NewCSVImporter(f, materialrepo.NewPostgres(pool, logger), logger).DryRun(c.Bool("dry-run"))

			start := time.Now()
			count, err := imp.Run(ctx)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Printf("Imported %d materials in %s\n", count, time.Since(start).Truncate(time.Millisecond))
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("importer")
	}
}
