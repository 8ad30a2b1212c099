package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/triagit/migrate"
	"github.com/poiesic/triagit/storage/badger"
	"github.com/poiesic/triagit/storage/typesense"
	"github.com/urfave/cli/v2"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Copy all symptom reports from BadgerDB into Typesense",
		Action: migrateAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to the source BadgerDB database directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "typesense-url",
				Usage:    "Destination Typesense server URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "typesense-api-key",
				Usage:   "Typesense API key",
				EnvVars: []string{"TYPESENSE_API_KEY"},
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Number of reports to move in each batch",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "report-interval",
				Usage: "Report progress every N reports",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "Maximum retry attempts for destination writes",
				Value: 3,
			},
			&cli.DurationFlag{
				Name:  "retry-delay",
				Usage: "Base delay for exponential backoff",
				Value: 1 * time.Second,
			},
		},
	}
}

func migrateAction(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	source, err := badger.NewReportRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create source repository: %w", err)
	}
	defer source.Close()

	dest, err := typesense.NewStore(ctx, c.String("typesense-url"), c.String("typesense-api-key"))
	if err != nil {
		return fmt.Errorf("failed to connect to Typesense: %w", err)
	}
	defer dest.Close()

	config := &migrate.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	migrator, err := migrate.NewMigrator(source, dest, config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Source database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Destination: %s\n", c.String("typesense-url"))
	fmt.Fprintln(os.Stderr)

	if _, err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}
