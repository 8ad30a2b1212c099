// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/poiesic/triagit"
	"github.com/poiesic/triagit/ai"
	"github.com/poiesic/triagit/server"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the triage HTTP service",
		Action: serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./triage_db",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: ":8080",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:     "embedding-model",
				Usage:    "Embedding model name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "classifier-host",
				Usage: "Classifier service host URL (defaults to embedding-host)",
			},
			&cli.StringFlag{
				Name:     "classifier-model",
				Usage:    "Classifier model name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "classifier-variant",
				Usage: "Classification output shape (fields or label)",
				Value: string(ai.VariantFields),
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "API token for the model services",
			},
			&cli.DurationFlag{
				Name:  "call-timeout",
				Usage: "Timeout for each individual model call",
				Value: 30 * time.Second,
			},
			&cli.StringFlag{
				Name:  "typesense-url",
				Usage: "Typesense server URL; when set, reports are stored in Typesense",
			},
			&cli.StringFlag{
				Name:    "typesense-api-key",
				Usage:   "Typesense API key",
				EnvVars: []string{"TYPESENSE_API_KEY"},
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Grace period for in-flight requests on shutdown",
				Value: 10 * time.Second,
			},
		},
	}
}

func serveAction(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	pipeline, err := service.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	searcher, err := service.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	srv := server.New(pipeline, searcher, service.ReportRepository())

	httpServer := &http.Server{
		Addr:    c.String("addr"),
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Duration("shutdown-timeout"))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// openService builds a Service from the shared database and model flags.
func openService(c *cli.Context) (*triagit.Service, error) {
	classifierHost := c.String("classifier-host")
	if classifierHost == "" {
		classifierHost = c.String("embedding-host")
	}

	configOpts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithClassifierHost(classifierHost),
		ai.WithClassifierModel(c.String("classifier-model")),
		ai.WithVariant(ai.ClassifierVariant(c.String("classifier-variant"))),
	}
	if token := c.String("token"); token != "" {
		configOpts = append(configOpts, ai.WithToken(token))
	}
	if d := c.Duration("call-timeout"); d > 0 {
		configOpts = append(configOpts, ai.WithCallTimeout(d))
	}

	aiConfig := ai.NewConfig(configOpts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	serviceOpts := []triagit.ServiceOption{triagit.WithAIConfig(aiConfig)}
	if url := c.String("typesense-url"); url != "" {
		serviceOpts = append(serviceOpts, triagit.WithTypesenseReports(url, c.String("typesense-api-key")))
	}

	return triagit.NewService(c.String("db"), serviceOpts...)
}
