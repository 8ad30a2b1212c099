package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/triagit/core"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find symptom reports similar to a query",
		ArgsUsage: "<query>",
		Action:    searchAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./triage_db",
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
				Name:  "classifier-model",
				Usage: "Classifier model name",
				Value: "unused",
			},
			&cli.StringFlag{
				Name:  "classifier-variant",
				Usage: "Classification output shape (fields or label)",
				Value: "fields",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "API token for the model services",
			},
			&cli.StringFlag{
				Name:  "typesense-url",
				Usage: "Typesense server URL; when set, reports are read from Typesense",
			},
			&cli.StringFlag{
				Name:    "typesense-api-key",
				Usage:   "Typesense API key",
				EnvVars: []string{"TYPESENSE_API_KEY"},
			},
			&cli.IntFlag{
				Name:  "max-hits",
				Usage: "Maximum number of matches to return",
				Value: 5,
			},
		},
	}
}

func searchAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	searcher, err := service.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results, err := searcher.FindSimilarWithMonitor(context.Background(), query, c.Int("max-hits"), &stderrMonitor{})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%d)[%0.3f]\n", i, hit.Report.Description, hit.Report.Id, hit.Score)
		if hit.Report.TriageLabel != "" {
			fmt.Printf("   label: %s\n", hit.Report.TriageLabel)
		} else {
			fmt.Printf("   urgency: %s, category: %s\n", hit.Report.Urgency, hit.Report.Category)
		}
	}

	return nil
}

// stderrMonitor reports search stages so slow model hosts are visible.
type stderrMonitor struct{}

func (m *stderrMonitor) Start(query string) {
	fmt.Fprintf(os.Stderr, "Searching for %q...\n", query)
}

func (m *stderrMonitor) AfterEmbedding(vector []float32) {
	fmt.Fprintf(os.Stderr, "Embedded query (%d dimensions)\n", len(vector))
}

func (m *stderrMonitor) AfterVectorSearch(matches []*core.SearchResult) {
	fmt.Fprintf(os.Stderr, "Vector search returned %d candidates\n", len(matches))
}

func (m *stderrMonitor) Finish(results []*core.SearchResult) {}
