package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage/badger"
	"github.com/urfave/cli/v2"
)

// baselineKeywords gives the relevance pre-filter a starting vocabulary so
// common symptom descriptions can skip the model check from day one.
var baselineKeywords = []string{
	"pain", "ache", "fever", "cough", "rash", "nausea", "dizzy",
	"headache", "migraine", "swelling", "swollen", "bleeding", "bruise",
	"burning", "itching", "itchy", "sore", "throat", "chest", "stomach",
	"abdominal", "cramps", "vomiting", "diarrhea", "fatigue", "tired",
	"weakness", "numbness", "tingling", "breathing", "breath", "wheezing",
	"chills", "sweating", "infection", "inflammation", "injury", "sprain",
	"fracture", "allergy", "allergic", "congestion", "sneezing", "runny",
	"blurred", "vision", "palpitations", "seizure", "fainting", "insomnia",
}

func seedKeywordsCommand() *cli.Command {
	return &cli.Command{
		Name:   "seed-keywords",
		Usage:  "Load the baseline keyword vocabulary for the relevance pre-filter",
		Action: seedKeywordsAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./triage_db",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read keywords from a file (one per line) instead of the built-in list",
			},
		},
	}
}

func seedKeywordsAction(c *cli.Context) error {
	words := baselineKeywords
	if path := c.String("file"); path != "" {
		var err error
		words, err = readKeywordFile(path)
		if err != nil {
			return err
		}
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewKeywordRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create keyword repository: %w", err)
	}
	defer repo.Close()

	entries := make([]*core.KeywordEntry, len(words))
	for i, word := range words {
		entries[i] = &core.KeywordEntry{
			Keyword: word,
			Source:  core.KeywordSourceSeed,
		}
	}

	inserted, err := repo.AddKeywords(context.Background(), entries...)
	if err != nil {
		return fmt.Errorf("failed to seed keywords: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Seeded %d keywords (%d already present)\n",
		len(inserted), len(entries)-len(inserted))
	return nil
}

func readKeywordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}
	return words, nil
}
