package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(t *testing.T, cmd *cli.Command, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %q", name, cmd.Name)
	return nil
}

func findIntFlag(t *testing.T, cmd *cli.Command, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %q", name, cmd.Name)
	return nil
}

func TestServeCommandFlags(t *testing.T) {
	cmd := serveCommand()

	t.Run("embedding-host has default value", func(t *testing.T) {
		assert.Equal(t, "http://localhost:11434/v1", findStringFlag(t, cmd, "embedding-host").Value)
	})

	t.Run("embedding-model is required", func(t *testing.T) {
		flag := findStringFlag(t, cmd, "embedding-model")
		assert.Empty(t, flag.Value)
		assert.True(t, flag.Required)
	})

	t.Run("classifier-variant defaults to fields", func(t *testing.T) {
		assert.Equal(t, "fields", findStringFlag(t, cmd, "classifier-variant").Value)
	})

	t.Run("typesense api key reads environment", func(t *testing.T) {
		assert.Contains(t, findStringFlag(t, cmd, "typesense-api-key").EnvVars, "TYPESENSE_API_KEY")
	})
}

func TestMigrateCommandFlags(t *testing.T) {
	cmd := migrateCommand()

	t.Run("db is required", func(t *testing.T) {
		assert.True(t, findStringFlag(t, cmd, "db").Required)
	})

	t.Run("typesense-url is required", func(t *testing.T) {
		assert.True(t, findStringFlag(t, cmd, "typesense-url").Required)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		assert.Equal(t, 100, findIntFlag(t, cmd, "batch-size").Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		assert.Equal(t, 3, findIntFlag(t, cmd, "max-retries").Value)
	})
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	app := &cli.App{
		Name:     "triagit",
		Commands: []*cli.Command{searchCommand()},
	}

	err := app.Run([]string{"triagit", "search", "--embedding-model", "test-model"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	app := &cli.App{
		Name:   "triagit",
		Flags:  []cli.Flag{&cli.StringFlag{Name: "log-level", Value: "info"}},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	err := app.Run([]string{"triagit", "--log-level", "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
