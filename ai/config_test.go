package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	assert.Equal(t, VariantFields, cfg.Variant)
	assert.Equal(t, DefaultCallTimeout, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://llm.internal:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithClassifierModel("gpt-4o-mini"),
		WithToken("sk-test"),
		WithVariant(VariantLabel),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://llm.internal:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://llm.internal:9100/v1", cfg.ClassifierHost)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, VariantLabel, cfg.Variant)
}

func TestNormalizeAddsVersionSuffix(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://localhost:11434/"),
		WithClassifierHost("http://localhost:11434/v1"),
	)
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
}

func TestValidateRejectsIncomplete(t *testing.T) {
	cfg := NewConfig(WithEmbeddingModel(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithVariant("banana"))
	assert.Error(t, cfg.Validate())
}

func TestNormalizeDefaultsEmptyToken(t *testing.T) {
	cfg := NewConfig(WithToken(""))
	cfg.Normalize()
	assert.Equal(t, "none", cfg.Token)
}

func TestCallTimeout(t *testing.T) {
	cfg := NewConfig(WithCallTimeout(5 * time.Second))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	cfg = NewConfig(WithCallTimeout(0))
	cfg.Normalize()
	assert.Equal(t, DefaultCallTimeout, cfg.Timeout)
}
