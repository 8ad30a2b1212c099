package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("fever"), IDFromContent("fever"))
	})

	t.Run("distinct content distinct IDs", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("fever"), IDFromContent("chills"))
	})

	t.Run("nonzero for nonempty content", func(t *testing.T) {
		assert.NotZero(t, IDFromContent("fever"))
	})
}

func TestClassificationApply(t *testing.T) {
	report := &SymptomReport{Description: "sore throat"}
	Classification{Urgency: UrgencyNonUrgent, Category: "Infection"}.Apply(report)
	assert.Equal(t, UrgencyNonUrgent, report.Urgency)
	assert.Equal(t, "Infection", report.Category)
	assert.Empty(t, report.TriageLabel)
}

func TestSymptomReportMUSRoundTrip(t *testing.T) {
	embedding := make([]float32, EmbeddingDim)
	for i := range embedding {
		embedding[i] = float32(i) * 0.001
	}

	original := SymptomReport{
		Id:          42,
		Description: "severe crushing chest pain radiating to my arm",
		Urgency:     UrgencyEmergency,
		Category:    "Cardiac",
		Embedding:   embedding,
		Status:      StatusSuccess,
		CreatedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	buf := make([]byte, SymptomReportMUS.Size(original))
	SymptomReportMUS.Marshal(original, buf)

	decoded, n, err := SymptomReportMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	decoded.CreatedAt = original.CreatedAt
	assert.Equal(t, original, decoded)
}

func TestKeywordEntryMUSRoundTrip(t *testing.T) {
	original := KeywordEntry{
		Id:        IDFromContent("migraine"),
		Keyword:   "migraine",
		Source:    KeywordSourceAuto,
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	buf := make([]byte, KeywordEntryMUS.Size(original))
	KeywordEntryMUS.Marshal(original, buf)

	decoded, n, err := KeywordEntryMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	decoded.CreatedAt = original.CreatedAt
	assert.Equal(t, original, decoded)
}
