package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"valid", "I have a severe headache", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n  ", true},
		{"single word", "migraine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.description)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClassification(t *testing.T) {
	t.Run("valid two-field", func(t *testing.T) {
		err := ValidateClassification(Classification{Urgency: UrgencyEmergency, Category: "Cardiac"})
		assert.NoError(t, err)
	})

	t.Run("valid single label", func(t *testing.T) {
		err := ValidateClassification(Classification{TriageLabel: "Infection"})
		assert.NoError(t, err)
	})

	t.Run("urgency not in enumeration", func(t *testing.T) {
		err := ValidateClassification(Classification{Urgency: "Critical", Category: "Cardiac"})
		assert.ErrorIs(t, err, ErrClassificationInvalid)
	})

	t.Run("missing category", func(t *testing.T) {
		err := ValidateClassification(Classification{Urgency: UrgencyNonUrgent})
		assert.ErrorIs(t, err, ErrClassificationInvalid)
	})

	t.Run("label not in allowed set", func(t *testing.T) {
		err := ValidateClassification(Classification{TriageLabel: "Sepsis"})
		assert.ErrorIs(t, err, ErrClassificationInvalid)
	})
}

func TestValidateReport(t *testing.T) {
	embedding := make([]float32, EmbeddingDim)

	t.Run("valid success report", func(t *testing.T) {
		err := ValidateReport(&SymptomReport{
			Description: "crushing chest pain",
			Urgency:     UrgencyEmergency,
			Category:    "Cardiac",
			Embedding:   embedding,
			Status:      StatusSuccess,
			CreatedAt:   time.Now().UTC(),
		})
		assert.NoError(t, err)
	})

	t.Run("success with short embedding", func(t *testing.T) {
		err := ValidateReport(&SymptomReport{
			Description: "crushing chest pain",
			Urgency:     UrgencyEmergency,
			Category:    "Cardiac",
			Embedding:   []float32{0.1, 0.2},
			Status:      StatusSuccess,
		})
		assert.ErrorIs(t, err, ErrEmbeddingFailed)
	})

	t.Run("valid failed report", func(t *testing.T) {
		err := ValidateReport(&SymptomReport{
			Description:  "crushing chest pain",
			Status:       StatusFailed,
			ErrorMessage: "classification timed out",
		})
		assert.NoError(t, err)
	})

	t.Run("failed report with classification fields", func(t *testing.T) {
		err := ValidateReport(&SymptomReport{
			Description:  "crushing chest pain",
			Urgency:      UrgencyEmergency,
			Status:       StatusFailed,
			ErrorMessage: "boom",
		})
		assert.Error(t, err)
	})

	t.Run("failed report without message", func(t *testing.T) {
		err := ValidateReport(&SymptomReport{
			Description: "crushing chest pain",
			Status:      StatusFailed,
		})
		assert.Error(t, err)
	})

	t.Run("nil report", func(t *testing.T) {
		require.Error(t, ValidateReport(nil))
	})
}

func TestIsRateLimit(t *testing.T) {
	assert.False(t, IsRateLimit(nil))
	assert.False(t, IsRateLimit(assert.AnError))
	assert.True(t, IsRateLimit(ErrRateLimited))
	assert.True(t, IsRateLimit(errors.New("API returned status code: 429")))
	assert.True(t, IsRateLimit(errors.New("you have hit the Rate Limit")))

	// Incidental digits are not a rate limit
	assert.False(t, IsRateLimit(errors.New("dial tcp 10.0.4.29:4290: connection refused")))
	assert.False(t, IsRateLimit(errors.New("got 429 dimensions, want 1536")))
}
