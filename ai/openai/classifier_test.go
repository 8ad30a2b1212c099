package openai

import (
	"testing"

	"github.com/poiesic/triagit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldsResponse(t *testing.T) {
	raw := "Urgency Level: Urgent Care\nCategory: Infection"
	result, err := parseFieldsResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.UrgencyUrgentCare, result.Urgency)
	assert.Equal(t, "Infection", result.Category)
	assert.Empty(t, result.TriageLabel)
}

func TestParseFieldsResponseCaseInsensitive(t *testing.T) {
	raw := "urgency level: Emergency\ncategory: Cardiac"
	result, err := parseFieldsResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.UrgencyEmergency, result.Urgency)
	assert.Equal(t, "Cardiac", result.Category)
}

func TestParseFieldsResponseWithPreamble(t *testing.T) {
	raw := "Here is the classification:\n\nUrgency Level: Non-Urgent\nCategory: Allergy\n"
	result, err := parseFieldsResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.UrgencyNonUrgent, result.Urgency)
	assert.Equal(t, "Allergy", result.Category)
}

func TestParseFieldsResponseUnknownUrgency(t *testing.T) {
	raw := "Urgency Level: Critical\nCategory: Pain"
	_, err := parseFieldsResponse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrClassificationInvalid)
}

func TestParseFieldsResponseMissingCategory(t *testing.T) {
	raw := "Urgency Level: Emergency"
	_, err := parseFieldsResponse(raw)
	assert.ErrorIs(t, err, core.ErrClassificationInvalid)
}

func TestParseLabelResponse(t *testing.T) {
	for _, label := range core.TriageLabels {
		result, err := parseLabelResponse(label + "\n")
		require.NoError(t, err, label)
		assert.Equal(t, label, result.TriageLabel)
		assert.Empty(t, result.Urgency)
		assert.Empty(t, result.Category)
	}
}

func TestParseLabelResponseRejectsFreeform(t *testing.T) {
	_, err := parseLabelResponse("This sounds like an Emergency to me.")
	assert.ErrorIs(t, err, core.ErrClassificationInvalid)

	_, err = parseLabelResponse("Sepsis")
	assert.ErrorIs(t, err, core.ErrClassificationInvalid)
}

func TestBuildPromptsEmbedVocabulary(t *testing.T) {
	fields := buildFieldsPrompt("I have a rash")
	assert.Contains(t, fields, "Emergency, Urgent Care, Non-Urgent, Follow-Up Needed")
	assert.Contains(t, fields, `Symptom: "I have a rash"`)

	label := buildLabelPrompt("I have a rash")
	assert.Contains(t, label, "Allergy, Infection")
	assert.Contains(t, label, "Only respond with the category name")

	relevance := buildRelevancePrompt("I have a rash")
	assert.Contains(t, relevance, "Only answer Yes or No")
}
