package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/triagit/core"
)

const relevancePromptTemplate = `You are a strict health input validator. Only answer Yes or No.

Is the following input describing a health-related symptom?

"%s"`

const fieldsPromptTemplate = `Classify the following symptom description into two parts:
1. Urgency Level: Choose one of [%s]
2. Category: Choose from [Allergy, Infection, Flu, Injury, Pain, Cardiac, etc.]

Respond in this format:
Urgency Level: <urgency>
Category: <category>

Symptom: "%s"`

const labelSystemPrompt = `You are a medical triage classifier.`

const labelPromptTemplate = `Classify this patient symptom into exactly one of these categories: %s. Only respond with the category name.

Symptom: "%s"`

// buildRelevancePrompt creates the yes/no health relevance prompt.
func buildRelevancePrompt(description string) string {
	return fmt.Sprintf(relevancePromptTemplate, description)
}

// buildFieldsPrompt creates the two-field classification prompt with the
// allowed urgency levels embedded.
func buildFieldsPrompt(description string) string {
	levels := make([]string, len(core.UrgencyLevels))
	for i, l := range core.UrgencyLevels {
		levels[i] = string(l)
	}
	return fmt.Sprintf(fieldsPromptTemplate, strings.Join(levels, ", "), description)
}

// buildLabelPrompt creates the single-label classification prompt with the
// full six-way label list embedded.
func buildLabelPrompt(description string) string {
	return fmt.Sprintf(labelPromptTemplate, strings.Join(core.TriageLabels, ", "), description)
}
