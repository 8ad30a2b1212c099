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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/triagit/ai"
	"github.com/poiesic/triagit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	urgencyLinePattern  = regexp.MustCompile(`(?i)urgency level:\s*(.+)`)
	categoryLinePattern = regexp.MustCompile(`(?i)category:\s*(.+)`)
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
// The configured variant selects between the two-field output shape
// (urgency level plus category) and the single-label shape.
type Classifier struct {
	client  llms.Model
	variant ai.ClassifierVariant
	timeout time.Duration
	logger  *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:  client,
		variant: config.Variant,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new triage classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify analyzes a symptom description and returns its triage classification.
func (c *Classifier) Classify(ctx context.Context, description string) (core.Classification, error) {
	var content []llms.MessageContent
	switch c.variant {
	case ai.VariantLabel:
		content = []llms.MessageContent{
			{
				Role: llms.ChatMessageTypeSystem,
				Parts: []llms.ContentPart{
					llms.TextPart(labelSystemPrompt),
				},
			},
			{
				Role: llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{
					llms.TextPart(buildLabelPrompt(description)),
				},
			},
		}
	default:
		content = []llms.MessageContent{
			{
				Role: llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{
					llms.TextPart(buildFieldsPrompt(description)),
				},
			},
		}
	}

	// Fresh timeout per call so each retry attempt gets the full budget
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.client.GenerateContent(callCtx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("classification request failed", "err", err)
		return core.Classification{}, err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model")
		return core.Classification{}, fmt.Errorf("%w: empty model response", core.ErrClassificationInvalid)
	}

	raw := response.Choices[0].Content
	var result core.Classification
	if c.variant == ai.VariantLabel {
		result, err = parseLabelResponse(raw)
	} else {
		result, err = parseFieldsResponse(raw)
	}
	if err != nil {
		c.logger.Warn("unparseable classification", "response", raw, "err", err)
		return core.Classification{}, err
	}

	c.logger.Debug("classified symptom",
		"urgency", result.Urgency,
		"category", result.Category,
		"label", result.TriageLabel)
	return result, nil
}

// parseFieldsResponse extracts the urgency level and category from a
// two-field model answer. The urgency must be one of the known levels; the
// category is free-form but must be present.
func parseFieldsResponse(raw string) (core.Classification, error) {
	var result core.Classification

	if m := urgencyLinePattern.FindStringSubmatch(raw); m != nil {
		result.Urgency = core.UrgencyLevel(strings.TrimSpace(m[1]))
	}
	if m := categoryLinePattern.FindStringSubmatch(raw); m != nil {
		result.Category = strings.TrimSpace(m[1])
	}

	if err := core.ValidateClassification(result); err != nil {
		return core.Classification{}, err
	}
	return result, nil
}

// parseLabelResponse maps a single-label model answer onto the fixed label
// list, requiring an exact match after whitespace trimming.
func parseLabelResponse(raw string) (core.Classification, error) {
	label := strings.TrimSpace(raw)
	if !slices.Contains(core.TriageLabels, label) {
		return core.Classification{}, fmt.Errorf("%w: unexpected label %q", core.ErrClassificationInvalid, label)
	}
	return core.Classification{TriageLabel: label}, nil
}
