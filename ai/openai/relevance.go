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
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/triagit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RelevanceChecker implements ai.RelevanceChecker using OpenAI-compatible chat APIs.
// It asks the model a strict yes/no question and treats any answer that does
// not start with "yes" as a negative.
type RelevanceChecker struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newRelevanceChecker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRelevanceChecker(config *ai.Config) (*RelevanceChecker, error) {
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

	return &RelevanceChecker{
		client:  client,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-relevance"),
	}, nil
}

// NewRelevanceChecker creates a new relevance checker using the provided configuration.
//
// Returns ai.RelevanceChecker interface to enforce abstraction.
func NewRelevanceChecker(config *ai.Config) (ai.RelevanceChecker, error) {
	return newRelevanceChecker(config)
}

// IsHealthRelated reports whether the text describes a health-related symptom.
func (r *RelevanceChecker) IsHealthRelated(ctx context.Context, text string) (bool, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRelevancePrompt(text)),
			},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	response, err := r.client.GenerateContent(callCtx, content, llms.WithTemperature(0.0))
	if err != nil {
		r.logger.Error("relevance check failed", "err", err)
		return false, err
	}

	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	related := strings.HasPrefix(answer, "yes")
	r.logger.Debug("relevance check", "related", related)
	return related, nil
}
