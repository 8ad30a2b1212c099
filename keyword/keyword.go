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


// Package keyword implements the learned-keyword pre-filter that lets the
// triage pipeline accept obviously health-related input without a model
// call. The keyword set grows automatically: every accepted description
// contributes its tokens back to the set.
package keyword

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// MatchThreshold is the minimum fraction of a description's tokens that must
// be known keywords for the pre-filter to accept it.
const MatchThreshold = 0.2

// minTokenLength filters out short and common words.
const minTokenLength = 4

// Extract tokenizes a description into candidate keywords: lowercase runs of
// ASCII letters, ignoring words shorter than four characters.
func Extract(description string) []string {
	lower := strings.ToLower(description)

	var tokens []string
	start := -1
	for i, r := range lower {
		if r >= 'a' && r <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start >= minTokenLength {
				tokens = append(tokens, lower[start:i])
			}
			start = -1
		}
	}
	if start >= 0 && len(lower)-start >= minTokenLength {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}

// OverlapRatio returns the fraction of tokens that appear in the known set.
// Returns 0 when there are no tokens.
func OverlapRatio(tokens []string, known map[string]struct{}) float64 {
	if len(tokens) == 0 {
		return 0
	}
	matched := 0
	for _, tok := range tokens {
		if _, ok := known[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

// Filter decides health relevance from the learned keyword set without a
// model call.
type Filter struct {
	keywords storage.KeywordRepository
	logger   *slog.Logger
}

// NewFilter creates a keyword filter over the given repository.
func NewFilter(keywords storage.KeywordRepository) *Filter {
	return &Filter{
		keywords: keywords,
		logger:   slog.Default().With("component", "keyword-filter"),
	}
}

// LikelyHealthRelated reports whether enough of the description's tokens are
// known health keywords. A storage error is treated as a miss so the caller
// falls through to the model check.
func (f *Filter) LikelyHealthRelated(ctx context.Context, description string) bool {
	tokens := Extract(description)
	if len(tokens) == 0 {
		return false
	}

	entries, err := f.keywords.AllKeywords(ctx)
	if err != nil {
		f.logger.Error("keyword lookup failed", "err", err)
		return false
	}

	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e.Keyword] = struct{}{}
	}

	ratio := OverlapRatio(tokens, known)
	f.logger.Debug("keyword pre-filter", "tokens", len(tokens), "ratio", ratio)
	return ratio >= MatchThreshold
}

// Learn inserts the description's tokens into the keyword set, skipping ones
// already present.
func (f *Filter) Learn(ctx context.Context, description string) error {
	tokens := Extract(description)
	if len(tokens) == 0 {
		return nil
	}

	entries := make([]*core.KeywordEntry, len(tokens))
	for i, tok := range tokens {
		entries[i] = &core.KeywordEntry{
			Keyword: tok,
			Source:  core.KeywordSourceAuto,
		}
	}

	inserted, err := f.keywords.AddKeywords(ctx, entries...)
	if err != nil {
		return err
	}
	if len(inserted) > 0 {
		f.logger.Debug("learned keywords", "count", len(inserted))
	}
	return nil
}
