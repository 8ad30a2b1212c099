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


package core

import (
	"errors"
	"strings"
)

// Pipeline error taxonomy. Each sentinel maps to exactly one HTTP status at
// the server boundary and determines whether a failure row is persisted.
var (
	// ErrInvalidInput indicates an empty or malformed symptom description.
	// No external call is made and nothing is persisted.
	ErrInvalidInput = errors.New("invalid symptom description")

	// ErrNotHealthRelated indicates the relevance check answered no.
	// Nothing is persisted.
	ErrNotHealthRelated = errors.New("input is not health-related")

	// ErrClassificationInvalid indicates the model produced a label outside
	// the allowed set or a response that does not parse. Never retried.
	ErrClassificationInvalid = errors.New("classification result invalid")

	// ErrRateLimited indicates an external service reported a rate limit.
	ErrRateLimited = errors.New("rate limited by external service")

	// ErrTransientService indicates a transport or service failure that
	// exhausted the classification retry budget, or failed a non-retried stage.
	ErrTransientService = errors.New("transient service failure")

	// ErrEmbeddingFailed indicates embedding generation failed or returned a
	// vector of the wrong dimensionality.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrStorage indicates a store insert or select failed.
	ErrStorage = errors.New("storage failure")
)

// IsRateLimit reports whether an error from an external call indicates rate
// limiting. Providers are inconsistent here: some surface HTTP 429, others
// only a message, so both are checked.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	// A bare "429" would match unrelated digits (ports, counts), so only
	// the explicit status phrase counts.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "status code: 429")
}
