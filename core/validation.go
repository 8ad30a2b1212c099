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
	"fmt"
	"slices"
	"strings"
)

// ValidateDescription validates raw submission input.
//
// Validation rules:
//   - must not be empty after trimming whitespace
//
// Anything beyond non-emptiness is the relevance checker's job.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is empty", ErrInvalidInput)
	}
	return nil
}

// ValidUrgency reports whether u is one of the fixed urgency levels.
func ValidUrgency(u UrgencyLevel) bool {
	return slices.Contains(UrgencyLevels, u)
}

// ValidTriageLabel reports whether label is one of the fixed six-way labels.
func ValidTriageLabel(label string) bool {
	return slices.Contains(TriageLabels, label)
}

// ValidateClassification validates classifier output against the allowed
// label sets. Exactly one of the two output shapes must be populated.
func ValidateClassification(c Classification) error {
	if c.TriageLabel != "" {
		if !ValidTriageLabel(c.TriageLabel) {
			return fmt.Errorf("%w: triage label %q not in allowed set", ErrClassificationInvalid, c.TriageLabel)
		}
		return nil
	}
	if !ValidUrgency(c.Urgency) {
		return fmt.Errorf("%w: urgency level %q not in allowed set", ErrClassificationInvalid, c.Urgency)
	}
	if c.Category == "" {
		return fmt.Errorf("%w: no category received", ErrClassificationInvalid)
	}
	return nil
}

// ValidateReport validates the invariants of a report about to be persisted.
//
// A success report carries a classification (either shape) and a full-length
// embedding. A failed report carries neither, plus an error message.
func ValidateReport(report *SymptomReport) error {
	if report == nil {
		return fmt.Errorf("%w: report is nil", ErrStorage)
	}
	if err := ValidateDescription(report.Description); err != nil {
		return err
	}
	switch report.Status {
	case StatusSuccess:
		if err := ValidateClassification(Classification{
			Urgency:     report.Urgency,
			Category:    report.Category,
			TriageLabel: report.TriageLabel,
		}); err != nil {
			return err
		}
		if len(report.Embedding) != EmbeddingDim {
			return fmt.Errorf("%w: embedding has %d dimensions, want %d",
				ErrEmbeddingFailed, len(report.Embedding), EmbeddingDim)
		}
		if report.ErrorMessage != "" {
			return fmt.Errorf("%w: success report carries an error message", ErrStorage)
		}
	case StatusFailed:
		if report.Urgency != "" || report.Category != "" || report.TriageLabel != "" || len(report.Embedding) != 0 {
			return fmt.Errorf("%w: failed report carries classification fields", ErrStorage)
		}
		if report.ErrorMessage == "" {
			return fmt.Errorf("%w: failed report has no error message", ErrStorage)
		}
	default:
		return fmt.Errorf("%w: unknown report status %q", ErrStorage, report.Status)
	}
	return nil
}
