package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Report IDs are assigned by the store at creation; keyword IDs are
// content-based hashes so that identical keywords produce identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmbeddingDim is the dimensionality of the embedding vectors produced by
// the configured embedding service. Every stored vector has this length.
const EmbeddingDim = 1536

// UrgencyLevel is the urgency component of a classified symptom report.
type UrgencyLevel string

const (
	UrgencyEmergency  UrgencyLevel = "Emergency"
	UrgencyUrgentCare UrgencyLevel = "Urgent Care"
	UrgencyNonUrgent  UrgencyLevel = "Non-Urgent"
	UrgencyFollowUp   UrgencyLevel = "Follow-Up Needed"
)

// UrgencyLevels lists the valid urgency values in the order the classifier
// prompt presents them.
var UrgencyLevels = []UrgencyLevel{
	UrgencyEmergency,
	UrgencyUrgentCare,
	UrgencyNonUrgent,
	UrgencyFollowUp,
}

// TriageLabels defines the valid labels for the single-label classifier
// variant: the four urgency levels plus the two most common categories.
var TriageLabels = []string{
	"Emergency",
	"Urgent Care",
	"Non-Urgent",
	"Follow-Up Needed",
	"Allergy",
	"Infection",
}

// ReportStatus records the pipeline outcome persisted with each report.
type ReportStatus string

const (
	// StatusSuccess marks a report that completed classification and embedding.
	StatusSuccess ReportStatus = "success"
	// StatusFailed marks a report persisted after a post-relevance failure.
	StatusFailed ReportStatus = "failed"
)

// KeywordSource records how a keyword entered the known-keyword set.
type KeywordSource string

const (
	// KeywordSourceAuto marks keywords learned from accepted descriptions.
	KeywordSourceAuto KeywordSource = "auto"
	// KeywordSourceSeed marks keywords loaded by the seed-keywords command.
	KeywordSourceSeed KeywordSource = "seed"
)

// SymptomReport is the persisted unit of work. Reports are append-only: the
// pipeline always inserts a new row, including for failures, and never
// updates a row after creation.
type SymptomReport struct {
	Id           ID
	Description  string       // Original input text, immutable once accepted
	Urgency      UrgencyLevel // Two-field classifier variant; empty on failure
	Category     string       // Two-field classifier variant; empty on failure
	TriageLabel  string       // Single-label classifier variant; empty on failure
	Embedding    []float32    // EmbeddingDim-length vector; nil on failure
	Status       ReportStatus
	ErrorMessage string    // Populated only when Status is StatusFailed
	CreatedAt    time.Time // Assigned at persistence time; sole listing order key
}

// KeywordEntry is one member of the append-only known-keyword set used by
// the relevance pre-filter.
type KeywordEntry struct {
	Id        ID
	Keyword   string
	Source    KeywordSource
	CreatedAt time.Time
}

// Classification is the unified output of the two classifier variants.
// Exactly one shape is populated: Urgency+Category (two-field variant) or
// TriageLabel (single-label variant).
type Classification struct {
	Urgency     UrgencyLevel
	Category    string
	TriageLabel string
}

// Apply copies the classification onto a report.
func (c Classification) Apply(report *SymptomReport) {
	report.Urgency = c.Urgency
	report.Category = c.Category
	report.TriageLabel = c.TriageLabel
}

// SearchResult represents a similarity search match with its relevance score.
// Score is cosine similarity in [0, 1]; higher is more similar.
type SearchResult struct {
	Report *SymptomReport
	Score  float32
}
