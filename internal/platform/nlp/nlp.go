// Package nlp provides the clinical language capabilities of the catalog:
// concept extraction from free text, text-similarity scoring, and
// similarity-based ranking of candidate texts. The underlying entity
// recognizer and embedding model run in an external inference service; the
// Analyzer interface abstracts it so services and tests can substitute a
// double.
package nlp

import (
	"context"
	"errors"
)

// Sentinel errors. Extraction and scoring failures must surface to the
// caller; returning an empty result on failure would leave questions tagged
// inconsistently with their content.
var (
	ErrExtractionFailed = errors.New("clinical concept extraction failed")
	ErrScoringFailed    = errors.New("similarity scoring failed")
)

// Concept is a normalized clinical idea recognized in free text.
type Concept struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Entity is a raw entity span returned by the recognizer.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Document is the analysis result for one text: recognized entities plus a
// document-level embedding vector.
type Document struct {
	Entities []Entity  `json:"entities"`
	Vector   []float64 `json:"vector"`
}

// Analyzer runs the recognition model over a text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Document, error)
}

// Extractor derives clinical concepts from free text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Concept, error)
}

// Scorer computes a normalized similarity score in [0,1] for two texts.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}
