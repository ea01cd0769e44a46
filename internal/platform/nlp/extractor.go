package nlp

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// conceptIDModulus bounds the derived concept code. The hash-derived id is a
// placeholder for a real terminology lookup; what callers rely on is that one
// surface form always maps to one id.
const conceptIDModulus = 10000000

// ConceptID derives a stable concept identifier from an entity's surface
// form. Case differences do not produce distinct concepts.
func ConceptID(surface string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(surface))))
	return fmt.Sprintf("SNOMED_%d", h.Sum32()%conceptIDModulus)
}

// ConceptExtractor extracts deduplicated clinical concepts from text using
// an Analyzer.
type ConceptExtractor struct {
	analyzer Analyzer
}

// NewConceptExtractor creates a ConceptExtractor.
func NewConceptExtractor(analyzer Analyzer) *ConceptExtractor {
	return &ConceptExtractor{analyzer: analyzer}
}

// Extract returns the concepts recognized in text, deduplicated by concept
// id in first-seen order. Empty or whitespace-only text yields an empty
// result without calling the model. A model failure is reported as
// ErrExtractionFailed, never as an empty set.
func (e *ConceptExtractor) Extract(ctx context.Context, text string) ([]Concept, error) {
	if strings.TrimSpace(text) == "" {
		return []Concept{}, nil
	}

	doc, err := e.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	seen := make(map[string]bool, len(doc.Entities))
	concepts := make([]Concept, 0, len(doc.Entities))
	for _, ent := range doc.Entities {
		if strings.TrimSpace(ent.Text) == "" {
			continue
		}
		id := ConceptID(ent.Text)
		if seen[id] {
			continue
		}
		seen[id] = true
		concepts = append(concepts, Concept{
			ID:          id,
			Name:        ent.Text,
			Description: "Entity type: " + ent.Label,
		})
	}

	return concepts, nil
}
