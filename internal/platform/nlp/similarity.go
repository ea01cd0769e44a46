package nlp

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero-magnitude vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SimilarityScorer scores text pairs by cosine similarity of their document
// embeddings.
type SimilarityScorer struct {
	analyzer Analyzer
}

// NewSimilarityScorer creates a SimilarityScorer.
func NewSimilarityScorer(analyzer Analyzer) *SimilarityScorer {
	return &SimilarityScorer{analyzer: analyzer}
}

// Score returns a similarity score in [0,1] for the two texts. The score is
// symmetric. Identical non-empty texts score exactly 1.0. Any empty operand
// scores 0.0 without calling the model, so the function is total over empty
// input (empty-vs-empty is defined as 0.0). A model failure is reported as
// ErrScoringFailed.
func (s *SimilarityScorer) Score(ctx context.Context, a, b string) (float64, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0, nil
	}
	if a == b {
		return 1, nil
	}

	docA, err := s.analyzer.Analyze(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}
	docB, err := s.analyzer.Analyze(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	score := CosineSimilarity(docA.Vector, docB.Vector)

	// Embeddings can produce slightly negative or >1 cosines; clamp into
	// the contract range.
	if score < 0 {
		return 0, nil
	}
	if score > 1 {
		return 1, nil
	}
	return score, nil
}
