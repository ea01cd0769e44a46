package nlp

import (
	"context"
	"errors"
	"testing"
)

// mockScorer returns a fixed score per candidate text.
type mockScorer struct {
	scores map[string]float64
	err    error
}

func (m *mockScorer) Score(_ context.Context, _, candidate string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[candidate], nil
}

func TestRank_ThresholdInclusive(t *testing.T) {
	scorer := &mockScorer{scores: map[string]float64{
		"a": 0.9,
		"b": 0.5,
		"c": 0.3,
	}}
	r := NewRanker(scorer)

	matches, err := r.Rank(context.Background(), "target", []string{"a", "b", "c"}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Index != 0 || matches[0].Score != 0.9 {
		t.Errorf("expected (0, 0.9) first, got (%d, %v)", matches[0].Index, matches[0].Score)
	}
	// Exactly at the threshold is included.
	if matches[1].Index != 1 || matches[1].Score != 0.5 {
		t.Errorf("expected (1, 0.5) second, got (%d, %v)", matches[1].Index, matches[1].Score)
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	scorer := &mockScorer{scores: map[string]float64{
		"x": 0.7,
		"y": 0.7,
		"z": 0.7,
	}}
	r := NewRanker(scorer)

	matches, err := r.Rank(context.Background(), "target", []string{"x", "y", "z"}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Index != i {
			t.Errorf("position %d: expected original index %d preserved, got %d", i, i, m.Index)
		}
		if m.Score != 0.7 {
			t.Errorf("position %d: expected score 0.7, got %v", i, m.Score)
		}
	}
}

func TestRank_DescendingWithTies(t *testing.T) {
	scorer := &mockScorer{scores: map[string]float64{
		"low":   0.6,
		"high":  0.9,
		"tied1": 0.8,
		"tied2": 0.8,
	}}
	r := NewRanker(scorer)

	matches, err := r.Rank(context.Background(), "target", []string{"low", "high", "tied1", "tied2"}, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantIndexes := []int{1, 2, 3, 0}
	if len(matches) != len(wantIndexes) {
		t.Fatalf("expected %d matches, got %d", len(wantIndexes), len(matches))
	}
	for i, want := range wantIndexes {
		if matches[i].Index != want {
			t.Errorf("position %d: expected index %d, got %d", i, want, matches[i].Index)
		}
	}
}

func TestRank_EmptyCandidates(t *testing.T) {
	r := NewRanker(&mockScorer{})
	matches, err := r.Rank(context.Background(), "target", nil, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected empty result, got %d matches", len(matches))
	}
}

func TestRank_PropagatesScorerFailure(t *testing.T) {
	scoreErr := errors.New("model unavailable")
	r := NewRanker(&mockScorer{err: scoreErr})

	_, err := r.Rank(context.Background(), "target", []string{"a", "b"}, 0.5)
	if err == nil {
		t.Fatal("expected scorer failure to propagate")
	}
	if !errors.Is(err, scoreErr) {
		t.Errorf("expected wrapped scorer error, got %v", err)
	}
}

func TestRank_DeterministicAcrossConcurrency(t *testing.T) {
	scorer := &mockScorer{scores: map[string]float64{
		"a": 0.7, "b": 0.7, "c": 0.9, "d": 0.7, "e": 0.6,
	}}
	candidates := []string{"a", "b", "c", "d", "e"}

	serial := NewRanker(scorer)
	serial.SetConcurrency(1)
	parallel := NewRanker(scorer)
	parallel.SetConcurrency(8)

	first, err := serial.Rank(context.Background(), "target", candidates, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := parallel.Rank(context.Background(), "target", candidates, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
