package nlp

import (
	"context"
	"errors"
	"testing"
)

// -- Mock Analyzer --

type mockAnalyzer struct {
	docs map[string]*Document
	err  error
	// calls records every analyzed text.
	calls []string
}

func (m *mockAnalyzer) Analyze(_ context.Context, text string) (*Document, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	if doc, ok := m.docs[text]; ok {
		return doc, nil
	}
	return &Document{}, nil
}

func TestExtract_Concepts(t *testing.T) {
	analyzer := &mockAnalyzer{docs: map[string]*Document{
		"patient with sepsis and pneumonia": {
			Entities: []Entity{
				{Text: "sepsis", Label: "DISEASE"},
				{Text: "pneumonia", Label: "DISEASE"},
			},
		},
	}}
	e := NewConceptExtractor(analyzer)

	concepts, err := e.Extract(context.Background(), "patient with sepsis and pneumonia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("expected 2 concepts, got %d", len(concepts))
	}
	if concepts[0].Name != "sepsis" {
		t.Errorf("expected first concept 'sepsis', got %q", concepts[0].Name)
	}
	if concepts[0].Description != "Entity type: DISEASE" {
		t.Errorf("unexpected description: %q", concepts[0].Description)
	}
	if concepts[0].ID == "" || concepts[0].ID == concepts[1].ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", concepts[0].ID, concepts[1].ID)
	}
}

func TestExtract_DedupsBySurfaceForm(t *testing.T) {
	analyzer := &mockAnalyzer{docs: map[string]*Document{
		"sepsis sepsis Sepsis": {
			Entities: []Entity{
				{Text: "sepsis", Label: "DISEASE"},
				{Text: "sepsis", Label: "DISEASE"},
				{Text: "Sepsis", Label: "DISEASE"},
			},
		},
	}}
	e := NewConceptExtractor(analyzer)

	concepts, err := e.Extract(context.Background(), "sepsis sepsis Sepsis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concepts) != 1 {
		t.Fatalf("expected 1 deduplicated concept, got %d", len(concepts))
	}
	// First-seen surface form wins.
	if concepts[0].Name != "sepsis" {
		t.Errorf("expected 'sepsis', got %q", concepts[0].Name)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	analyzer := &mockAnalyzer{docs: map[string]*Document{
		"chronic kidney disease": {
			Entities: []Entity{{Text: "chronic kidney disease", Label: "DISEASE"}},
		},
	}}
	e := NewConceptExtractor(analyzer)

	first, err := e.Extract(context.Background(), "chronic kidney disease")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.Extract(context.Background(), "chronic kidney disease")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 concept per extraction, got %d and %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Errorf("extraction not deterministic: %q vs %q", first[0].ID, second[0].ID)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	analyzer := &mockAnalyzer{}
	e := NewConceptExtractor(analyzer)

	for _, text := range []string{"", "   ", "\n\t"} {
		concepts, err := e.Extract(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(concepts) != 0 {
			t.Errorf("expected empty result for %q, got %d concepts", text, len(concepts))
		}
	}
	if len(analyzer.calls) != 0 {
		t.Errorf("expected no analyzer calls for empty text, got %d", len(analyzer.calls))
	}
}

func TestExtract_ModelFailure(t *testing.T) {
	analyzer := &mockAnalyzer{err: errors.New("model unavailable")}
	e := NewConceptExtractor(analyzer)

	concepts, err := e.Extract(context.Background(), "sepsis")
	if err == nil {
		t.Fatal("expected error when model is unavailable")
	}
	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("expected ErrExtractionFailed, got %v", err)
	}
	if concepts != nil {
		t.Error("expected nil concepts on failure, not an empty set")
	}
}

func TestConceptID_Stable(t *testing.T) {
	if ConceptID("sepsis") != ConceptID("sepsis") {
		t.Error("same surface form must yield the same id")
	}
	if ConceptID("sepsis") != ConceptID("Sepsis ") {
		t.Error("case and surrounding whitespace must not change the id")
	}
	if ConceptID("sepsis") == ConceptID("pneumonia") {
		t.Error("distinct surface forms should yield distinct ids")
	}
}
