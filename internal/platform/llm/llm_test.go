package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestDraftRequest_Empty(t *testing.T) {
	if !(DraftRequest{}).Empty() {
		t.Error("expected zero request to be empty")
	}
	if !(DraftRequest{Population: "   "}).Empty() {
		t.Error("expected whitespace-only request to be empty")
	}
	if (DraftRequest{Problem: "readmissions"}).Empty() {
		t.Error("expected request with a field to be non-empty")
	}
}

func TestBuildPrompt_NoFields(t *testing.T) {
	_, err := BuildPrompt(DraftRequest{})
	if err == nil {
		t.Fatal("expected error for empty request")
	}
	if !errors.Is(err, ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
}

func TestBuildPrompt_FieldOrder(t *testing.T) {
	prompt, err := BuildPrompt(DraftRequest{
		Factors:    "staffing shortages",
		Population: "ICU patients",
		Problem:    "high readmission rate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{
		"Population/Process: ICU patients",
		"Problem Description: high readmission rate",
		"Contributing Factors: staffing shortages",
	}
	pos := -1
	for _, want := range wantOrder {
		i := strings.Index(prompt, want)
		if i < 0 {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
		if i < pos {
			t.Errorf("field %q out of order", want)
		}
		pos = i
	}
	if strings.Contains(prompt, "Location/Setting") {
		t.Error("prompt should omit unset fields")
	}
}

func TestBuildPrompt_SingleField(t *testing.T) {
	prompt, err := BuildPrompt(DraftRequest{Evidence: "30% above benchmark"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Evidence/Data: 30% above benchmark") {
		t.Errorf("prompt missing evidence field:\n%s", prompt)
	}
	if !strings.Contains(prompt, "problem statement for healthcare quality improvement") {
		t.Error("prompt missing instruction preamble")
	}
}
