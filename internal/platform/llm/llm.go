// Package llm wraps the language-model service used to draft problem
// statements for healthcare quality improvement.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFields is returned when a draft request carries no content.
	ErrNoFields = errors.New("at least one field must be provided")
	// ErrUpstreamAuth is returned when the model provider rejects our
	// credentials.
	ErrUpstreamAuth = errors.New("language model authentication failed")
)

// DraftRequest holds the optional free-text inputs to a problem statement.
type DraftRequest struct {
	Population   string `json:"population,omitempty"`
	Location     string `json:"location,omitempty"`
	Problem      string `json:"problem,omitempty"`
	Evidence     string `json:"evidence,omitempty"`
	Consequences string `json:"consequences,omitempty"`
	Factors      string `json:"factors,omitempty"`
}

// Empty reports whether every field is blank.
func (r DraftRequest) Empty() bool {
	for _, v := range []string{r.Population, r.Location, r.Problem, r.Evidence, r.Consequences, r.Factors} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Generator produces a prose problem statement from a draft request.
type Generator interface {
	Draft(ctx context.Context, req DraftRequest) (string, error)
}

const systemPrompt = "You are a healthcare quality improvement expert helping to formulate clear problem statements. You can make reasonable assumptions when information is missing."

// BuildPrompt assembles the user prompt from the populated fields, in a
// fixed order so output stays comparable across requests.
func BuildPrompt(req DraftRequest) (string, error) {
	if req.Empty() {
		return "", ErrNoFields
	}

	var parts []string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("Population/Process", req.Population)
	add("Location/Setting", req.Location)
	add("Problem Description", req.Problem)
	add("Evidence/Data", req.Evidence)
	add("Negative Consequences", req.Consequences)
	add("Contributing Factors", req.Factors)

	prompt := fmt.Sprintf(`Based on the following information, generate a well-structured problem statement for healthcare quality improvement:

%s

Please format the response as a clear, concise problem statement. If certain information is missing, use appropriate placeholders or make reasonable assumptions based on the provided context.`,
		strings.Join(parts, "\n"))

	return prompt, nil
}
