package nlp

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the minimum similarity for a candidate to be
// considered related.
const DefaultThreshold = 0.5

// defaultConcurrency bounds parallel scoring calls against the model.
const defaultConcurrency = 4

// Match pairs a candidate's position in the input sequence with its
// similarity score against the target.
type Match struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Ranker ranks candidate texts by similarity to a target text.
type Ranker struct {
	scorer      Scorer
	concurrency int
}

// NewRanker creates a Ranker over the given scorer.
func NewRanker(scorer Scorer) *Ranker {
	return &Ranker{scorer: scorer, concurrency: defaultConcurrency}
}

// SetConcurrency overrides the number of parallel scoring calls. Values
// below 1 are ignored.
func (r *Ranker) SetConcurrency(n int) {
	if n >= 1 {
		r.concurrency = n
	}
}

// Rank scores every candidate against target and returns the matches whose
// score is at least threshold (inclusive), ordered by score descending.
// Candidates with equal scores keep their original index order. Callers that
// have no configured threshold should pass DefaultThreshold.
//
// Candidates are scored in parallel; the first scorer failure cancels the
// remaining work and is returned. An empty candidate list yields an empty
// result and nil error.
func (r *Ranker) Rank(ctx context.Context, target string, candidates []string, threshold float64) ([]Match, error) {
	if len(candidates) == 0 {
		return []Match{}, nil
	}

	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			score, err := r.scorer.Score(gctx, target, candidate)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for i, score := range scores {
		if score >= threshold {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	// Stable sort: equal scores preserve ascending candidate index, making
	// the result deterministic regardless of scoring order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}
