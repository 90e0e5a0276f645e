package engine

import (
	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/solver"
)

// Objective carries the topic-score coefficients for every assignment
// variable plus the analytic upper bound on the total score. The bound is
// derived from the data, never guessed: it caps the binary search in the
// topic phase the same way the large-weight scalarization would have to be
// capped analytically.
type Objective struct {
	Mode ObjectiveMode

	// Scores is parallel to Model.AssignVars.
	Scores []int

	// UpperBound is the sum over papers of the best candidate-pair score, an
	// upper bound on any achievable total.
	UpperBound int
}

// ComposeObjective computes the score of every candidate (paper, pair)
// decision. The scoring variant is fixed: a pair scores the number of paper
// topics covered by the union of its reviewers' topic sets (see
// domain.PairOverlap).
func ComposeObjective(m *Model) *Objective {
	o := &Objective{
		Mode:   m.Opts.Objective,
		Scores: make([]int, len(m.AssignVars)),
	}

	best := make([]int, len(m.Papers))
	for i, v := range m.AssignVars {
		pair := m.Pairs[v.Pair]
		paper := m.Papers[v.Paper]
		score := domain.PairOverlap(paper.Topics,
			m.Reviewers[pair.R1].Topics, m.Reviewers[pair.R2].Topics)
		o.Scores[i] = score
		if score > best[v.Paper] {
			best[v.Paper] = score
		}
	}
	for _, b := range best {
		o.UpperBound += b
	}
	return o
}

// ScoreCut returns the pseudo-Boolean constraint requiring the total topic
// score to reach at least minScore. Zero-score variables contribute nothing
// and are left out of the cut.
func (o *Objective) ScoreCut(m *Model, minScore int) solver.Constraint {
	var lits, weights []int
	for i, v := range m.AssignVars {
		if o.Scores[i] == 0 {
			continue
		}
		lits = append(lits, v.ID)
		weights = append(weights, o.Scores[i])
	}
	return solver.WeightedAtLeast(lits, weights, minScore)
}

// Evaluate computes the total topic score of a solved model.
func (o *Objective) Evaluate(m *Model, values map[int]float64) int {
	total := 0
	for i, v := range m.AssignVars {
		if values[v.ID] > 0.5 {
			total += o.Scores[i]
		}
	}
	return total
}
