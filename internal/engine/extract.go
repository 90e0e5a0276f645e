package engine

import (
	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

// epsilon is the accepted deviation of a solved variable from an exact 0 or 1.
const epsilon = 1e-6

// PaperAssignment is one paper together with its assigned reviewer pair.
type PaperAssignment struct {
	Paper        domain.Paper
	Reviewers    [2]domain.Reviewer
	Score        int
	SharedTopics []string
}

// Assignment is the fully validated output of a run.
type Assignment struct {
	Papers []PaperAssignment

	// Workloads is indexed like the reviewer slice: papers per reviewer.
	Workloads []int

	// CoReviewers lists, per reviewer, the distinct partner indices realized
	// by the solution, in ascending order.
	CoReviewers [][]int

	LMax       int
	TotalScore int
	Optimal    bool
}

// Extract turns solver output into an Assignment. Every variable value is
// rounded to a strict binary within epsilon, and every structural invariant is
// re-checked from the rounded values rather than trusted from the model. A
// violation here means a modeling or solver bug, so extraction fails loudly
// instead of repairing anything.
func Extract(m *Model, o *Objective, sol *Solution) (*Assignment, error) {
	xVals, err := roundBinary(m, sol.Values)
	if err != nil {
		return nil, err
	}

	a := &Assignment{
		Workloads:   make([]int, len(m.Reviewers)),
		CoReviewers: make([][]int, len(m.Reviewers)),
		Optimal:     sol.Optimal,
	}

	// Exactly one pair per paper.
	chosen := make([]int, len(m.Papers))
	for pi := range chosen {
		chosen[pi] = -1
	}
	for i, v := range m.AssignVars {
		if !xVals[v.ID] {
			continue
		}
		if chosen[v.Paper] >= 0 {
			return nil, domain.NewInvariantViolationError("one-pair-per-paper",
				"paper "+m.Papers[v.Paper].Title+" has more than one selected pair")
		}
		chosen[v.Paper] = i
	}
	for pi, i := range chosen {
		if i < 0 {
			return nil, domain.NewInvariantViolationError("one-pair-per-paper",
				"paper "+m.Papers[pi].Title+" has no selected pair")
		}
	}

	// Conflict exclusion and per-paper output rows.
	a.Papers = make([]PaperAssignment, len(m.Papers))
	for pi, i := range chosen {
		v := m.AssignVars[i]
		pair := m.Pairs[v.Pair]
		paper := m.Papers[pi]
		for _, ri := range []int{pair.R1, pair.R2} {
			if m.Conflicts[pi].Contains(ri) {
				return nil, domain.NewInvariantViolationError("conflict-exclusion",
					"reviewer "+m.Reviewers[ri].Name+" is conflicted with paper "+paper.Title)
			}
			a.Workloads[ri]++
		}
		r1, r2 := m.Reviewers[pair.R1], m.Reviewers[pair.R2]
		a.Papers[pi] = PaperAssignment{
			Paper:        paper,
			Reviewers:    [2]domain.Reviewer{r1, r2},
			Score:        o.Scores[i],
			SharedTopics: domain.SharedTopics(paper.Topics, r1.Topics, r2.Topics),
		}
		a.TotalScore += o.Scores[i]
	}

	// Workload bounds and realized L_max.
	for ri, load := range a.Workloads {
		if load < m.Opts.Bounds.Min || load > m.Opts.Bounds.Max {
			return nil, domain.NewInvariantViolationError("workload-bounds",
				"reviewer "+m.Reviewers[ri].Name+" has workload outside the configured range")
		}
		if load > a.LMax {
			a.LMax = load
		}
	}

	// Indicator linking: y must hold exactly for pairs with a selected paper.
	usedPair := make([]bool, len(m.Pairs))
	for _, i := range chosen {
		usedPair[m.AssignVars[i].Pair] = true
	}
	for qi := range m.Pairs {
		if xVals[m.YVar[qi]] != usedPair[qi] {
			pair := m.Pairs[qi]
			return nil, domain.NewInvariantViolationError("indicator-linking",
				"pair {"+m.Reviewers[pair.R1].Name+","+m.Reviewers[pair.R2].Name+"} indicator disagrees with assignments")
		}
	}

	// Co-reviewer degree from the realized pairs.
	for qi, used := range usedPair {
		if !used {
			continue
		}
		pair := m.Pairs[qi]
		a.CoReviewers[pair.R1] = append(a.CoReviewers[pair.R1], pair.R2)
		a.CoReviewers[pair.R2] = append(a.CoReviewers[pair.R2], pair.R1)
	}
	for ri, partners := range a.CoReviewers {
		if len(partners) > m.Opts.CoReviewerLimit ||
			(m.Opts.CoReviewerPolicy == CoReviewerExact && len(partners) != m.Opts.CoReviewerLimit) {
			return nil, domain.NewInvariantViolationError("co-reviewer-degree",
				"reviewer "+m.Reviewers[ri].Name+" has a co-reviewer count outside the configured policy")
		}
	}

	return a, nil
}

// roundBinary snaps every variable value to a bool, rejecting anything farther
// than epsilon from 0 or 1.
func roundBinary(m *Model, values map[int]float64) (map[int]bool, error) {
	out := make(map[int]bool, len(values))
	for id := 1; id <= m.NumVars; id++ {
		val := values[id]
		switch {
		case val >= -epsilon && val <= epsilon:
			out[id] = false
		case val >= 1-epsilon && val <= 1+epsilon:
			out[id] = true
		default:
			return nil, &domain.NumericToleranceError{Variable: m.VarName(id), Value: val}
		}
	}
	return out, nil
}
