// Package engine builds and solves the reviewer-pair assignment model: an
// all-binary constraint system over (paper, reviewer-pair) decisions with
// workload, conflict and co-reviewer-degree constraints, optimized
// lexicographically (fairness first, topic score second) through sequential
// solver calls.
package engine

import (
	"fmt"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/solver"
)

// CoReviewerPolicy selects the shape of the co-reviewer degree constraint.
type CoReviewerPolicy int

// Co-reviewer policies.
const (
	// CoReviewerMax bounds the number of distinct co-reviewers from above.
	CoReviewerMax CoReviewerPolicy = iota
	// CoReviewerExact requires exactly the configured number of distinct
	// co-reviewers. Changes feasibility; never picked silently.
	CoReviewerExact
)

// ObjectiveMode selects the objective composition.
type ObjectiveMode int

// Objective modes.
const (
	// Lexicographic minimizes the maximum workload first, then maximizes the
	// topic score among fairness-optimal solutions.
	Lexicographic ObjectiveMode = iota
	// SingleObjective maximizes the topic score only; fairness is enforced
	// purely through the workload bounds.
	SingleObjective
)

// Options are the resolved policy knobs the model is built under.
type Options struct {
	Bounds           Bounds
	CoReviewerLimit  int
	CoReviewerPolicy CoReviewerPolicy
	Objective        ObjectiveMode
}

// Pair is an unordered reviewer pair, stored with R1 < R2 (indices into the
// reviewer slice).
type Pair struct {
	R1 int
	R2 int
}

// Contains reports whether the pair includes the reviewer index.
func (p Pair) Contains(reviewer int) bool {
	return p.R1 == reviewer || p.R2 == reviewer
}

// AssignVar is one binary decision: paper Paper is reviewed by pair Pair.
type AssignVar struct {
	ID    int
	Paper int
	Pair  int
}

// Model is the full constraint system for one assignment run. Variables are
// numbered deterministically (papers in sheet order, pairs in enumeration
// order, then one indicator per used pair), so identical inputs always
// produce the identical model. Construction is O(P*R^2) in the worst case —
// fine at conference scale, pair pruning would be needed beyond that.
type Model struct {
	Papers    []domain.Paper
	Reviewers []domain.Reviewer
	Conflicts []ConflictSet
	Opts      Options

	// Pairs holds every reviewer pair that is a candidate for at least one
	// paper. A pair conflicted on every paper gets no variable at all.
	Pairs []Pair

	// AssignVars holds all assignment variables in ID order.
	AssignVars []AssignVar

	// PaperVars indexes AssignVars per paper.
	PaperVars [][]int

	// PairVars indexes AssignVars per pair (all papers the pair may take).
	PairVars [][]int

	// YVar maps a pair index to its co-review indicator variable ID.
	YVar []int

	// ReviewerPairs lists, per reviewer, the indices of Pairs containing them.
	ReviewerPairs [][]int

	// NumVars is the total variable count (assignment + indicator).
	NumVars int

	base []solver.Constraint
}

// BuildModel constructs the constraint system: pair-selection, workload
// bounds, two-sided linking, and the co-reviewer degree constraint. Papers
// with zero candidate pairs abort the build with NoCandidatePairsError —
// solving such a model would only yield an undiagnosable infeasibility.
func BuildModel(papers []domain.Paper, reviewers []domain.Reviewer, conflicts []ConflictSet, opts Options) (*Model, error) {
	if starved := StarvedPapers(papers, conflicts, len(reviewers)); len(starved) > 0 {
		return nil, &domain.NoCandidatePairsError{Papers: starved}
	}

	m := &Model{
		Papers:    papers,
		Reviewers: reviewers,
		Conflicts: conflicts,
		Opts:      opts,
	}

	// Enumerate every unordered pair, keeping those usable by at least one
	// paper.
	type pairUse struct {
		pair   Pair
		papers []int
	}
	var used []pairUse
	for r1 := 0; r1 < len(reviewers); r1++ {
		for r2 := r1 + 1; r2 < len(reviewers); r2++ {
			use := pairUse{pair: Pair{R1: r1, R2: r2}}
			for pi := range papers {
				if conflicts[pi].Contains(r1) || conflicts[pi].Contains(r2) {
					continue
				}
				use.papers = append(use.papers, pi)
			}
			if len(use.papers) > 0 {
				used = append(used, use)
			}
		}
	}

	m.Pairs = make([]Pair, len(used))
	m.PairVars = make([][]int, len(used))
	m.PaperVars = make([][]int, len(papers))
	m.ReviewerPairs = make([][]int, len(reviewers))
	for i, u := range used {
		m.Pairs[i] = u.pair
		m.ReviewerPairs[u.pair.R1] = append(m.ReviewerPairs[u.pair.R1], i)
		m.ReviewerPairs[u.pair.R2] = append(m.ReviewerPairs[u.pair.R2], i)
	}

	// Assignment variables, paper-major for deterministic numbering.
	nextVar := 1
	for pi := range papers {
		for qi, u := range used {
			if conflicts[pi].Contains(u.pair.R1) || conflicts[pi].Contains(u.pair.R2) {
				continue
			}
			v := AssignVar{ID: nextVar, Paper: pi, Pair: qi}
			nextVar++
			idx := len(m.AssignVars)
			m.AssignVars = append(m.AssignVars, v)
			m.PaperVars[pi] = append(m.PaperVars[pi], idx)
			m.PairVars[qi] = append(m.PairVars[qi], idx)
		}
	}

	// One co-review indicator per used pair.
	m.YVar = make([]int, len(used))
	for qi := range used {
		m.YVar[qi] = nextVar
		nextVar++
	}
	m.NumVars = nextVar - 1

	m.base = m.buildBaseConstraints()
	return m, nil
}

// buildBaseConstraints assembles every hard constraint that holds in all
// solve phases.
func (m *Model) buildBaseConstraints() []solver.Constraint {
	var constrs []solver.Constraint

	// Pair selection: each paper gets exactly one pair.
	for pi := range m.Papers {
		lits := make([]int, len(m.PaperVars[pi]))
		for i, idx := range m.PaperVars[pi] {
			lits[i] = m.AssignVars[idx].ID
		}
		constrs = append(constrs, solver.Exactly(lits, 1)...)
	}

	// Workload bounds per reviewer.
	for ri := range m.Reviewers {
		lits := m.reviewerAssignLits(ri)
		constrs = append(constrs,
			solver.AtLeast(lits, m.Opts.Bounds.Min),
			solver.AtMost(lits, m.Opts.Bounds.Max),
		)
	}

	// Two-sided linking. The lower side (y >= x, per paper) alone would let
	// the solver raise indicators without cause and corrupt the degree
	// count; the upper side (y <= sum of x) alone would let used pairs go
	// uncounted. Both directions are required.
	for qi := range m.Pairs {
		y := m.YVar[qi]
		upper := []int{-y}
		for _, idx := range m.PairVars[qi] {
			x := m.AssignVars[idx].ID
			constrs = append(constrs, solver.Clause(-x, y))
			upper = append(upper, x)
		}
		constrs = append(constrs, solver.Clause(upper...))
	}

	// Co-reviewer degree per reviewer over the indicator variables.
	for ri := range m.Reviewers {
		lits := make([]int, len(m.ReviewerPairs[ri]))
		for i, qi := range m.ReviewerPairs[ri] {
			lits[i] = m.YVar[qi]
		}
		constrs = append(constrs, solver.AtMost(lits, m.Opts.CoReviewerLimit))
		if m.Opts.CoReviewerPolicy == CoReviewerExact {
			constrs = append(constrs, solver.AtLeast(lits, m.Opts.CoReviewerLimit))
		}
	}

	return constrs
}

// reviewerAssignLits returns the assignment-variable literals touching the
// reviewer across all papers; their sum is the reviewer's workload.
func (m *Model) reviewerAssignLits(reviewer int) []int {
	var lits []int
	for _, v := range m.AssignVars {
		if m.Pairs[v.Pair].Contains(reviewer) {
			lits = append(lits, v.ID)
		}
	}
	return lits
}

// BaseConstraints returns a copy of the phase-independent constraint set.
func (m *Model) BaseConstraints() []solver.Constraint {
	out := make([]solver.Constraint, len(m.base))
	copy(out, m.base)
	return out
}

// WorkloadCapConstraints returns per-reviewer constraints capping every
// workload at cap. The fairness phase tightens the cap to pin the minimal
// L_max.
func (m *Model) WorkloadCapConstraints(cap int) []solver.Constraint {
	constrs := make([]solver.Constraint, 0, len(m.Reviewers))
	for ri := range m.Reviewers {
		constrs = append(constrs, solver.AtMost(m.reviewerAssignLits(ri), cap))
	}
	return constrs
}

// VarName renders a variable ID for diagnostics.
func (m *Model) VarName(id int) string {
	for _, v := range m.AssignVars {
		if v.ID == id {
			pair := m.Pairs[v.Pair]
			return fmt.Sprintf("x(%s,{%s,%s})", m.Papers[v.Paper].Title,
				m.Reviewers[pair.R1].Name, m.Reviewers[pair.R2].Name)
		}
	}
	for qi, y := range m.YVar {
		if y == id {
			pair := m.Pairs[qi]
			return fmt.Sprintf("y({%s,%s})", m.Reviewers[pair.R1].Name, m.Reviewers[pair.R2].Name)
		}
	}
	return fmt.Sprintf("v%d", id)
}
