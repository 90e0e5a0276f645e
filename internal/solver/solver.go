// Package solver adapts a pseudo-Boolean solving backend to the assignment
// engine. The engine builds a neutral Model; only this package knows the
// backend (gophersat). The backend is treated as an opaque capability: the
// adapter never inspects solver internals and never fabricates a partial
// assignment when the model is infeasible.
package solver

import (
	"context"
	"time"

	gophersat "github.com/crillab/gophersat/solver"
	"github.com/rs/zerolog"
)

// Constraint is a linear pseudo-Boolean constraint over binary variables:
// sum of Weights[i] * value(Lits[i]) >= AtLeast. A negative literal -v stands
// for the negation of variable v. Nil Weights means all weights are 1.
type Constraint struct {
	Lits    []int
	Weights []int
	AtLeast int
}

// Model is a complete all-binary linear constraint system. Variables are
// numbered 1..NumVars; every variable must occur in at least one constraint.
type Model struct {
	NumVars     int
	Constraints []Constraint
}

// Outcome classifies the result of a solve call.
type Outcome int

// Solve outcomes.
const (
	// OutcomeSatisfiable means a feasible integer solution was found.
	OutcomeSatisfiable Outcome = iota
	// OutcomeInfeasible means the model has no feasible integer solution.
	OutcomeInfeasible
	// OutcomeUnknown means the solve was interrupted before a conclusion,
	// typically by the time limit.
	OutcomeUnknown
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSatisfiable:
		return "satisfiable"
	case OutcomeInfeasible:
		return "infeasible"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Result carries the solve outcome and, when satisfiable, the variable
// values. Values are exposed as float64 per the adapter contract: a generic
// ILP backend reports relaxed numerics, and the extractor is responsible for
// epsilon rounding and re-validation.
type Result struct {
	Outcome Outcome
	Values  map[int]float64
}

// Adapter submits models to the backend solver.
type Adapter struct {
	logger zerolog.Logger
}

// New creates a solver adapter.
func New(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger.With().Str("component", "solver").Logger()}
}

// Solve runs the backend on the model, honoring the context deadline. The
// deadline is the only cancellation path; there are no automatic retries.
func (a *Adapter) Solve(ctx context.Context, m *Model) (Result, error) {
	constrs := make([]gophersat.PBConstr, 0, len(m.Constraints))
	for _, c := range m.Constraints {
		weights := c.Weights
		if weights == nil {
			weights = unitWeights(len(c.Lits))
		}
		constrs = append(constrs, gophersat.PBConstr{
			Lits:    c.Lits,
			Weights: weights,
			AtLeast: c.AtLeast,
		})
	}

	problem := gophersat.ParsePBConstrs(constrs)
	s := gophersat.New(problem)

	stop := make(chan struct{})
	done := make(chan gophersat.Result, 1)

	start := time.Now()
	go func() {
		done <- s.Optimal(nil, stop)
	}()

	var res gophersat.Result
	select {
	case res = <-done:
	case <-ctx.Done():
		close(stop)
		res = <-done
	}
	elapsed := time.Since(start)

	switch res.Status {
	case gophersat.Sat:
		values := make(map[int]float64, m.NumVars)
		// res.Model is 0-indexed; variable v lives at Model[v-1].
		for v := 1; v <= m.NumVars; v++ {
			if res.Model[v-1] {
				values[v] = 1
			} else {
				values[v] = 0
			}
		}
		a.logger.Debug().
			Dur("elapsed", elapsed).
			Int("vars", m.NumVars).
			Int("constraints", len(m.Constraints)).
			Msg("model satisfiable")
		return Result{Outcome: OutcomeSatisfiable, Values: values}, nil
	case gophersat.Unsat:
		a.logger.Debug().Dur("elapsed", elapsed).Msg("model infeasible")
		return Result{Outcome: OutcomeInfeasible}, nil
	default:
		a.logger.Warn().Dur("elapsed", elapsed).Msg("solve interrupted before a conclusion")
		return Result{Outcome: OutcomeUnknown}, nil
	}
}

// AtLeast builds a cardinality constraint requiring at least n of the given
// literals to be true.
func AtLeast(lits []int, n int) Constraint {
	return Constraint{Lits: lits, AtLeast: n}
}

// AtMost builds a cardinality constraint allowing at most n of the given
// literals to be true, encoded by negating every literal: at most n of L is
// at least len(L)-n of not-L.
func AtMost(lits []int, n int) Constraint {
	negated := make([]int, len(lits))
	for i, lit := range lits {
		negated[i] = -lit
	}
	return Constraint{Lits: negated, AtLeast: len(lits) - n}
}

// Exactly builds the pair of cardinality constraints requiring exactly n of
// the given literals to be true.
func Exactly(lits []int, n int) []Constraint {
	return []Constraint{AtLeast(lits, n), AtMost(lits, n)}
}

// Clause builds a plain disjunction: at least one literal true.
func Clause(lits ...int) Constraint {
	return Constraint{Lits: lits, AtLeast: 1}
}

// WeightedAtLeast builds a weighted pseudo-Boolean constraint:
// sum(weights[i] * lits[i]) >= n.
func WeightedAtLeast(lits, weights []int, n int) Constraint {
	return Constraint{Lits: lits, Weights: weights, AtLeast: n}
}

func unitWeights(n int) []int {
	weights := make([]int, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}
