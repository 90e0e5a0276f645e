package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/observability"
	"github.com/helixir/reviewer-assignment-service/internal/solver"
)

// TimeoutPolicy decides what happens when the solver time limit expires
// mid-optimization.
type TimeoutPolicy int

// Timeout policies.
const (
	// TimeoutFail aborts the run with ErrSolverTimeout.
	TimeoutFail TimeoutPolicy = iota
	// TimeoutBestEffort keeps the best incumbent integer solution found in
	// completed phases and labels the result non-optimal.
	TimeoutBestEffort
)

// Solution is the raw solved state before extraction: variable values of the
// best incumbent, plus how far the optimization got.
type Solution struct {
	Values  map[int]float64
	LMax    int
	Score   int
	Optimal bool
}

// Solver is the backend contract the engine drives. *solver.Adapter is the
// production implementation.
type Solver interface {
	Solve(ctx context.Context, m *solver.Model) (solver.Result, error)
}

// Engine resolves the lexicographic (or single) objective through sequential
// solves: feasibility first, then the minimal L_max by an ascending cap
// sweep, then the maximal topic score by binary search with L_max pinned.
// Sequential solves give the exactness guarantee of "optimize fairness, then
// topic score among fairness-optimal solutions" without a cross-magnitude
// weighted sum.
type Engine struct {
	adapter       Solver
	logger        zerolog.Logger
	metrics       *observability.Metrics
	timeoutPolicy TimeoutPolicy

	attempts int
}

// New creates an Engine. metrics may be nil to disable instrumentation.
func New(adapter Solver, logger zerolog.Logger, metrics *observability.Metrics, policy TimeoutPolicy) *Engine {
	return &Engine{
		adapter:       adapter,
		logger:        logger.With().Str("component", "engine").Logger(),
		metrics:       metrics,
		timeoutPolicy: policy,
	}
}

// Solve runs all phases on the model and returns the best incumbent. The ctx
// deadline bounds the total time across phases; it is the only cancellation
// path, and nothing is retried.
func (e *Engine) Solve(ctx context.Context, m *Model, o *Objective) (*Solution, error) {
	sol := &Solution{Optimal: true}

	// Phase 1: feasibility under the configured bounds.
	res, err := e.runPhase(ctx, "feasibility", m, m.BaseConstraints())
	if err != nil {
		return nil, err
	}
	switch res.Outcome {
	case solver.OutcomeInfeasible:
		return nil, fmt.Errorf(
			"no assignment satisfies workload [%d,%d] and co-reviewer limit %d: %w",
			m.Opts.Bounds.Min, m.Opts.Bounds.Max, m.Opts.CoReviewerLimit, domain.ErrSolverInfeasible)
	case solver.OutcomeUnknown:
		// No incumbent exists yet, so even best-effort has nothing to emit.
		return nil, fmt.Errorf("time limit reached before any feasible solution: %w", domain.ErrSolverTimeout)
	}
	sol.Values = res.Values

	// Phase 2: minimal maximum workload (lexicographic mode only). The cap
	// sweep starts at the pigeonhole floor ceil(2P/R) and the first
	// satisfiable cap is the optimum.
	loadCap := m.Opts.Bounds.Max
	if o.Mode == Lexicographic {
		floor := MinimumLMax(len(m.Papers), len(m.Reviewers))
		for candidate := floor; candidate < m.Opts.Bounds.Max; candidate++ {
			constrs := append(m.BaseConstraints(), m.WorkloadCapConstraints(candidate)...)
			res, err = e.runPhase(ctx, "fairness", m, constrs)
			if err != nil {
				return nil, err
			}
			if res.Outcome == solver.OutcomeUnknown {
				if e.timeoutPolicy == TimeoutFail {
					return nil, fmt.Errorf("time limit reached while minimizing maximum workload: %w", domain.ErrSolverTimeout)
				}
				sol.Optimal = false
				break
			}
			if res.Outcome == solver.OutcomeSatisfiable {
				sol.Values = res.Values
				loadCap = candidate
				break
			}
			// Infeasible: no assignment fits under this cap, try the next.
		}
	}

	// Phase 3: maximal topic score with the workload cap pinned. Binary
	// search over total score; the analytic upper bound caps the range.
	if sol.Optimal {
		lo := o.Evaluate(m, sol.Values)
		hi := o.UpperBound
		for lo < hi {
			mid := (lo + hi + 1) / 2
			constrs := append(m.BaseConstraints(), m.WorkloadCapConstraints(loadCap)...)
			constrs = append(constrs, o.ScoreCut(m, mid))
			res, err = e.runPhase(ctx, "topic", m, constrs)
			if err != nil {
				return nil, err
			}
			if res.Outcome == solver.OutcomeUnknown {
				if e.timeoutPolicy == TimeoutFail {
					return nil, fmt.Errorf("time limit reached while maximizing topic score: %w", domain.ErrSolverTimeout)
				}
				sol.Optimal = false
				break
			}
			if res.Outcome == solver.OutcomeSatisfiable {
				sol.Values = res.Values
				lo = mid
			} else {
				hi = mid - 1
			}
		}
	}

	sol.Score = o.Evaluate(m, sol.Values)
	sol.LMax = e.maxWorkload(m, sol.Values)
	e.logger.Info().
		Int("l_max", sol.LMax).
		Int("topic_score", sol.Score).
		Bool("optimal", sol.Optimal).
		Msg("solve finished")
	return sol, nil
}

// runPhase submits one decision model to the adapter and records metrics.
func (e *Engine) runPhase(ctx context.Context, phase string, m *Model, constrs []solver.Constraint) (solver.Result, error) {
	e.attempts++
	logger := observability.WithSolveContext(e.logger, phase, e.attempts)
	logger.Debug().Int("constraints", len(constrs)).Msg("submitting model")

	start := time.Now()
	res, err := e.adapter.Solve(ctx, &solver.Model{NumVars: m.NumVars, Constraints: constrs})
	if err != nil {
		return solver.Result{}, fmt.Errorf("solve phase %s: %w", phase, err)
	}

	if e.metrics != nil {
		e.metrics.Solves.WithLabelValues(phase, res.Outcome.String()).Inc()
		e.metrics.SolveDuration.Observe(time.Since(start).Seconds())
	}
	logger.Debug().Stringer("outcome", res.Outcome).Msg("phase result")
	return res, nil
}

// maxWorkload computes the realized maximum workload of an incumbent.
func (e *Engine) maxWorkload(m *Model, values map[int]float64) int {
	loads := make([]int, len(m.Reviewers))
	for _, v := range m.AssignVars {
		if values[v.ID] > 0.5 {
			pair := m.Pairs[v.Pair]
			loads[pair.R1]++
			loads[pair.R2]++
		}
	}
	maxLoad := 0
	for _, l := range loads {
		if l > maxLoad {
			maxLoad = l
		}
	}
	return maxLoad
}
