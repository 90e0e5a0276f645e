// Command assign runs one reviewer-pair assignment: it reads the paper and
// reviewer sheets, builds and solves the constraint model, and writes the
// result tables. The process is a single-shot batch job; it opens no network
// surface and persists nothing beyond the output tables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/helixir/reviewer-assignment-service/internal/config"
	"github.com/helixir/reviewer-assignment-service/internal/engine"
	"github.com/helixir/reviewer-assignment-service/internal/ingest"
	"github.com/helixir/reviewer-assignment-service/internal/observability"
	"github.com/helixir/reviewer-assignment-service/internal/report"
	"github.com/helixir/reviewer-assignment-service/internal/solver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assign: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("revassign")
	}

	catalog, err := ingest.NewLoader(logger, metrics).Load(ingest.Options{
		PapersPath:          cfg.Input.PapersPath,
		ReviewersPath:       cfg.Input.ReviewersPath,
		PaperTopicColumn:    cfg.Input.PaperTopicColumn,
		ReviewerTopicColumn: cfg.Input.ReviewerTopicColumn,
	})
	if err != nil {
		return err
	}

	bounds, err := resolveBounds(cfg, len(catalog.Papers), len(catalog.Reviewers))
	if err != nil {
		return err
	}
	logger.Info().
		Int("workload_min", bounds.Min).
		Int("workload_max", bounds.Max).
		Str("mode", cfg.Assignment.WorkloadMode).
		Msg("workload bounds resolved")

	conflicts := engine.BuildConflictSets(catalog.Papers, catalog.Reviewers)

	m, err := engine.BuildModel(catalog.Papers, catalog.Reviewers, conflicts, engine.Options{
		Bounds:           bounds,
		CoReviewerLimit:  cfg.Assignment.CoReviewerLimit,
		CoReviewerPolicy: coReviewerPolicy(cfg.Assignment.CoReviewerPolicy),
		Objective:        objectiveMode(cfg.Assignment.Objective),
	})
	if err != nil {
		return err
	}
	if metrics != nil {
		metrics.VariablesBuilt.Add(float64(m.NumVars))
		metrics.ConstraintsBuilt.Add(float64(len(m.BaseConstraints())))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Solver.TimeLimit)
	defer cancel()

	objective := engine.ComposeObjective(m)
	eng := engine.New(solver.New(logger), logger, metrics, timeoutPolicy(cfg.Solver.OnTimeout))
	sol, err := eng.Solve(ctx, m, objective)
	if err != nil {
		return err
	}

	assignment, err := engine.Extract(m, objective, sol)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(logger, cfg.Output.Dir, cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(assignment, catalog.Reviewers); err != nil {
		return err
	}

	report.LogSummary(logger, assignment, catalog.Reviewers)
	if metrics != nil {
		metrics.LogSummary(logger)
	}
	return nil
}

// resolveBounds obtains the workload range per the configured mode. A fixed
// range is validated against the slot arithmetic before any model is built.
func resolveBounds(cfg *config.Config, papers, reviewers int) (engine.Bounds, error) {
	if cfg.Assignment.WorkloadMode == config.WorkloadModeFixed {
		b := engine.Bounds{Min: cfg.Assignment.WorkloadMin, Max: cfg.Assignment.WorkloadMax}
		if err := b.Validate(papers, reviewers); err != nil {
			return engine.Bounds{}, err
		}
		return b, nil
	}
	return engine.DeriveBounds(papers, reviewers)
}

func coReviewerPolicy(name string) engine.CoReviewerPolicy {
	if name == config.CoReviewerPolicyExact {
		return engine.CoReviewerExact
	}
	return engine.CoReviewerMax
}

func objectiveMode(name string) engine.ObjectiveMode {
	if name == config.ObjectiveSingle {
		return engine.SingleObjective
	}
	return engine.Lexicographic
}

func timeoutPolicy(name string) engine.TimeoutPolicy {
	if name == config.TimeoutPolicyBestEffort {
		return engine.TimeoutBestEffort
	}
	return engine.TimeoutFail
}
