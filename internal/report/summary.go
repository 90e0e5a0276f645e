package report

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/engine"
)

// LogSummary writes the run outcome to the log: the headline numbers, then
// one line per reviewer with their workload and co-reviewer list.
func LogSummary(logger zerolog.Logger, a *engine.Assignment, reviewers []domain.Reviewer) {
	logger.Info().
		Int("papers", len(a.Papers)).
		Int("reviewers", len(reviewers)).
		Int("max_workload", a.LMax).
		Int("topic_score", a.TotalScore).
		Bool("optimal", a.Optimal).
		Msg("assignment complete")

	for ri, r := range reviewers {
		partners := make([]string, 0, len(a.CoReviewers[ri]))
		for _, pi := range a.CoReviewers[ri] {
			partners = append(partners, reviewers[pi].Name)
		}
		logger.Info().
			Str("reviewer", r.Name).
			Int("papers", a.Workloads[ri]).
			Str("co_reviewers", strings.Join(partners, ", ")).
			Msg("reviewer workload")
	}
}
