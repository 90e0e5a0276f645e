package engine

import (
	"fmt"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

// Bounds is the admissible per-reviewer workload range.
type Bounds struct {
	Min int
	Max int
}

// DeriveBounds computes the workload range from the paper and reviewer
// counts. Each paper consumes exactly 2 reviewer slots, so total demand is
// 2P; distributing 2P slots over R reviewers as evenly as possible bounds any
// reviewer's load by floor(2P/R) and ceil(2P/R). This range is always
// satisfiable by a balanced slot distribution, which is why it is derived
// instead of hard-coded.
func DeriveBounds(papers, reviewers int) (Bounds, error) {
	if papers < 1 {
		return Bounds{}, fmt.Errorf("at least 1 paper required, got %d: %w", papers, domain.ErrInfeasibleBounds)
	}
	if reviewers < 2 {
		return Bounds{}, fmt.Errorf("at least 2 reviewers required, got %d: %w", reviewers, domain.ErrInfeasibleBounds)
	}

	slots := 2 * papers
	b := Bounds{Min: slots / reviewers, Max: slots / reviewers}
	if slots%reviewers != 0 {
		b.Max++
	}
	return b, nil
}

// Validate checks that the range can absorb the slot demand:
// Min*R <= 2P <= Max*R. Used with externally supplied fixed ranges, where no
// arithmetic guarantees the envelope holds.
func (b Bounds) Validate(papers, reviewers int) error {
	slots := 2 * papers
	if b.Min*reviewers > slots || b.Max*reviewers < slots {
		return domain.NewInfeasibleBoundsError(b.Min, b.Max, papers, reviewers)
	}
	return nil
}

// MinimumLMax returns the smallest value the maximum workload can take:
// ceil(2P/R), by pigeonhole. The fairness phase sweeps caps starting here.
func MinimumLMax(papers, reviewers int) int {
	slots := 2 * papers
	lmax := slots / reviewers
	if slots%reviewers != 0 {
		lmax++
	}
	return lmax
}
