package engine

import "github.com/helixir/reviewer-assignment-service/internal/domain"

// ConflictSet holds the reviewer indices forbidden for one paper due to
// institutional conflict. Derived from catalog data, never stored.
type ConflictSet map[int]struct{}

// Contains reports whether the reviewer index is conflicted.
func (c ConflictSet) Contains(reviewer int) bool {
	_, ok := c[reviewer]
	return ok
}

// BuildConflictSets computes, for each paper, the set of reviewers sharing an
// institution with any of the paper's authors. Pure function of the catalog.
func BuildConflictSets(papers []domain.Paper, reviewers []domain.Reviewer) []ConflictSet {
	sets := make([]ConflictSet, len(papers))
	for pi := range papers {
		set := make(ConflictSet)
		for ri := range reviewers {
			if reviewers[ri].ConflictsWith(&papers[pi]) {
				set[ri] = struct{}{}
			}
		}
		sets[pi] = set
	}
	return sets
}

// StarvedPapers returns the titles of papers whose conflict-free reviewer
// pool has fewer than 2 members. Such papers have zero candidate pairs; they
// are a data-quality signal and must be reported before any solve is
// attempted.
func StarvedPapers(papers []domain.Paper, conflicts []ConflictSet, reviewers int) []string {
	var starved []string
	for pi := range papers {
		if reviewers-len(conflicts[pi]) < 2 {
			starved = append(starved, papers[pi].Title)
		}
	}
	return starved
}
