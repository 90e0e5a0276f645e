package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

func defaultOptions(bounds Bounds) Options {
	return Options{
		Bounds:           bounds,
		CoReviewerLimit:  2,
		CoReviewerPolicy: CoReviewerMax,
		Objective:        Lexicographic,
	}
}

func TestBuildModelNoConflicts(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", ""), testPaper("P2", "")}
	reviewers := []domain.Reviewer{
		testReviewer("A", ""), testReviewer("B", ""), testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 2}))
	require.NoError(t, err)

	assert.Len(t, m.Pairs, 3, "3 unordered pairs of 3 reviewers")
	assert.Len(t, m.AssignVars, 6, "every pair is a candidate for every paper")
	assert.Equal(t, 9, m.NumVars, "6 assignment variables plus 3 indicators")

	// Pair selection (2 per paper), workload (2 per reviewer), linking
	// (papers+1 per pair), degree (1 per reviewer under the max policy).
	want := 2*2 + 3*2 + 3*(2+1) + 3
	assert.Len(t, m.BaseConstraints(), want)
}

func TestBuildModelDeterministicNumbering(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", ""), testPaper("P2", "")}
	reviewers := []domain.Reviewer{
		testReviewer("A", ""), testReviewer("B", ""), testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	m1, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 2}))
	require.NoError(t, err)
	m2, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 2}))
	require.NoError(t, err)

	assert.Equal(t, m1.AssignVars, m2.AssignVars)
	assert.Equal(t, m1.YVar, m2.YVar)
	assert.Equal(t, m1.BaseConstraints(), m2.BaseConstraints())

	// Paper-major: the first variables all belong to the first paper.
	for i, v := range m1.AssignVars {
		assert.Equal(t, i+1, v.ID)
	}
	assert.Equal(t, 0, m1.AssignVars[0].Paper)
	assert.Equal(t, 1, m1.AssignVars[3].Paper)
}

func TestBuildModelExcludesConflictedPairs(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", "MIT")}
	reviewers := []domain.Reviewer{
		testReviewer("A", "MIT"),
		testReviewer("B", ""),
		testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 0, Max: 1}))
	require.NoError(t, err)

	// Only {B,C} survives: every pair containing A is conflicted on the only
	// paper and gets no variable at all.
	require.Len(t, m.Pairs, 1)
	assert.Equal(t, Pair{R1: 1, R2: 2}, m.Pairs[0])
	assert.Len(t, m.AssignVars, 1)
}

func TestBuildModelStarvedPaper(t *testing.T) {
	papers := []domain.Paper{testPaper("lonely", "MIT")}
	reviewers := []domain.Reviewer{
		testReviewer("A", "MIT"),
		testReviewer("B", "mit"),
		testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	_, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 0, Max: 1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoCandidatePairs)

	var ncp *domain.NoCandidatePairsError
	require.ErrorAs(t, err, &ncp)
	assert.Equal(t, []string{"lonely"}, ncp.Papers)
}

func TestBuildModelExactDegreeAddsLowerBound(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", ""), testPaper("P2", "")}
	reviewers := []domain.Reviewer{
		testReviewer("A", ""), testReviewer("B", ""), testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	opts := defaultOptions(Bounds{Min: 1, Max: 2})
	opts.CoReviewerPolicy = CoReviewerExact
	m, err := BuildModel(papers, reviewers, conflicts, opts)
	require.NoError(t, err)

	optsMax := defaultOptions(Bounds{Min: 1, Max: 2})
	mMax, err := BuildModel(papers, reviewers, conflicts, optsMax)
	require.NoError(t, err)

	assert.Len(t, m.BaseConstraints(), len(mMax.BaseConstraints())+len(reviewers))
}

func TestWorkloadCapConstraints(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", ""), testPaper("P2", "")}
	reviewers := []domain.Reviewer{
		testReviewer("A", ""), testReviewer("B", ""), testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)

	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 2}))
	require.NoError(t, err)

	caps := m.WorkloadCapConstraints(1)
	assert.Len(t, caps, len(reviewers))
}

func TestVarName(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", "")}
	reviewers := []domain.Reviewer{testReviewer("A", ""), testReviewer("B", "")}
	conflicts := BuildConflictSets(papers, reviewers)

	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 1}))
	require.NoError(t, err)

	assert.Equal(t, "x(P1,{A,B})", m.VarName(m.AssignVars[0].ID))
	assert.Equal(t, "y({A,B})", m.VarName(m.YVar[0]))
	assert.Equal(t, "v99", m.VarName(99))
}
