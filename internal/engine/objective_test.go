package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

func TestComposeObjective(t *testing.T) {
	papers := []domain.Paper{
		testPaper("P1", "", "graphs", "compilers"),
		testPaper("P2", "", "crypto"),
	}
	reviewers := []domain.Reviewer{
		testReviewer("A", "", "graphs"),
		testReviewer("B", "", "compilers"),
		testReviewer("C", "", "crypto", "graphs"),
	}
	conflicts := BuildConflictSets(papers, reviewers)
	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 2}))
	require.NoError(t, err)

	o := ComposeObjective(m)
	require.Len(t, o.Scores, len(m.AssignVars))

	scoreOf := func(paper, r1, r2 int) int {
		for i, v := range m.AssignVars {
			if v.Paper == paper && m.Pairs[v.Pair] == (Pair{R1: r1, R2: r2}) {
				return o.Scores[i]
			}
		}
		t.Fatalf("no variable for paper %d pair {%d,%d}", paper, r1, r2)
		return 0
	}

	// Union scoring: shared topics between the two reviewers count once.
	assert.Equal(t, 2, scoreOf(0, 0, 1), "A+B cover both P1 topics")
	assert.Equal(t, 1, scoreOf(0, 0, 2), "A+C cover graphs only, counted once")
	assert.Equal(t, 1, scoreOf(1, 0, 2), "crypto covered by C")
	assert.Equal(t, 0, scoreOf(1, 0, 1))

	// Best pair per paper: 2 for P1, 1 for P2.
	assert.Equal(t, 3, o.UpperBound)
}

func TestScoreCutSkipsZeroScores(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", "", "graphs")}
	reviewers := []domain.Reviewer{
		testReviewer("A", "", "graphs"),
		testReviewer("B", ""),
		testReviewer("C", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)
	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 0, Max: 1}))
	require.NoError(t, err)

	o := ComposeObjective(m)
	cut := o.ScoreCut(m, 1)

	// Pairs {A,B} and {A,C} score 1, {B,C} scores 0 and stays out.
	assert.Len(t, cut.Lits, 2)
	assert.Equal(t, []int{1, 1}, cut.Weights)
	assert.Equal(t, 1, cut.AtLeast)
}

func TestEvaluate(t *testing.T) {
	papers := []domain.Paper{testPaper("P1", "", "graphs")}
	reviewers := []domain.Reviewer{
		testReviewer("A", "", "graphs"),
		testReviewer("B", ""),
	}
	conflicts := BuildConflictSets(papers, reviewers)
	m, err := BuildModel(papers, reviewers, conflicts, defaultOptions(Bounds{Min: 1, Max: 1}))
	require.NoError(t, err)

	o := ComposeObjective(m)
	values := map[int]float64{m.AssignVars[0].ID: 1, m.YVar[0]: 1}
	assert.Equal(t, 1, o.Evaluate(m, values))
	assert.Equal(t, 0, o.Evaluate(m, map[int]float64{}))
}
