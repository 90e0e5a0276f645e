package solver

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter() *Adapter {
	return New(zerolog.Nop())
}

func TestSolve_Satisfiable(t *testing.T) {
	// x1 XOR x2, x1 forbidden: only x2 remains.
	m := &Model{
		NumVars: 2,
		Constraints: append(
			Exactly([]int{1, 2}, 1),
			Clause(-1),
		),
	}

	res, err := testAdapter().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, OutcomeSatisfiable, res.Outcome)
	assert.Equal(t, 0.0, res.Values[1])
	assert.Equal(t, 1.0, res.Values[2])
}

func TestSolve_ValueIndexing(t *testing.T) {
	// Pin each variable so any off-by-one between backend model positions
	// and 1-based variable IDs shifts an asserted value.
	m := &Model{
		NumVars: 3,
		Constraints: []Constraint{
			Clause(-1), Clause(2), Clause(-3),
		},
	}

	res, err := testAdapter().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, OutcomeSatisfiable, res.Outcome)
	assert.Equal(t, 0.0, res.Values[1])
	assert.Equal(t, 1.0, res.Values[2])
	assert.Equal(t, 0.0, res.Values[3])
}

func TestSolve_Infeasible(t *testing.T) {
	// A single literal cannot reach a count of two.
	m := &Model{
		NumVars:     1,
		Constraints: []Constraint{AtLeast([]int{1}, 2)},
	}

	res, err := testAdapter().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInfeasible, res.Outcome)
}

func TestSolve_WeightedConstraint(t *testing.T) {
	// 3*x1 + 1*x2 >= 3 with at most one of x1,x2: forces x1.
	m := &Model{
		NumVars: 2,
		Constraints: []Constraint{
			WeightedAtLeast([]int{1, 2}, []int{3, 1}, 3),
			AtMost([]int{1, 2}, 1),
		},
	}

	res, err := testAdapter().Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, OutcomeSatisfiable, res.Outcome)
	assert.Equal(t, 1.0, res.Values[1])
	assert.Equal(t, 0.0, res.Values[2])
}

func TestConstraintHelpers(t *testing.T) {
	c := AtMost([]int{1, 2, 3}, 2)
	assert.Equal(t, []int{-1, -2, -3}, c.Lits)
	assert.Equal(t, 1, c.AtLeast)

	pair := Exactly([]int{4, 5}, 1)
	require.Len(t, pair, 2)
	assert.Equal(t, 1, pair[0].AtLeast)
	assert.Equal(t, []int{-4, -5}, pair[1].Lits)
	assert.Equal(t, 1, pair[1].AtLeast)

	clause := Clause(-7, 8)
	assert.Equal(t, []int{-7, 8}, clause.Lits)
	assert.Equal(t, 1, clause.AtLeast)
}
