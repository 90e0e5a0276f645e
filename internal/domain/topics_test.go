package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "single topic",
			raw:      "Machine Learning",
			expected: []string{"Machine Learning"},
		},
		{
			name:     "comma inside topic is preserved",
			raw:      "A, B and C, D",
			expected: []string{"A", "B and C", "D"},
		},
		{
			name:     "bare comma does not split",
			raw:      "Networks,Systems",
			expected: []string{"Networks,Systems"},
		},
		{
			name:     "per-topic whitespace trimmed",
			raw:      "  Databases,  Security  ",
			expected: []string{"Databases", "Security"},
		},
		{
			name:     "duplicates removed, order preserved",
			raw:      "Security, Databases, Security",
			expected: []string{"Security", "Databases"},
		},
		{
			name:     "empty cell",
			raw:      "   ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics, err := SplitTopics(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, topics)
		})
	}
}

func TestSplitTopics_Ambiguous(t *testing.T) {
	for _, raw := range []string{"A, ", "A, , B", ", A"} {
		_, err := SplitTopics(raw)
		assert.ErrorIs(t, err, ErrMalformedRecord, "input %q", raw)
	}
}

func TestPairOverlap(t *testing.T) {
	paper := []string{"ml", "systems", "security"}

	// Union variant: a topic both reviewers cover counts once.
	assert.Equal(t, 2, PairOverlap(paper, []string{"ml"}, []string{"ml", "systems"}))
	assert.Equal(t, 0, PairOverlap(paper, []string{"theory"}, []string{"graphics"}))
	assert.Equal(t, 3, PairOverlap(paper, []string{"ml", "security"}, []string{"systems"}))
	assert.Equal(t, 0, PairOverlap(nil, []string{"ml"}, nil))
}

func TestSharedTopics(t *testing.T) {
	shared := SharedTopics(
		[]string{"systems", "ml", "security"},
		[]string{"ml"},
		[]string{"security", "theory"},
	)
	assert.Equal(t, []string{"ml", "security"}, shared)

	assert.Empty(t, SharedTopics([]string{"ml"}, []string{"theory"}, nil))
}

func TestPaperInstitutions(t *testing.T) {
	p := Paper{
		Title: "Example",
		Authors: []Author{
			{Name: "Ada", Institution: " MIT "},
			{Name: "Ben", Institution: "mit"},
			{Name: "Cyd", Institution: ""},
			{Name: "Dia", Institution: "ETH"},
		},
	}
	assert.Equal(t, []string{"mit", "eth"}, p.Institutions())
}

func TestReviewerConflictsWith(t *testing.T) {
	p := Paper{
		Title:   "Example",
		Authors: []Author{{Name: "Ada", Institution: "MIT"}},
	}

	r := Reviewer{Name: "Rev", Institution: "mit "}
	assert.True(t, r.ConflictsWith(&p))

	r.Institution = "ETH"
	assert.False(t, r.ConflictsWith(&p))

	// Reviewers without an institution never conflict.
	r.Institution = ""
	assert.False(t, r.ConflictsWith(&p))
}
