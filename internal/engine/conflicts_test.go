package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

func testPaper(title, institution string, topics ...string) domain.Paper {
	return domain.Paper{
		ID:      uuid.New(),
		Title:   title,
		Authors: []domain.Author{{Name: title + " author", Institution: institution}},
		Topics:  topics,
	}
}

func testReviewer(name, institution string, topics ...string) domain.Reviewer {
	return domain.Reviewer{
		ID:          uuid.New(),
		Name:        name,
		Institution: institution,
		Topics:      topics,
	}
}

func TestBuildConflictSets(t *testing.T) {
	papers := []domain.Paper{
		testPaper("P1", "MIT"),
		testPaper("P2", "  mit "),
		testPaper("P3", ""),
	}
	reviewers := []domain.Reviewer{
		testReviewer("A", "MIT"),
		testReviewer("B", "ETH"),
		testReviewer("C", ""),
	}

	sets := BuildConflictSets(papers, reviewers)

	assert.True(t, sets[0].Contains(0), "same institution conflicts")
	assert.False(t, sets[0].Contains(1))
	assert.False(t, sets[0].Contains(2), "reviewer without institution never conflicts")

	assert.True(t, sets[1].Contains(0), "institution matching is normalized")

	assert.Empty(t, sets[2], "paper without institutions conflicts with nobody")
}

func TestStarvedPapers(t *testing.T) {
	papers := []domain.Paper{
		testPaper("healthy", "x"),
		testPaper("starved", "y"),
	}
	conflicts := []ConflictSet{
		{0: {}},
		{0: {}, 1: {}},
	}

	starved := StarvedPapers(papers, conflicts, 3)
	assert.Equal(t, []string{"starved"}, starved)

	assert.Empty(t, StarvedPapers(papers, []ConflictSet{{}, {}}, 3))
}
