// Package ingest builds the entity catalog from the paper and reviewer
// sheets. Ingestion is a pure transformation of the input files: it validates
// every row, merges multi-author paper rows, and parses topic cells; it never
// repairs data. The first malformed row aborts the run.
package ingest

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/observability"
)

// maxPaperTopics is the submission form's topic cap.
const maxPaperTopics = 3

// Options locates the input sheets and names their topic columns. The topic
// headers are configurable because survey exports carry the full question text
// as the header.
type Options struct {
	PapersPath          string
	ReviewersPath       string
	PaperTopicColumn    string
	ReviewerTopicColumn string
}

// Catalog is the validated entity set an assignment run operates on.
type Catalog struct {
	Papers    []domain.Paper
	Reviewers []domain.Reviewer
}

// paperRecord is one raw papers-sheet row. One paper spans one row per
// author; title and topics are repeated on every row.
type paperRecord struct {
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	Institution string
	Topics      string `validate:"required"`
}

// reviewerRecord is one raw reviewers-sheet row.
type reviewerRecord struct {
	Name        string `validate:"required"`
	Institution string
	Topics      string `validate:"required"`
}

// Loader reads and validates the input sheets.
type Loader struct {
	logger   zerolog.Logger
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewLoader creates a Loader. metrics may be nil to disable instrumentation.
func NewLoader(logger zerolog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		logger:   logger.With().Str("component", "ingest").Logger(),
		metrics:  metrics,
		validate: validator.New(),
	}
}

// Load reads both sheets and returns the catalog.
func (l *Loader) Load(opts Options) (*Catalog, error) {
	papers, err := l.loadPapers(opts.PapersPath, opts.PaperTopicColumn)
	if err != nil {
		return nil, fmt.Errorf("load papers: %w", err)
	}
	reviewers, err := l.loadReviewers(opts.ReviewersPath, opts.ReviewerTopicColumn)
	if err != nil {
		return nil, fmt.Errorf("load reviewers: %w", err)
	}

	if l.metrics != nil {
		l.metrics.PapersIngested.Add(float64(len(papers)))
		l.metrics.ReviewersIngested.Add(float64(len(reviewers)))
	}
	l.logger.Info().
		Int("papers", len(papers)).
		Int("reviewers", len(reviewers)).
		Msg("catalog loaded")
	return &Catalog{Papers: papers, Reviewers: reviewers}, nil
}

// loadPapers reads the papers sheet and merges author rows by title, keeping
// papers in first-occurrence order. Topics are taken from the first row of a
// paper; later rows only contribute their author.
func (l *Loader) loadPapers(path, topicColumn string) ([]domain.Paper, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	titleCol, err := t.column("Paper Title")
	if err != nil {
		return nil, err
	}
	nameCol, err := t.column("Name")
	if err != nil {
		return nil, err
	}
	instCol, err := t.column("Institution")
	if err != nil {
		return nil, err
	}
	topicCol, err := t.column(topicColumn)
	if err != nil {
		return nil, err
	}

	var papers []domain.Paper
	byTitle := make(map[string]int)
	for i, row := range t.rows {
		rowNum := i + 2 // 1-based, after the header
		rec := paperRecord{
			Title:       t.cell(row, titleCol),
			Author:      t.cell(row, nameCol),
			Institution: t.cell(row, instCol),
			Topics:      t.cell(row, topicCol),
		}
		if err := l.checkRecord(rec, path, rowNum); err != nil {
			return nil, err
		}

		author := domain.Author{Name: rec.Author, Institution: rec.Institution}
		if pi, ok := byTitle[rec.Title]; ok {
			papers[pi].Authors = append(papers[pi].Authors, author)
			continue
		}

		topics, err := l.parseTopics(t.rawCell(row, topicCol), path, rowNum, topicColumn)
		if err != nil {
			return nil, err
		}
		if len(topics) > maxPaperTopics {
			return nil, domain.NewMalformedRecordError(path, rowNum, topicColumn,
				fmt.Sprintf("%d topics exceed the submission cap of %d", len(topics), maxPaperTopics))
		}

		paper := domain.Paper{
			ID:      uuid.New(),
			Title:   rec.Title,
			Authors: []domain.Author{author},
			Topics:  topics,
		}
		byTitle[rec.Title] = len(papers)
		papers = append(papers, paper)
		logger := observability.WithPaperContext(l.logger, paper.ID.String(), paper.Title)
		logger.Debug().Int("topics", len(topics)).Msg("paper ingested")
	}
	return papers, nil
}

// loadReviewers reads the reviewers sheet, one reviewer per row.
func (l *Loader) loadReviewers(path, topicColumn string) ([]domain.Reviewer, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	nameCol, err := t.column("Name")
	if err != nil {
		return nil, err
	}
	topicCol, err := t.column(topicColumn)
	if err != nil {
		return nil, err
	}
	// Some committee exports omit the institution column entirely; every
	// reviewer then conflicts with nothing.
	instCol, instErr := t.column("Institution")

	var reviewers []domain.Reviewer
	for i, row := range t.rows {
		rowNum := i + 2
		rec := reviewerRecord{
			Name:   t.cell(row, nameCol),
			Topics: t.cell(row, topicCol),
		}
		if instErr == nil {
			rec.Institution = t.cell(row, instCol)
		}
		if err := l.checkRecord(rec, path, rowNum); err != nil {
			return nil, err
		}

		topics, err := l.parseTopics(t.rawCell(row, topicCol), path, rowNum, topicColumn)
		if err != nil {
			return nil, err
		}
		reviewer := domain.Reviewer{
			ID:          uuid.New(),
			Name:        rec.Name,
			Institution: rec.Institution,
			Topics:      topics,
		}
		reviewers = append(reviewers, reviewer)
		logger := observability.WithReviewerContext(l.logger, reviewer.ID.String(), reviewer.Name)
		logger.Debug().Int("topics", len(topics)).Msg("reviewer ingested")
	}
	return reviewers, nil
}

// checkRecord runs struct validation and translates the first failure into a
// MalformedRecordError locating the offending cell.
func (l *Loader) checkRecord(rec any, path string, row int) error {
	err := l.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewMalformedRecordError(path, row, verrs[0].Field(), "required value is missing")
	}
	return fmt.Errorf("validate row %d of %s: %w", row, path, err)
}

// parseTopics splits a topic cell, locating parse failures in the sheet.
func (l *Loader) parseTopics(raw, path string, row int, column string) ([]string, error) {
	topics, err := domain.SplitTopics(raw)
	if err != nil {
		return nil, domain.NewMalformedRecordError(path, row, column, "ambiguous topic list")
	}
	return topics, nil
}
