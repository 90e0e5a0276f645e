// Package report renders the outputs of an assignment run: the result tables
// written to disk and the human-readable console summary. Rendering never
// mutates the assignment; a failed write leaves no partial state behind other
// than the file being written.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
	"github.com/helixir/reviewer-assignment-service/internal/engine"
)

// Table formats.
const (
	// FormatCSV writes one CSV file per table.
	FormatCSV = "csv"
	// FormatXLSX writes one single-sheet workbook per table.
	FormatXLSX = "xlsx"
)

// Writer writes result tables into a directory.
type Writer struct {
	logger zerolog.Logger
	dir    string
	format string
}

// NewWriter creates a table writer. format must be one of the Format
// constants.
func NewWriter(logger zerolog.Logger, dir, format string) (*Writer, error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
	return &Writer{
		logger: logger.With().Str("component", "report").Logger(),
		dir:    dir,
		format: format,
	}, nil
}

// WriteAll writes every result table.
func (w *Writer) WriteAll(a *engine.Assignment, reviewers []domain.Reviewer) error {
	if err := w.writeAssignments(a); err != nil {
		return err
	}
	if err := w.writeWorkloads(a, reviewers); err != nil {
		return err
	}
	return w.writeTopicUtilization(a, reviewers)
}

// writeAssignments writes one row per paper with its reviewer pair, score and
// the paper topics the pair actually covers.
func (w *Writer) writeAssignments(a *engine.Assignment) error {
	header := []string{"Paper Title", "Reviewer 1", "Reviewer 2", "Topic Score", "Shared Topics"}
	rows := make([][]string, 0, len(a.Papers))
	for _, pa := range a.Papers {
		rows = append(rows, []string{
			pa.Paper.Title,
			pa.Reviewers[0].Name,
			pa.Reviewers[1].Name,
			strconv.Itoa(pa.Score),
			strings.Join(pa.SharedTopics, ", "),
		})
	}
	return w.writeTable("assignments", header, rows)
}

// writeWorkloads writes one row per reviewer with the realized paper count.
func (w *Writer) writeWorkloads(a *engine.Assignment, reviewers []domain.Reviewer) error {
	header := []string{"Reviewer", "Papers Assigned", "Co-Reviewers"}
	rows := make([][]string, 0, len(reviewers))
	for ri, r := range reviewers {
		partners := make([]string, 0, len(a.CoReviewers[ri]))
		for _, pi := range a.CoReviewers[ri] {
			partners = append(partners, reviewers[pi].Name)
		}
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(a.Workloads[ri]),
			strings.Join(partners, ", "),
		})
	}
	return w.writeTable("workloads", header, rows)
}

// writeTopicUtilization writes, per declared paper topic, how many papers
// declare it, how many committee members list it, and how many papers have it
// covered by their assigned pair.
func (w *Writer) writeTopicUtilization(a *engine.Assignment, reviewers []domain.Reviewer) error {
	declared := make(map[string]int)
	covered := make(map[string]int)
	committee := make(map[string]int)
	for _, pa := range a.Papers {
		for _, topic := range pa.Paper.Topics {
			declared[topic]++
		}
		for _, topic := range pa.SharedTopics {
			covered[topic]++
		}
	}
	for _, r := range reviewers {
		for _, topic := range r.Topics {
			committee[topic]++
		}
	}

	topics := make([]string, 0, len(declared))
	for topic := range declared {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	header := []string{"Topic", "Papers Declaring", "Reviewers Covering", "Papers Covered"}
	rows := make([][]string, 0, len(topics))
	for _, topic := range topics {
		rows = append(rows, []string{
			topic,
			strconv.Itoa(declared[topic]),
			strconv.Itoa(committee[topic]),
			strconv.Itoa(covered[topic]),
		})
	}
	return w.writeTable("topic_utilization", header, rows)
}

func (w *Writer) writeTable(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name+"."+w.format)

	var err error
	switch w.format {
	case FormatCSV:
		err = writeCSVTable(path, header, rows)
	case FormatXLSX:
		err = writeXLSXTable(path, header, rows)
	}
	if err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("table written")
	return nil
}

func writeCSVTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSXTable(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
