package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/helixir/reviewer-assignment-service/internal/domain"
)

// table is an in-memory tabular sheet with header-name column lookup. Column
// order in the file is irrelevant; only header names matter.
type table struct {
	path    string
	headers map[string]int
	rows    [][]string
}

// readTable loads a sheet, dispatching on the file extension. CSV and XLSX are
// the two formats the committee tooling exports.
func readTable(path string) (*table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q for %s", ext, path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewMalformedRecordError(path, 0, "header", "sheet is empty")
	}

	t := &table{path: path, headers: make(map[string]int, len(rows[0])), rows: rows[1:]}
	for i, h := range rows[0] {
		t.headers[strings.TrimSpace(h)] = i
	}
	return t, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Survey exports pad or truncate trailing cells unevenly.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv sheet %s: %w", path, err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx sheet %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx sheet %s has no worksheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %s: %w", path, err)
	}
	return rows, nil
}

// column resolves a header name to its index.
func (t *table) column(name string) (int, error) {
	idx, ok := t.headers[name]
	if !ok {
		return 0, domain.NewMalformedRecordError(t.path, 0, name, "column not found")
	}
	return idx, nil
}

// cell returns the trimmed cell value, tolerating short rows. XLSX readers
// drop trailing empty cells, so a missing cell is an empty value, not an
// error.
func (t *table) cell(row []string, idx int) string {
	return strings.TrimSpace(t.rawCell(row, idx))
}

// rawCell returns the cell value untrimmed. Topic cells go through this: a
// trailing ", " is a malformed topic list the parser must see, and trimming
// here would collapse it into a corrupted single topic instead.
func (t *table) rawCell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
