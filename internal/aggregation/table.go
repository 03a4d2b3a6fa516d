package aggregation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"poisurvey/pkg/utils"
)

// Row maps column name to raw cell text. Absent keys are missing values.
type Row map[string]string

// Table is the concatenation of every CSV matched by a pattern. Columns is
// the union of all file headers in first-seen order.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t *Table) addColumn(name string) {
	if !slices.Contains(t.Columns, name) {
		t.Columns = append(t.Columns, name)
	}
}

type SkippedFile struct {
	Path   string
	Reason string
}

type LoadResult struct {
	Table   *Table
	Files   []string
	Skipped []SkippedFile
}

// LoadTables reads every file matching pattern in dir, in name order. A file
// that cannot be parsed or lacks one of the required columns is skipped and
// reported, the others are still loaded.
func LoadTables(dir, pattern string, required ...string) (*LoadResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
	}
	slices.Sort(paths)

	res := &LoadResult{Table: &Table{}}
	for _, path := range paths {
		header, rows, err := readCSV(path, required)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedFile{Path: path, Reason: err.Error()})
			continue
		}
		for _, col := range header {
			res.Table.addColumn(col)
		}
		res.Table.Rows = append(res.Table.Rows, rows...)
		res.Files = append(res.Files, path)
	}
	return res, nil
}

func readCSV(path string, required []string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrAggregationData, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: empty file", utils.ErrAggregationData)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrAggregationData, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range required {
		if !slices.Contains(header, col) {
			return nil, nil, fmt.Errorf("%w: missing column %q", utils.ErrAggregationData, col)
		}
	}

	var rows []Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", utils.ErrAggregationData, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// WriteTable writes columns in order; a missing value becomes an empty cell.
func WriteTable(path string, columns []string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
