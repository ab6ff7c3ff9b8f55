// Package ingest moves trial tables between flat files and memory. It is the
// only package that touches the filesystem: a CSVSource loads the raw export,
// a CSVSink persists the cleaned artifacts.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/trialops/trial-ingress/pkg/model"
)

// CSVSource reads a delimited export with a header row.
type CSVSource struct {
	path   string
	logger *zap.Logger
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string, logger *zap.Logger) (*CSVSource, error) {
	if path == "" {
		return nil, errors.New("source path cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &CSVSource{path: path, logger: logger}, nil
}

// Load reads the whole file into a table. Rows whose column count does not
// match the header are skipped and counted; an unreadable file or an
// unparseable stream fails the load outright. Empty cells are treated as
// absent values.
func (s *CSVSource) Load() (*model.Table, int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	table := &model.Table{Columns: append([]string(nil), header...)}
	skipped := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse input: %w", err)
		}
		if len(record) != len(header) {
			skipped++
			continue
		}

		row := make(model.Row, len(header))
		for i, col := range header {
			row.Set(col, record[i])
		}
		table.Rows = append(table.Rows, row)
	}

	s.logger.Info("Loaded raw table",
		zap.String("path", s.path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(header)),
		zap.Int("skippedRows", skipped))

	return table, skipped, nil
}

// CSVSink writes output artifacts into a single directory.
type CSVSink struct {
	dir    string
	logger *zap.Logger
}

// NewCSVSink creates a sink rooted at dir, creating the directory if needed.
func NewCSVSink(dir string, logger *zap.Logger) (*CSVSink, error) {
	if dir == "" {
		return nil, errors.New("sink directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVSink{dir: dir, logger: logger}, nil
}

// Dir returns the sink's output directory.
func (s *CSVSink) Dir() string {
	return s.dir
}

// WriteTable persists a table under the given file name. Absent values are
// written as empty cells, so a reload treats them as absent again.
func (s *CSVSink) WriteTable(name string, table *model.Table) error {
	if table == nil {
		return errors.New("table cannot be nil")
	}

	records := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i], _ = row.Get(col)
		}
		records = append(records, record)
	}

	return s.WriteRecords(name, table.Columns, records)
}

// WriteRecords persists a header plus pre-built records under the given
// file name.
func (s *CSVSink) WriteRecords(name string, header []string, records [][]string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header to %s: %w", name, err)
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rows to %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	s.logger.Info("Wrote output file",
		zap.String("path", path),
		zap.Int("rows", len(records)))

	return nil
}
