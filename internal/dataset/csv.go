package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb003jbl/ticketrca/internal/logging"
)

// Loader reads tabular datasets from files with proper error handling.
type Loader struct {
	logger *logging.Logger
}

// NewLoader creates a new dataset loader
func NewLoader() *Loader {
	return &Loader{logger: logging.GetLogger("dataset.loader")}
}

// LoadFile loads a tabular dataset from the given path. Only CSV files are
// supported; any other extension is an UnsupportedFormatError.
func (l *Loader) LoadFile(path string) (*Table, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "csv" {
		return nil, NewUnsupportedFormatError("unsupported file format: %s", ext)
	}

	// Dataset path is intentionally user-configurable.
	// #nosec G304
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	l.logger.Debug("Opened dataset file: %s (size: %d bytes)", path, info.Size())
	return l.LoadCSV(file)
}

// LoadCSV parses CSV content into a Table. The first row is the header.
// A structurally malformed CSV is an UnsupportedFormatError; short rows are
// padded with empty fields rather than rejected.
func (l *Loader) LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, NewUnsupportedFormatError("dataset is empty")
	}
	if err != nil {
		return nil, NewUnsupportedFormatError("failed to parse CSV header: %v", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	table := &Table{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewUnsupportedFormatError("failed to parse CSV row: %v", err)
		}

		record := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = strings.TrimSpace(row[i])
			} else {
				record[col] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}

	l.logger.Debug("Loaded table with %d columns and %d rows", len(table.Columns), table.Len())
	return table, nil
}
