package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"fleetviz/internal/models"
)

var (
	// ErrInputNotFound is returned when the input file does not exist
	ErrInputNotFound = errors.New("input file not found")
	// ErrUnreadable is returned when the input exists but cannot be opened or read
	ErrUnreadable = errors.New("input file unreadable")
	// ErrMissingHeader is returned for an empty file or a blank header row
	ErrMissingHeader = errors.New("missing header row")
	// ErrMalformedTable is returned when the rows do not form a rectangular table
	ErrMalformedTable = errors.New("malformed table")
)

// Load reads the CSV file at path into memory.
// The whole file is read before returning; partial tables are never returned.
func Load(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}

// Read parses CSV from r. The first row names the columns of every following row.
func Read(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0 // every row must match the header width
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, wrapReadError(err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	blank := true
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name != "" {
			blank = false
		}
		columns[i] = name
	}
	if blank {
		return nil, ErrMissingHeader
	}
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", ErrMalformedTable, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedTable, name)
		}
		seen[name] = true
	}

	table := &models.Table{Columns: columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}

		rec := make(models.Record, len(columns))
		for i, c := range columns {
			rec[c] = strings.TrimSpace(row[i])
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// wrapReadError classifies an encoding/csv error
func wrapReadError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		if errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return fmt.Errorf("%w: line %d has a different number of fields than the header", ErrMalformedTable, parseErr.Line)
		}
		return fmt.Errorf("%w: %v", ErrMalformedTable, parseErr)
	}
	return fmt.Errorf("%w: %v", ErrUnreadable, err)
}
