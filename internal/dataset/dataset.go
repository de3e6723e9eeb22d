package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IterationColumn is the mandatory header naming the per-row iteration index.
const IterationColumn = "Iteration"

// ErrEmptyDataset reports a log with a header but zero data rows.
var ErrEmptyDataset = errors.New("no data rows in file")

// ParseError reports a malformed row or field with its 1-based input line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Record is one optimization iteration parsed from the log. Fields is sparse:
// a column with an empty cell is absent from the map, which is distinct from
// holding zero.
type Record struct {
	Iteration int
	Fields    map[string]float64
}

// Dataset is the ordered sequence of records produced by one load. It is
// replaced wholesale on reload and never mutated afterwards.
type Dataset struct {
	Name string // base name of the source file
	ID   string // generation id, new on every successful load
	// Columns holds the first record's field names in header order, the
	// column universe used for classification and for tie-breaking.
	Columns []string
	Records []Record
}

// Options controls load-time behavior that does not affect the result.
type Options struct {
	// Progress, when non-nil, receives the running record count every Every
	// rows. Best-effort observability only.
	Progress func(n int)
	// Every defaults to 100 when <= 0.
	Every int
}

// Load reads and parses a calibration log in one blocking pass. Any malformed
// iteration or value fails the whole load with its input line number.
func Load(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	iterIdx := -1
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if header[i] == IterationColumn {
			iterIdx = i
		}
	}
	if iterIdx < 0 {
		return nil, fmt.Errorf("header missing %q column", IterationColumn)
	}

	every := opts.Every
	if every <= 0 {
		every = 100
	}

	var records []Record
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Line: len(records) + 2, Err: err}
		}
		line := len(records) + 2
		if len(rec) > len(header) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("row has %d fields, header has %d", len(rec), len(header))}
		}
		if iterIdx >= len(rec) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("row missing %q field", IterationColumn)}
		}
		iter, err := strconv.Atoi(strings.TrimSpace(rec[iterIdx]))
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("invalid iteration %q", rec[iterIdx])}
		}
		if iter < 0 {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("negative iteration %d", iter)}
		}
		fields := make(map[string]float64, len(rec)-1)
		for i, cell := range rec {
			if i == iterIdx {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue // absent, not zero
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("invalid value %q in column %q", cell, header[i])}
			}
			fields[header[i]] = v
		}
		records = append(records, Record{Iteration: iter, Fields: fields})
		if opts.Progress != nil && len(records)%every == 0 {
			opts.Progress(len(records))
		}
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	// The column universe is the first record's field set, kept in header
	// order so "original column order" stays deterministic downstream.
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i == iterIdx {
			continue
		}
		if _, ok := records[0].Fields[name]; ok {
			columns = append(columns, name)
		}
	}

	return &Dataset{
		Name:    filepath.Base(path),
		ID:      uuid.NewString(),
		Columns: columns,
		Records: records,
	}, nil
}

// Last returns the final record, or false when the dataset is empty.
func (d *Dataset) Last() (Record, bool) {
	if d == nil || len(d.Records) == 0 {
		return Record{}, false
	}
	return d.Records[len(d.Records)-1], true
}
