package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// IngestError is the fatal error kind for input acquisition: a missing or
// unreadable file, or a header that does not resolve the required fields.
type IngestError struct {
	Path string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.Path, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// RawRow is one uninterpreted data row from the source
type RawRow struct {
	Line   int      // 1-based data row number, header excluded
	Fields []string // Raw cells in source order
}

// Loader opens the source dataset and resolves its header
type Loader struct {
	dialect   string
	overrides map[string]string
}

// NewLoader creates a Loader for the given dialect name ("auto" tries every
// known dialect) and per-field column overrides.
func NewLoader(dialect string, overrides map[string]string) *Loader {
	return &Loader{
		dialect:   dialect,
		overrides: overrides,
	}
}

// Open opens the file, reads the header row, and resolves the required
// columns. Values are not interpreted here; rows stream out as raw strings.
func (l *Loader) Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IngestError{Path: path, Err: err}
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err == io.EOF {
		f.Close()
		return nil, &IngestError{Path: path, Err: fmt.Errorf("empty input: no header row")}
	}
	if err != nil {
		f.Close()
		return nil, &IngestError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	cols, dialect, err := resolveHeader(header, l.dialect, l.overrides)
	if err != nil {
		f.Close()
		return nil, &IngestError{Path: path, Err: err}
	}

	return &Source{
		Path:    path,
		Columns: cols,
		Dialect: dialect,
		file:    f,
		reader:  r,
	}, nil
}

// Source is an open dataset streaming raw rows in file order
type Source struct {
	Path    string
	Columns Columns
	Dialect string // Which dialect resolved the header

	file   *os.File
	reader *csv.Reader
	line   int
}

// Next returns the next raw row, or io.EOF when the file is exhausted.
// The Fields slice is reused between calls; callers keep individual cell
// strings, never the slice. A structurally corrupt row aborts the stream
// with an IngestError.
func (s *Source) Next() (RawRow, error) {
	fields, err := s.reader.Read()
	if err == io.EOF {
		return RawRow{}, io.EOF
	}
	if err != nil {
		return RawRow{}, &IngestError{Path: s.Path, Err: fmt.Errorf("read row %d: %w", s.line+1, err)}
	}
	s.line++
	return RawRow{Line: s.line, Fields: fields}, nil
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	return s.file.Close()
}
