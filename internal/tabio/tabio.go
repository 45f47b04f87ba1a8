// Package tabio provides reading and writing of tab-delimited files with
// a single header line.
package tabio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Reader reads a tab-delimited file whose first line names the columns.
type Reader struct {
	scanner    *bufio.Scanner
	file       *os.File
	fields     []string
	fieldIndex map[string]int
	lineNumber int
}

// Line is one parsed data line.
type Line struct {
	fields     []string
	lineNumber int
}

// NewReader creates a reader for the given file path.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tab file: %w", err)
	}
	r, err := NewReaderFrom(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReaderFrom creates a reader from an open stream. The caller retains
// ownership of the stream.
func NewReaderFrom(stream io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("tab file is empty")
	}
	fields := strings.Split(scanner.Text(), "\t")
	fieldIndex := make(map[string]int, len(fields))
	for i, name := range fields {
		fieldIndex[strings.TrimSpace(name)] = i
	}
	return &Reader{
		scanner:    scanner,
		fields:     fields,
		fieldIndex: fieldIndex,
		lineNumber: 1,
	}, nil
}

// FieldIndex returns the column index for a header name. The name may also
// be a 1-based column number.
func (r *Reader) FieldIndex(name string) (int, error) {
	if idx, ok := r.fieldIndex[name]; ok {
		return idx, nil
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(r.fields) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("column %q not found in header", name)
}

// Fields returns the header column names.
func (r *Reader) Fields() []string {
	return r.fields
}

// Next returns the next data line, or nil at end of input.
func (r *Reader) Next() (*Line, error) {
	for r.scanner.Scan() {
		r.lineNumber++
		text := r.scanner.Text()
		if text == "" {
			continue
		}
		return &Line{fields: strings.Split(text, "\t"), lineNumber: r.lineNumber}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
	}
	return nil, nil
}

// Close releases the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Get returns the field at the given column index, or an empty string when
// the line is short.
func (l *Line) Get(idx int) string {
	if idx < 0 || idx >= len(l.fields) {
		return ""
	}
	return l.fields[idx]
}

// GetInt parses the field at the given column index as an integer. An empty
// field parses as zero.
func (l *Line) GetInt(idx int) (int, error) {
	text := strings.TrimSpace(l.Get(idx))
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid integer %q: %w", l.lineNumber, text, err)
	}
	return n, nil
}

// GetFloat parses the field at the given column index as a float.
func (l *Line) GetFloat(idx int) (float64, error) {
	text := strings.TrimSpace(l.Get(idx))
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid number %q: %w", l.lineNumber, text, err)
	}
	return v, nil
}

// Writer writes a tab-delimited file with a header line.
type Writer struct {
	w    *bufio.Writer
	file *os.File
}

// NewWriter creates a writer targeting the given file path and writes the
// header line.
func NewWriter(path string, header ...string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create tab file: %w", err)
	}
	w := NewWriterTo(file, header...)
	w.file = file
	return w, nil
}

// NewWriterTo creates a writer on an open stream and writes the header line.
func NewWriterTo(stream io.Writer, header ...string) *Writer {
	w := &Writer{w: bufio.NewWriter(stream)}
	w.WriteRecord(header...)
	return w
}

// WriteRecord writes one tab-joined line.
func (w *Writer) WriteRecord(fields ...string) {
	w.w.WriteString(strings.Join(fields, "\t"))
	w.w.WriteByte('\n')
}

// Close flushes buffered output and closes the file, if the writer owns one.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush tab file: %w", err)
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
