// Package tabular writes comma-separated files one row at a time. Cells are
// buffered by AddEntry and persisted together by EndLine.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrClosed is returned when writing to, or closing, a closed Writer.
var ErrClosed = errors.New("tabular writer closed")

// Writer appends rows to a CSV file.
type Writer struct {
	path   string
	file   *os.File
	csv    *csv.Writer
	row    []string
	rows   int
	closed bool
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return &Writer{
		path: path,
		file: f,
		csv:  csv.NewWriter(f),
	}, nil
}

// Path returns the destination path.
func (w *Writer) Path() string {
	return w.path
}

// Rows returns the number of rows persisted so far.
func (w *Writer) Rows() int {
	return w.rows
}

// AddEntry appends v to the current row. Floats use the shortest decimal
// form that round-trips (2.5, not 2.500000e+00). Unlike a plain join, a cell
// containing a comma, a quote or a newline, or starting with a space, is
// quoted on output as encoding/csv does.
func (w *Writer) AddEntry(v any) {
	w.row = append(w.row, format(v))
}

// AddEntries appends each of vs to the current row, in order.
func (w *Writer) AddEntries(vs ...any) {
	for _, v := range vs {
		w.AddEntry(v)
	}
}

// EndLine writes the current row followed by a newline and starts a new,
// empty row. An empty row produces an empty line.
func (w *Writer) EndLine() error {
	if w.closed {
		return ErrClosed
	}

	row := w.row
	w.row = w.row[:0]

	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write row to %s: %w", w.path, err)
	}

	w.rows++

	return nil
}

// Close flushes buffered rows and closes the file. Cells added since the
// last EndLine are discarded.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}

	w.closed = true

	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()

	if flushErr != nil {
		return errors.Join(
			fmt.Errorf("flush %s: %w", w.path, flushErr),
			closeErr,
		)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", w.path, closeErr)
	}

	return nil
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Duration:
		return strconv.FormatInt(int64(x), 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
