// Package dataset provides a small named-column tabular data structure and
// the Titanic-specific feature engineering applied before the pipeline.
package dataset

import (
	"math"
	"strconv"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Frame holds tabular data as ordered named columns of string cells.
// Empty cells and the tokens "NA" and "NaN" are treated as missing.
type Frame struct {
	cols []string
	data [][]string // data[i] holds the values of cols[i]
	n    int
}

// NewFrame builds a frame from column names and column-major data.
func NewFrame(cols []string, data [][]string) (*Frame, error) {
	if len(cols) != len(data) {
		return nil, errors.NewDimensionError("NewFrame", len(cols), len(data), 1)
	}
	n := 0
	if len(data) > 0 {
		n = len(data[0])
	}
	for i, col := range data {
		if len(col) != n {
			return nil, errors.NewValidationError("data", "columns must have equal length", cols[i])
		}
	}
	return &Frame{cols: append([]string(nil), cols...), data: data, n: n}, nil
}

// FromRows builds a frame from column names and row-major data.
func FromRows(cols []string, rows [][]string) (*Frame, error) {
	data := make([][]string, len(cols))
	for i := range data {
		data[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.NewDimensionError("FromRows", len(cols), len(row), 1)
		}
		for c, v := range row {
			data[c][r] = v
		}
	}
	return &Frame{cols: append([]string(nil), cols...), data: data, n: len(rows)}, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return f.n
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int {
	return len(f.cols)
}

// Has reports whether the frame contains the named column.
func (f *Frame) Has(name string) bool {
	return f.index(name) >= 0
}

func (f *Frame) index(name string) int {
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the raw values of the named column.
func (f *Frame) Column(name string) ([]string, error) {
	i := f.index(name)
	if i < 0 {
		return nil, errors.NewMissingColumnError("Frame.Column", name)
	}
	return f.data[i], nil
}

// Float returns the named column parsed as float64. Missing cells become
// NaN; non-numeric cells are an error.
func (f *Frame) Float(name string) ([]float64, error) {
	raw, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		if isMissing(v) {
			out[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.NewValidationError(name, "non-numeric value in numeric column", v)
		}
		out[i] = x
	}
	return out, nil
}

func isMissing(v string) bool {
	return v == "" || v == "NA" || v == "NaN"
}

// Drop returns a copy of the frame without the named columns. Dropping a
// column that does not exist is an error.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !f.Has(name) {
			return nil, errors.NewMissingColumnError("Frame.Drop", name)
		}
		drop[name] = true
	}
	out := &Frame{n: f.n}
	for i, c := range f.cols {
		if drop[c] {
			continue
		}
		out.cols = append(out.cols, c)
		out.data = append(out.data, f.data[i])
	}
	return out, nil
}

// Select returns a copy of the frame containing only the named columns, in
// the requested order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{n: f.n}
	for _, name := range names {
		i := f.index(name)
		if i < 0 {
			return nil, errors.NewMissingColumnError("Frame.Select", name)
		}
		out.cols = append(out.cols, name)
		out.data = append(out.data, f.data[i])
	}
	return out, nil
}

// WithColumn returns a copy of the frame with an extra column appended.
func (f *Frame) WithColumn(name string, values []string) (*Frame, error) {
	if len(values) != f.n {
		return nil, errors.NewDimensionError("Frame.WithColumn", f.n, len(values), 0)
	}
	if f.Has(name) {
		return nil, errors.NewValidationError("name", "column already exists", name)
	}
	out := &Frame{
		cols: append(append([]string(nil), f.cols...), name),
		data: append(append([][]string(nil), f.data...), values),
		n:    f.n,
	}
	return out, nil
}

// Subset returns a copy of the frame containing the rows at the given
// indices, in order.
func (f *Frame) Subset(indices []int) (*Frame, error) {
	out := &Frame{cols: append([]string(nil), f.cols...), n: len(indices)}
	out.data = make([][]string, len(f.cols))
	for c := range f.data {
		col := make([]string, len(indices))
		for r, idx := range indices {
			if idx < 0 || idx >= f.n {
				return nil, errors.NewValueError("Frame.Subset", "row index out of range")
			}
			col[r] = f.data[c][idx]
		}
		out.data[c] = col
	}
	return out, nil
}

// Rows returns the frame contents in row-major order.
func (f *Frame) Rows() [][]string {
	rows := make([][]string, f.n)
	for r := 0; r < f.n; r++ {
		row := make([]string, len(f.cols))
		for c := range f.cols {
			row[c] = f.data[c][r]
		}
		rows[r] = row
	}
	return rows
}
