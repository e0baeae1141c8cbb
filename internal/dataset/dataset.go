// Package dataset adapts a numeric table into labeled records: column 0 is
// the label and the remaining columns are the feature vector.
package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrIndexOutOfRange is returned by Item for an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("index out of range")

// Dataset is an immutable set of records sharing one feature width.
type Dataset struct {
	features *mat.Dense
	labels   []float64
}

// New splits table into labels and features. The table is copied.
func New(table mat.Matrix) (*Dataset, error) {
	r, c := table.Dims()
	if c < 2 {
		return nil, fmt.Errorf("need a label column and at least one feature, got %d columns", c)
	}
	if r == 0 {
		return nil, errors.New("dataset has no records")
	}

	labels := make([]float64, r)
	features := mat.NewDense(r, c-1, nil)
	for i := 0; i < r; i++ {
		labels[i] = table.At(i, 0)
		for j := 1; j < c; j++ {
			features.Set(i, j-1, table.At(i, j))
		}
	}
	return &Dataset{features: features, labels: labels}, nil
}

// FromRecords builds a dataset from parallel feature rows and labels.
func FromRecords(features [][]float64, labels []float64) (*Dataset, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("%d feature rows but %d labels", len(features), len(labels))
	}
	if len(features) == 0 {
		return nil, errors.New("dataset has no records")
	}
	width := len(features[0])
	if width == 0 {
		return nil, errors.New("records have no features")
	}
	m := mat.NewDense(len(features), width, nil)
	for i, row := range features {
		if len(row) != width {
			return nil, fmt.Errorf("record %d has %d features, want %d", i, len(row), width)
		}
		m.SetRow(i, row)
	}
	return &Dataset{features: m, labels: append([]float64(nil), labels...)}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// Width returns the feature vector length.
func (d *Dataset) Width() int {
	_, c := d.features.Dims()
	return c
}

// Item returns a copy of record i's features and its label.
func (d *Dataset) Item(i int) ([]float64, float64, error) {
	if i < 0 || i >= d.Len() {
		return nil, 0, fmt.Errorf("item %d of %d: %w", i, d.Len(), ErrIndexOutOfRange)
	}
	return mat.Row(nil, i, d.features), d.labels[i], nil
}

// Features returns the feature matrix. Callers must not modify it.
func (d *Dataset) Features() mat.Matrix {
	return d.features
}

// Labels returns a copy of the labels.
func (d *Dataset) Labels() []float64 {
	return append([]float64(nil), d.labels...)
}

// Subset gathers the given rows, in order, into a new dataset. Indices
// must be in range.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	if len(indices) == 0 {
		return nil, errors.New("empty subset")
	}
	m := mat.NewDense(len(indices), d.Width(), nil)
	labels := make([]float64, len(indices))
	for k, i := range indices {
		if i < 0 || i >= d.Len() {
			return nil, fmt.Errorf("subset index %d of %d: %w", i, d.Len(), ErrIndexOutOfRange)
		}
		m.SetRow(k, d.features.RawRowView(i))
		labels[k] = d.labels[i]
	}
	return &Dataset{features: m, labels: labels}, nil
}
