// Package dataset loads, splits, standardizes and generates the tabular
// data fed to the network.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/sumnet/internal/errdefs"
)

var (
	// ErrInvalidArgument reports a ragged matrix or a bad label column. It
	// is the same sentinel the network returns.
	ErrInvalidArgument = errdefs.ErrInvalidArgument

	// ErrMalformed reports CSV content that cannot be read as numbers.
	ErrMalformed = errors.New("malformed data")
)

// LabelColumn selects which column of a row holds the target.
type LabelColumn int

const (
	LabelLast LabelColumn = iota
	LabelFirst
)

// Dataset represents feature rows paired one-to-one with scalar targets.
type Dataset struct {
	Features [][]float64
	Targets  []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Features)
}

// Width returns the number of features per row, or 0 for an empty set.
func (d *Dataset) Width() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// SplitXY separates the label column from the features of every row.
// Rows must all have the same length and at least two columns.
func SplitXY(rows [][]float64, label LabelColumn) (*Dataset, error) {
	ds := &Dataset{
		Features: make([][]float64, len(rows)),
		Targets:  make([]float64, len(rows)),
	}
	if len(rows) == 0 {
		return ds, nil
	}

	cols := len(rows[0])
	if cols < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d columns, need a label and at least one feature", cols)
	}

	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrInvalidArgument, "row %d has %d columns, want %d", i, len(row), cols)
		}
		features := make([]float64, 0, cols-1)
		switch label {
		case LabelFirst:
			ds.Targets[i] = row[0]
			features = append(features, row[1:]...)
		case LabelLast:
			ds.Targets[i] = row[cols-1]
			features = append(features, row[:cols-1]...)
		default:
			return nil, errors.Wrapf(ErrInvalidArgument, "label column %d", label)
		}
		ds.Features[i] = features
	}
	return ds, nil
}

// Split keeps the first ratio of rows for training and holds out the rest,
// in order. Both halves share the receiver's rows.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Features)) * ratio)

	train := &Dataset{
		Features: d.Features[:splitIdx],
		Targets:  d.Targets[:splitIdx],
	}

	test := &Dataset{
		Features: d.Features[splitIdx:],
		Targets:  d.Targets[splitIdx:],
	}

	return train, test
}
