package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateColumn describes a zero-variance column. It is never
// returned as a failure: Scaler.Warning wraps it for callers that want to
// log which columns were zeroed.
var ErrDegenerateColumn = errors.New("degenerate column")

// Scaler holds per-column z-score statistics.
type Scaler struct {
	Means   []float64
	StdDevs []float64

	degenerate []int
}

// FitScaler computes each column's mean and population standard deviation.
// A column whose values are all equal gets a zero deviation and is
// reported by Degenerate.
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return &Scaler{}, nil
	}
	cols := len(rows[0])
	if err := checkRect(rows, cols); err != nil {
		return nil, err
	}

	s := &Scaler{
		Means:   make([]float64, cols),
		StdDevs: make([]float64, cols),
	}
	column := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, row := range rows {
			column[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(column, nil)
		if floats.Max(column) == floats.Min(column) {
			mean, std = column[0], 0
		}
		s.Means[j], s.StdDevs[j] = mean, std
		if std == 0 {
			s.degenerate = append(s.degenerate, j)
		}
	}
	return s, nil
}

// Transform returns a standardized copy of rows. Degenerate columns come
// out as zeros.
func (s *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	if err := checkRect(rows, len(s.Means)); err != nil {
		return nil, err
	}

	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if s.StdDevs[j] == 0 {
				continue
			}
			out[i][j] = (v - s.Means[j]) / s.StdDevs[j]
		}
	}
	return out, nil
}

// Degenerate returns the indices of zero-variance columns.
func (s *Scaler) Degenerate() []int {
	return s.degenerate
}

// Warning returns an ErrDegenerateColumn describing the zeroed columns,
// or nil if every column had spread.
func (s *Scaler) Warning() error {
	if len(s.degenerate) == 0 {
		return nil
	}
	return errors.Wrapf(ErrDegenerateColumn, "zero variance in columns %v", s.degenerate)
}

// Normalize standardizes every column of rows to zero mean and unit
// population standard deviation.
func Normalize(rows [][]float64) ([][]float64, error) {
	s, err := FitScaler(rows)
	if err != nil {
		return nil, err
	}
	return s.Transform(rows)
}

func checkRect(rows [][]float64, cols int) error {
	for i, row := range rows {
		if len(row) != cols {
			return errors.Wrapf(ErrInvalidArgument, "row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	return nil
}
