package dataset

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func column(rows [][]float64, j int) []float64 {
	col := make([]float64, len(rows))
	for i, row := range rows {
		col[i] = row[j]
	}
	return col
}

func TestNormalizeMeanZeroStdOne(t *testing.T) {
	rows := [][]float64{
		{1, 10, -3},
		{2, 20, 0.5},
		{3, 40, 7},
		{10, 80, 2},
		{4, 0, -1},
	}

	out, err := Normalize(rows)
	require.NoError(t, err)
	require.Len(t, out, len(rows))

	for j := 0; j < 3; j++ {
		mean, std := stat.PopMeanStdDev(column(out, j), nil)
		assert.InDelta(t, 0, mean, 1e-12, "column %d mean", j)
		assert.InDelta(t, 1, std, 1e-12, "column %d std", j)
	}

	// input untouched
	assert.Equal(t, 1.0, rows[0][0])
}

// TestNormalizeUsesPopulationStdDev pins the divisor to S, not S-1.
func TestNormalizeUsesPopulationStdDev(t *testing.T) {
	out, err := Normalize([][]float64{{0}, {2}})
	require.NoError(t, err)
	// mean 1, population std 1
	assert.InDeltaSlice(t, []float64{-1, 1}, column(out, 0), 1e-15)
}

func TestNormalizeConstantColumn(t *testing.T) {
	rows := [][]float64{
		{0.1, 1},
		{0.1, 2},
		{0.1, 3},
	}

	s, err := FitScaler(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, s.Degenerate())
	assert.True(t, errors.Is(s.Warning(), ErrDegenerateColumn))

	out, err := s.Transform(rows)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, column(out, 0))
	assert.InDeltaSlice(t, []float64{-math.Sqrt(1.5), 0, math.Sqrt(1.5)}, column(out, 1), 1e-12)
}

func TestNormalizeNoDegenerate(t *testing.T) {
	s, err := FitScaler([][]float64{{1}, {2}})
	require.NoError(t, err)
	assert.Empty(t, s.Degenerate())
	assert.NoError(t, s.Warning())
}

func TestNormalizeEmpty(t *testing.T) {
	out, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Normalize([][]float64{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNormalizeRagged(t *testing.T) {
	_, err := Normalize([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	s, err := FitScaler([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	_, err = s.Transform([][]float64{{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

// TestScalerAppliesTrainingStatistics checks that Transform reuses the
// fitted statistics rather than refitting on new rows.
func TestScalerAppliesTrainingStatistics(t *testing.T) {
	s, err := FitScaler([][]float64{{0}, {4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, s.Means)
	assert.Equal(t, []float64{2}, s.StdDevs)

	out, err := s.Transform([][]float64{{6}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2}}, out)
}
