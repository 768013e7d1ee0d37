package sumnet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacadeTrainsAND(t *testing.T) {
	n, err := New(2, 1, 2, Identity, WithSeed(5))
	require.NoError(t, err)

	xs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	ys := []float64{0, 0, 0, 1}

	h, err := Fit(n, xs, ys, FitConfig{Epochs: 2000, LearningRate: 0.05, Mode: FullBatch, LossThreshold: 0.1})
	require.NoError(t, err)
	assert.True(t, h.Converged)
}

func TestFacadeFirstOutput(t *testing.T) {
	n, err := New(3, 1, 3, Identity, WithSeed(1), WithFirstOutput())
	require.NoError(t, err)

	tr, err := n.Trace([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, tr.Post(0)[0], tr.Output)
}

func TestFacadeErrors(t *testing.T) {
	_, err := New(0, 1, 1, Tanh)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	k, err := ParseActivation("linear")
	require.NoError(t, err)
	assert.Equal(t, Identity, k)

	out, err := Normalize([][]float64{{1, 5}, {3, 5}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-1, 0}, {1, 0}}, out)
}

// TestFacadeSharedInvalidArgument checks that network and dataset errors
// match one sentinel.
func TestFacadeSharedInvalidArgument(t *testing.T) {
	_, err := Normalize([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	n, err := New(2, 1, 2, Tanh, WithSeed(1))
	require.NoError(t, err)
	_, err = n.Forward([]float64{1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
