package net

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/sumnet/internal/layer"
)

// ForwardTrace records one forward evaluation: the input, every layer's
// pre-activation and activated output, and the reduced prediction.
// It is owned by the caller and never shared with the Network.
type ForwardTrace struct {
	Output float64

	input *mat.VecDense
	pre   []*mat.VecDense
	post  []*mat.VecDense
}

// Input returns a copy of the evaluated input.
func (t *ForwardTrace) Input() []float64 {
	return copyVec(t.input)
}

// Pre returns a copy of layer k's pre-activation sums.
func (t *ForwardTrace) Pre(k int) []float64 {
	return copyVec(t.pre[k])
}

// Post returns a copy of layer k's activated outputs.
func (t *ForwardTrace) Post(k int) []float64 {
	return copyVec(t.post[k])
}

// layerInput is x for the first layer and the previous activations otherwise.
func (t *ForwardTrace) layerInput(k int) *mat.VecDense {
	if k == 0 {
		return t.input
	}
	return t.post[k-1]
}

func copyVec(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	copy(out, v.RawVector().Data)
	return out
}

// Gradients holds the parameter gradients of every layer.
type Gradients struct {
	layers []*layer.Grad
}

// Layer returns the gradients of layer k.
func (g *Gradients) Layer(k int) *layer.Grad {
	return g.layers[k]
}

// Flat returns the gradients flattened in the same order as Network.Params.
func (g *Gradients) Flat() []float64 {
	var flat []float64
	for _, l := range g.layers {
		flat = append(flat, l.Flat()...)
	}
	return flat
}

func (g *Gradients) scale(c float64) {
	for _, l := range g.layers {
		l.Scale(c)
	}
}

// Reduction turns the final layer's activations into the scalar output.
type Reduction interface {
	// Reduce returns the prediction for the final activations.
	Reduce(post []float64) float64

	// Gradient writes d(output)/d(post[j]) into dst.
	Gradient(post, dst []float64)
}

// Sum pools the final layer by adding every node's activation.
type Sum struct{}

// Reduce returns the sum of post.
func (Sum) Reduce(post []float64) float64 {
	return floats.Sum(post)
}

// Gradient is 1 for every node.
func (Sum) Gradient(post, dst []float64) {
	for j := range dst {
		dst[j] = 1
	}
}

// First uses only node 0 of the final layer as a dedicated output neuron.
type First struct{}

// Reduce returns post[0].
func (First) Reduce(post []float64) float64 {
	return post[0]
}

// Gradient is 1 for node 0 and 0 elsewhere.
func (First) Gradient(post, dst []float64) {
	for j := range dst {
		dst[j] = 0
	}
	dst[0] = 1
}
