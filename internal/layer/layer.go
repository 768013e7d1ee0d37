// Package layer provides the square fully connected layer used by the network.
package layer

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/sumnet/internal/activations"
)

// InitScale bounds the uniform initialization of weights and biases.
const InitScale = 0.1

// Dense is a fully connected layer with as many nodes as inputs.
// Weight (j, i) connects input slot i to node j.
type Dense struct {
	weights *mat.Dense
	biases  *mat.VecDense
	act     activations.Activation
	size    int
}

// NewDense creates a size×size layer with every weight and bias drawn
// uniformly from [-InitScale, InitScale] using rnd. Each node draws its
// bias first and then its incoming weights, in slot order.
func NewDense(size int, act activations.Activation, rnd *rand.Rand) *Dense {
	weights := mat.NewDense(size, size, nil)
	biases := mat.NewVecDense(size, nil)

	for j := 0; j < size; j++ {
		biases.SetVec(j, rnd.Float64()*2*InitScale-InitScale)
		for i := 0; i < size; i++ {
			weights.Set(j, i, rnd.Float64()*2*InitScale-InitScale)
		}
	}

	return &Dense{
		weights: weights,
		biases:  biases,
		act:     act,
		size:    size,
	}
}

// Forward computes the pre-activation W·x + b and the activated output.
// Both vectors are freshly allocated so callers may keep them.
func (d *Dense) Forward(x mat.Vector) (pre, post *mat.VecDense) {
	pre = mat.NewVecDense(d.size, nil)
	pre.MulVec(d.weights, x)
	pre.AddVec(pre, d.biases)

	post = mat.NewVecDense(d.size, nil)
	for j := 0; j < d.size; j++ {
		post.SetVec(j, d.act.Activate(pre.AtVec(j)))
	}
	return pre, post
}

// Delta turns the gradient with respect to this layer's activated output
// into the per-node delta: grad[j] * f'(pre[j]).
func (d *Dense) Delta(grad, pre mat.Vector) *mat.VecDense {
	delta := mat.NewVecDense(d.size, nil)
	for j := 0; j < d.size; j++ {
		delta.SetVec(j, d.act.Derivative(pre.AtVec(j))*grad.AtVec(j))
	}
	return delta
}

// Backward propagates a delta through the transposed weights, giving the
// gradient with respect to this layer's input: Wᵀ·delta.
func (d *Dense) Backward(delta mat.Vector) *mat.VecDense {
	var grad mat.VecDense
	grad.MulVec(d.weights.T(), delta)
	return &grad
}

// Accumulate adds this example's contribution to g:
// g.W += delta ⊗ input, g.B += delta.
func (d *Dense) Accumulate(g *Grad, delta, input mat.Vector) {
	g.W.RankOne(g.W, 1, delta, input)
	g.B.AddVec(g.B, delta)
}

// Params returns all dense layer parameters flattened (weights row-major, then biases).
func (d *Dense) Params() []float64 {
	w := d.weights.RawMatrix().Data
	b := d.biases.RawVector().Data
	params := make([]float64, 0, len(w)+len(b))
	params = append(params, w...)
	params = append(params, b...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) {
	w := d.weights.RawMatrix().Data
	copy(w, params[:len(w)])
	copy(d.biases.RawVector().Data, params[len(w):])
}

// NumParams is size*size + size.
func (d *Dense) NumParams() int {
	return d.size*d.size + d.size
}

// Weights exposes the weight storage; changes are visible to the layer.
func (d *Dense) Weights() *mat.Dense {
	return d.weights
}

// Biases exposes the bias storage; changes are visible to the layer.
func (d *Dense) Biases() *mat.VecDense {
	return d.biases
}

// Size returns the number of nodes (and inputs).
func (d *Dense) Size() int {
	return d.size
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
