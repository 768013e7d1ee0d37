// Package net provides the fixed-width feed-forward network, its training
// steps and the epoch-level training driver.
package net

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/sumnet/internal/activations"
	"github.com/FlavioCFOliveira/sumnet/internal/errdefs"
	"github.com/FlavioCFOliveira/sumnet/internal/layer"
	"github.com/FlavioCFOliveira/sumnet/internal/loss"
	"github.com/FlavioCFOliveira/sumnet/internal/opt"
)

// ErrInvalidArgument is returned for bad construction parameters and for
// inputs whose shape does not match the network.
var ErrInvalidArgument = errdefs.ErrInvalidArgument

// Network is a stack of square Dense layers whose final activations are
// reduced to a single scalar prediction.
//
// Forward and Trace keep no state on the Network and may be called
// concurrently. TrainStep and TrainBatch mutate parameters and must not
// run concurrently with anything else on the same Network.
type Network struct {
	layers []*layer.Dense
	width  int
	kind   activations.Kind
	reduce Reduction
	loss   loss.Loss
	optim  opt.Optimizer
}

// Option configures a Network at construction.
type Option func(*options)

type options struct {
	rnd    *rand.Rand
	reduce Reduction
	optim  opt.Optimizer
}

// WithRand sets the random source used to initialize parameters.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// WithSeed initializes parameters from a source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithReduction replaces the default Sum output reduction.
func WithReduction(r Reduction) Option {
	return func(o *options) {
		o.reduce = r
	}
}

// WithOptimizer replaces the default SGD update rule.
func WithOptimizer(o opt.Optimizer) Option {
	return func(opts *options) {
		opts.optim = o
	}
}

// New creates a network of layerCount square layers.
//
// Every layer is inputSize wide: nodesPerLayer is accepted for call-site
// compatibility but does not influence the architecture. Parameters are
// drawn uniformly from [-0.1, 0.1].
func New(inputSize, layerCount, nodesPerLayer int, kind activations.Kind, opts ...Option) (*Network, error) {
	if layerCount < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "layer count %d, want >= 1", layerCount)
	}
	if inputSize < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "width %d, want >= 1", inputSize)
	}
	if !kind.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "activation kind %d", kind)
	}

	o := options{reduce: Sum{}, optim: opt.SGD{}}
	for _, fn := range opts {
		fn(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	act := kind.Activation()
	layers := make([]*layer.Dense, layerCount)
	for k := range layers {
		layers[k] = layer.NewDense(inputSize, act, o.rnd)
	}

	return &Network{
		layers: layers,
		width:  inputSize,
		kind:   kind,
		reduce: o.reduce,
		loss:   loss.SquaredError{},
		optim:  o.optim,
	}, nil
}

// Width is the number of nodes in every layer, equal to the input size.
func (n *Network) Width() int {
	return n.width
}

// LayerCount returns the number of layers.
func (n *Network) LayerCount() int {
	return len(n.layers)
}

// Activation returns the activation kind shared by every node.
func (n *Network) Activation() activations.Kind {
	return n.kind
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// Forward evaluates x and returns the reduced scalar output.
func (n *Network) Forward(x []float64) (float64, error) {
	tr, err := n.Trace(x)
	if err != nil {
		return 0, err
	}
	return tr.Output, nil
}

// Predict runs Forward on every row.
func (n *Network) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, x := range rows {
		p, err := n.Forward(x)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = p
	}
	return out, nil
}

// Evaluate returns the mean squared error over xs/ys without updating
// any parameter.
func (n *Network) Evaluate(xs [][]float64, ys []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "empty batch")
	}
	if len(xs) != len(ys) {
		return 0, errors.Wrapf(ErrInvalidArgument, "%d rows but %d targets", len(xs), len(ys))
	}

	var total float64
	for i, x := range xs {
		p, err := n.Forward(x)
		if err != nil {
			return 0, errors.Wrapf(err, "row %d", i)
		}
		total += n.loss.Forward(p, ys[i])
	}
	return total / float64(len(xs)), nil
}

// Trace evaluates x and returns every intermediate value needed for
// backpropagation.
func (n *Network) Trace(x []float64) (*ForwardTrace, error) {
	if len(x) != n.width {
		return nil, errors.Wrapf(ErrInvalidArgument, "input length %d, want %d", len(x), n.width)
	}

	input := make([]float64, len(x))
	copy(input, x)

	tr := &ForwardTrace{
		input: mat.NewVecDense(n.width, input),
		pre:   make([]*mat.VecDense, len(n.layers)),
		post:  make([]*mat.VecDense, len(n.layers)),
	}

	var curr mat.Vector = tr.input
	for k, l := range n.layers {
		tr.pre[k], tr.post[k] = l.Forward(curr)
		curr = tr.post[k]
	}
	tr.Output = n.reduce.Reduce(tr.post[len(n.layers)-1].RawVector().Data)
	return tr, nil
}

// Gradients computes the loss of a single example and its gradient with
// respect to every parameter, without updating anything.
func (n *Network) Gradients(x []float64, y float64) (*Gradients, float64, error) {
	tr, err := n.Trace(x)
	if err != nil {
		return nil, 0, err
	}
	g := n.newGradients()
	return g, n.backward(tr, y, g), nil
}

// BatchGradients averages the per-example gradients and losses over a
// batch. Parameters are held fixed for every example.
func (n *Network) BatchGradients(xs [][]float64, ys []float64) (*Gradients, float64, error) {
	if len(xs) == 0 {
		return nil, 0, errors.Wrap(ErrInvalidArgument, "empty batch")
	}
	if len(xs) != len(ys) {
		return nil, 0, errors.Wrapf(ErrInvalidArgument, "%d rows but %d targets", len(xs), len(ys))
	}

	g := n.newGradients()
	var totalLoss float64
	for b, x := range xs {
		tr, err := n.Trace(x)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "row %d", b)
		}
		totalLoss += n.backward(tr, ys[b], g)
	}

	batchSize := float64(len(xs))
	g.scale(1 / batchSize)
	return g, totalLoss / batchSize, nil
}

// TrainStep performs one gradient descent update from a single example
// and returns its squared error.
func (n *Network) TrainStep(x []float64, y, learningRate float64) (float64, error) {
	g, l, err := n.Gradients(x, y)
	if err != nil {
		return 0, err
	}
	n.apply(g, learningRate)
	return l, nil
}

// TrainBatch accumulates gradients over the whole batch, applies one
// averaged update and returns the mean squared error of the batch.
func (n *Network) TrainBatch(xs [][]float64, ys []float64, learningRate float64) (float64, error) {
	g, l, err := n.BatchGradients(xs, ys)
	if err != nil {
		return 0, err
	}
	n.apply(g, learningRate)
	return l, nil
}

// backward runs the delta recurrence for one trace, adds the parameter
// gradients into g and returns the example loss.
func (n *Network) backward(tr *ForwardTrace, y float64, g *Gradients) float64 {
	last := len(n.layers) - 1

	// dL/dpost for the final layer: loss slope times the reduction's slope.
	grad := mat.NewVecDense(n.width, nil)
	n.reduce.Gradient(tr.post[last].RawVector().Data, grad.RawVector().Data)
	grad.ScaleVec(n.loss.Backward(tr.Output, y), grad)

	delta := n.layers[last].Delta(grad, tr.pre[last])
	for k := last; k >= 0; k-- {
		n.layers[k].Accumulate(g.layers[k], delta, tr.layerInput(k))
		if k > 0 {
			delta = n.layers[k-1].Delta(n.layers[k].Backward(delta), tr.pre[k-1])
		}
	}

	return n.loss.Forward(tr.Output, y)
}

func (n *Network) apply(g *Gradients, learningRate float64) {
	for k, l := range n.layers {
		n.optim.StepInPlace(l.Weights().RawMatrix().Data, g.layers[k].W.RawMatrix().Data, learningRate)
		n.optim.StepInPlace(l.Biases().RawVector().Data, g.layers[k].B.RawVector().Data, learningRate)
	}
}

func (n *Network) newGradients() *Gradients {
	g := &Gradients{layers: make([]*layer.Grad, len(n.layers))}
	for k := range g.layers {
		g.layers[k] = layer.NewGrad(n.width)
	}
	return g
}

// Params returns all network parameters flattened (copy), layer by layer.
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// SetParams overwrites every parameter from a slice laid out as Params.
func (n *Network) SetParams(params []float64) error {
	if len(params) != n.NumParams() {
		return errors.Wrapf(ErrInvalidArgument, "%d params, want %d", len(params), n.NumParams())
	}
	offset := 0
	for _, l := range n.layers {
		l.SetParams(params[offset : offset+l.NumParams()])
		offset += l.NumParams()
	}
	return nil
}

// NumParams returns the total number of weights and biases.
func (n *Network) NumParams() int {
	return len(n.layers) * (n.width*n.width + n.width)
}
