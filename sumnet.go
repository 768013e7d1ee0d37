// Package sumnet re-exports the network, training and dataset helpers for
// use outside this module.
package sumnet

import (
	"github.com/FlavioCFOliveira/sumnet/internal/activations"
	"github.com/FlavioCFOliveira/sumnet/internal/dataset"
	"github.com/FlavioCFOliveira/sumnet/internal/net"
)

// Re-export common types for easier access
type (
	Network      = net.Network
	Option       = net.Option
	ForwardTrace = net.ForwardTrace
	Gradients    = net.Gradients
	Reduction    = net.Reduction
	Kind         = activations.Kind
	FitConfig    = net.FitConfig
	History      = net.History
	Mode         = net.Mode
	Callback     = net.Callback
	Dataset      = dataset.Dataset
	Scaler       = dataset.Scaler
)

// Activations
const (
	ReLU     = activations.KindReLU
	Tanh     = activations.KindTanh
	Sigmoid  = activations.KindSigmoid
	Identity = activations.KindIdentity
)

// Training modes
const (
	PerExample = net.PerExample
	FullBatch  = net.FullBatch
)

// Errors
var (
	ErrInvalidArgument  = net.ErrInvalidArgument
	ErrMalformed        = dataset.ErrMalformed
	ErrDegenerateColumn = dataset.ErrDegenerateColumn
)

// New creates a network; see net.New.
func New(inputSize, layerCount, nodesPerLayer int, kind Kind, opts ...Option) (*Network, error) {
	return net.New(inputSize, layerCount, nodesPerLayer, kind, opts...)
}

func WithSeed(seed int64) Option {
	return net.WithSeed(seed)
}

// WithFirstOutput makes node 0 of the final layer the sole output.
func WithFirstOutput() Option {
	return net.WithReduction(net.First{})
}

func ParseActivation(name string) (Kind, error) {
	return activations.ParseKind(name)
}

// Fit trains n on xs/ys; see net.Fit.
func Fit(n *Network, xs [][]float64, ys []float64, cfg FitConfig) (*History, error) {
	return net.Fit(n, xs, ys, cfg)
}

// Callbacks
func Logger(interval int) Callback {
	return net.NewLogger(interval)
}

func EarlyStopping(patience int, threshold float64) *net.EarlyStopping {
	return net.NewEarlyStopping(patience, threshold)
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

// Datasets
func Normalize(rows [][]float64) ([][]float64, error) {
	return dataset.Normalize(rows)
}

func LoadCSV(filename string, hasHeader bool) ([][]float64, error) {
	return dataset.LoadCSV(filename, hasHeader)
}

func HammingDataset() *Dataset {
	return dataset.HammingDataset()
}
